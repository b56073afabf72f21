package booking

import "github.com/shopspring/decimal"

// TotalPrice cobra apenas horas completas, arredondado em centavos.
// A conta é feita em decimal; float64 fica só na borda (modelo e JSON).
func TotalPrice(pricePerHour float64, i Interval) float64 {
	return TotalPriceDecimal(decimal.NewFromFloat(pricePerHour), i).InexactFloat64()
}

func TotalPriceDecimal(pricePerHour decimal.Decimal, i Interval) decimal.Decimal {
	return pricePerHour.
		Mul(decimal.NewFromInt(int64(i.WholeHours()))).
		Round(2)
}
