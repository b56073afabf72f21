package booking

import (
	"time"

	"github.com/BruksfildServices01/court-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// SetStatus não valida transições: qualquer status pode ir para qualquer outro.
func SetStatus(b *models.Booking, status Status, now time.Time) {
	b.Status = string(status)
	b.UpdatedAt = now
}

func Cancel(b *models.Booking, now time.Time) {
	SetStatus(b, StatusCanceled, now)
}

func Confirm(b *models.Booking, now time.Time) {
	SetStatus(b, StatusConfirmed, now)
}

// Reschedule grava data, horário e observações. O preço só é recalculado
// quando o início ou o fim mudam, usando o preço atual da quadra.
func Reschedule(
	b *models.Booking,
	date string,
	i Interval,
	notes string,
	pricePerHour float64,
	now time.Time,
) {
	if b.StartTime != i.Start.String() || b.EndTime != i.End.String() {
		b.TotalPrice = TotalPrice(pricePerHour, i)
	}

	b.BookingDate = date
	b.StartTime = i.Start.String()
	b.EndTime = i.End.String()
	b.Notes = notes
	b.UpdatedAt = now
}
