package timezone

import (
	"time"
	_ "time/tzdata"
)

const DefaultTimezone = "America/Sao_Paulo"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Clock devolve o instante atual no fuso do clube. Os use cases recebem
// um Clock para que "hoje" seja determinístico nos testes.
type Clock func() time.Time

func ClubClock(tz string) Clock {
	loc := Location(tz)
	return func() time.Time {
		return time.Now().In(loc)
	}
}

func Fixed(t time.Time) Clock {
	return func() time.Time { return t }
}

// Today é a data civil atual (AAAA-MM-DD) no relógio informado.
func (c Clock) Today() string {
	return c().Format("2006-01-02")
}
