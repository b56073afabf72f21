package booking

import (
	"time"

	domain "github.com/BruksfildServices01/court-scheduler/internal/domain/booking"
)

// parseSchedule lê a data (AAAA-MM-DD) e o intervalo (HH:MM) informados.
func parseSchedule(date, start, end string) (time.Time, domain.Interval, error) {
	d, err := domain.ParseDate(date)
	if err != nil {
		return time.Time{}, domain.Interval{}, domain.ErrInvalidDate
	}

	i, err := domain.ParseInterval(start, end)
	if err != nil {
		return time.Time{}, domain.Interval{}, domain.ErrInvalidHour
	}

	return d, i, nil
}

func bookingMetadata(courtID uint, date string, i domain.Interval) map[string]any {
	return map[string]any{
		"court_id": courtID,
		"date":     date,
		"start":    i.Start.String(),
		"end":      i.End.String(),
	}
}
