package booking

import "github.com/BruksfildServices01/court-scheduler/internal/models"

// IntervalOf lê o intervalo gravado em um agendamento.
func IntervalOf(b *models.Booking) (Interval, error) {
	return ParseInterval(b.StartTime, b.EndTime)
}

// HasConflict reports whether any active booking in existing overlaps
// candidate. excludeID skips the booking being edited.
func HasConflict(existing []models.Booking, candidate Interval, excludeID *uint) bool {
	for i := range existing {
		b := &existing[i]

		if excludeID != nil && b.ID == *excludeID {
			continue
		}
		if !Status(b.Status).IsActive() {
			continue
		}

		current, err := IntervalOf(b)
		if err != nil {
			continue
		}
		if Overlaps(current, candidate) {
			return true
		}
	}
	return false
}
