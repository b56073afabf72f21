package booking

import (
	"time"

	"github.com/BruksfildServices01/court-scheduler/internal/models"
)

type TimeSlot struct {
	Start     string `json:"start"`
	End       string `json:"end"`
	Available bool   `json:"available"`
}

// GenerateSlots divide o expediente em faixas de SlotWidth a partir da
// abertura. Uma faixa que ultrapassaria o fechamento não é gerada.
func GenerateSlots(hours BusinessHours, existing []models.Booking) []TimeSlot {
	width := hours.SlotWidth
	if width < time.Minute {
		return nil
	}

	slots := make([]TimeSlot, 0, int((hours.Closing-hours.Opening)/Clock(width/time.Minute)))
	for start := hours.Opening; start.Add(width) <= hours.Closing; start = start.Add(width) {
		slot := Interval{Start: start, End: start.Add(width)}

		slots = append(slots, TimeSlot{
			Start:     slot.Start.String(),
			End:       slot.End.String(),
			Available: !HasConflict(existing, slot, nil),
		})
	}
	return slots
}
