package reservation

import (
	"time"

	"github.com/BruksfildServices01/court-scheduler/internal/models"
)

const DefaultCapacity = 2

// NormalizeSlot garante que o mesmo horário sempre gere o mesmo valor
// gravado, independente do fuso de quem enviou.
func NormalizeSlot(t time.Time) time.Time {
	return t.UTC().Truncate(time.Minute)
}

func IsFull(r *models.Reservation, capacity int) bool {
	return len(r.Players) >= capacity
}

func HasPlayer(r *models.Reservation, userID uint) bool {
	for _, p := range r.Players {
		if p.ID == userID {
			return true
		}
	}
	return false
}

// Occupancy resume a lotação de um horário.
type Occupancy struct {
	CourtID  uint      `json:"court_id"`
	SlotAt   time.Time `json:"slot_at"`
	Players  int       `json:"players"`
	Capacity int       `json:"capacity"`
	Full     bool      `json:"full"`
}

func OccupancyOf(courtID uint, slotAt time.Time, r *models.Reservation, capacity int) Occupancy {
	o := Occupancy{
		CourtID:  courtID,
		SlotAt:   slotAt,
		Capacity: capacity,
	}
	if r != nil {
		o.Players = len(r.Players)
		o.Full = IsFull(r, capacity)
	}
	return o
}
