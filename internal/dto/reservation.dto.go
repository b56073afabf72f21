package dto

import (
	"time"

	"github.com/BruksfildServices01/court-scheduler/internal/models"
)

type PlayerDTO struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type ReservationDTO struct {
	ID        uint        `json:"id"`
	CourtID   uint        `json:"court_id"`
	CourtName string      `json:"court_name"`
	SlotAt    time.Time   `json:"slot_at"`
	Status    string      `json:"status"`
	Players   []PlayerDTO `json:"players"`
	CreatedAt time.Time   `json:"created_at"`
}

// NewReservationDTO exibe o horário no fuso do clube.
func NewReservationDTO(r *models.Reservation, loc *time.Location) ReservationDTO {
	players := make([]PlayerDTO, 0, len(r.Players))
	for _, p := range r.Players {
		players = append(players, PlayerDTO{ID: p.ID, Name: p.Name})
	}

	return ReservationDTO{
		ID:        r.ID,
		CourtID:   r.CourtID,
		CourtName: r.Court.Name,
		SlotAt:    r.SlotAt.In(loc),
		Status:    r.Status,
		Players:   players,
		CreatedAt: r.CreatedAt,
	}
}

func NewReservationDTOs(in []models.Reservation, loc *time.Location) []ReservationDTO {
	out := make([]ReservationDTO, 0, len(in))
	for i := range in {
		out = append(out, NewReservationDTO(&in[i], loc))
	}
	return out
}
