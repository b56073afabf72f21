package dto

import (
	"time"

	"github.com/BruksfildServices01/court-scheduler/internal/models"
)

type BookingDTO struct {
	ID          uint      `json:"id"`
	CourtID     uint      `json:"court_id"`
	CourtName   string    `json:"court_name"`
	UserID      uint      `json:"user_id"`
	UserName    string    `json:"user_name"`
	BookingDate string    `json:"booking_date"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	Status      string    `json:"status"`
	TotalPrice  float64   `json:"total_price"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewBookingDTO(b *models.Booking) BookingDTO {
	return BookingDTO{
		ID:          b.ID,
		CourtID:     b.CourtID,
		CourtName:   b.Court.Name,
		UserID:      b.UserID,
		UserName:    b.User.Name,
		BookingDate: b.BookingDate,
		StartTime:   b.StartTime,
		EndTime:     b.EndTime,
		Status:      b.Status,
		TotalPrice:  b.TotalPrice,
		Notes:       b.Notes,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func NewBookingDTOs(in []models.Booking) []BookingDTO {
	out := make([]BookingDTO, 0, len(in))
	for i := range in {
		out = append(out, NewBookingDTO(&in[i]))
	}
	return out
}
