package models

import "time"

// Booking reserva uma quadra com exclusividade em um intervalo do dia.
// BookingDate ("2006-01-02") e StartTime/EndTime ("15:04") são texto com
// zero à esquerda, então a ordem lexical é a ordem cronológica.
type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CourtID uint  `gorm:"not null;index:idx_bookings_court_date,priority:1" json:"court_id"`
	Court   Court `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	UserID uint `gorm:"not null;index" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	BookingDate string `gorm:"size:10;not null;index:idx_bookings_court_date,priority:2" json:"booking_date"`
	StartTime   string `gorm:"size:5;not null" json:"start_time"`
	EndTime     string `gorm:"size:5;not null" json:"end_time"`

	Status     string  `gorm:"size:20;not null;default:'PENDING';index" json:"status"`
	TotalPrice float64 `json:"total_price"`
	Notes      string  `gorm:"size:500" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
