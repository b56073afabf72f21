package models

import "time"

// Reservation é o modelo compartilhado: um horário exato de uma quadra
// dividido entre até N jogadores.
type Reservation struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CourtID uint  `gorm:"not null;index:idx_reservations_slot,priority:1" json:"court_id"`
	Court   Court `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	SlotAt time.Time `gorm:"not null;index:idx_reservations_slot,priority:2" json:"slot_at"`
	Status string    `gorm:"size:20;not null;default:'PENDENTE'" json:"status"`

	Players []User `gorm:"many2many:reservation_players;" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
