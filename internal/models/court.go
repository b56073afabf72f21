package models

import "time"

type Court struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name         string  `gorm:"size:100;not null" json:"name"`
	Description  string  `gorm:"size:500" json:"description"`
	PricePerHour float64 `gorm:"not null" json:"price_per_hour"`
	Active       bool    `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
