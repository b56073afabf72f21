// Package scheduling expõe os dois modelos de agenda (exclusivo por
// intervalo e compartilhado por capacidade) atrás de uma única interface.
package scheduling

import (
	"context"
)

const (
	ModeExclusive = "exclusive"
	ModeShared    = "shared"
)

// Request descreve um pedido de horário. No modo compartilhado só
// Date e StartTime importam; o fim é dado pela duração da reserva.
type Request struct {
	CourtID uint
	UserID  uint

	Date      string
	StartTime string
	EndTime   string
	Notes     string
}

type Outcome struct {
	Mode         string  `json:"mode"`
	ID           uint    `json:"id"`
	CourtID      uint    `json:"court_id"`
	Status       string  `json:"status"`
	Date         string  `json:"date"`
	StartTime    string  `json:"start_time"`
	EndTime      string  `json:"end_time"`
	TotalPrice   float64 `json:"total_price,omitempty"`
	Participants int     `json:"participants"`
	Capacity     int     `json:"capacity"`
}

type Core interface {
	Mode() string

	// Book reserva o horário ou devolve o erro de negócio do modelo.
	Book(ctx context.Context, req Request) (*Outcome, error)

	// Check informa se ainda cabe alguém no horário.
	Check(ctx context.Context, req Request) (bool, error)

	Cancel(ctx context.Context, id uint, actorID *uint) error
}
