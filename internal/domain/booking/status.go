package booking

import (
	"strings"

	"github.com/BruksfildServices01/court-scheduler/internal/httperr"
)

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCanceled  Status = "CANCELED"
	StatusCompleted Status = "COMPLETED"
)

// ActiveStatuses ocupam a quadra; CANCELED e COMPLETED liberam o horário.
func ActiveStatuses() []Status {
	return []Status{StatusPending, StatusConfirmed}
}

func ActiveStatusValues() []string {
	out := make([]string, 0, 2)
	for _, s := range ActiveStatuses() {
		out = append(out, string(s))
	}
	return out
}

func (s Status) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed
}

func InitialStatus() Status {
	return StatusPending
}

func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToUpper(strings.TrimSpace(raw)))
	switch s {
	case StatusPending, StatusConfirmed, StatusCanceled, StatusCompleted:
		return s, nil
	}
	return "", httperr.ErrValidation("invalid_status", "Status de agendamento inválido.")
}
