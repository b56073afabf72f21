package booking

import (
	"fmt"

	"github.com/BruksfildServices01/court-scheduler/internal/httperr"
)

var (
	ErrCourtNotFound   = httperr.ErrNotFound("court_not_found", "Quadra não encontrada.")
	ErrUserNotFound    = httperr.ErrNotFound("user_not_found", "Usuário não encontrado.")
	ErrBookingNotFound = httperr.ErrNotFound("booking_not_found", "Agendamento não encontrado.")

	ErrInvalidDate = httperr.ErrValidation("invalid_time", "Data inválida. Use o formato AAAA-MM-DD.")
	ErrInvalidHour = httperr.ErrValidation("invalid_time", "Horário inválido. Use o formato HH:MM.")
)

func ErrSchedulingConflict(courtName string) error {
	return httperr.ErrConflict(
		"scheduling_conflict",
		fmt.Sprintf("Já existe um agendamento para este horário na quadra %s.", courtName),
	)
}
