package reservation

import "github.com/BruksfildServices01/court-scheduler/internal/httperr"

var (
	ErrCourtNotFound       = httperr.ErrNotFound("court_not_found", "Quadra não encontrada.")
	ErrUserNotFound        = httperr.ErrNotFound("user_not_found", "Usuário não encontrado.")
	ErrReservationNotFound = httperr.ErrNotFound("reservation_not_found", "Reserva não encontrada.")

	ErrCourtUnavailable = httperr.ErrConflict("court_unavailable", "Quadra indisponível para reservas.")
	ErrCapacityExceeded = httperr.ErrConflict("capacity_exceeded", "Horário lotado para esta quadra.")
	ErrAlreadyReserved  = httperr.ErrConflict("already_reserved", "Jogador já está nesta reserva.")
	ErrNotAPlayer       = httperr.ErrForbidden("not_a_player", "Jogador não está nesta reserva.")
)
