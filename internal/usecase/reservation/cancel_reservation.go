package reservation

import (
	"context"

	"github.com/BruksfildServices01/court-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/court-scheduler/internal/domain/reservation"
	"github.com/BruksfildServices01/court-scheduler/internal/models"
)

type CancelReservation struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCancelReservation(repo domain.Repository, audit *audit.Dispatcher) *CancelReservation {
	return &CancelReservation{repo: repo, audit: audit}
}

// Execute cancela a reserva inteira, liberando o horário para um novo grupo.
// É o caminho do admin.
func (uc *CancelReservation) Execute(ctx context.Context, id uint, actorID *uint) (*models.Reservation, error) {
	var canceled *models.Reservation

	err := uc.repo.WithinTx(ctx, func(tx domain.Repository) error {
		r, err := tx.GetReservation(ctx, id)
		if err != nil {
			return err
		}

		r.Status = string(domain.StatusCanceled)
		if err := tx.UpdateReservation(ctx, r); err != nil {
			return err
		}

		canceled = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   actorID,
		Action:   "reservation_canceled",
		Entity:   "reservation",
		EntityID: &canceled.ID,
	})

	return canceled, nil
}

// Leave tira só o jogador da reserva; a vaga volta a ficar livre para
// outro. Quando sai o último jogador, a reserva é cancelada.
func (uc *CancelReservation) Leave(ctx context.Context, id, userID uint) (*models.Reservation, error) {
	var (
		result *models.Reservation
		closed bool
	)

	err := uc.repo.WithinTx(ctx, func(tx domain.Repository) error {
		r, err := tx.GetReservation(ctx, id)
		if err != nil {
			return err
		}

		// mesma trava de quadra usada por ReserveSlot
		if _, err := tx.GetCourtForUpdate(ctx, r.CourtID); err != nil {
			return err
		}
		if r, err = tx.GetReservation(ctx, id); err != nil {
			return err
		}

		var player *models.User
		for i := range r.Players {
			if r.Players[i].ID == userID {
				player = &r.Players[i]
				break
			}
		}
		if player == nil {
			return domain.ErrNotAPlayer
		}

		if err := tx.RemovePlayer(ctx, r, player); err != nil {
			return err
		}

		r, err = tx.GetReservation(ctx, id)
		if err != nil {
			return err
		}

		if len(r.Players) == 0 {
			r.Status = string(domain.StatusCanceled)
			if err := tx.UpdateReservation(ctx, r); err != nil {
				return err
			}
			closed = true
		}

		result = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	action := "reservation_left"
	if closed {
		action = "reservation_canceled"
	}
	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   action,
		Entity:   "reservation",
		EntityID: &result.ID,
	})

	return result, nil
}
