package reservation

import (
	"context"
	"time"

	"github.com/BruksfildServices01/court-scheduler/internal/models"
)

type Repository interface {
	WithinTx(
		ctx context.Context,
		fn func(tx Repository) error,
	) error

	GetCourt(ctx context.Context, id uint) (*models.Court, error)
	GetCourtForUpdate(ctx context.Context, id uint) (*models.Court, error)
	GetUser(ctx context.Context, id uint) (*models.User, error)

	GetReservation(ctx context.Context, id uint) (*models.Reservation, error)

	// FindConfirmed devolve nil, nil quando não há reserva confirmada
	// para a quadra no horário exato.
	FindConfirmed(
		ctx context.Context,
		courtID uint,
		slotAt time.Time,
	) (*models.Reservation, error)

	CreateReservation(ctx context.Context, r *models.Reservation, player *models.User) error
	AddPlayer(ctx context.Context, r *models.Reservation, player *models.User) error
	RemovePlayer(ctx context.Context, r *models.Reservation, player *models.User) error
	UpdateReservation(ctx context.Context, r *models.Reservation) error

	ListByCourt(ctx context.Context, courtID uint) ([]models.Reservation, error)
	ListByPlayer(ctx context.Context, userID uint) ([]models.Reservation, error)
	ListAll(ctx context.Context) ([]models.Reservation, error)
}
