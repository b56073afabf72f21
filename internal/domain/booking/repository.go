package booking

import (
	"context"

	"github.com/BruksfildServices01/court-scheduler/internal/models"
)

// Filter seleciona agendamentos. Campos zerados não filtram.
type Filter struct {
	UserID   *uint
	CourtID  *uint
	Date     string
	FromDate string
	Status   *Status

	// NewestFirst ordena por data e início decrescentes.
	NewestFirst bool
}

type Repository interface {
	// WithinTx executa fn em uma transação; fn recebe um Repository
	// ligado a essa transação.
	WithinTx(
		ctx context.Context,
		fn func(tx Repository) error,
	) error

	// -------- Court / User --------
	GetCourt(
		ctx context.Context,
		id uint,
	) (*models.Court, error)

	// GetCourtForUpdate bloqueia a linha da quadra até o fim da
	// transação, serializando escritas na mesma quadra.
	GetCourtForUpdate(
		ctx context.Context,
		id uint,
	) (*models.Court, error)

	GetUser(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	// -------- Booking --------
	GetBooking(
		ctx context.Context,
		id uint,
	) (*models.Booking, error)

	ListBookings(
		ctx context.Context,
		f Filter,
	) ([]models.Booking, error)

	ListCourtBookingsForDate(
		ctx context.Context,
		courtID uint,
		date string,
	) ([]models.Booking, error)

	HasConflict(
		ctx context.Context,
		courtID uint,
		date string,
		i Interval,
		excludeID *uint,
	) (bool, error)

	CountByStatus(
		ctx context.Context,
		status Status,
	) (int64, error)

	CreateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	UpdateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	DeleteBooking(
		ctx context.Context,
		id uint,
	) error
}
