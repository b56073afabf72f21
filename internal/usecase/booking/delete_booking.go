package booking

import (
	"context"

	"github.com/BruksfildServices01/court-scheduler/internal/audit"
	"github.com/BruksfildServices01/court-scheduler/internal/cache"
	domain "github.com/BruksfildServices01/court-scheduler/internal/domain/booking"
)

type DeleteBooking struct {
	repo  domain.Repository
	cache cache.Availability
	audit *audit.Dispatcher
}

func NewDeleteBooking(
	repo domain.Repository,
	availability cache.Availability,
	audit *audit.Dispatcher,
) *DeleteBooking {
	if availability == nil {
		availability = cache.Noop{}
	}
	return &DeleteBooking{
		repo:  repo,
		cache: availability,
		audit: audit,
	}
}

// Execute remove o registro de vez; não existe exclusão lógica.
func (uc *DeleteBooking) Execute(ctx context.Context, id uint, actorID *uint) error {
	var courtID uint
	var date string

	err := uc.repo.WithinTx(ctx, func(tx domain.Repository) error {
		b, err := tx.GetBooking(ctx, id)
		if err != nil {
			return err
		}
		courtID, date = b.CourtID, b.BookingDate

		return tx.DeleteBooking(ctx, b.ID)
	})
	if err != nil {
		return err
	}

	uc.cache.Invalidate(ctx, courtID, date)

	uc.audit.Dispatch(audit.Event{
		UserID:   actorID,
		Action:   "booking_deleted",
		Entity:   "booking",
		EntityID: &id,
		Metadata: map[string]any{"court_id": courtID, "date": date},
	})

	return nil
}
