package booking

import (
	"context"

	"github.com/BruksfildServices01/court-scheduler/internal/audit"
	"github.com/BruksfildServices01/court-scheduler/internal/cache"
	domain "github.com/BruksfildServices01/court-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/court-scheduler/internal/models"
	"github.com/BruksfildServices01/court-scheduler/internal/timezone"
)

type ChangeBookingStatus struct {
	repo  domain.Repository
	now   timezone.Clock
	cache cache.Availability
	audit *audit.Dispatcher
}

func NewChangeBookingStatus(
	repo domain.Repository,
	now timezone.Clock,
	availability cache.Availability,
	audit *audit.Dispatcher,
) *ChangeBookingStatus {
	if availability == nil {
		availability = cache.Noop{}
	}
	return &ChangeBookingStatus{
		repo:  repo,
		now:   now,
		cache: availability,
		audit: audit,
	}
}

// Execute grava o novo status sem tabela de transições e sem nova
// checagem de conflito. Só status e UpdatedAt mudam.
func (uc *ChangeBookingStatus) Execute(
	ctx context.Context,
	id uint,
	status domain.Status,
) (*models.Booking, error) {

	var (
		updated  *models.Booking
		previous string
	)

	err := uc.repo.WithinTx(ctx, func(tx domain.Repository) error {
		b, err := tx.GetBooking(ctx, id)
		if err != nil {
			return err
		}

		previous = b.Status
		domain.SetStatus(b, status, uc.now())

		if err := tx.UpdateBooking(ctx, b); err != nil {
			return err
		}

		updated = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	if domain.Status(previous).IsActive() != status.IsActive() {
		uc.cache.Invalidate(ctx, updated.CourtID, updated.BookingDate)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &updated.UserID,
		Action:   "booking_status_changed",
		Entity:   "booking",
		EntityID: &updated.ID,
		Metadata: map[string]any{
			"from": previous,
			"to":   string(status),
		},
	})

	return updated, nil
}

func (uc *ChangeBookingStatus) Cancel(ctx context.Context, id uint) (*models.Booking, error) {
	return uc.Execute(ctx, id, domain.StatusCanceled)
}

func (uc *ChangeBookingStatus) Confirm(ctx context.Context, id uint) (*models.Booking, error) {
	return uc.Execute(ctx, id, domain.StatusConfirmed)
}
