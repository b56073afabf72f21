package booking

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/BruksfildServices01/court-scheduler/internal/audit"
	"github.com/BruksfildServices01/court-scheduler/internal/cache"
	domain "github.com/BruksfildServices01/court-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/court-scheduler/internal/models"
	"github.com/BruksfildServices01/court-scheduler/internal/obs"
	"github.com/BruksfildServices01/court-scheduler/internal/timezone"
)

type UpdateBookingInput struct {
	ID uint

	Date      string
	StartTime string
	EndTime   string
	Notes     string
}

type UpdateBooking struct {
	repo  domain.Repository
	hours domain.BusinessHours
	now   timezone.Clock
	cache cache.Availability
	audit *audit.Dispatcher
}

func NewUpdateBooking(
	repo domain.Repository,
	hours domain.BusinessHours,
	now timezone.Clock,
	availability cache.Availability,
	audit *audit.Dispatcher,
) *UpdateBooking {
	if availability == nil {
		availability = cache.Noop{}
	}
	return &UpdateBooking{
		repo:  repo,
		hours: hours,
		now:   now,
		cache: availability,
		audit: audit,
	}
}

// Execute remarca um agendamento. A quadra não muda; o próprio
// agendamento é ignorado na checagem de conflito.
func (uc *UpdateBooking) Execute(
	ctx context.Context,
	in UpdateBookingInput,
) (*models.Booking, error) {

	ctx, span := obs.Start(ctx, "booking.update", attribute.Int("booking_id", int(in.ID)))
	defer span.End()

	if _, err := uc.repo.GetBooking(ctx, in.ID); err != nil {
		return nil, err
	}

	date, interval, err := parseSchedule(in.Date, in.StartTime, in.EndTime)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	if err := uc.hours.Validate(now, date, interval); err != nil {
		return nil, err
	}
	day := date.Format(domain.DateLayout)

	var (
		updated      *models.Booking
		previousDate string
	)

	err = uc.repo.WithinTx(ctx, func(tx domain.Repository) error {
		b, err := tx.GetBooking(ctx, in.ID)
		if err != nil {
			return err
		}

		court, err := tx.GetCourtForUpdate(ctx, b.CourtID)
		if err != nil {
			return err
		}

		conflict, err := tx.HasConflict(ctx, court.ID, day, interval, &b.ID)
		if err != nil {
			return err
		}
		if conflict {
			return domain.ErrSchedulingConflict(court.Name)
		}

		previousDate = b.BookingDate
		domain.Reschedule(b, day, interval, in.Notes, court.PricePerHour, now)

		if err := tx.UpdateBooking(ctx, b); err != nil {
			return err
		}

		b.Court = *court
		updated = b
		return nil
	})
	if err != nil {
		obs.Fail(span, err)
		return nil, err
	}

	uc.cache.Invalidate(ctx, updated.CourtID, previousDate, day)

	uc.audit.Dispatch(audit.Event{
		UserID:   &updated.UserID,
		Action:   "booking_updated",
		Entity:   "booking",
		EntityID: &updated.ID,
		Metadata: bookingMetadata(updated.CourtID, day, interval),
	})

	return updated, nil
}
