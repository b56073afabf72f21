package booking

import (
	"context"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"

	"github.com/BruksfildServices01/court-scheduler/internal/audit"
	"github.com/BruksfildServices01/court-scheduler/internal/cache"
	domain "github.com/BruksfildServices01/court-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/court-scheduler/internal/models"
	"github.com/BruksfildServices01/court-scheduler/internal/obs"
	"github.com/BruksfildServices01/court-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	CourtID uint
	UserID  uint

	Date      string
	StartTime string
	EndTime   string
	Notes     string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo  domain.Repository
	hours domain.BusinessHours
	now   timezone.Clock
	cache cache.Availability
	audit *audit.Dispatcher
}

func NewCreateBooking(
	repo domain.Repository,
	hours domain.BusinessHours,
	now timezone.Clock,
	availability cache.Availability,
	audit *audit.Dispatcher,
) *CreateBooking {
	if availability == nil {
		availability = cache.Noop{}
	}
	return &CreateBooking{
		repo:  repo,
		hours: hours,
		now:   now,
		cache: availability,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	ctx, span := obs.Start(ctx, "booking.create",
		attribute.Int("court_id", int(in.CourtID)),
		attribute.String("date", in.Date),
	)
	defer span.End()

	// --------------------------------------------------
	// 1️⃣ Quadra e usuário
	// --------------------------------------------------
	court, err := uc.repo.GetCourt(ctx, in.CourtID)
	if err != nil {
		return nil, err
	}

	user, err := uc.repo.GetUser(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2️⃣ Regras de horário
	// --------------------------------------------------
	date, interval, err := parseSchedule(in.Date, in.StartTime, in.EndTime)
	if err != nil {
		return nil, err
	}
	if err := uc.hours.Validate(uc.now(), date, interval); err != nil {
		return nil, err
	}
	day := date.Format(domain.DateLayout)

	// --------------------------------------------------
	// 3️⃣ Conflito + criação (mesma transação)
	// --------------------------------------------------
	var created *models.Booking

	err = uc.repo.WithinTx(ctx, func(tx domain.Repository) error {
		if _, err := tx.GetCourtForUpdate(ctx, court.ID); err != nil {
			return err
		}

		conflict, err := tx.HasConflict(ctx, court.ID, day, interval, nil)
		if err != nil {
			return err
		}
		if conflict {
			return domain.ErrSchedulingConflict(court.Name)
		}

		b := &models.Booking{
			CourtID:     court.ID,
			UserID:      user.ID,
			BookingDate: day,
			StartTime:   interval.Start.String(),
			EndTime:     interval.End.String(),
			Status:      string(domain.InitialStatus()),
			TotalPrice:  domain.TotalPrice(court.PricePerHour, interval),
			Notes:       in.Notes,
		}
		if err := tx.CreateBooking(ctx, b); err != nil {
			return err
		}

		created = b
		return nil
	})
	if err != nil {
		obs.Fail(span, err)
		zerolog.Ctx(ctx).Info().
			Err(err).
			Uint("court_id", court.ID).
			Str("date", day).
			Str("interval", interval.String()).
			Msg("booking rejected")
		return nil, err
	}

	created.Court = *court
	created.User = *user

	// --------------------------------------------------
	// 4️⃣ Cache + auditoria
	// --------------------------------------------------
	uc.cache.Invalidate(ctx, court.ID, day)

	uc.audit.Dispatch(audit.Event{
		UserID:   &user.ID,
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: &created.ID,
		Metadata: bookingMetadata(court.ID, day, interval),
	})

	return created, nil
}
