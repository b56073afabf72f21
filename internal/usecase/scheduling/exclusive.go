package scheduling

import (
	"context"

	domain "github.com/BruksfildServices01/court-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/court-scheduler/internal/models"
	ucBooking "github.com/BruksfildServices01/court-scheduler/internal/usecase/booking"
	"github.com/BruksfildServices01/court-scheduler/internal/timezone"
)

type exclusiveCore struct {
	repo   domain.Repository
	hours  domain.BusinessHours
	now    timezone.Clock
	create *ucBooking.CreateBooking
	status *ucBooking.ChangeBookingStatus
}

func NewExclusive(
	repo domain.Repository,
	hours domain.BusinessHours,
	now timezone.Clock,
	create *ucBooking.CreateBooking,
	status *ucBooking.ChangeBookingStatus,
) Core {
	return &exclusiveCore{
		repo:   repo,
		hours:  hours,
		now:    now,
		create: create,
		status: status,
	}
}

func (c *exclusiveCore) Mode() string { return ModeExclusive }

func (c *exclusiveCore) Book(ctx context.Context, req Request) (*Outcome, error) {
	b, err := c.create.Execute(ctx, ucBooking.CreateBookingInput{
		CourtID:   req.CourtID,
		UserID:    req.UserID,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Notes:     req.Notes,
	})
	if err != nil {
		return nil, err
	}
	return exclusiveOutcome(b), nil
}

func (c *exclusiveCore) Check(ctx context.Context, req Request) (bool, error) {
	if _, err := c.repo.GetCourt(ctx, req.CourtID); err != nil {
		return false, err
	}

	date, err := domain.ParseDate(req.Date)
	if err != nil {
		return false, domain.ErrInvalidDate
	}
	interval, err := domain.ParseInterval(req.StartTime, req.EndTime)
	if err != nil {
		return false, domain.ErrInvalidHour
	}
	if err := c.hours.Validate(c.now(), date, interval); err != nil {
		return false, err
	}

	conflict, err := c.repo.HasConflict(ctx, req.CourtID, date.Format(domain.DateLayout), interval, nil)
	if err != nil {
		return false, err
	}
	return !conflict, nil
}

func (c *exclusiveCore) Cancel(ctx context.Context, id uint, _ *uint) error {
	_, err := c.status.Cancel(ctx, id)
	return err
}

func exclusiveOutcome(b *models.Booking) *Outcome {
	return &Outcome{
		Mode:         ModeExclusive,
		ID:           b.ID,
		CourtID:      b.CourtID,
		Status:       b.Status,
		Date:         b.BookingDate,
		StartTime:    b.StartTime,
		EndTime:      b.EndTime,
		TotalPrice:   b.TotalPrice,
		Participants: 1,
		Capacity:     1,
	}
}
