package scheduling

import (
	"context"
	"time"

	bookingDomain "github.com/BruksfildServices01/court-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/court-scheduler/internal/models"
	ucReservation "github.com/BruksfildServices01/court-scheduler/internal/usecase/reservation"
)

type sharedCore struct {
	loc      *time.Location
	duration time.Duration
	reserve  *ucReservation.ReserveSlot
	cancel   *ucReservation.CancelReservation
	list     *ucReservation.ListReservations
}

func NewShared(
	loc *time.Location,
	duration time.Duration,
	reserve *ucReservation.ReserveSlot,
	cancel *ucReservation.CancelReservation,
	list *ucReservation.ListReservations,
) Core {
	return &sharedCore{
		loc:      loc,
		duration: duration,
		reserve:  reserve,
		cancel:   cancel,
		list:     list,
	}
}

func (c *sharedCore) Mode() string { return ModeShared }

// slotAt interpreta data e hora no fuso do clube.
func (c *sharedCore) slotAt(req Request) (time.Time, error) {
	t, err := time.ParseInLocation(
		bookingDomain.DateLayout+" "+bookingDomain.ClockLayout,
		req.Date+" "+req.StartTime,
		c.loc,
	)
	if err != nil {
		return time.Time{}, bookingDomain.ErrInvalidHour
	}
	return t, nil
}

func (c *sharedCore) Book(ctx context.Context, req Request) (*Outcome, error) {
	at, err := c.slotAt(req)
	if err != nil {
		return nil, err
	}

	r, err := c.reserve.Execute(ctx, ucReservation.ReserveSlotInput{
		CourtID: req.CourtID,
		UserID:  req.UserID,
		SlotAt:  at,
	})
	if err != nil {
		return nil, err
	}
	return c.outcome(r), nil
}

func (c *sharedCore) Check(ctx context.Context, req Request) (bool, error) {
	at, err := c.slotAt(req)
	if err != nil {
		return false, err
	}

	occ, err := c.list.Occupancy(ctx, req.CourtID, at)
	if err != nil {
		return false, err
	}
	return !occ.Full, nil
}

func (c *sharedCore) Cancel(ctx context.Context, id uint, actorID *uint) error {
	_, err := c.cancel.Execute(ctx, id, actorID)
	return err
}

func (c *sharedCore) outcome(r *models.Reservation) *Outcome {
	start := r.SlotAt.In(c.loc)
	end := start.Add(c.duration)

	return &Outcome{
		Mode:         ModeShared,
		ID:           r.ID,
		CourtID:      r.CourtID,
		Status:       r.Status,
		Date:         start.Format(bookingDomain.DateLayout),
		StartTime:    start.Format(bookingDomain.ClockLayout),
		EndTime:      end.Format(bookingDomain.ClockLayout),
		Participants: len(r.Players),
		Capacity:     c.reserve.Capacity(),
	}
}
