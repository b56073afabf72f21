package booking

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/BruksfildServices01/court-scheduler/internal/cache"
	domain "github.com/BruksfildServices01/court-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/court-scheduler/internal/obs"
)

type GetAvailability struct {
	repo  domain.Repository
	hours domain.BusinessHours
	cache cache.Availability
}

func NewGetAvailability(
	repo domain.Repository,
	hours domain.BusinessHours,
	availability cache.Availability,
) *GetAvailability {
	if availability == nil {
		availability = cache.Noop{}
	}
	return &GetAvailability{
		repo:  repo,
		hours: hours,
		cache: availability,
	}
}

// Execute devolve a grade do dia. Não há checagem de data passada:
// consultar um dia antigo apenas mostra como ele ficou.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	courtID uint,
	date string,
) ([]domain.TimeSlot, error) {

	ctx, span := obs.Start(ctx, "booking.availability",
		attribute.Int("court_id", int(courtID)),
		attribute.String("date", date),
	)
	defer span.End()

	court, err := uc.repo.GetCourt(ctx, courtID)
	if err != nil {
		return nil, err
	}

	d, err := domain.ParseDate(date)
	if err != nil {
		return nil, domain.ErrInvalidDate
	}
	day := d.Format(domain.DateLayout)

	// gen é lida antes da consulta; Set descarta a grade se houve
	// invalidação no meio do caminho
	slots, gen, ok := uc.cache.Get(ctx, court.ID, day)
	if ok {
		span.SetAttributes(attribute.Bool("cache_hit", true))
		return slots, nil
	}

	existing, err := uc.repo.ListCourtBookingsForDate(ctx, court.ID, day)
	if err != nil {
		obs.Fail(span, err)
		return nil, err
	}

	slots = domain.GenerateSlots(uc.hours, existing)
	uc.cache.Set(ctx, court.ID, day, gen, slots)

	return slots, nil
}
