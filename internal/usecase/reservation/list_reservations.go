package reservation

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/court-scheduler/internal/domain/reservation"
	"github.com/BruksfildServices01/court-scheduler/internal/models"
)

type ListReservations struct {
	repo     domain.Repository
	capacity int
}

func NewListReservations(repo domain.Repository, capacity int) *ListReservations {
	if capacity <= 0 {
		capacity = domain.DefaultCapacity
	}
	return &ListReservations{repo: repo, capacity: capacity}
}

func (uc *ListReservations) Get(ctx context.Context, id uint) (*models.Reservation, error) {
	return uc.repo.GetReservation(ctx, id)
}

func (uc *ListReservations) All(ctx context.Context) ([]models.Reservation, error) {
	return uc.repo.ListAll(ctx)
}

func (uc *ListReservations) ByCourt(ctx context.Context, courtID uint) ([]models.Reservation, error) {
	if _, err := uc.repo.GetCourt(ctx, courtID); err != nil {
		return nil, err
	}
	return uc.repo.ListByCourt(ctx, courtID)
}

func (uc *ListReservations) ByPlayer(ctx context.Context, userID uint) ([]models.Reservation, error) {
	if _, err := uc.repo.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	return uc.repo.ListByPlayer(ctx, userID)
}

// Occupancy informa quantos jogadores já estão no horário.
func (uc *ListReservations) Occupancy(ctx context.Context, courtID uint, slotAt time.Time) (domain.Occupancy, error) {
	if _, err := uc.repo.GetCourt(ctx, courtID); err != nil {
		return domain.Occupancy{}, err
	}

	slot := domain.NormalizeSlot(slotAt)
	r, err := uc.repo.FindConfirmed(ctx, courtID, slot)
	if err != nil {
		return domain.Occupancy{}, err
	}
	return domain.OccupancyOf(courtID, slot, r, uc.capacity), nil
}
