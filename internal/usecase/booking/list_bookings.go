package booking

import (
	"context"

	domain "github.com/BruksfildServices01/court-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/court-scheduler/internal/models"
	"github.com/BruksfildServices01/court-scheduler/internal/timezone"
)

// ListBookings agrupa as consultas de leitura. Nenhuma delas trava linhas.
type ListBookings struct {
	repo domain.Repository
	now  timezone.Clock
}

func NewListBookings(repo domain.Repository, now timezone.Clock) *ListBookings {
	return &ListBookings{repo: repo, now: now}
}

func (uc *ListBookings) Get(ctx context.Context, id uint) (*models.Booking, error) {
	return uc.repo.GetBooking(ctx, id)
}

func (uc *ListBookings) All(ctx context.Context) ([]models.Booking, error) {
	return uc.repo.ListBookings(ctx, domain.Filter{})
}

// ByUser lista do mais recente para o mais antigo.
func (uc *ListBookings) ByUser(ctx context.Context, userID uint) ([]models.Booking, error) {
	if _, err := uc.repo.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	return uc.repo.ListBookings(ctx, domain.Filter{UserID: &userID, NewestFirst: true})
}

func (uc *ListBookings) ByCourt(ctx context.Context, courtID uint) ([]models.Booking, error) {
	if _, err := uc.repo.GetCourt(ctx, courtID); err != nil {
		return nil, err
	}
	return uc.repo.ListBookings(ctx, domain.Filter{CourtID: &courtID})
}

func (uc *ListBookings) ByDate(ctx context.Context, date string) ([]models.Booking, error) {
	d, err := domain.ParseDate(date)
	if err != nil {
		return nil, domain.ErrInvalidDate
	}
	return uc.repo.ListBookings(ctx, domain.Filter{Date: d.Format(domain.DateLayout)})
}

func (uc *ListBookings) ByStatus(ctx context.Context, status domain.Status) ([]models.Booking, error) {
	return uc.repo.ListBookings(ctx, domain.Filter{Status: &status})
}

// Today lista os agendamentos do dia no fuso do clube, por horário.
func (uc *ListBookings) Today(ctx context.Context) ([]models.Booking, error) {
	return uc.repo.ListBookings(ctx, domain.Filter{Date: uc.now.Today()})
}

// FutureForUser inclui o dia de hoje.
func (uc *ListBookings) FutureForUser(ctx context.Context, userID uint) ([]models.Booking, error) {
	if _, err := uc.repo.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	return uc.repo.ListBookings(ctx, domain.Filter{UserID: &userID, FromDate: uc.now.Today()})
}

func (uc *ListBookings) CountByStatus(ctx context.Context, status domain.Status) (int64, error) {
	return uc.repo.CountByStatus(ctx, status)
}
