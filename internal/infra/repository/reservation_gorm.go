package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/court-scheduler/internal/domain/reservation"
	"github.com/BruksfildServices01/court-scheduler/internal/models"
)

type ReservationGormRepository struct {
	db *gorm.DB
}

func NewReservationGormRepository(db *gorm.DB) *ReservationGormRepository {
	return &ReservationGormRepository{db: db}
}

func (r *ReservationGormRepository) WithinTx(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ReservationGormRepository{db: tx})
	})
}

func (r *ReservationGormRepository) GetCourt(ctx context.Context, id uint) (*models.Court, error) {
	var court models.Court
	if err := r.db.WithContext(ctx).First(&court, id).Error; err != nil {
		return nil, notFound(err, domain.ErrCourtNotFound)
	}
	return &court, nil
}

func (r *ReservationGormRepository) GetCourtForUpdate(ctx context.Context, id uint) (*models.Court, error) {
	var court models.Court
	if err := forUpdate(r.db.WithContext(ctx)).First(&court, id).Error; err != nil {
		return nil, notFound(err, domain.ErrCourtNotFound)
	}
	return &court, nil
}

func (r *ReservationGormRepository) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, notFound(err, domain.ErrUserNotFound)
	}
	return &user, nil
}

func (r *ReservationGormRepository) GetReservation(ctx context.Context, id uint) (*models.Reservation, error) {
	var res models.Reservation
	if err := r.db.WithContext(ctx).
		Preload("Court").
		Preload("Players").
		First(&res, id).Error; err != nil {
		return nil, notFound(err, domain.ErrReservationNotFound)
	}
	return &res, nil
}

func (r *ReservationGormRepository) FindConfirmed(
	ctx context.Context,
	courtID uint,
	slotAt time.Time,
) (*models.Reservation, error) {

	var res models.Reservation
	err := r.db.WithContext(ctx).
		Preload("Players").
		Where("court_id = ? AND slot_at = ? AND status = ?", courtID, slotAt, string(domain.StatusConfirmed)).
		First(&res).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *ReservationGormRepository) CreateReservation(
	ctx context.Context,
	res *models.Reservation,
	player *models.User,
) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(res).Error; err != nil {
		return err
	}
	return r.AddPlayer(ctx, res, player)
}

func (r *ReservationGormRepository) AddPlayer(
	ctx context.Context,
	res *models.Reservation,
	player *models.User,
) error {
	return r.db.WithContext(ctx).
		Model(res).
		Association("Players").
		Append(player)
}

func (r *ReservationGormRepository) RemovePlayer(
	ctx context.Context,
	res *models.Reservation,
	player *models.User,
) error {
	return r.db.WithContext(ctx).
		Model(res).
		Association("Players").
		Delete(player)
}

func (r *ReservationGormRepository) UpdateReservation(ctx context.Context, res *models.Reservation) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(res).Error
}

func (r *ReservationGormRepository) list(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]models.Reservation, error) {
	var out []models.Reservation
	q := r.db.WithContext(ctx).
		Preload("Court").
		Preload("Players").
		Order("slot_at ASC")
	if scope != nil {
		q = scope(q)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ReservationGormRepository) ListByCourt(ctx context.Context, courtID uint) ([]models.Reservation, error) {
	return r.list(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where("court_id = ?", courtID)
	})
}

func (r *ReservationGormRepository) ListByPlayer(ctx context.Context, userID uint) ([]models.Reservation, error) {
	return r.list(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where(
			"id IN (?)",
			r.db.Table("reservation_players").Select("reservation_id").Where("user_id = ?", userID),
		)
	})
}

func (r *ReservationGormRepository) ListAll(ctx context.Context) ([]models.Reservation, error) {
	return r.list(ctx, nil)
}

var _ domain.Repository = (*ReservationGormRepository)(nil)
