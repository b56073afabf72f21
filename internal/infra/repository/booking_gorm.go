package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/court-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/court-scheduler/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

func (r *BookingGormRepository) WithinTx(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&BookingGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Court / User
// --------------------------------------------------

func (r *BookingGormRepository) GetCourt(
	ctx context.Context,
	id uint,
) (*models.Court, error) {

	var court models.Court
	if err := r.db.WithContext(ctx).First(&court, id).Error; err != nil {
		return nil, notFound(err, domain.ErrCourtNotFound)
	}
	return &court, nil
}

func (r *BookingGormRepository) GetCourtForUpdate(
	ctx context.Context,
	id uint,
) (*models.Court, error) {

	var court models.Court
	if err := forUpdate(r.db.WithContext(ctx)).First(&court, id).Error; err != nil {
		return nil, notFound(err, domain.ErrCourtNotFound)
	}
	return &court, nil
}

func (r *BookingGormRepository) GetUser(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, notFound(err, domain.ErrUserNotFound)
	}
	return &user, nil
}

// --------------------------------------------------
// Booking (read)
// --------------------------------------------------

func (r *BookingGormRepository) GetBooking(
	ctx context.Context,
	id uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Court").
		Preload("User").
		First(&b, id).Error; err != nil {
		return nil, notFound(err, domain.ErrBookingNotFound)
	}
	return &b, nil
}

func (r *BookingGormRepository) ListBookings(
	ctx context.Context,
	f domain.Filter,
) ([]models.Booking, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Preload("Court").
		Preload("User")

	if f.UserID != nil {
		q = q.Where("user_id = ?", *f.UserID)
	}
	if f.CourtID != nil {
		q = q.Where("court_id = ?", *f.CourtID)
	}
	if f.Date != "" {
		q = q.Where("booking_date = ?", f.Date)
	}
	if f.FromDate != "" {
		q = q.Where("booking_date >= ?", f.FromDate)
	}
	if f.Status != nil {
		q = q.Where("status = ?", string(*f.Status))
	}

	if f.NewestFirst {
		q = q.Order("booking_date DESC").Order("start_time DESC")
	} else {
		q = q.Order("booking_date ASC").Order("start_time ASC")
	}

	var out []models.Booking
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *BookingGormRepository) ListCourtBookingsForDate(
	ctx context.Context,
	courtID uint,
	date string,
) ([]models.Booking, error) {

	var out []models.Booking
	if err := r.db.WithContext(ctx).
		Where("court_id = ? AND booking_date = ?", courtID, date).
		Order("start_time ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// HasConflict usa o mesmo predicado semiaberto de domain.Overlaps.
// HH:MM com zero à esquerda compara corretamente como texto.
func (r *BookingGormRepository) HasConflict(
	ctx context.Context,
	courtID uint,
	date string,
	i domain.Interval,
	excludeID *uint,
) (bool, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("court_id = ? AND booking_date = ?", courtID, date).
		Where("status IN ?", domain.ActiveStatusValues()).
		Where("start_time < ? AND end_time > ?", i.End.String(), i.Start.String())

	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *BookingGormRepository) CountByStatus(
	ctx context.Context,
	status domain.Status,
) (int64, error) {

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("status = ?", string(status)).
		Count(&count).Error
	return count, err
}

// --------------------------------------------------
// Booking (write)
// --------------------------------------------------

func (r *BookingGormRepository) CreateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(b).Error
}

func (r *BookingGormRepository) UpdateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(b).Error
}

func (r *BookingGormRepository) DeleteBooking(
	ctx context.Context,
	id uint,
) error {
	res := r.db.WithContext(ctx).Delete(&models.Booking{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrBookingNotFound
	}
	return nil
}

var _ domain.Repository = (*BookingGormRepository)(nil)
