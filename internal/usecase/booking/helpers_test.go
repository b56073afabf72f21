package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/court-scheduler/internal/domain/booking"
	infraRepo "github.com/BruksfildServices01/court-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/court-scheduler/internal/testutil"
	"github.com/BruksfildServices01/court-scheduler/internal/timezone"
)

// hoje nos testes: 10/03/2026 às 08:00
var testNow = time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

const tomorrow = "2026-03-11"

type fixture struct {
	db    *gorm.DB
	repo  *infraRepo.BookingGormRepository
	clock timezone.Clock
	hours domain.BusinessHours
	ctx   context.Context
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	gdb := testutil.NewDB(t)
	return &fixture{
		db:    gdb,
		repo:  infraRepo.NewBookingGormRepository(gdb),
		clock: timezone.Fixed(testNow),
		hours: domain.DefaultBusinessHours(),
		ctx:   context.Background(),
	}
}

// MockAvailabilityCache segue o padrão testify/mock.
type MockAvailabilityCache struct {
	mock.Mock
}

func (m *MockAvailabilityCache) Get(ctx context.Context, courtID uint, date string) ([]domain.TimeSlot, int64, bool) {
	args := m.Called(ctx, courtID, date)
	slots, _ := args.Get(0).([]domain.TimeSlot)
	return slots, args.Get(1).(int64), args.Bool(2)
}

func (m *MockAvailabilityCache) Set(ctx context.Context, courtID uint, date string, gen int64, slots []domain.TimeSlot) {
	m.Called(ctx, courtID, date, gen, slots)
}

func (m *MockAvailabilityCache) Invalidate(ctx context.Context, courtID uint, dates ...string) {
	m.Called(ctx, courtID, dates)
}
