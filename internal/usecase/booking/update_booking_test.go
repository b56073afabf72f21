package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/court-scheduler/internal/httperr"
	"github.com/BruksfildServices01/court-scheduler/internal/models"
	"github.com/BruksfildServices01/court-scheduler/internal/testutil"
)

func TestUpdateBooking_SameTimeSucceeds(t *testing.T) {
	f := newFixture(t)
	court := testutil.CreateCourt(t, f.db, "Quadra 1", 50)
	user := testutil.CreateUser(t, f.db, "Ana", "ana@example.com")

	create := NewCreateBooking(f.repo, f.hours, f.clock, nil, nil)
	b, err := create.Execute(f.ctx, CreateBookingInput{
		CourtID: court.ID, UserID: user.ID, Date: tomorrow, StartTime: "14:00", EndTime: "16:00",
	})
	require.NoError(t, err)

	uc := NewUpdateBooking(f.repo, f.hours, f.clock, nil, nil)
	updated, err := uc.Execute(f.ctx, UpdateBookingInput{
		ID: b.ID, Date: tomorrow, StartTime: "14:00", EndTime: "16:00", Notes: "trocar bolas",
	})
	require.NoError(t, err)

	assert.Equal(t, "trocar bolas", updated.Notes)
	assert.Equal(t, 100.0, updated.TotalPrice)
}

func TestUpdateBooking_PriceRecomputedOnlyWhenTimesChange(t *testing.T) {
	f := newFixture(t)
	court := testutil.CreateCourt(t, f.db, "Quadra 1", 50)
	user := testutil.CreateUser(t, f.db, "Ana", "ana@example.com")

	create := NewCreateBooking(f.repo, f.hours, f.clock, nil, nil)
	b, err := create.Execute(f.ctx, CreateBookingInput{
		CourtID: court.ID, UserID: user.ID, Date: tomorrow, StartTime: "14:00", EndTime: "16:00",
	})
	require.NoError(t, err)

	// reajuste de preço não é retroativo
	require.NoError(t, f.db.Model(&models.Court{}).Where("id = ?", court.ID).Update("price_per_hour", 70).Error)

	uc := NewUpdateBooking(f.repo, f.hours, f.clock, nil, nil)

	sameTimes, err := uc.Execute(f.ctx, UpdateBookingInput{
		ID: b.ID, Date: "2026-03-12", StartTime: "14:00", EndTime: "16:00",
	})
	require.NoError(t, err)
	assert.Equal(t, 100.0, sameTimes.TotalPrice)
	assert.Equal(t, "2026-03-12", sameTimes.BookingDate)

	longer, err := uc.Execute(f.ctx, UpdateBookingInput{
		ID: b.ID, Date: "2026-03-12", StartTime: "14:00", EndTime: "17:00",
	})
	require.NoError(t, err)
	assert.Equal(t, 210.0, longer.TotalPrice)
}

func TestUpdateBooking_ConflictWithOtherBooking(t *testing.T) {
	f := newFixture(t)
	court := testutil.CreateCourt(t, f.db, "Quadra 1", 50)
	user := testutil.CreateUser(t, f.db, "Ana", "ana@example.com")

	mine := testutil.CreateBooking(t, f.db, court.ID, user.ID, tomorrow, "08:00", "09:00", "PENDING")
	testutil.CreateBooking(t, f.db, court.ID, user.ID, tomorrow, "12:00", "13:00", "CONFIRMED")

	uc := NewUpdateBooking(f.repo, f.hours, f.clock, nil, nil)
	_, err := uc.Execute(f.ctx, UpdateBookingInput{
		ID: mine.ID, Date: tomorrow, StartTime: "11:30", EndTime: "12:30",
	})

	assert.True(t, httperr.IsBusiness(err, "scheduling_conflict"))
}

func TestUpdateBooking_NotFound(t *testing.T) {
	f := newFixture(t)

	uc := NewUpdateBooking(f.repo, f.hours, f.clock, nil, nil)
	_, err := uc.Execute(f.ctx, UpdateBookingInput{
		ID: 42, Date: tomorrow, StartTime: "10:00", EndTime: "11:00",
	})

	assert.True(t, httperr.IsBusiness(err, "booking_not_found"))
}
