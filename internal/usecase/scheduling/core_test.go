package scheduling

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookingDomain "github.com/BruksfildServices01/court-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/court-scheduler/internal/httperr"
	infraRepo "github.com/BruksfildServices01/court-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/court-scheduler/internal/testutil"
	"github.com/BruksfildServices01/court-scheduler/internal/timezone"
	ucBooking "github.com/BruksfildServices01/court-scheduler/internal/usecase/booking"
	ucReservation "github.com/BruksfildServices01/court-scheduler/internal/usecase/reservation"
)

var testNow = time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

func TestExclusiveCore(t *testing.T) {
	gdb := testutil.NewDB(t)
	ctx := context.Background()
	court := testutil.CreateCourt(t, gdb, "Quadra 1", 50)
	ana := testutil.CreateUser(t, gdb, "Ana", "ana@example.com")
	bia := testutil.CreateUser(t, gdb, "Bia", "bia@example.com")

	repo := infraRepo.NewBookingGormRepository(gdb)
	hours := bookingDomain.DefaultBusinessHours()
	clock := timezone.Fixed(testNow)

	core := NewExclusive(
		repo, hours, clock,
		ucBooking.NewCreateBooking(repo, hours, clock, nil, nil),
		ucBooking.NewChangeBookingStatus(repo, clock, nil, nil),
	)
	assert.Equal(t, ModeExclusive, core.Mode())

	req := Request{CourtID: court.ID, UserID: ana.ID, Date: "2026-03-11", StartTime: "10:00", EndTime: "12:00"}

	free, err := core.Check(ctx, req)
	require.NoError(t, err)
	assert.True(t, free)

	out, err := core.Book(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 100.0, out.TotalPrice)
	assert.Equal(t, "PENDING", out.Status)

	free, err = core.Check(ctx, req)
	require.NoError(t, err)
	assert.False(t, free)

	req.UserID = bia.ID
	_, err = core.Book(ctx, req)
	assert.True(t, httperr.IsBusiness(err, "scheduling_conflict"))

	require.NoError(t, core.Cancel(ctx, out.ID, &ana.ID))

	_, err = core.Book(ctx, req)
	assert.NoError(t, err)
}

func TestSharedCore(t *testing.T) {
	gdb := testutil.NewDB(t)
	ctx := context.Background()
	court := testutil.CreateCourt(t, gdb, "Saibro", 60)
	ana := testutil.CreateUser(t, gdb, "Ana", "ana@example.com")
	bia := testutil.CreateUser(t, gdb, "Bia", "bia@example.com")
	caio := testutil.CreateUser(t, gdb, "Caio", "caio@example.com")

	repo := infraRepo.NewReservationGormRepository(gdb)
	loc := timezone.Location("America/Sao_Paulo")

	core := NewShared(
		loc, time.Hour,
		ucReservation.NewReserveSlot(repo, 2, nil),
		ucReservation.NewCancelReservation(repo, nil),
		ucReservation.NewListReservations(repo, 2),
	)
	assert.Equal(t, ModeShared, core.Mode())

	req := Request{CourtID: court.ID, Date: "2026-03-11", StartTime: "18:00"}

	req.UserID = ana.ID
	first, err := core.Book(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "CONFIRMADA", first.Status)
	assert.Equal(t, "18:00", first.StartTime)
	assert.Equal(t, "19:00", first.EndTime)
	assert.Equal(t, "2026-03-11", first.Date)

	req.UserID = bia.ID
	second, err := core.Book(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 2, second.Participants)

	free, err := core.Check(ctx, req)
	require.NoError(t, err)
	assert.False(t, free)

	req.UserID = caio.ID
	_, err = core.Book(ctx, req)
	assert.True(t, httperr.IsBusiness(err, "capacity_exceeded"))

	_, err = core.Book(ctx, Request{CourtID: court.ID, UserID: caio.ID, Date: "2026-03-11", StartTime: "6pm"})
	assert.True(t, httperr.IsBusiness(err, "invalid_time"))
}
