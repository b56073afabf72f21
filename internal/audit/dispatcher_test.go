package audit

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/court-scheduler/internal/events"
	"github.com/BruksfildServices01/court-scheduler/internal/models"
	"github.com/BruksfildServices01/court-scheduler/internal/testutil"
)

type recordingPublisher struct {
	mu   sync.Mutex
	msgs []events.Message
}

func (p *recordingPublisher) Publish(_ context.Context, msg events.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.msgs = append(p.msgs, msg)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func TestDispatcher_PersistsAndPublishes(t *testing.T) {
	gdb := testutil.NewDB(t)
	pub := &recordingPublisher{}

	d := NewDispatcher(New(gdb), pub)

	userID, bookingID := uint(3), uint(9)
	d.Dispatch(Event{
		UserID:   &userID,
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: &bookingID,
		Metadata: map[string]any{"court_id": 1},
	})
	d.Close()

	var logs []models.AuditLog
	require.NoError(t, gdb.Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, "booking_created", logs[0].Action)
	assert.JSONEq(t, `{"court_id":1}`, logs[0].Metadata)

	require.Len(t, pub.msgs, 1)
	assert.Equal(t, "booking.created", pub.msgs[0].Type)
	assert.Equal(t, &bookingID, pub.msgs[0].EntityID)
}

func TestDispatcher_NilIsNoop(t *testing.T) {
	var d *Dispatcher

	assert.NotPanics(t, func() {
		d.Dispatch(Event{Action: "booking_created"})
		d.Close()
	})
}
