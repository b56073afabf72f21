package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoutingKey(t *testing.T) {
	assert.Equal(t, "booking.created", RoutingKey("booking_created"))
	assert.Equal(t, "booking.status_changed", RoutingKey("booking_status_changed"))
	assert.Equal(t, "reservation.joined", RoutingKey("reservation_joined"))
}

func TestNewMessage(t *testing.T) {
	id := uint(7)
	now := time.Date(2026, 3, 11, 10, 0, 0, 0, time.FixedZone("BRT", -3*60*60))

	msg := NewMessage("booking_created", "booking", &id, nil, map[string]any{"court_id": 1}, now)

	assert.NotEmpty(t, msg.ID)
	assert.Equal(t, "booking.created", msg.Type)
	assert.Equal(t, time.UTC, msg.OccurredAt.Location())

	raw, err := json.Marshal(msg)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"entity_id":7`)
	assert.NotContains(t, string(raw), "user_id")
}
