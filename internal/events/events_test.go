package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMessage(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	event := Event{
		Type:       SettlementRecorded,
		GroupID:    "g-1",
		ExpenseID:  "e-1",
		DebtorID:   "m-bob",
		CreditorID: "m-alice",
		Amount:     20,
		OccurredAt: at,
	}

	msg, err := newMessage(event)
	require.NoError(t, err)

	assert.Equal(t, []byte("g-1"), msg.Key)
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, "event-type", msg.Headers[0].Key)
	assert.Equal(t, "settlement.recorded", string(msg.Headers[0].Value))

	var decoded Event
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, event, decoded)
}

func TestNewMessage_StampsTime(t *testing.T) {
	msg, err := newMessage(Event{Type: GroupArchived, GroupID: "g-2"})
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.NotEqual(t, "0001-01-01T00:00:00Z", decoded["occurred_at"])
	assert.NotContains(t, decoded, "expense_id")
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	assert.NoError(t, p.Publish(context.Background(), Event{Type: SettlementUndone}))
	assert.NoError(t, p.Close())
}
