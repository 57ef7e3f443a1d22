package events_test

import (
	"encoding/json"
	"testing"
	"time"

	"hawkerflow/internal/events"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var occurredAt = time.Date(2025, 3, 27, 12, 0, 0, 0, time.UTC)

func orderCreated() events.OrderCreated {
	return events.OrderCreated{
		OrderID:      "O1",
		HawkerCenter: "Maxwell",
		UserID:       "u1",
		Contact:      "+6590000000",
		Stalls: map[string][]events.Dish{
			"S1": {
				{Name: "D1", Quantity: 2, WaitTime: 5, Price: decimal.NewFromInt(3)},
				{Name: "D2", Quantity: 1, WaitTime: 10, Price: decimal.RequireFromString("7.50")},
			},
		},
	}
}

func TestEnvelope_RoundTrip(t *testing.T) {
	env, err := events.New(events.TypeOrderCreated, "order-intake", "O1", occurredAt, orderCreated())
	require.NoError(t, err)

	body, err := env.Marshal()
	require.NoError(t, err)

	parsed, err := events.Parse(body)
	require.NoError(t, err)
	assert.Equal(t, env.ID, parsed.ID)
	assert.Equal(t, events.TypeOrderCreated, parsed.Type)
	assert.Equal(t, events.Version, parsed.Version)
	assert.Equal(t, "O1", parsed.CorrelationID)
	assert.True(t, occurredAt.Equal(parsed.OccurredAt))

	var payload events.OrderCreated
	require.NoError(t, parsed.Decode(&payload))
	assert.Equal(t, "Maxwell", payload.HawkerCenter)
	require.Len(t, payload.Stalls["S1"], 2)
	assert.True(t, decimal.RequireFromString("7.5").Equal(payload.Stalls["S1"][1].Price))
}

func TestEnvelope_Marshal_RejectsInvalidPayload(t *testing.T) {
	bad := orderCreated()
	bad.Stalls["S1"][0].Quantity = 0

	env, err := events.New(events.TypeOrderCreated, "order-intake", "O1", occurredAt, bad)
	require.NoError(t, err)

	_, err = env.Marshal()

	require.ErrorIs(t, err, events.ErrInvalidMessage)
	assert.Contains(t, err.Error(), "quantity")
}

func TestParse_Rejects(t *testing.T) {
	valid := func() map[string]any {
		return map[string]any{
			"id":            "e1",
			"type":          "order.notification",
			"version":       1,
			"occurredAt":    "2025-03-27T12:00:00Z",
			"producer":      "fulfillment",
			"correlationId": "O1",
			"payload": map[string]any{
				"orderId": "O1", "userId": "u1", "contact": "+65", "status": "completed",
			},
		}
	}
	encode := func(t *testing.T, m map[string]any) []byte {
		t.Helper()
		b, err := json.Marshal(m)
		require.NoError(t, err)
		return b
	}

	t.Run("valid notification is accepted", func(t *testing.T) {
		env, err := events.Parse(encode(t, valid()))

		require.NoError(t, err)
		var n events.Notification
		require.NoError(t, env.Decode(&n))
		assert.Equal(t, events.StatusCompleted, n.Status)
	})

	tests := []struct {
		name   string
		mutate func(m map[string]any)
	}{
		{name: "unknown type", mutate: func(m map[string]any) { m["type"] = "order.refunded" }},
		{name: "missing id", mutate: func(m map[string]any) { delete(m, "id") }},
		{name: "future version", mutate: func(m map[string]any) { m["version"] = 2 }},
		{name: "bad timestamp", mutate: func(m map[string]any) { m["occurredAt"] = "yesterday" }},
		{name: "bad status", mutate: func(m map[string]any) {
			m["payload"].(map[string]any)["status"] = "lost"
		}},
		{name: "missing contact", mutate: func(m map[string]any) {
			delete(m["payload"].(map[string]any), "contact")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := valid()
			tt.mutate(m)

			_, err := events.Parse(encode(t, m))

			require.ErrorIs(t, err, events.ErrInvalidMessage)
		})
	}

	t.Run("not json", func(t *testing.T) {
		_, err := events.Parse([]byte("{not json"))

		require.ErrorIs(t, err, events.ErrInvalidMessage)
	})

	t.Run("empty body", func(t *testing.T) {
		_, err := events.Parse(nil)

		require.ErrorIs(t, err, events.ErrInvalidMessage)
	})
}

func TestActivityPayload(t *testing.T) {
	activity := events.Activity{
		"D1": {
			HawkerCenter:   "Maxwell",
			StallName:      "S1",
			Quantity:       2,
			OrderStartTime: occurredAt,
			OrderEndTime:   occurredAt.Add(5 * time.Minute),
		},
	}

	env, err := events.New(events.TypeActivity, "fulfillment", "O1", occurredAt, activity)
	require.NoError(t, err)
	body, err := env.Marshal()
	require.NoError(t, err)

	parsed, err := events.Parse(body)
	require.NoError(t, err)

	var decoded events.Activity
	require.NoError(t, parsed.Decode(&decoded))
	assert.Equal(t, 2, decoded["D1"].Quantity)
	assert.True(t, decoded["D1"].OrderEndTime.Equal(occurredAt.Add(5*time.Minute)))
}

func TestTopology(t *testing.T) {
	assert.Equal(t, "O1.queue", events.QueueKey("O1"))
	assert.Equal(t, "O1.notif", events.NotifKey("O1"))
	assert.Equal(t, "O1.log", events.LogKey("O1"))
	assert.ElementsMatch(t, []string{events.OrderExchange, events.QueueExchange}, events.Exchanges())

	queues := make(map[string]string)
	for _, b := range events.Bindings() {
		queues[b.Queue] = b.Exchange + " " + b.Pattern
	}
	assert.Equal(t, map[string]string{
		"O_queue": "order_exchange *.queue",
		"O_notif": "order_exchange *.notif",
		"Q_notif": "queue_exchange *.notif",
		"Q_log":   "queue_exchange *.log",
	}, queues)
}
