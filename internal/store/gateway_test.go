package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lzjever/webhook-events/internal/core"
)

var testTime = time.Date(2024, 3, 5, 10, 15, 0, 0, time.UTC)

func testEvent(requestID, timestamp string, occurred time.Time) core.Event {
	return core.Event{
		RequestID:  requestID,
		Author:     "alice",
		Action:     core.ActionPush,
		FromBranch: "main",
		ToBranch:   "main",
		Timestamp:  timestamp,
		OccurredAt: occurred,
	}
}

// runGatewaySuite exercises the behavior every Gateway must share.
// open must return an empty gateway for the given order.
func runGatewaySuite(t *testing.T, open func(t *testing.T, order Order) Gateway) {
	ctx := context.Background()

	t.Run("WriteThenList", func(t *testing.T) {
		gw := open(t, OrderTimestamp)
		occurred := time.Date(2024, 3, 5, 10, 15, 0, 0, time.UTC)

		id, err := gw.Write(ctx, testEvent("abc123", "5th March 2024 - 10:15 AM UTC", occurred))
		require.NoError(t, err)
		assert.NotEmpty(t, id)

		events, err := gw.ListRecent(ctx, 10)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, id, events[0].ID)
		assert.Equal(t, "abc123", events[0].RequestID)
		assert.Equal(t, core.ActionPush, events[0].Action)
		assert.Equal(t, "5th March 2024 - 10:15 AM UTC", events[0].Timestamp)
		assert.True(t, occurred.Equal(events[0].OccurredAt))
	})

	t.Run("AlwaysInserts", func(t *testing.T) {
		gw := open(t, OrderTimestamp)
		ev := testEvent("same", "1st May 2024 - 09:00 AM UTC", time.Now())

		id1, err := gw.Write(ctx, ev)
		require.NoError(t, err)
		id2, err := gw.Write(ctx, ev)
		require.NoError(t, err)
		assert.NotEqual(t, id1, id2)

		events, err := gw.ListRecent(ctx, 10)
		require.NoError(t, err)
		assert.Len(t, events, 2)
	})

	t.Run("LimitBound", func(t *testing.T) {
		gw := open(t, OrderTimestamp)
		base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		for i := 0; i < 12; i++ {
			ts := base.Add(time.Duration(i) * time.Hour)
			_, err := gw.Write(ctx, testEvent(fmt.Sprintf("c%d", i), fmt.Sprintf("1st January 2024 - %02d:00 AM UTC", i), ts))
			require.NoError(t, err)
		}

		events, err := gw.ListRecent(ctx, 10)
		require.NoError(t, err)
		assert.Len(t, events, 10)

		events, err = gw.ListRecent(ctx, 3)
		require.NoError(t, err)
		assert.Len(t, events, 3)

		events, err = gw.ListRecent(ctx, 0)
		require.NoError(t, err)
		assert.Len(t, events, DefaultLimit)
	})

	// Byte-wise, "9th" > "1st" > "12th", whatever the calendar says.
	t.Run("OrderTimestampIsLiteral", func(t *testing.T) {
		gw := open(t, OrderTimestamp)
		_, err := gw.Write(ctx, testEvent("a", "12th March 2024 - 10:00 AM UTC", time.Date(2024, 3, 12, 10, 0, 0, 0, time.UTC)))
		require.NoError(t, err)
		_, err = gw.Write(ctx, testEvent("b", "9th March 2024 - 10:00 AM UTC", time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC)))
		require.NoError(t, err)
		_, err = gw.Write(ctx, testEvent("c", "1st April 2024 - 10:00 AM UTC", time.Date(2024, 4, 1, 10, 0, 0, 0, time.UTC)))
		require.NoError(t, err)

		events, err := gw.ListRecent(ctx, 10)
		require.NoError(t, err)
		assert.Equal(t, []string{"b", "c", "a"}, requestIDs(events))
	})

	t.Run("OrderOccurredAtIsChronological", func(t *testing.T) {
		gw := open(t, OrderOccurredAt)
		_, err := gw.Write(ctx, testEvent("a", "12th March 2024 - 10:00 AM UTC", time.Date(2024, 3, 12, 10, 0, 0, 0, time.UTC)))
		require.NoError(t, err)
		_, err = gw.Write(ctx, testEvent("b", "9th March 2024 - 10:00 AM UTC", time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC)))
		require.NoError(t, err)
		_, err = gw.Write(ctx, testEvent("c", "1st April 2024 - 10:00 AM UTC", time.Date(2024, 4, 1, 10, 0, 0, 0, time.UTC)))
		require.NoError(t, err)

		events, err := gw.ListRecent(ctx, 10)
		require.NoError(t, err)
		assert.Equal(t, []string{"c", "a", "b"}, requestIDs(events))
	})

	t.Run("TiesNewestFirst", func(t *testing.T) {
		gw := open(t, OrderTimestamp)
		ts := time.Date(2024, 3, 5, 10, 15, 0, 0, time.UTC)
		for _, id := range []string{"first", "second"} {
			_, err := gw.Write(ctx, testEvent(id, "5th March 2024 - 10:15 AM UTC", ts))
			require.NoError(t, err)
		}

		events, err := gw.ListRecent(ctx, 10)
		require.NoError(t, err)
		assert.Equal(t, []string{"second", "first"}, requestIDs(events))
	})

	t.Run("Ping", func(t *testing.T) {
		gw := open(t, OrderTimestamp)
		assert.NoError(t, gw.Ping(ctx))
	})
}

func requestIDs(events []core.StoredEvent) []string {
	ids := make([]string, len(events))
	for i, ev := range events {
		ids[i] = ev.RequestID
	}
	return ids
}
