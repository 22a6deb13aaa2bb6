package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lzjever/webhook-events/internal/observability"
)

func TestMemoryGateway(t *testing.T) {
	runGatewaySuite(t, func(t *testing.T, order Order) Gateway {
		return NewMemory(order)
	})
}

func TestMemoryErr(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(OrderTimestamp)
	m.Err = errors.New("down")

	_, err := m.Write(ctx, testEvent("a", "5th March 2024 - 10:15 AM UTC", time.Now()))
	assert.Error(t, err)
	_, err = m.ListRecent(ctx, 10)
	assert.Error(t, err)
	assert.Error(t, m.Ping(ctx))
	assert.Equal(t, 0, m.Len())
}

func TestParseOrder(t *testing.T) {
	o, err := ParseOrder("")
	assert.NoError(t, err)
	assert.Equal(t, OrderTimestamp, o)

	o, err = ParseOrder("occurred_at")
	assert.NoError(t, err)
	assert.Equal(t, OrderOccurredAt, o)

	_, err = ParseOrder("received_at")
	assert.Error(t, err)
}

func TestOpenMemoryAndUnknownScheme(t *testing.T) {
	gw, err := Open(context.Background(), "memory://", OrderTimestamp)
	assert.NoError(t, err)
	assert.IsType(t, &Memory{}, gw)

	_, err = Open(context.Background(), "mongodb://localhost:27017", OrderTimestamp)
	assert.Error(t, err)
}

func storeOpCount(t *testing.T, op string) uint64 {
	t.Helper()
	m, ok := observability.StoreOpDuration.WithLabelValues(op).(prometheus.Metric)
	require.True(t, ok)
	var out dto.Metric
	require.NoError(t, m.Write(&out))
	return out.GetHistogram().GetSampleCount()
}

func TestMemoryObservesStoreOps(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(OrderTimestamp)
	writes := storeOpCount(t, "write")
	lists := storeOpCount(t, "list_recent")

	_, err := m.Write(ctx, testEvent("a", "5th March 2024 - 10:15 AM UTC", time.Now()))
	require.NoError(t, err)
	_, err = m.ListRecent(ctx, 10)
	require.NoError(t, err)

	assert.Equal(t, writes+1, storeOpCount(t, "write"))
	assert.Equal(t, lists+1, storeOpCount(t, "list_recent"))
}
