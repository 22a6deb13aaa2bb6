package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/lzjever/webhook-events/internal/core"
)

// Memory keeps events in process. It is used in tests and for local runs.
type Memory struct {
	mu     sync.RWMutex
	events []core.StoredEvent
	order  Order
	// Err, when set, is returned by every operation.
	Err error
}

func NewMemory(order Order) *Memory {
	if order != OrderOccurredAt {
		order = OrderTimestamp
	}
	return &Memory{order: order}
}

func (m *Memory) Write(ctx context.Context, ev core.Event) (string, error) {
	defer observeOp("write", time.Now())

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return "", m.Err
	}
	se := core.StoredEvent{ID: core.NewID(), Event: ev}
	m.events = append(m.events, se)
	return se.ID, nil
}

func (m *Memory) ListRecent(ctx context.Context, limit int) ([]core.StoredEvent, error) {
	defer observeOp("list_recent", time.Now())

	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.Err != nil {
		return nil, m.Err
	}

	// Newest insert first, so the stable sort breaks ties the same way the
	// SQL backends do.
	out := make([]core.StoredEvent, len(m.events))
	for i, se := range m.events {
		out[len(out)-1-i] = se
	}
	sort.SliceStable(out, func(i, j int) bool {
		if m.order == OrderOccurredAt {
			return out[i].OccurredAt.After(out[j].OccurredAt)
		}
		return out[i].Timestamp > out[j].Timestamp
	})

	if limit = normalizeLimit(limit); len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Len returns the number of stored events.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.events)
}

func (m *Memory) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.Err
}

func (m *Memory) Close() {}

