package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/lzjever/webhook-events/internal/core"
)

// DefaultLimit is the number of records ListRecent returns when asked for
// a non-positive limit.
const DefaultLimit = 10

// Order selects the sort key for ListRecent.
type Order string

const (
	// OrderTimestamp sorts on the display string, byte-wise descending.
	OrderTimestamp Order = "timestamp"
	// OrderOccurredAt sorts chronologically on the stored instant.
	OrderOccurredAt Order = "occurred_at"
)

func ParseOrder(s string) (Order, error) {
	switch Order(s) {
	case "", OrderTimestamp:
		return OrderTimestamp, nil
	case OrderOccurredAt:
		return OrderOccurredAt, nil
	}
	return "", fmt.Errorf("unknown order %q", s)
}

// Gateway is the persistence boundary for canonical events.
// Implementations are safe for concurrent use.
type Gateway interface {
	// Write inserts ev and returns its storage id.
	Write(ctx context.Context, ev core.Event) (string, error)
	// ListRecent returns up to limit events, newest first.
	ListRecent(ctx context.Context, limit int) ([]core.StoredEvent, error)
	Ping(ctx context.Context) error
	Close()
}

// Open returns the gateway for dsn:
//
//	postgres://... or postgresql://...  pgx pool
//	sqlite://path or file:path          SQLite
//	memory://                           in-process
func Open(ctx context.Context, dsn string, order Order) (Gateway, error) {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		pool, err := NewPool(ctx, dsn)
		if err != nil {
			return nil, err
		}
		pg := NewPostgres(pool, order)
		if err := pg.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, err
		}
		return pg, nil
	case strings.HasPrefix(dsn, "sqlite://"):
		return OpenSQLite(ctx, strings.TrimPrefix(dsn, "sqlite://"), order)
	case strings.HasPrefix(dsn, "file:"):
		return OpenSQLite(ctx, dsn, order)
	case strings.HasPrefix(dsn, "memory://"):
		return NewMemory(order), nil
	}
	return nil, fmt.Errorf("unsupported dsn scheme: %q", dsn)
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	return limit
}
