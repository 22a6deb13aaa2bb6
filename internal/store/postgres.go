package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lzjever/webhook-events/internal/core"
	"github.com/lzjever/webhook-events/internal/observability"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS webhook_events (
	id          TEXT PRIMARY KEY,
	seq         BIGSERIAL,
	request_id  TEXT NOT NULL,
	author      TEXT NOT NULL,
	action      TEXT NOT NULL,
	from_branch TEXT NOT NULL,
	to_branch   TEXT NOT NULL,
	"timestamp" TEXT NOT NULL,
	occurred_at TIMESTAMPTZ NOT NULL,
	received_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// COLLATE "C" gives the byte-wise ordering the display strings are sorted by.
var postgresOrderBy = map[Order]string{
	OrderTimestamp:  `"timestamp" COLLATE "C" DESC, seq DESC`,
	OrderOccurredAt: `occurred_at DESC, seq DESC`,
}

// Postgres stores events in a single table through a pgx pool.
type Postgres struct {
	pool  *pgxpool.Pool
	order Order
}

func NewPostgres(pool *pgxpool.Pool, order Order) *Postgres {
	if _, ok := postgresOrderBy[order]; !ok {
		order = OrderTimestamp
	}
	return &Postgres{pool: pool, order: order}
}

func (p *Postgres) EnsureSchema(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, postgresSchema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

func (p *Postgres) Write(ctx context.Context, ev core.Event) (string, error) {
	defer observeOp("write", time.Now())

	id := core.NewID()
	_, err := p.pool.Exec(ctx, `
		INSERT INTO webhook_events
			(id, request_id, author, action, from_branch, to_branch, "timestamp", occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		id, ev.RequestID, ev.Author, string(ev.Action), ev.FromBranch, ev.ToBranch, ev.Timestamp, ev.OccurredAt,
	)
	if err != nil {
		return "", fmt.Errorf("insert event: %w", err)
	}
	return id, nil
}

func (p *Postgres) ListRecent(ctx context.Context, limit int) ([]core.StoredEvent, error) {
	defer observeOp("list_recent", time.Now())

	rows, err := p.pool.Query(ctx, `
		SELECT id, request_id, author, action, from_branch, to_branch, "timestamp", occurred_at
		FROM webhook_events
		ORDER BY `+postgresOrderBy[p.order]+`
		LIMIT $1`, normalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}

	events, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (core.StoredEvent, error) {
		var (
			se     core.StoredEvent
			action string
		)
		err := row.Scan(&se.ID, &se.RequestID, &se.Author, &action, &se.FromBranch, &se.ToBranch, &se.Timestamp, &se.OccurredAt)
		se.Action = core.Action(action)
		return se, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan events: %w", err)
	}
	return events, nil
}

func (p *Postgres) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

func (p *Postgres) Close() {
	p.pool.Close()
}

func observeOp(op string, start time.Time) {
	observability.StoreOpDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}
