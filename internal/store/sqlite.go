package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/lzjever/webhook-events/internal/core"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS webhook_events (
	seq         INTEGER PRIMARY KEY AUTOINCREMENT,
	id          TEXT NOT NULL UNIQUE,
	request_id  TEXT NOT NULL,
	author      TEXT NOT NULL,
	action      TEXT NOT NULL,
	from_branch TEXT NOT NULL,
	to_branch   TEXT NOT NULL,
	"timestamp" TEXT NOT NULL,
	occurred_at INTEGER NOT NULL,
	received_at TEXT NOT NULL DEFAULT (datetime('now'))
)`

// TEXT columns use the BINARY collation, so "timestamp" sorts byte-wise.
var sqliteOrderBy = map[Order]string{
	OrderTimestamp:  `"timestamp" DESC, seq DESC`,
	OrderOccurredAt: `occurred_at DESC, seq DESC`,
}

// SQLite stores events in a local database file.
type SQLite struct {
	db    *sql.DB
	order Order
}

// OpenSQLite opens (creating if needed) the database at path.
func OpenSQLite(ctx context.Context, path string, order Order) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	s := NewSQLiteWithDB(db, order)
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return s, nil
}

// NewSQLiteWithDB wraps an existing connection. The schema is not created.
func NewSQLiteWithDB(db *sql.DB, order Order) *SQLite {
	if _, ok := sqliteOrderBy[order]; !ok {
		order = OrderTimestamp
	}
	return &SQLite{db: db, order: order}
}

func (s *SQLite) Write(ctx context.Context, ev core.Event) (string, error) {
	defer observeOp("write", time.Now())

	id := core.NewID()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO webhook_events
		 (id, request_id, author, action, from_branch, to_branch, "timestamp", occurred_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, ev.RequestID, ev.Author, string(ev.Action), ev.FromBranch, ev.ToBranch, ev.Timestamp, ev.OccurredAt.UnixNano(),
	)
	if err != nil {
		return "", fmt.Errorf("insert event: %w", err)
	}
	return id, nil
}

func (s *SQLite) ListRecent(ctx context.Context, limit int) ([]core.StoredEvent, error) {
	defer observeOp("list_recent", time.Now())

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, request_id, author, action, from_branch, to_branch, "timestamp", occurred_at
		 FROM webhook_events
		 ORDER BY `+sqliteOrderBy[s.order]+`
		 LIMIT ?`, normalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var events []core.StoredEvent
	for rows.Next() {
		var (
			se       core.StoredEvent
			action   string
			occurred int64
		)
		if err := rows.Scan(&se.ID, &se.RequestID, &se.Author, &action, &se.FromBranch, &se.ToBranch, &se.Timestamp, &occurred); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		se.Action = core.Action(action)
		se.OccurredAt = time.Unix(0, occurred).UTC()
		events = append(events, se)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return events, nil
}

func (s *SQLite) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLite) Close() {
	s.db.Close()
}
