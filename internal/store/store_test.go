package store

import (
	"context"
	"testing"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestPostgresIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("webhooks"),
		postgres.WithUsername("webhooks"),
		postgres.WithPassword("webhooks_pass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		),
	)
	if err != nil {
		t.Fatalf("failed to start container: %s", err)
	}
	defer pgContainer.Terminate(ctx)

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %s", err)
	}

	pool, err := NewPool(ctx, connStr)
	if err != nil {
		t.Fatalf("failed to connect: %s", err)
	}
	defer pool.Close()

	runGatewaySuite(t, func(t *testing.T, order Order) Gateway {
		if _, err := pool.Exec(ctx, `DROP TABLE IF EXISTS webhook_events`); err != nil {
			t.Fatalf("failed to reset table: %s", err)
		}
		pg := NewPostgres(pool, order)
		if err := pg.EnsureSchema(ctx); err != nil {
			t.Fatalf("failed to create schema: %s", err)
		}
		return pg
	})

	t.Run("OpenByDSN", func(t *testing.T) {
		gw, err := Open(ctx, connStr, OrderTimestamp)
		if err != nil {
			t.Fatalf("failed to open: %s", err)
		}
		defer gw.Close()
		if err := gw.Ping(ctx); err != nil {
			t.Fatalf("ping: %s", err)
		}
	})
}
