// Package publish fans stored events out to downstream consumers.
package publish

import (
	"context"

	"github.com/lzjever/webhook-events/internal/core"
)

// Publisher forwards a stored event. Failures never affect ingestion.
type Publisher interface {
	Publish(ctx context.Context, ev core.StoredEvent) error
	Close()
}

// Nop discards every event.
type Nop struct{}

func (Nop) Publish(context.Context, core.StoredEvent) error { return nil }
func (Nop) Close()                                          {}
