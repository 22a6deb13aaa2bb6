package core

import (
	"time"

	"github.com/google/uuid"
)

type Action string

const (
	ActionPush        Action = "PUSH"
	ActionPullRequest Action = "PULL_REQUEST"
	ActionMerge       Action = "MERGE"
)

// Valid reports whether a is one of the three normalized actions.
func (a Action) Valid() bool {
	switch a {
	case ActionPush, ActionPullRequest, ActionMerge:
		return true
	}
	return false
}

// Event is the canonical record produced from a webhook delivery.
type Event struct {
	RequestID  string `json:"request_id"`
	Author     string `json:"author"`
	Action     Action `json:"action"`
	FromBranch string `json:"from_branch"`
	ToBranch   string `json:"to_branch"`
	// Timestamp is the display form, e.g. "5th March 2024 - 10:15 AM UTC".
	Timestamp string `json:"timestamp"`
	// OccurredAt is the instant Timestamp was rendered from.
	OccurredAt time.Time `json:"-"`
}

// StoredEvent is an Event together with its storage-assigned id.
type StoredEvent struct {
	ID string `json:"_id"`
	Event
}

// NewID returns a time-ordered storage id (UUID v7, v4 if v7 fails).
func NewID() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	return uuid.New().String()
}
