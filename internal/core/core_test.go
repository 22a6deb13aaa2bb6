package core

import (
	"encoding/json"
	"testing"
	"time"
)

func TestErrorCodeHTTPStatus(t *testing.T) {
	cases := map[ErrorCode]int{
		ErrInvalidPayload:       400,
		ErrUnsupportedEventType: 400,
		ErrUnsupportedAction:    400,
		ErrMalformedPayload:     400,
		ErrStorageUnavailable:   503,
		ErrInternal:             500,
	}
	for code, want := range cases {
		if got := code.HTTPStatus(); got != want {
			t.Errorf("%s: expected %d, got %d", code, want, got)
		}
	}
}

func TestErrorCodeBodyKey(t *testing.T) {
	if got := ErrUnsupportedEventType.BodyKey(); got != "message" {
		t.Errorf("expected message, got %s", got)
	}
	if got := ErrInvalidPayload.BodyKey(); got != "error" {
		t.Errorf("expected error, got %s", got)
	}
}

func TestActionValid(t *testing.T) {
	for _, a := range []Action{ActionPush, ActionPullRequest, ActionMerge} {
		if !a.Valid() {
			t.Errorf("expected %s to be valid", a)
		}
	}
	if Action("CLOSE").Valid() {
		t.Error("expected CLOSE to be invalid")
	}
}

func TestStoredEventJSON(t *testing.T) {
	se := StoredEvent{
		ID: "id-1",
		Event: Event{
			RequestID:  "abc123",
			Author:     "alice",
			Action:     ActionPush,
			FromBranch: "main",
			ToBranch:   "main",
			Timestamp:  "5th March 2024 - 10:15 AM UTC",
			OccurredAt: time.Date(2024, 3, 5, 10, 15, 0, 0, time.UTC),
		},
	}
	b, err := json.Marshal(se)
	if err != nil {
		t.Fatalf("marshal: %s", err)
	}
	want := `{"_id":"id-1","request_id":"abc123","author":"alice","action":"PUSH","from_branch":"main","to_branch":"main","timestamp":"5th March 2024 - 10:15 AM UTC"}`
	if string(b) != want {
		t.Errorf("expected %s, got %s", want, b)
	}
}

func TestNewID(t *testing.T) {
	a, b := NewID(), NewID()
	if a == b {
		t.Fatal("expected distinct ids")
	}
	if len(a) != 36 {
		t.Errorf("expected uuid string, got %q", a)
	}
}
