package normalize

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/go-github/v57/github"

	"github.com/lzjever/webhook-events/internal/core"
)

// Event-type tags carried in the X-GitHub-Event header.
const (
	EventPush        = "push"
	EventPullRequest = "pull_request"
)

// Pull request actions that produce a record.
const (
	prActionOpened = "opened"
	prActionClosed = "closed"
)

// Normalizer maps raw webhook deliveries onto core.Event.
type Normalizer struct {
	now func() time.Time
}

type Option func(*Normalizer)

// WithClock overrides the clock used for MERGE timestamps.
func WithClock(now func() time.Time) Option {
	return func(n *Normalizer) { n.now = now }
}

func New(opts ...Option) *Normalizer {
	n := &Normalizer{now: func() time.Time { return time.Now().UTC() }}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize turns a delivery into a canonical event. Rejections are returned
// as *core.AppError.
func (n *Normalizer) Normalize(eventType string, payload []byte) (core.Event, error) {
	if !isPresent(payload) {
		return core.Event{}, core.NewAppError(core.ErrInvalidPayload, "Invalid JSON payload")
	}

	switch eventType {
	case EventPush:
		return n.normalizePush(payload)
	case EventPullRequest:
		return n.normalizePullRequest(payload)
	default:
		return core.Event{}, core.NewAppError(core.ErrUnsupportedEventType, "Unsupported event type")
	}
}

func (n *Normalizer) normalizePush(payload []byte) (core.Event, error) {
	var e github.PushEvent
	if err := json.Unmarshal(payload, &e); err != nil {
		return core.Event{}, malformed("decode push event: %v", err)
	}

	hc := e.GetHeadCommit()
	if hc == nil {
		return core.Event{}, malformed("head_commit is missing")
	}
	if hc.Timestamp == nil {
		return core.Event{}, malformed("head_commit.timestamp is missing")
	}
	var raw struct {
		HeadCommit struct {
			Timestamp json.RawMessage `json:"timestamp"`
		} `json:"head_commit"`
	}
	if err := json.Unmarshal(payload, &raw); err != nil {
		return core.Event{}, malformed("decode push event: %v", err)
	}
	if err := isoTimestamp("head_commit.timestamp", raw.HeadCommit.Timestamp); err != nil {
		return core.Event{}, err
	}
	id, err := required("head_commit.id", hc.GetID())
	if err != nil {
		return core.Event{}, err
	}
	author, err := required("pusher.name", e.GetPusher().GetName())
	if err != nil {
		return core.Event{}, err
	}
	ref, err := required("ref", e.GetRef())
	if err != nil {
		return core.Event{}, err
	}
	branch, err := required("ref", BranchFromRef(ref))
	if err != nil {
		return core.Event{}, err
	}

	ts := hc.Timestamp.Time
	return core.Event{
		RequestID:  id,
		Author:     author,
		Action:     core.ActionPush,
		FromBranch: branch,
		ToBranch:   branch,
		Timestamp:  FormatTimestamp(ts),
		OccurredAt: ts,
	}, nil
}

func (n *Normalizer) normalizePullRequest(payload []byte) (core.Event, error) {
	var e github.PullRequestEvent
	if err := json.Unmarshal(payload, &e); err != nil {
		return core.Event{}, malformed("decode pull_request event: %v", err)
	}
	if e.Action == nil {
		return core.Event{}, malformed("action is missing")
	}

	switch e.GetAction() {
	case prActionOpened:
		pr := e.GetPullRequest()
		if pr == nil {
			return core.Event{}, malformed("pull_request is missing")
		}
		if pr.CreatedAt == nil {
			return core.Event{}, malformed("pull_request.created_at is missing")
		}
		var raw struct {
			PullRequest struct {
				CreatedAt json.RawMessage `json:"created_at"`
			} `json:"pull_request"`
		}
		if err := json.Unmarshal(payload, &raw); err != nil {
			return core.Event{}, malformed("decode pull_request event: %v", err)
		}
		if err := isoTimestamp("pull_request.created_at", raw.PullRequest.CreatedAt); err != nil {
			return core.Event{}, err
		}
		ev, err := pullRequestFields(pr)
		if err != nil {
			return core.Event{}, err
		}
		ts := pr.CreatedAt.Time
		ev.Action = core.ActionPullRequest
		ev.Timestamp = FormatTimestamp(ts)
		ev.OccurredAt = ts
		return ev, nil

	case prActionClosed:
		pr := e.GetPullRequest()
		if pr == nil {
			return core.Event{}, malformed("pull_request is missing")
		}
		if pr.Merged == nil {
			return core.Event{}, malformed("pull_request.merged is missing")
		}
		if !pr.GetMerged() {
			return core.Event{}, unsupportedAction()
		}
		ev, err := pullRequestFields(pr)
		if err != nil {
			return core.Event{}, err
		}
		ts := n.now()
		ev.Action = core.ActionMerge
		ev.Timestamp = FormatTimestamp(ts)
		ev.OccurredAt = ts
		return ev, nil
	}

	return core.Event{}, unsupportedAction()
}

// pullRequestFields extracts the fields shared by opened and merged records.
func pullRequestFields(pr *github.PullRequest) (core.Event, error) {
	if pr.ID == nil {
		return core.Event{}, malformed("pull_request.id is missing")
	}
	author, err := required("pull_request.user.login", pr.GetUser().GetLogin())
	if err != nil {
		return core.Event{}, err
	}
	from, err := required("pull_request.head.ref", pr.GetHead().GetRef())
	if err != nil {
		return core.Event{}, err
	}
	to, err := required("pull_request.base.ref", pr.GetBase().GetRef())
	if err != nil {
		return core.Event{}, err
	}
	return core.Event{
		RequestID:  strconv.FormatInt(pr.GetID(), 10),
		Author:     author,
		FromBranch: from,
		ToBranch:   to,
	}, nil
}

// BranchFromRef returns the last path segment of a git ref,
// "refs/heads/main" -> "main".
func BranchFromRef(ref string) string {
	return ref[strings.LastIndex(ref, "/")+1:]
}

// isPresent reports whether the body parses as JSON and is not an empty or
// zero value (null, false, 0, "", {} or []).
func isPresent(payload []byte) bool {
	var v any
	if err := json.Unmarshal(payload, &v); err != nil {
		return false
	}
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case float64:
		return x != 0
	case string:
		return x != ""
	case map[string]any:
		return len(x) > 0
	case []any:
		return len(x) > 0
	}
	return true
}

// isoTimestamp requires an RFC 3339 string. github.Timestamp also decodes
// unix seconds, which are not accepted here.
func isoTimestamp(field string, raw json.RawMessage) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return malformed("%s is not a string", field)
	}
	if _, err := time.Parse(time.RFC3339, s); err != nil {
		return malformed("%s is not an ISO-8601 timestamp", field)
	}
	return nil
}

func required(field, value string) (string, error) {
	if value == "" {
		return "", malformed("%s is missing", field)
	}
	return value, nil
}

func malformed(format string, args ...any) *core.AppError {
	return core.NewAppError(core.ErrMalformedPayload, "Malformed payload: "+fmt.Sprintf(format, args...))
}

func unsupportedAction() *core.AppError {
	return core.NewAppError(core.ErrUnsupportedAction, "Unsupported action")
}
