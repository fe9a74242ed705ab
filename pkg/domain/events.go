package domain

import (
	"context"
	"errors"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventActionStart EventType = "action_start"
	EventActionDone  EventType = "action_done"
	EventResolve     EventType = "resolve"
	EventSessionEnd  EventType = "session_end"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	SessionID string    `json:"session_id"`
}

// ActionEvent represents the invocation of a menu leaf.
type ActionEvent struct {
	EventBase
	Label    string        `json:"label"`
	Path     []string      `json:"path"`
	Duration time.Duration `json:"duration,omitempty"`
	Err      error         `json:"-"`
}

// Outcome returns "ok", "input_error", "quit" or "error".
func (e *ActionEvent) Outcome() string {
	switch {
	case e.Err == nil:
		return "ok"
	case IsInputError(e.Err):
		return "input_error"
	case errors.Is(e.Err, ErrQuit):
		return "quit"
	default:
		return "error"
	}
}

// ResolveEvent describes a finished entity resolution.
type ResolveEvent struct {
	EventBase
	Noun       string `json:"noun"`
	Path       string `json:"path"` // "empty", "id" or "text"
	Candidates int    `json:"candidates"`
	Found      bool   `json:"found"`
}

// SessionEvent is emitted once when the interaction loop ends.
type SessionEvent struct {
	EventBase
	Actions int   `json:"actions"`
	Err     error `json:"-"`
}

// LifecycleHooks defines callbacks for session observability.
// Any hook may be nil.
type LifecycleHooks struct {
	OnActionStart func(context.Context, *ActionEvent)
	OnActionDone  func(context.Context, *ActionEvent)
	OnResolve     func(context.Context, *ResolveEvent)
	OnSessionEnd  func(context.Context, *SessionEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnActionStart: chain(h.OnActionStart, other.OnActionStart),
		OnActionDone:  chain(h.OnActionDone, other.OnActionDone),
		OnResolve:     chain(h.OnResolve, other.OnResolve),
		OnSessionEnd:  chain(h.OnSessionEnd, other.OnSessionEnd),
	}
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
