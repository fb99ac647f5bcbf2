package ports

import (
	"context"
	"time"
)

// AuthEventKind labels an audit trail entry.
type AuthEventKind string

const (
	AuthEventLoginOK     AuthEventKind = "login_ok"
	AuthEventLoginFailed AuthEventKind = "login_failed"
	AuthEventRefresh     AuthEventKind = "refresh"
)

// AuthEventInput is one auth outcome destined for the audit trail.
type AuthEventInput struct {
	Email     string
	Kind      AuthEventKind
	Reason    string
	Timestamp time.Time
}

// AuthAudit accepts events for asynchronous recording. Enqueue must never
// block the request path.
type AuthAudit interface {
	Enqueue(event AuthEventInput)
}

// AuthEventRecorder persists audit events.
type AuthEventRecorder interface {
	Record(ctx context.Context, event AuthEventInput) error
}
