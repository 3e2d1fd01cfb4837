package claim

import (
	"context"
	"time"
)

// EventType discriminates the lifecycle events published to the event stream.
type EventType string

const (
	EventCreated       EventType = "claim.created"
	EventStatusChanged EventType = "claim.status_changed"
	EventTransferred   EventType = "claim.transferred"
	EventDeleted       EventType = "claim.deleted"
)

// Event is the payload published after a lifecycle mutation commits.
type Event struct {
	Type         EventType `json:"type"`
	ClaimID      int64     `json:"claim_id"`
	DepartmentID int64     `json:"department_id"`
	Status       Status    `json:"status,omitempty"`
	ActorID      int64     `json:"actor_id,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// EventPublisher pushes lifecycle events to the event stream.  Publishing is
// best effort and happens strictly after the database commit: a failed
// publish is logged, never rolled back into the request.
type EventPublisher interface {
	Publish(ctx context.Context, ev Event) error
}

// NopPublisher discards every event; used when the event stream is disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
