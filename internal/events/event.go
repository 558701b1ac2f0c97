// Package events carries the operational events the API emits (mutations,
// logins, auth failures, internal errors) to the sinks that care about them:
// the structured log, the activity journal and the live admin feed.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeCreated        Type = "created"
	TypeUpdated        Type = "updated"
	TypeDeleted        Type = "deleted"
	TypeDeactivated    Type = "deactivated"
	TypeUploaded       Type = "uploaded"
	TypeImageDeleted   Type = "image_deleted"
	TypeLoginSucceeded Type = "login_succeeded"
	TypeLoginFailed    Type = "login_failed"
	TypeAuthFailed     Type = "auth_failed"
	TypeInternalError  Type = "internal_error"
)

const (
	EntityProperty  = "property"
	EntityJob       = "job"
	EntityExecutive = "executive"
	EntityImage     = "image"
	EntitySession   = "session"
	EntityRequest   = "request"
)

type Event struct {
	ID        string    `json:"id"`
	Type      Type      `json:"type"`
	Entity    string    `json:"entity"`
	EntityID  string    `json:"entityId,omitempty"`
	Label     string    `json:"label,omitempty"` // title or name of the record
	Actor     string    `json:"actor,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Sink receives events. Implementations must not block the caller for long
// and handle their own failures.
type Sink interface {
	Record(ctx context.Context, e Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, e Event)

func (f SinkFunc) Record(ctx context.Context, e Event) {
	f(ctx, e)
}

type multiSink []Sink

// Multi fans each event out to every non-nil sink, in order.
func Multi(sinks ...Sink) Sink {
	m := make(multiSink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			m = append(m, s)
		}
	}
	return m
}

func (m multiSink) Record(ctx context.Context, e Event) {
	for _, s := range m {
		s.Record(ctx, e)
	}
}

// Discard drops every event.
var Discard Sink = SinkFunc(func(context.Context, Event) {})

type actorKey struct{}

// WithActor attaches the username performing the request.
func WithActor(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, actorKey{}, username)
}

func ActorFrom(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	actor, _ := ctx.Value(actorKey{}).(string)
	return actor
}

// New builds an event stamped with a fresh id, the current time and the
// actor carried by ctx.
func New(ctx context.Context, typ Type, entity, entityID, label string) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      typ,
		Entity:    entity,
		EntityID:  entityID,
		Label:     label,
		Actor:     ActorFrom(ctx),
		Timestamp: time.Now().UTC(),
	}
}
