// Package interfaces defines the collaborators the router, helper
// operator library, and session manager consume but do not implement:
// the pipeline builder, the environment executor, the persisted route
// store, and the event source adapter. Concrete implementations live
// under pkg/collab and pkg/store; production deployments may supply
// their own.
package interfaces

import (
	"context"

	"github.com/flowgate/flowgate/internal/model"
)

// Predicate decides whether an event matches a route. Predicates are
// not required to be safe for concurrent use — the router keeps one
// compiled instance per worker thread (see Builder).
type Predicate func(event *model.Document) bool

// Builder compiles a named route definition into a Predicate. It is
// invoked once per worker thread for each addRoute call so that
// per-thread predicate state (regex scratch buffers, DFA state) is
// never shared across threads.
type Builder interface {
	// BuildRoute compiles the route named name into an independent
	// Predicate instance. Returns a BuildError-wrapped error on
	// malformed definitions, unknown route names, or bad parameter
	// arity/type.
	BuildRoute(name string) (Predicate, error)
}

// EnvironmentManager registers, deregisters, and dispatches events to
// named processing environments. AddEnvironment and DeleteEnvironment
// report errors synchronously; ForwardEvent consumes ownership of the
// event and never returns it to the caller.
type EnvironmentManager interface {
	// AddEnvironment registers name so events may be forwarded to it.
	AddEnvironment(name string) error

	// DeleteEnvironment deregisters name. Called during route removal
	// and as rollback when addRoute fails after registration.
	DeleteEnvironment(name string) error

	// ForwardEvent hands event to the environment named target for
	// execution on behalf of the worker identified by workerIndex.
	// The event is not aliased elsewhere after this call.
	ForwardEvent(ctx context.Context, target string, workerIndex int, event *model.Document) error
}

// Store persists the serialized route table. Snapshot failure is
// fatal to the router (see pkg/router), because in-memory and
// on-disk state have diverged.
type Store interface {
	// Update writes json under key, replacing any prior value.
	Update(ctx context.Context, key string, json []byte) error
}

// EventSource produces events for ingestion. It is the adapter that
// sits in front of the router's intake queue; the router itself only
// consumes events already dequeued by the caller of enqueueEvent.
type EventSource interface {
	// Next blocks until an event is available, ctx is done, or the
	// source is exhausted (io.EOF).
	Next(ctx context.Context) (*model.Document, error)

	// Close releases resources held by the source.
	Close() error
}
