package outbox

import (
	"context"
	"fmt"

	"github.com/pkordes/article-catalog/internal/domain"
)

// HandlerFunc reacts to one delivered event. Handlers must be idempotent:
// a message is redelivered until every handler for its kind succeeds.
type HandlerFunc func(ctx context.Context, e domain.Event) error

type namedHandler struct {
	name string
	fn   HandlerFunc
}

// Registry maps each event kind to its handlers, in registration order.
// It is filled during startup and read-only afterwards.
type Registry struct {
	handlers map[domain.EventKind][]namedHandler
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{handlers: map[domain.EventKind][]namedHandler{}}
}

// Register appends h to the handlers of kind. name appears in logs.
func (r *Registry) Register(kind domain.EventKind, name string, h HandlerFunc) {
	r.handlers[kind] = append(r.handlers[kind], namedHandler{name: name, fn: h})
}

// Subscribe registers a handler typed on the concrete event it consumes.
func Subscribe[E domain.Event](r *Registry, name string, h func(ctx context.Context, e E) error) {
	var zero E
	r.Register(zero.Kind(), name, func(ctx context.Context, e domain.Event) error {
		typed, ok := e.(E)
		if !ok {
			return fmt.Errorf("handler %s: got %T, want %T", name, e, zero)
		}
		return h(ctx, typed)
	})
}

// Len returns how many handlers are registered for kind.
func (r *Registry) Len(kind domain.EventKind) int {
	return len(r.handlers[kind])
}

// Dispatch runs every handler for e in order and stops at the first error.
func (r *Registry) Dispatch(ctx context.Context, e domain.Event) error {
	for _, h := range r.handlers[e.Kind()] {
		if err := h.fn(ctx, e); err != nil {
			return fmt.Errorf("%s: %w", h.name, err)
		}
	}
	return nil
}
