package translate

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Engine translates text in one fixed language direction.
// Implementations should honor ctx cancellation; callers additionally
// bound every invocation with a deadline.
type Engine interface {
	Translate(ctx context.Context, text string) (string, error)
}

// EngineFunc adapts a function to the Engine interface.
type EngineFunc func(ctx context.Context, text string) (string, error)

func (f EngineFunc) Translate(ctx context.Context, text string) (string, error) {
	return f(ctx, text)
}

// Direction identifies a source→target language pair.
type Direction struct {
	From string
	To   string
}

func (d Direction) String() string {
	return d.From + "-" + d.To
}

// ParseDirection parses a "src-tgt" direction key.
func ParseDirection(key string) (Direction, error) {
	from, to, ok := strings.Cut(key, "-")
	if !ok || from == "" || to == "" {
		return Direction{}, fmt.Errorf("invalid direction %q, want \"src-tgt\"", key)
	}
	return Direction{From: strings.ToLower(from), To: strings.ToLower(to)}, nil
}

// Registry maps directions to engines. It is populated at startup and
// read-only afterwards; a missing direction is a normal condition that
// routing resolves as passthrough.
type Registry struct {
	engines map[Direction]Engine
}

// NewRegistry returns an empty engine registry.
func NewRegistry() *Registry {
	return &Registry{engines: make(map[Direction]Engine)}
}

// Register binds an engine to a direction, replacing any previous one.
func (r *Registry) Register(d Direction, e Engine) {
	r.engines[d] = e
}

// Lookup returns the engine for a direction, if one is registered.
func (r *Registry) Lookup(d Direction) (Engine, bool) {
	e, ok := r.engines[d]
	return e, ok
}

// Directions lists the registered directions.
func (r *Registry) Directions() []Direction {
	return lo.Keys(r.engines)
}
