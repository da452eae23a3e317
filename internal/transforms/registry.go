// Package transforms provides a priority-ordered registry of text
// transformers run over a document before it reaches the Markdown renderer.
package transforms

import (
	"context"
	"fmt"
	"sort"
)

// Transformer defines a text transformation stage.
type Transformer interface {
	Name() string
	Transform(ctx context.Context, input []byte) ([]byte, error)
	Priority() int // lower runs first
}

// Registry holds transformers keyed by name.
type Registry struct {
	items map[string]Transformer
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{items: map[string]Transformer{}}
}

// Register adds a transformer. Registration is idempotent by name: the first
// transformer registered under a name is kept.
func (r *Registry) Register(t Transformer) {
	if t == nil {
		return
	}
	if _, ok := r.items[t.Name()]; !ok {
		r.items[t.Name()] = t
	}
}

// List returns transformers sorted by Priority (stable by name for equal priority).
func (r *Registry) List() []Transformer {
	items := make([]Transformer, 0, len(r.items))
	for _, t := range r.items {
		items = append(items, t)
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Priority() == items[j].Priority() {
			return items[i].Name() < items[j].Name()
		}
		return items[i].Priority() < items[j].Priority()
	})
	return items
}

// Apply runs every registered transformer over input in priority order. The
// first failing stage aborts the run.
func (r *Registry) Apply(ctx context.Context, input []byte) ([]byte, error) {
	out := input
	for _, t := range r.List() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		next, err := t.Transform(ctx, out)
		if err != nil {
			return nil, fmt.Errorf("transform %s: %w", t.Name(), err)
		}
		out = next
	}
	return out, nil
}

// Func adapts a function to Transformer.
type Func struct {
	ID    string
	Order int
	Fn    func(ctx context.Context, input []byte) ([]byte, error)
}

func (f Func) Name() string  { return f.ID }
func (f Func) Priority() int { return f.Order }
func (f Func) Transform(ctx context.Context, input []byte) ([]byte, error) {
	return f.Fn(ctx, input)
}
