// bindings/binding.go

package bindings

import (
	"strings"

	"mhalvorsen/dialog/internal/values"
)

// Binding maps variable names to values. It is the input to grounding and the
// output view of a grounded effect. Insertion order is preserved so that
// renderings stay deterministic.
type Binding struct {
	order []string
	pairs map[string]values.Value
}

// New creates an empty binding.
func New() *Binding {
	return &Binding{pairs: make(map[string]values.Value)}
}

// AddPair appends a name/value pair, overwriting any previous value for the
// same name.
func (b *Binding) AddPair(name string, value values.Value) {
	if _, exists := b.pairs[name]; !exists {
		b.order = append(b.order, name)
	}
	b.pairs[name] = value
}

// Get returns the value bound to the name, if any.
func (b *Binding) Get(name string) (values.Value, bool) {
	v, ok := b.pairs[name]
	return v, ok
}

// ContainsVar reports whether the name is bound.
func (b *Binding) ContainsVar(name string) bool {
	_, ok := b.pairs[name]
	return ok
}

// Variables returns the bound names in insertion order.
func (b *Binding) Variables() []string {
	out := make([]string, len(b.order))
	copy(out, b.order)
	return out
}

func (b *Binding) Size() int { return len(b.order) }

// Copy returns an independent copy of the binding.
func (b *Binding) Copy() *Binding {
	out := New()
	for _, name := range b.order {
		out.AddPair(name, b.pairs[name].Copy())
	}
	return out
}

func (b *Binding) String() string {
	parts := make([]string, 0, len(b.order))
	for _, name := range b.order {
		parts = append(parts, name+"="+b.pairs[name].String())
	}
	return strings.Join(parts, ", ")
}
