// values/set.go

package values

import (
	"sort"
	"strings"
)

// ValueSet is an insertion-ordered collection of distinct values, deduplicated
// by content. It is the working accumulator for per-variable resolution and
// the backing store of SetVal.
type ValueSet struct {
	order []Value
	seen  map[string]bool
}

// NewValueSet creates a value set from the given elements.
func NewValueSet(elements ...Value) *ValueSet {
	s := &ValueSet{seen: make(map[string]bool)}
	for _, v := range elements {
		s.Add(v)
	}
	return s
}

// Add inserts a value if no equal value is already present.
func (s *ValueSet) Add(v Value) {
	key := v.String()
	if s.seen[key] {
		return
	}
	s.seen[key] = true
	s.order = append(s.order, v)
}

// Remove deletes the value equal to v, if present.
func (s *ValueSet) Remove(v Value) {
	key := v.String()
	if !s.seen[key] {
		return
	}
	delete(s.seen, key)
	for i, existing := range s.order {
		if existing.String() == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Contains reports whether a value equal to v is present.
func (s *ValueSet) Contains(v Value) bool {
	return s.seen[v.String()]
}

// Values returns the elements in insertion order.
func (s *ValueSet) Values() []Value {
	out := make([]Value, len(s.order))
	copy(out, s.order)
	return out
}

func (s *ValueSet) Len() int { return len(s.order) }

// Copy returns an independent copy of the set.
func (s *ValueSet) Copy() *ValueSet {
	out := NewValueSet()
	for _, v := range s.order {
		out.Add(v.Copy())
	}
	return out
}

func (s *ValueSet) String() string {
	parts := make([]string, 0, len(s.order))
	for _, v := range s.order {
		parts = append(parts, v.String())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// SetVal is a value wrapping a set of values.
type SetVal struct {
	elements *ValueSet
}

// NewSet creates a set value from the given elements.
func NewSet(elements ...Value) SetVal {
	return SetVal{elements: NewValueSet(elements...)}
}

// Elements returns the member values in insertion order.
func (v SetVal) Elements() []Value {
	return v.elements.Values()
}

// Without returns a new set value equal to the original minus the given value.
func (v SetVal) Without(element Value) SetVal {
	out := NewValueSet()
	for _, e := range v.elements.Values() {
		if !Equal(e, element) {
			out.Add(e)
		}
	}
	return SetVal{elements: out}
}

// Concatenate returns the union with another set value, or the set extended
// with a scalar value.
func (v SetVal) Concatenate(other Value) (Value, error) {
	if IsNone(other) {
		return v.Copy(), nil
	}
	merged := v.elements.Copy()
	if o, ok := other.(SetVal); ok {
		for _, e := range o.Elements() {
			merged.Add(e)
		}
	} else {
		merged.Add(other)
	}
	return SetVal{elements: merged}, nil
}

func (v SetVal) Length() int { return v.elements.Len() }

func (v SetVal) Contains(sub Value) bool {
	return v.elements.Contains(sub)
}

func (v SetVal) Copy() Value {
	return SetVal{elements: v.elements.Copy()}
}

func (v SetVal) Hash() uint32 {
	// Sum the element hashes so the hash ignores insertion order.
	var h uint32
	for _, e := range v.elements.Values() {
		h += e.Hash()
	}
	return h
}

// String renders the elements in sorted order so that equal sets built in
// different insertion orders compare equal.
func (v SetVal) String() string {
	parts := make([]string, 0, v.elements.Len())
	for _, e := range v.elements.Values() {
		parts = append(parts, e.String())
	}
	sort.Strings(parts)
	return "[" + strings.Join(parts, ",") + "]"
}
