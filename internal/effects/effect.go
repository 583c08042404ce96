// effects/effect.go

package effects

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"mhalvorsen/dialog/internal/bindings"
	"mhalvorsen/dialog/internal/conditions"
	"mhalvorsen/dialog/internal/values"
)

// Effect is a combination of basic effects connected by an implicit AND. The
// member set is deduplicated and normalized at construction time so that, for
// any variable, non-negated members precede negated ones. Effects are
// immutable once constructed.
type Effect struct {
	members []BasicEffect

	// dual is the memoized condition view of the effect (see Condition).
	dualOnce sync.Once
	dual     conditions.Condition
}

// Effect participates in the value family, so it can appear wherever a
// variable holds a value and be concatenated with other effects.
var _ values.Value = (*Effect)(nil)

// New creates an empty effect, which takes no effect and serializes as "Void".
func New() *Effect {
	return &Effect{}
}

// NewFrom creates an effect holding a single basic effect.
func NewFrom(member BasicEffect) *Effect {
	return &Effect{members: []BasicEffect{member}}
}

// NewOf creates an effect from a collection of basic effects. Members are
// stable-sorted so non-negated ones come first, then deduplicated. The sort
// guarantees that per-variable resolution folds positive assertions before
// negative ones within a priority tie.
func NewOf(members []BasicEffect) *Effect {
	sorted := make([]BasicEffect, len(members))
	copy(sorted, members)
	sort.SliceStable(sorted, func(i, j int) bool {
		return !sorted[i].IsNegated() && sorted[j].IsNegated()
	})
	deduped := make([]BasicEffect, 0, len(sorted))
	seen := make(map[uint32]bool)
	for _, m := range sorted {
		if seen[m.Hash()] {
			continue
		}
		seen[m.Hash()] = true
		deduped = append(deduped, m)
	}
	return &Effect{members: deduped}
}

// SubEffects returns the members in normalized order.
func (e *Effect) SubEffects() []BasicEffect {
	out := make([]BasicEffect, len(e.members))
	copy(out, e.members)
	return out
}

// Length returns the number of basic effects.
func (e *Effect) Length() int { return len(e.members) }

// IsFullyGrounded reports whether no member carries unresolved slots.
func (e *Effect) IsFullyGrounded() bool {
	for _, m := range e.members {
		if m.ContainsSlots() {
			return false
		}
	}
	return true
}

// Ground resolves the effect against the binding. Members whose slots remain
// unresolved after grounding are dropped: a rule may legitimately fire with
// only some of its slots bound, and the ungroundable sub-effects simply take
// no effect.
func (e *Effect) Ground(b *bindings.Binding) *Effect {
	if e.IsFullyGrounded() {
		return e
	}
	grounded := make([]BasicEffect, 0, len(e.members))
	for _, m := range e.members {
		g := m.Ground(b)
		if g.ContainsSlots() {
			log.Debug().Str("effect", g.String()).Msg("Dropping sub-effect with unresolved slots")
			continue
		}
		grounded = append(grounded, g)
	}
	return NewOf(grounded)
}

// Concatenate merges this effect with another effect value, yielding a new
// effect over the union of both member sets. Any other operand is an invalid
// operation.
func (e *Effect) Concatenate(v values.Value) (values.Value, error) {
	other, ok := v.(*Effect)
	if !ok {
		return nil, fmt.Errorf("cannot concatenate %s and %s", e, v)
	}
	merged := make([]BasicEffect, 0, len(e.members)+len(other.members))
	merged = append(merged, e.members...)
	merged = append(merged, other.members...)
	return NewOf(merged), nil
}

// ValueSlots returns the unresolved slot names across the value templates of
// all templated members.
func (e *Effect) ValueSlots() []string {
	var slots []string
	seen := make(map[string]bool)
	for _, m := range e.members {
		for _, slot := range m.ValueSlots() {
			if !seen[slot] {
				seen[slot] = true
				slots = append(slots, slot)
			}
		}
	}
	return slots
}

// OutputVariables returns the distinct variables targeted by the effect.
func (e *Effect) OutputVariables() map[string]struct{} {
	out := make(map[string]struct{})
	for _, m := range e.members {
		out[m.Variable()] = struct{}{}
	}
	return out
}

// GetValues resolves the values asserted for the given variable. Among
// members with differing priorities only the lowest priority number wins;
// among ties, non-negated values accumulate and negated values subtract.
// A negated value is also removed from inside any accumulated set value.
// The none sentinel marks a deletion and is never returned.
func (e *Effect) GetValues(variable string) *values.ValueSet {
	result := values.NewValueSet()
	bestPriority := math.MaxInt
	for _, m := range e.members {
		if m.Variable() != variable {
			continue
		}
		if m.Priority() > bestPriority {
			continue
		}
		if m.Priority() < bestPriority {
			result = values.NewValueSet()
			bestPriority = m.Priority()
		}
		if m.IsNegated() {
			result.Remove(m.Value())
			for _, accumulated := range result.Values() {
				set, ok := accumulated.(values.SetVal)
				if ok && set.Contains(m.Value()) {
					result.Remove(accumulated)
					result.Add(set.Without(m.Value()))
				}
			}
		} else if !values.IsNone(m.Value()) {
			result.Add(m.Value())
		}
	}
	return result
}

// IsAdd reports whether the effect has additive semantics for the variable:
// at least one add-flagged member, and no member that assigns a non-empty
// value outright.
func (e *Effect) IsAdd(variable string) bool {
	foundAdd := false
	for _, m := range e.members {
		if m.Variable() != variable {
			continue
		}
		if m.IsAdd() {
			foundAdd = true
		} else if m.Value().Length() > 0 && !m.IsNegated() {
			return false
		}
	}
	return foundAdd
}

// Condition returns the condition testing whether the effect's outcome
// already holds. An empty effect converts to the trivially true condition, a
// single member to its own condition, members over several variables to a
// conjunction, and members all targeting one variable to a disjunction of the
// alternative satisfying values. The result is computed once and cached;
// recomputation from immutable inputs would be idempotent anyway.
func (e *Effect) Condition() conditions.Condition {
	e.dualOnce.Do(func() {
		members := make([]conditions.Condition, 0, len(e.members))
		for _, m := range e.members {
			members = append(members, m.Condition())
		}
		switch {
		case len(members) == 0:
			e.dual = conditions.Void{}
		case len(members) == 1:
			e.dual = members[0]
		case len(e.OutputVariables()) == 1:
			e.dual = conditions.Or(members...)
		default:
			e.dual = conditions.And(members...)
		}
	})
	return e.dual
}

// Assignment returns the effect as an assignment of values under primed
// variable labels, the form handed to the state-update layer.
func (e *Effect) Assignment() *bindings.Binding {
	b := bindings.New()
	for _, m := range e.members {
		b.AddPair(m.Variable()+"'", m.Value())
	}
	return b
}

// Copy returns a copy of the effect.
func (e *Effect) Copy() values.Value {
	copied := make([]BasicEffect, 0, len(e.members))
	for _, m := range e.members {
		copied = append(copied, m.Copy())
	}
	return NewOf(copied)
}

// Contains always returns false: an effect holds sub-effects, not sub-values.
func (e *Effect) Contains(sub values.Value) bool { return false }

// Hash sums the member hashes, so it does not depend on member order.
func (e *Effect) Hash() uint32 {
	var h uint32
	for _, m := range e.members {
		h += m.Hash()
	}
	return h
}

// Equals reports whether both effects hold the same member set.
func (e *Effect) Equals(other *Effect) bool {
	if len(e.members) != len(other.members) {
		return false
	}
	for _, m := range e.members {
		found := false
		for _, o := range other.members {
			if m.Equals(o) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (e *Effect) String() string {
	if len(e.members) == 0 {
		return "Void"
	}
	parts := make([]string, 0, len(e.members))
	for _, m := range e.members {
		parts = append(parts, m.String())
	}
	return strings.Join(parts, " ^ ")
}
