// effects/basic.go

package effects

import (
	"fmt"
	"hash/fnv"

	"mhalvorsen/dialog/internal/bindings"
	"mhalvorsen/dialog/internal/conditions"
	"mhalvorsen/dialog/internal/templates"
	"mhalvorsen/dialog/internal/values"
)

// shape tags the two forms a basic effect can take: fully resolved, or still
// carrying placeholder templates for its variable and value.
type shape int

const (
	resolved shape = iota
	templated
)

// BasicEffect is one atomic assertion on a single variable: assign (:=),
// negate (!=) or additively insert (+=) a value, with an integer priority
// where a lower number takes precedence. Instances are immutable; grounding
// returns a new instance.
type BasicEffect struct {
	shape    shape
	variable string
	value    values.Value
	varTpl   templates.Template
	valTpl   templates.Template
	priority int
	add      bool
	negated  bool
}

// NewBasicEffect creates a fully resolved basic effect.
func NewBasicEffect(variable string, value values.Value, priority int, add, negated bool) BasicEffect {
	return BasicEffect{
		shape:    resolved,
		variable: variable,
		value:    value,
		priority: priority,
		add:      add,
		negated:  negated,
	}
}

// NewTemplateEffect creates a basic effect whose variable and value are
// placeholder-bearing templates.
func NewTemplateEffect(varTpl, valTpl templates.Template, priority int, add, negated bool) BasicEffect {
	return BasicEffect{
		shape:    templated,
		varTpl:   varTpl,
		valTpl:   valTpl,
		priority: priority,
		add:      add,
		negated:  negated,
	}
}

// ContainsSlots reports whether the effect still carries unresolved slots.
func (e BasicEffect) ContainsSlots() bool {
	return e.shape == templated &&
		(e.varTpl.IsUnderspecified() || e.valTpl.IsUnderspecified())
}

// Ground resolves the placeholders covered by the binding. If every slot is
// covered the result is a resolved effect; otherwise the result still reports
// ContainsSlots() so the caller can filter it out.
func (e BasicEffect) Ground(b *bindings.Binding) BasicEffect {
	switch e.shape {
	case resolved:
		return e
	default:
		varText, varMissing := e.varTpl.Fill(b)
		valText, valMissing := e.valTpl.Fill(b)
		if len(varMissing) == 0 && len(valMissing) == 0 {
			return NewBasicEffect(varText, values.Create(valText), e.priority, e.add, e.negated)
		}
		return NewTemplateEffect(templates.New(varText), templates.New(valText), e.priority, e.add, e.negated)
	}
}

// Variable returns the target variable label (the raw template text when the
// effect is still templated).
func (e BasicEffect) Variable() string {
	switch e.shape {
	case resolved:
		return e.variable
	default:
		return e.varTpl.Raw()
	}
}

// Value returns the asserted value. For a templated effect this is the raw
// value template as a string value.
func (e BasicEffect) Value() values.Value {
	switch e.shape {
	case resolved:
		return e.value
	default:
		return values.NewString(e.valTpl.Raw())
	}
}

// ValueSlots returns the unresolved slot names of the value template, if any.
func (e BasicEffect) ValueSlots() []string {
	if e.shape == templated {
		return e.valTpl.Slots()
	}
	return nil
}

func (e BasicEffect) Priority() int { return e.priority }
func (e BasicEffect) IsAdd() bool { return e.add }
func (e BasicEffect) IsNegated() bool { return e.negated }

// Copy returns a copy of the effect.
func (e BasicEffect) Copy() BasicEffect {
	if e.shape == resolved {
		out := e
		out.value = e.value.Copy()
		return out
	}
	return e
}

// Condition converts the effect into the condition testing whether its
// outcome already holds: var:=val becomes var=val, var!=val stays var!=val,
// and var+=val becomes a membership test.
func (e BasicEffect) Condition() conditions.Condition {
	switch {
	case e.negated:
		return conditions.Basic{Variable: e.Variable(), Value: e.Value(), Relation: conditions.NotEqual}
	case e.add:
		return conditions.Basic{Variable: e.Variable(), Value: e.Value(), Relation: conditions.Contains}
	default:
		return conditions.Basic{Variable: e.Variable(), Value: e.Value(), Relation: conditions.Equal}
	}
}

func (e BasicEffect) operator() string {
	switch {
	case e.negated:
		return "!="
	case e.add:
		return "+="
	default:
		return ":="
	}
}

func (e BasicEffect) String() string {
	if e.shape == templated {
		return e.varTpl.Raw() + e.operator() + e.valTpl.Raw()
	}
	return e.variable + e.operator() + e.value.String()
}

// Hash returns a stable content hash covering the rendered assertion and the
// priority, which the string form does not carry.
func (e BasicEffect) Hash() uint32 {
	h := fnv.New32a()
	fmt.Fprintf(h, "%s#%d", e.String(), e.priority)
	return h.Sum32()
}

// Equals reports structural equality between two basic effects.
func (e BasicEffect) Equals(other BasicEffect) bool {
	if e.shape != other.shape || e.priority != other.priority ||
		e.add != other.add || e.negated != other.negated {
		return false
	}
	if e.shape == templated {
		return e.varTpl.Raw() == other.varTpl.Raw() && e.valTpl.Raw() == other.valTpl.Raw()
	}
	return e.variable == other.variable && values.Equal(e.value, other.value)
}
