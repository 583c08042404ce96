// conditions/condition.go

package conditions

import (
	"strings"

	"mhalvorsen/dialog/internal/bindings"
	"mhalvorsen/dialog/internal/values"
)

// Relation is the comparison applied by a basic condition.
type Relation int

const (
	Equal Relation = iota
	NotEqual
	Contains
)

var SupportedRelations = []Relation{
	Equal,
	NotEqual,
	Contains,
}

// Condition is a predicate over a binding of variables to values.
type Condition interface {
	IsSatisfiedBy(b *bindings.Binding) bool
	String() string
}

// Basic is a single-variable condition leaf.
type Basic struct {
	Variable string
	Value    values.Value
	Relation Relation
}

func (c Basic) IsSatisfiedBy(b *bindings.Binding) bool {
	current, bound := b.Get(c.Variable)
	switch c.Relation {
	case Equal:
		return bound && values.Equal(current, c.Value)
	case NotEqual:
		return !bound || !values.Equal(current, c.Value)
	case Contains:
		return bound && (values.Equal(current, c.Value) || current.Contains(c.Value))
	}
	return false
}

func (c Basic) String() string {
	switch c.Relation {
	case NotEqual:
		return c.Variable + "!=" + c.Value.String()
	case Contains:
		return c.Variable + " contains " + c.Value.String()
	default:
		return c.Variable + "=" + c.Value.String()
	}
}

// Void is the trivially true condition.
type Void struct{}

func (c Void) IsSatisfiedBy(b *bindings.Binding) bool { return true }
func (c Void) String() string { return "true" }

// Operator connects the members of a complex condition.
type Operator int

const (
	AndOp Operator = iota
	OrOp
)

// Complex is a conjunction or disjunction of conditions.
type Complex struct {
	Members  []Condition
	Operator Operator
}

// And builds a conjunction of the given conditions.
func And(members ...Condition) Complex {
	return Complex{Members: members, Operator: AndOp}
}

// Or builds a disjunction of the given conditions.
func Or(members ...Condition) Complex {
	return Complex{Members: members, Operator: OrOp}
}

func (c Complex) IsSatisfiedBy(b *bindings.Binding) bool {
	if c.Operator == AndOp {
		for _, m := range c.Members {
			if !m.IsSatisfiedBy(b) {
				return false
			}
		}
		return true
	}
	for _, m := range c.Members {
		if m.IsSatisfiedBy(b) {
			return true
		}
	}
	return false
}

func (c Complex) String() string {
	parts := make([]string, 0, len(c.Members))
	for _, m := range c.Members {
		parts = append(parts, m.String())
	}
	sep := " ^ "
	if c.Operator == OrOp {
		sep = " v "
	}
	return "(" + strings.Join(parts, sep) + ")"
}
