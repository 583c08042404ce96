package effects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mhalvorsen/dialog/internal/bindings"
	"mhalvorsen/dialog/internal/conditions"
	"mhalvorsen/dialog/internal/values"
)

func assign(variable, value string, priority int) BasicEffect {
	return NewBasicEffect(variable, values.Create(value), priority, false, false)
}

func negate(variable, value string, priority int) BasicEffect {
	return NewBasicEffect(variable, values.Create(value), priority, false, true)
}

func addTo(variable, value string, priority int) BasicEffect {
	return NewBasicEffect(variable, values.Create(value), priority, true, false)
}

func TestNewOf_NormalizationAndDedup(t *testing.T) {
	e := NewOf([]BasicEffect{
		negate("x", "b", 1),
		assign("x", "a", 1),
		assign("x", "a", 1),
	})
	members := e.SubEffects()
	require.Equal(t, 2, len(members), "Expected duplicates to collapse")
	assert.False(t, members[0].IsNegated(), "Expected non-negated members to come first")
	assert.True(t, members[1].IsNegated())
}

func TestGetValues_PriorityDominance(t *testing.T) {
	e := NewOf([]BasicEffect{
		assign("x", "1", 5),
		assign("x", "2", 1),
	})
	result := e.GetValues("x")
	require.Equal(t, 1, result.Len(), "Expected only the best priority to survive")
	assert.True(t, result.Contains(values.Create("2")), "Expected the lower priority number to win")
	assert.False(t, result.Contains(values.Create("1")), "Expected the worse priority value never to surface")
}

func TestGetValues_TiedPriorityAccumulates(t *testing.T) {
	e := NewOf([]BasicEffect{
		assign("x", "a", 1),
		assign("x", "b", 1),
	})
	result := e.GetValues("x")
	assert.Equal(t, 2, result.Len(), "Expected tied priorities to accumulate")
}

func TestGetValues_NegationEditsSetInPlace(t *testing.T) {
	e := NewOf([]BasicEffect{
		NewBasicEffect("x", values.Create("[a,b,c]"), 1, false, false),
		negate("x", "b", 1),
	})
	result := e.GetValues("x")
	require.Equal(t, 1, result.Len(), "Expected the set to be edited, not excluded wholesale")
	assert.Equal(t, "[a,c]", result.Values()[0].String(), "Expected the negated value to be subtracted from inside the set")
}

func TestGetValues_NegationRemovesScalar(t *testing.T) {
	e := NewOf([]BasicEffect{
		assign("x", "a", 1),
		assign("x", "b", 1),
		negate("x", "a", 1),
	})
	result := e.GetValues("x")
	require.Equal(t, 1, result.Len())
	assert.True(t, result.Contains(values.Create("b")))
}

func TestGetValues_NoneIsDeleteSentinel(t *testing.T) {
	e := NewFrom(NewBasicEffect("x", values.None(), 1, false, false))
	assert.Equal(t, 0, e.GetValues("x").Len(), "Expected none never to be returned")
}

func TestGetValues_IgnoresOtherVariables(t *testing.T) {
	e := NewOf([]BasicEffect{
		assign("x", "a", 1),
		assign("y", "b", 1),
	})
	result := e.GetValues("x")
	require.Equal(t, 1, result.Len())
	assert.True(t, result.Contains(values.Create("a")))
}

func TestIsAdd(t *testing.T) {
	tests := []struct {
		name     string
		members  []BasicEffect
		expected bool
	}{
		{"add member alone", []BasicEffect{addTo("x", "a", 1)}, true},
		{"no add member", []BasicEffect{assign("x", "a", 1)}, false},
		{"add then disqualifying assign", []BasicEffect{addTo("x", "a", 1), assign("x", "b", 1)}, false},
		{"disqualifying assign then add", []BasicEffect{assign("x", "b", 1), addTo("x", "a", 1)}, false},
		{"add with negated member", []BasicEffect{addTo("x", "a", 1), negate("x", "b", 1)}, true},
		{"add with none-valued assign", []BasicEffect{addTo("x", "a", 1), NewBasicEffect("x", values.None(), 1, false, false)}, true},
		{"add on another variable only", []BasicEffect{addTo("y", "a", 1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewOf(tt.members)
			assert.Equal(t, tt.expected, e.IsAdd("x"))
		})
	}
}

func TestCondition_Empty(t *testing.T) {
	assert.IsType(t, conditions.Void{}, New().Condition(), "Expected the empty effect to convert to the trivially true condition")
}

func TestCondition_SingleMember(t *testing.T) {
	e := NewFrom(assign("x", "a", 1))
	cond, ok := e.Condition().(conditions.Basic)
	require.True(t, ok, "Expected a single member to convert to its own condition")
	assert.Equal(t, "x", cond.Variable)
	assert.Equal(t, conditions.Equal, cond.Relation)
}

func TestCondition_DistinctVariablesBecomeConjunction(t *testing.T) {
	e := NewOf([]BasicEffect{
		assign("x", "a", 1),
		assign("y", "b", 1),
	})
	cond, ok := e.Condition().(conditions.Complex)
	require.True(t, ok)
	assert.Equal(t, conditions.AndOp, cond.Operator, "Expected members over several variables to form a conjunction")
}

func TestCondition_SharedVariableBecomesDisjunction(t *testing.T) {
	e := NewOf([]BasicEffect{
		assign("x", "a", 1),
		assign("x", "b", 1),
	})
	cond, ok := e.Condition().(conditions.Complex)
	require.True(t, ok)
	assert.Equal(t, conditions.OrOp, cond.Operator, "Expected alternatives for one variable to form a disjunction")
}

func TestCondition_OperatorMapping(t *testing.T) {
	negCond := NewFrom(negate("x", "a", 1)).Condition().(conditions.Basic)
	assert.Equal(t, conditions.NotEqual, negCond.Relation)

	addCond := NewFrom(addTo("x", "a", 1)).Condition().(conditions.Basic)
	assert.Equal(t, conditions.Contains, addCond.Relation)
}

func TestCondition_IsCached(t *testing.T) {
	e := NewOf([]BasicEffect{assign("x", "a", 1), assign("y", "b", 1)})
	assert.Equal(t, e.Condition(), e.Condition(), "Expected the dual condition to be stable across calls")
}

func TestGround_FullyGroundedIsCheap(t *testing.T) {
	e := NewFrom(assign("x", "a", 1))
	assert.Same(t, e, e.Ground(bindings.New()), "Expected a fully grounded effect to be returned as-is")
}

func TestGround_ResolvesCoveredSlots(t *testing.T) {
	e, err := Parse("greeting:={Name}")
	require.NoError(t, err)
	require.False(t, e.IsFullyGrounded())

	b := bindings.New()
	b.AddPair("Name", values.NewString("Pierre"))
	grounded := e.Ground(b)

	assert.True(t, grounded.IsFullyGrounded(), "Expected no member to report unresolved slots")
	assert.Equal(t, "greeting:=Pierre", grounded.String())
}

func TestGround_DropsUnresolvedMembers(t *testing.T) {
	e, err := Parse("u:={A} ^ v:={B}")
	require.NoError(t, err)

	b := bindings.New()
	b.AddPair("A", values.NewString("hello"))
	grounded := e.Ground(b)

	assert.Equal(t, 1, grounded.Length(), "Expected the ungroundable member to be dropped, not reported as an error")
	assert.Equal(t, "u:=hello", grounded.String())
}

func TestGround_VariableSlot(t *testing.T) {
	e, err := Parse("{Var}:=yes")
	require.NoError(t, err)

	b := bindings.New()
	b.AddPair("Var", values.NewString("confirmed"))
	grounded := e.Ground(b)

	require.Equal(t, 1, grounded.Length())
	assert.Equal(t, "confirmed:=yes", grounded.String())
}

func TestConcatenate_Union(t *testing.T) {
	e1 := NewOf([]BasicEffect{assign("x", "a", 1), assign("y", "b", 1)})
	e2 := NewOf([]BasicEffect{assign("y", "b", 1), assign("z", "c", 1)})

	combined, err := e1.Concatenate(e2)
	require.NoError(t, err)
	result, ok := combined.(*Effect)
	require.True(t, ok)
	assert.Equal(t, 3, result.Length(), "Expected the union with duplicates collapsed")
}

func TestConcatenate_InvalidOperand(t *testing.T) {
	e := NewFrom(assign("x", "a", 1))
	_, err := e.Concatenate(values.NewString("not an effect"))
	assert.Error(t, err, "Expected concatenation with a non-effect to fail")
}

func TestEquals_Structural(t *testing.T) {
	e1 := NewOf([]BasicEffect{assign("x", "a", 1), negate("y", "b", 1)})
	e2 := NewOf([]BasicEffect{negate("y", "b", 1), assign("x", "a", 1)})
	e3 := NewOf([]BasicEffect{assign("x", "a", 1)})

	assert.True(t, e1.Equals(e2), "Expected equality to ignore member order")
	assert.False(t, e1.Equals(e3))
}

func TestCopy_Independent(t *testing.T) {
	e := NewOf([]BasicEffect{assign("x", "a", 1), negate("y", "b", 1)})
	copied, ok := e.Copy().(*Effect)
	require.True(t, ok)
	assert.True(t, e.Equals(copied), "Expected the copy to hold the same member set")
	assert.NotSame(t, e, copied)
}

func TestAssignment_PrimedVariables(t *testing.T) {
	e := NewOf([]BasicEffect{assign("x", "a", 1)})
	a := e.Assignment()
	v, ok := a.Get("x'")
	require.True(t, ok, "Expected the assignment to use primed variable labels")
	assert.Equal(t, "a", v.String())
}

func TestValueSlots_Propagation(t *testing.T) {
	e, err := Parse("u:={A} ^ v:=plain")
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, e.ValueSlots(), "Expected value-template slots to propagate to the effect")
}

func TestContains_AlwaysFalse(t *testing.T) {
	e := NewFrom(assign("x", "a", 1))
	assert.False(t, e.Contains(values.NewString("a")))
}
