package solver

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolve_SimpleFeasibleAssignment(t *testing.T) {
	m := NewModel()
	a := m.NewBoolVar("a")
	b := m.NewBoolVar("b")
	// a + b == 1
	m.AddEquality(Sum(a, b), 1)

	status, values, err := Solve(context.Background(), m, time.Second)
	require.NoError(t, err)
	assert.Equal(t, StatusOptimal, status)
	require.Len(t, values, 2)
	assert.Equal(t, int64(1), values[a]+values[b])
}

func TestSolve_Infeasible(t *testing.T) {
	m := NewModel()
	a := m.NewBoolVar("a")
	m.AddEquality(Sum(a), 0)
	m.AddEquality(Sum(a), 1)

	status, _, err := Solve(context.Background(), m, time.Second)
	require.NoError(t, err)
	assert.Equal(t, StatusInfeasible, status)
}

func TestSolve_MinimizesObjective(t *testing.T) {
	m := NewModel()
	a := m.NewBoolVar("a")
	b := m.NewBoolVar("b")
	// at least one of a,b must be true
	m.AddGreaterOrEqual(Sum(a, b), 1)
	m.Minimize(WeightedSum(Term{Var: a, Coeff: 1}, Term{Var: b, Coeff: 1}))

	status, values, err := Solve(context.Background(), m, time.Second)
	require.NoError(t, err)
	assert.Equal(t, StatusOptimal, status)
	assert.Equal(t, int64(1), values[a]+values[b], "optimal solution sets exactly one var")
}

func TestSolve_RespectsCancellation(t *testing.T) {
	m := NewModel()
	// A moderately large, unconstrained model so the search tree can't be
	// exhausted before a cancelled context is observed.
	vars := make([]BoolVar, 20)
	for i := range vars {
		vars[i] = m.NewBoolVar("v")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	status, _, err := Solve(ctx, m, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, StatusUnknown, status)
}

func TestAddMaxEquality_ActsAsLogicalOr(t *testing.T) {
	m := NewModel()
	a := m.NewBoolVar("a")
	b := m.NewBoolVar("b")
	target := m.NewBoolVar("target")
	m.AddMaxEquality(target, []BoolVar{a, b})
	m.Fix(a, 1)
	m.Fix(b, 0)

	status, values, err := Solve(context.Background(), m, time.Second)
	require.NoError(t, err)
	assert.Equal(t, StatusOptimal, status)
	assert.Equal(t, int64(1), values[target])
}

func TestAddAbsEquality_BoundsDeviationFromZero(t *testing.T) {
	m := NewModel()
	a := m.NewBoolVar("a")
	m.Fix(a, 1)
	dev := m.NewIntVar(0, 1, "dev")
	m.AddAbsEquality(dev, Sum(a).Sub(LinearExpr{Const: 0}))
	m.Minimize(dev.Expr())

	status, values, err := Solve(context.Background(), m, time.Second)
	require.NoError(t, err)
	assert.Equal(t, StatusOptimal, status)
	assert.Equal(t, int64(1), values[a])
	_ = dev
}
