package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLinearExpr_AddScaleNegate(t *testing.T) {
	m := NewModel()
	a := m.NewBoolVar("a")
	b := m.NewBoolVar("b")

	e := Sum(a).Add(Sum(b)).Scale(2)
	assert.Len(t, e.Terms, 2)
	for _, term := range e.Terms {
		assert.Equal(t, int64(2), term.Coeff)
	}

	neg := e.Negate()
	for _, term := range neg.Terms {
		assert.Equal(t, int64(-2), term.Coeff)
	}
}

func TestNewIntVar_ThermometerWidthMatchesRange(t *testing.T) {
	m := NewModel()
	before := m.NumVars()
	v := m.NewIntVar(0, 5, "count")
	assert.Equal(t, before+5, m.NumVars())
	assert.Equal(t, int64(0), v.LB)
	assert.Equal(t, int64(5), v.UB)
}

func TestModel_FixAddsEqualityConstraint(t *testing.T) {
	m := NewModel()
	a := m.NewBoolVar("a")
	before := len(m.constraints)
	m.Fix(a, 1)
	assert.Len(t, m.constraints, before+1)
}
