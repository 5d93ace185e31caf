package solver

import "fmt"

// IntVar is a bounded integer value, represented internally as
// lb + Σ bits (a "thermometer" encoding: bits are monotonically
// non-increasing, so the value equals lb plus the count of 1-bits). This
// mirrors the call shape of cp_model.NewIntVar followed by
// AddMaxEquality/AddAbsEquality in the original OR-Tools generator, without
// requiring the solver to support a native integer variable kind.
type IntVar struct {
	LB, UB int64
	bits   []BoolVar
}

// NewIntVar creates a bounded integer variable in [lb, ub].
func (m *Model) NewIntVar(lb, ub int64, name string) IntVar {
	width := ub - lb
	if width < 0 {
		width = 0
	}
	bits := make([]BoolVar, width)
	for i := range bits {
		bits[i] = m.NewBoolVar(fmt.Sprintf("%s#%d", name, i))
	}
	// Thermometer ordering: bits[i+1] <= bits[i], so the 1-bits are always
	// a contiguous prefix and their count is well-defined.
	for i := 0; i+1 < len(bits); i++ {
		m.AddLessOrEqual(WeightedSum(Term{Var: bits[i+1], Coeff: 1}, Term{Var: bits[i], Coeff: -1}), 0)
	}
	return IntVar{LB: lb, UB: ub, bits: bits}
}

// Expr returns the linear expression (lb + Σ bits) this IntVar represents.
func (v IntVar) Expr() LinearExpr {
	terms := make([]Term, len(v.bits))
	for i, b := range v.bits {
		terms[i] = Term{Var: b, Coeff: 1}
	}
	return LinearExpr{Terms: terms, Const: v.LB}
}

// AddEqualToExpr constrains v == e.
func (m *Model) AddEqualToExpr(v IntVar, e LinearExpr) {
	m.AddEquality(v.Expr().Sub(e), 0)
}

// AddMaxEquality constrains target == max(vars...) for 0/1 vars (i.e.
// logical OR): target is 1 iff at least one of vars is 1.
func (m *Model) AddMaxEquality(target BoolVar, vars []BoolVar) {
	for _, v := range vars {
		// target >= v
		m.AddLessOrEqual(WeightedSum(Term{Var: v, Coeff: 1}, Term{Var: target, Coeff: -1}), 0)
	}
	// target <= Σ vars
	terms := make([]Term, 0, len(vars)+1)
	terms = append(terms, Term{Var: target, Coeff: 1})
	for _, v := range vars {
		terms = append(terms, Term{Var: v, Coeff: -1})
	}
	m.AddLessOrEqual(WeightedSum(terms...), 0)
}

// AddAbsEquality constrains target >= |expr| by adding target.Expr() >= expr
// and target.Expr() >= -expr. Used only in a minimization objective, where
// the solver's drive to shrink target pins it to exactly |expr| at the
// optimum — the standard linearization of an absolute-value objective term.
func (m *Model) AddAbsEquality(target IntVar, expr LinearExpr) {
	m.AddLessOrEqual(expr.Sub(target.Expr()), 0)
	m.AddLessOrEqual(expr.Negate().Sub(target.Expr()), 0)
}
