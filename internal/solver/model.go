// Package solver is a small, purpose-built boolean constraint-and-optimize
// engine. No Go CP-SAT or OR-Tools binding exists in the ecosystem (OR-Tools
// ships C++/Python/Java/.NET bindings only), so the CP-SAT Generator is
// built on this instead: boolean decision variables, linear equality/
// inequality constraints with arbitrary integer coefficients, and
// branch-and-bound search with a weighted-sum objective.
package solver

import "fmt"

// BoolVar is a 0/1 decision variable, identified by its index in the owning
// Model.
type BoolVar int

// compOp is a linear constraint's comparison operator.
type compOp int

const (
	opEq compOp = iota
	opLe
)

// Term is one coefficient*var addend of a LinearExpr.
type Term struct {
	Var   BoolVar
	Coeff int64
}

// LinearExpr is a weighted sum of BoolVars plus a constant.
type LinearExpr struct {
	Terms []Term
	Const int64
}

// Sum builds a LinearExpr with coefficient 1 on each var.
func Sum(vars ...BoolVar) LinearExpr {
	terms := make([]Term, len(vars))
	for i, v := range vars {
		terms[i] = Term{Var: v, Coeff: 1}
	}
	return LinearExpr{Terms: terms}
}

// WeightedSum builds a LinearExpr from explicit terms.
func WeightedSum(terms ...Term) LinearExpr {
	return LinearExpr{Terms: append([]Term(nil), terms...)}
}

// Add returns e + other.
func (e LinearExpr) Add(other LinearExpr) LinearExpr {
	out := LinearExpr{Terms: append(append([]Term(nil), e.Terms...), other.Terms...), Const: e.Const + other.Const}
	return out
}

// Scale returns e scaled by c.
func (e LinearExpr) Scale(c int64) LinearExpr {
	terms := make([]Term, len(e.Terms))
	for i, t := range e.Terms {
		terms[i] = Term{Var: t.Var, Coeff: t.Coeff * c}
	}
	return LinearExpr{Terms: terms, Const: e.Const * c}
}

// Negate returns -e.
func (e LinearExpr) Negate() LinearExpr {
	return e.Scale(-1)
}

// Sub returns e - other.
func (e LinearExpr) Sub(other LinearExpr) LinearExpr {
	return e.Add(other.Negate())
}

// constraint is one registered linear constraint: Σ terms.Coeff*var op rhs
// (the expression's constant has already been folded into rhs).
type constraint struct {
	terms []Term
	op    compOp
	rhs   int64
}

// Model is a 0/1 linear program: boolean variables, linear equality/
// inequality constraints, and an optional linear minimization objective.
type Model struct {
	names       []string
	constraints []constraint
	objective   []Term
	minimize    bool
}

// NewModel returns an empty Model.
func NewModel() *Model {
	return &Model{}
}

// NumVars returns the number of boolean variables created so far.
func (m *Model) NumVars() int {
	return len(m.names)
}

// NewBoolVar creates and returns a new boolean decision variable.
func (m *Model) NewBoolVar(name string) BoolVar {
	id := BoolVar(len(m.names))
	m.names = append(m.names, name)
	return id
}

// VarName returns the debug name a variable was created with.
func (m *Model) VarName(v BoolVar) string {
	return m.names[v]
}

func foldConstant(e LinearExpr, rhs int64) (terms []Term, adjustedRHS int64) {
	return e.Terms, rhs - e.Const
}

// AddEquality adds the constraint e == rhs.
func (m *Model) AddEquality(e LinearExpr, rhs int64) {
	terms, adjusted := foldConstant(e, rhs)
	m.constraints = append(m.constraints, constraint{terms: terms, op: opEq, rhs: adjusted})
}

// AddLessOrEqual adds the constraint e <= rhs.
func (m *Model) AddLessOrEqual(e LinearExpr, rhs int64) {
	terms, adjusted := foldConstant(e, rhs)
	m.constraints = append(m.constraints, constraint{terms: terms, op: opLe, rhs: adjusted})
}

// AddGreaterOrEqual adds the constraint e >= rhs, i.e. -e <= -rhs.
func (m *Model) AddGreaterOrEqual(e LinearExpr, rhs int64) {
	m.AddLessOrEqual(e.Negate(), -rhs)
}

// Fix pins var to value (0 or 1).
func (m *Model) Fix(v BoolVar, value int64) {
	m.AddEquality(Sum(v), value)
}

// Minimize sets the objective to minimize e. Only the linear terms matter;
// a constant offset does not affect which assignment is optimal.
func (m *Model) Minimize(e LinearExpr) {
	m.objective = e.Terms
	m.minimize = true
}

// HasObjective reports whether Minimize has been called.
func (m *Model) HasObjective() bool {
	return m.minimize
}

func (m *Model) String() string {
	return fmt.Sprintf("Model{vars=%d constraints=%d}", len(m.names), len(m.constraints))
}
