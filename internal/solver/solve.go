package solver

import (
	"context"
	"time"
)

// Status mirrors the small subset of CP-SAT result statuses the Generation
// Façade needs to distinguish.
type Status int

const (
	StatusUnknown Status = iota
	StatusModelInvalid
	StatusInfeasible
	StatusFeasible
	StatusOptimal
)

func (s Status) String() string {
	switch s {
	case StatusModelInvalid:
		return "MODEL_INVALID"
	case StatusInfeasible:
		return "INFEASIBLE"
	case StatusFeasible:
		return "FEASIBLE"
	case StatusOptimal:
		return "OPTIMAL"
	default:
		return "UNKNOWN"
	}
}

// unassigned / false / true cell states for a partial assignment.
const (
	cellUnassigned int8 = -1
	cellFalse      int8 = 0
	cellTrue       int8 = 1
)

// Solve runs branch-and-bound search over model's boolean variables,
// stopping at the earlier of ctx cancellation or budget elapsing. It
// returns the best-known assignment (by variable index) alongside a status:
// OPTIMAL if the search tree was fully explored, FEASIBLE if a solution was
// found but the budget/ctx cut the search short, INFEASIBLE if the tree was
// fully explored with no solution, UNKNOWN if cut short with nothing found.
func Solve(ctx context.Context, m *Model, budget time.Duration) (Status, []int64, error) {
	if len(m.names) == 0 {
		return StatusModelInvalid, nil, nil
	}

	deadline := time.Now().Add(budget)
	s := &search{
		model:      m,
		deadline:   deadline,
		ctx:        ctx,
		assignment: make([]int8, len(m.names)),
	}
	for i := range s.assignment {
		s.assignment[i] = cellUnassigned
	}

	exhausted := s.run(0)

	if !s.found {
		if exhausted {
			return StatusInfeasible, nil, nil
		}
		return StatusUnknown, nil, nil
	}

	values := make([]int64, len(m.names))
	for i, v := range s.bestAssignment {
		values[i] = int64(v)
	}
	if exhausted {
		return StatusOptimal, values, nil
	}
	return StatusFeasible, values, nil
}

type search struct {
	model          *Model
	deadline       time.Time
	ctx            context.Context
	assignment     []int8
	found          bool
	bestObjective  int64
	bestAssignment []int8
}

func (s *search) timeUp() bool {
	if s.ctx.Err() != nil {
		return true
	}
	return time.Now().After(s.deadline)
}

// run performs DFS from variable index idx onward. Returns true if this
// subtree was fully explored (no early cutoff), false if the search was cut
// short by the time/context budget.
func (s *search) run(idx int) bool {
	if s.timeUp() {
		return false
	}

	if !s.feasible() {
		return true // this branch is pruned, but it was fully explored (it's dead)
	}

	if idx == len(s.assignment) {
		s.considerSolution()
		return true
	}

	if s.found && s.boundExceedsBest(idx) {
		return true // pruned by objective bound, fully explored as far as this branch goes
	}

	exhaustedLeft := s.branch(idx, cellFalse)
	if !exhaustedLeft {
		return false
	}
	exhaustedRight := s.branch(idx, cellTrue)
	return exhaustedRight
}

func (s *search) branch(idx int, value int8) bool {
	s.assignment[idx] = value
	exhausted := s.run(idx + 1)
	s.assignment[idx] = cellUnassigned
	return exhausted
}

// feasible reports whether the current partial assignment can still satisfy
// every constraint, using a min/max achievable-sum bound per constraint
// (valid for integer coefficients of any sign and size, such as the
// duration-in-tenths coefficients of the CP-SAT Generator's hour caps).
func (s *search) feasible() bool {
	for _, c := range s.model.constraints {
		var minSum, maxSum int64
		for _, t := range c.terms {
			switch s.assignment[t.Var] {
			case cellTrue:
				minSum += t.Coeff
				maxSum += t.Coeff
			case cellUnassigned:
				if t.Coeff > 0 {
					maxSum += t.Coeff
				} else if t.Coeff < 0 {
					minSum += t.Coeff
				}
			}
		}
		switch c.op {
		case opEq:
			if c.rhs < minSum || c.rhs > maxSum {
				return false
			}
		case opLe:
			if minSum > c.rhs {
				return false
			}
		}
	}
	return true
}

// boundExceedsBest computes the best-case (minimum) objective value
// reachable from the current partial assignment and reports whether it
// already meets or exceeds the best complete solution found so far.
func (s *search) boundExceedsBest(idx int) bool {
	var bound int64
	for _, t := range s.model.objective {
		switch s.assignment[t.Var] {
		case cellTrue:
			bound += t.Coeff
		case cellFalse:
			// contributes nothing
		case cellUnassigned:
			if t.Coeff < 0 {
				bound += t.Coeff
			}
		}
	}
	return bound >= s.bestObjective
}

func (s *search) considerSolution() {
	var objective int64
	for _, t := range s.model.objective {
		if s.assignment[t.Var] == cellTrue {
			objective += t.Coeff
		}
	}
	if s.found && objective >= s.bestObjective {
		return
	}
	s.found = true
	s.bestObjective = objective
	s.bestAssignment = append([]int8(nil), s.assignment...)
}
