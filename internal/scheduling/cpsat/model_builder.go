package cpsat

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/shiftforge/scheduler/internal/model"
	"github.com/shiftforge/scheduler/internal/solver"
)

// modelBuilder accumulates the CP-SAT Generator's decision variables and
// constraints onto a solver.Model, one method per constraint family (C1-C5
// of the spec's constraint table).
type modelBuilder struct {
	model       *solver.Model
	employees   []model.Employee
	shifts      []model.Shift
	monthStart  time.Time
	lastDay     int
	absenceMap  map[string]map[uuid.UUID]bool
	holidayMap  map[string]model.Holiday
	assignments map[tripleKey]solver.BoolVar

	// byRoleName groups employee indexes (into employees) by role name, so
	// coverage constraints don't rescan the full employee list per shift/role.
	byRoleName map[string][]int
}

func newModelBuilder(employees []model.Employee, shifts []model.Shift, monthStart time.Time, lastDay int, absenceMap map[string]map[uuid.UUID]bool, holidayMap map[string]model.Holiday) *modelBuilder {
	b := &modelBuilder{
		model:       solver.NewModel(),
		employees:   employees,
		shifts:      shifts,
		monthStart:  monthStart,
		lastDay:     lastDay,
		absenceMap:  absenceMap,
		holidayMap:  holidayMap,
		assignments: map[tripleKey]solver.BoolVar{},
		byRoleName:  map[string][]int{},
	}
	for i, e := range employees {
		if e.Role == nil || e.Role.Name == "" {
			continue
		}
		b.byRoleName[e.Role.Name] = append(b.byRoleName[e.Role.Name], i)
	}
	b.createVariables()
	return b
}

// createVariables creates x[e,d,s] for every (employee, day, shift) triple
// where the employee is not absent that day. C1 (closed days) is enforced
// by omitting variables for days the store is closed, rather than creating
// them and forcing them to zero — equivalent to the original's approach,
// simpler to express in a model with no native "fix to zero" shortcut cost.
func (b *modelBuilder) createVariables() {
	for day := 1; day <= b.lastDay; day++ {
		dateKey := b.dayKey(day)
		if h, ok := b.holidayMap[dateKey]; ok && h.StoreClosed {
			continue
		}
		absentToday := b.absenceMap[dateKey]

		for _, e := range b.employees {
			if absentToday[e.ID] {
				continue
			}
			for _, s := range b.shifts {
				name := fmt.Sprintf("e%s_d%d_s%s", e.ID, day, s.ID)
				v := b.model.NewBoolVar(name)
				b.assignments[tripleKey{EmployeeID: e.ID, Day: day, ShiftID: s.ID}] = v
			}
		}
	}
}

func (b *modelBuilder) dayKey(day int) string {
	return b.monthStart.AddDate(0, 0, day-1).Format("2006-01-02")
}

// addCoverageConstraints is C2: for each (day, shift, required role), the
// sum of that role's assignment variables must equal the required count
// exactly. Mirrors the original's quirk of silently skipping the
// requirement when no employee of that role exists at all (an
// unenforceable constraint is simply not added, rather than raised as a
// diagnostic) — grounded on ortools_generator.py's
// `if len(role_assignments) > 0`.
func (b *modelBuilder) addCoverageConstraints() {
	for day := 1; day <= b.lastDay; day++ {
		if h, ok := b.holidayMap[b.dayKey(day)]; ok && h.StoreClosed {
			continue
		}
		for _, s := range b.shifts {
			requirements, err := s.RequiredStaffingMap()
			if err != nil || len(requirements) == 0 {
				continue
			}
			for roleName, required := range requirements {
				var terms []solver.Term
				for _, idx := range b.byRoleName[roleName] {
					e := b.employees[idx]
					if v, ok := b.assignments[tripleKey{EmployeeID: e.ID, Day: day, ShiftID: s.ID}]; ok {
						terms = append(terms, solver.Term{Var: v, Coeff: 1})
					}
				}
				if len(terms) == 0 {
					continue
				}
				b.model.AddEquality(solver.WeightedSum(terms...), int64(required))
			}
		}
	}
}

// addDailyRestConstraints is C3: for each employee and each adjacent day
// pair, disallow any shift pairing whose inter-shift rest falls below
// minRestHours.
func (b *modelBuilder) addDailyRestConstraints(minRestHours int) {
	for _, e := range b.employees {
		for day := 1; day < b.lastDay; day++ {
			for _, s1 := range b.shifts {
				key1 := tripleKey{EmployeeID: e.ID, Day: day, ShiftID: s1.ID}
				v1, ok := b.assignments[key1]
				if !ok {
					continue
				}
				for _, s2 := range b.shifts {
					key2 := tripleKey{EmployeeID: e.ID, Day: day + 1, ShiftID: s2.ID}
					v2, ok := b.assignments[key2]
					if !ok {
						continue
					}
					restMinutes := (24*60 + s2.StartMinutes) - s1.EndMinutes
					if restMinutes < minRestHours*60 {
						b.model.AddLessOrEqual(solver.Sum(v1, v2), 1)
					}
				}
			}
		}
	}
}

// addWeeklyRestConstraints is C4: for each employee and each 7-day window,
// at most 6 of the 7 days may be worked.
func (b *modelBuilder) addWeeklyRestConstraints() {
	worksVarCounter := 0
	for _, e := range b.employees {
		for windowStart := 1; windowStart <= b.lastDay-6; windowStart++ {
			var windowWorks []solver.BoolVar
			for day := windowStart; day < windowStart+7 && day <= b.lastDay; day++ {
				var dayVars []solver.BoolVar
				for _, s := range b.shifts {
					if v, ok := b.assignments[tripleKey{EmployeeID: e.ID, Day: day, ShiftID: s.ID}]; ok {
						dayVars = append(dayVars, v)
					}
				}
				if len(dayVars) == 0 {
					continue
				}
				worksVarCounter++
				works := b.model.NewBoolVar(fmt.Sprintf("e%s_works_d%d#%d", e.ID, day, worksVarCounter))
				b.model.AddMaxEquality(works, dayVars)
				windowWorks = append(windowWorks, works)
			}
			if len(windowWorks) > 0 {
				b.model.AddLessOrEqual(solver.Sum(windowWorks...), 6)
			}
		}
	}
}

// addMonthlyHoursConstraints is C5: for each employee, total scheduled
// hours (scaled to tenths of an hour to keep coefficients integral) must
// not exceed their monthly cap (default 160 if unset).
func (b *modelBuilder) addMonthlyHoursConstraints() {
	for _, e := range b.employees {
		limit := defaultMonthlyHoursCap
		if e.MonthlyHourCap != nil {
			limit = *e.MonthlyHourCap
		}

		var terms []solver.Term
		for day := 1; day <= b.lastDay; day++ {
			for _, s := range b.shifts {
				v, ok := b.assignments[tripleKey{EmployeeID: e.ID, Day: day, ShiftID: s.ID}]
				if !ok {
					continue
				}
				durationTenths := int64(s.DurationHours() * 10)
				terms = append(terms, solver.Term{Var: v, Coeff: durationTenths})
			}
		}
		if len(terms) > 0 {
			b.model.AddLessOrEqual(solver.WeightedSum(terms...), int64(limit*10))
		}
	}
}

// addFairnessObjective adds the only required objective term: minimize the
// weighted sum, over employees, of the absolute deviation between an
// employee's assigned shift count and avg. Note that avg is the integer mean
// of the number of candidate (day, shift) variables each employee has, i.e.
// of the slots an employee could be assigned, not the mean of the shifts
// actually assigned; it is therefore not a true average assignment count.
func (b *modelBuilder) addFairnessObjective(fairnessWeight int64) {
	type empCount struct {
		count solver.IntVar
	}
	counts := map[uuid.UUID]empCount{}

	totalSlots := 0
	for _, e := range b.employees {
		var terms []solver.Term
		for day := 1; day <= b.lastDay; day++ {
			for _, s := range b.shifts {
				if v, ok := b.assignments[tripleKey{EmployeeID: e.ID, Day: day, ShiftID: s.ID}]; ok {
					terms = append(terms, solver.Term{Var: v, Coeff: 1})
				}
			}
		}
		if len(terms) == 0 {
			continue
		}
		totalSlots += len(terms)

		count := b.model.NewIntVar(0, int64(len(terms)), fmt.Sprintf("shifts_e%s", e.ID))
		b.model.AddEqualToExpr(count, solver.WeightedSum(terms...))
		counts[e.ID] = empCount{count: count}
	}

	if len(counts) == 0 {
		return
	}
	avg := int64(totalSlots / len(counts))

	var objective solver.LinearExpr
	for _, e := range b.employees {
		c, ok := counts[e.ID]
		if !ok {
			continue
		}
		dev := b.model.NewIntVar(0, 100, fmt.Sprintf("dev_e%s", e.ID))
		b.model.AddAbsEquality(dev, c.count.Expr().Sub(solver.LinearExpr{Const: avg}))
		objective = objective.Add(dev.Expr().Scale(fairnessWeight))
	}
	b.model.Minimize(objective)
}
