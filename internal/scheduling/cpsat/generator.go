// Package cpsat implements the CP-SAT Generator: a constraint-programming
// schedule generator built atop internal/solver's boolean constraint engine,
// modeling the same decision variables and hard constraints the original
// OR-Tools implementation used (ortools_generator.py), translated onto the
// hand-rolled solver since no CP-SAT binding exists for Go.
package cpsat

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/shiftforge/scheduler/internal/model"
	"github.com/shiftforge/scheduler/internal/scheduling"
	"github.com/shiftforge/scheduler/internal/solver"
)

// employeeStore is the narrow slice of repository.EmployeeRepository the
// CP-SAT Generator depends on.
type employeeStore interface {
	List(ctx context.Context) ([]model.Employee, error)
}

// shiftStore is the narrow slice of repository.ShiftRepository the CP-SAT
// Generator depends on.
type shiftStore interface {
	List(ctx context.Context) ([]model.Shift, error)
}

// absenceStore is the narrow slice of repository.AbsenceRepository the
// CP-SAT Generator depends on.
type absenceStore interface {
	ListInRange(ctx context.Context, from, to time.Time) ([]model.Absence, error)
}

// scheduleStore is the narrow slice of repository.ScheduleRepository the
// CP-SAT Generator depends on.
type scheduleStore interface {
	Replace(ctx context.Context, monthKey string, entries []model.ScheduleEntry) (*model.MonthlySchedule, error)
}

const (
	defaultMinDailyRestHours = 11
	defaultMonthlyHoursCap   = 160
	defaultFairnessWeight    = 10
)

// Generator is the constraint-programming schedule generator. It is the
// core of the system: every hard legal constraint (closed days, coverage,
// daily/weekly rest, monthly hour caps) is encoded as a linear constraint
// over boolean assignment variables, and a fairness objective minimizes each
// employee's deviation from the average number of candidate slots per
// employee (see addFairnessObjective).
type Generator struct {
	employees employeeStore
	shifts    shiftStore
	absences  absenceStore
	schedules scheduleStore
	config    *scheduling.ConfigLoader
	validator *scheduling.Validator
	budget    time.Duration
}

// NewGenerator builds a Generator over the given repositories, config
// loader, validator, and solver wall-clock budget.
func NewGenerator(employees employeeStore, shifts shiftStore, absences absenceStore, schedules scheduleStore, config *scheduling.ConfigLoader, validator *scheduling.Validator, budget time.Duration) *Generator {
	if budget <= 0 {
		budget = 60 * time.Second
	}
	return &Generator{
		employees: employees,
		shifts:    shifts,
		absences:  absences,
		schedules: schedules,
		config:    config,
		validator: validator,
		budget:    budget,
	}
}

// tripleKey identifies one (employee, day, shift) decision variable.
type tripleKey struct {
	EmployeeID uuid.UUID
	Day        int
	ShiftID    uuid.UUID
}

// Generate builds and solves the CP-SAT model for the given year/month and
// scenario, persisting the resulting schedule on success. Returns a
// *scheduling.GenerationError if no feasible/optimal solution is found.
func (g *Generator) Generate(ctx context.Context, year, month int, scenarioType string) (*model.MonthlySchedule, []model.ScheduleEntry, []scheduling.Issue, error) {
	employees, err := g.employees.List(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	shifts, err := g.shifts.List(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	if len(employees) == 0 || len(shifts) == 0 {
		return nil, nil, nil, scheduling.NewGenerationError("missing input data to generate schedule")
	}

	monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)
	lastDay := monthEnd.Day()

	absences, err := g.absences.ListInRange(ctx, monthStart, monthEnd)
	if err != nil {
		return nil, nil, nil, err
	}
	holidays, err := g.config.Holidays(ctx, monthStart, monthEnd)
	if err != nil {
		return nil, nil, nil, err
	}
	rules, err := g.config.ActiveRules(ctx, monthStart, monthEnd, nil, nil)
	if err != nil {
		return nil, nil, nil, err
	}
	genParams, err := g.config.GeneratorParams(ctx, scenarioType)
	if err != nil {
		return nil, nil, nil, err
	}

	absenceMap := buildAbsenceMap(absences, monthStart, monthEnd)
	holidayMap := buildHolidayMap(holidays)

	b := newModelBuilder(employees, shifts, monthStart, lastDay, absenceMap, holidayMap)
	b.addCoverageConstraints()
	b.addDailyRestConstraints(minDailyRestHours(rules))
	b.addWeeklyRestConstraints()
	b.addMonthlyHoursConstraints()
	b.addFairnessObjective(fairnessWeight(genParams))

	status, values, err := solver.Solve(ctx, b.model, g.budget)
	if err != nil {
		return nil, nil, nil, err
	}
	if status != solver.StatusOptimal && status != solver.StatusFeasible {
		return nil, nil, nil, scheduling.NewGenerationError(
			"solver did not find a solution (status: %s). Employees: %d, Shifts: %d, Variables: %d",
			status, len(employees), len(shifts), b.model.NumVars(),
		)
	}

	var entries []model.ScheduleEntry
	for key, v := range b.assignments {
		if values[v] == 1 {
			entries = append(entries, model.ScheduleEntry{
				EmployeeID: key.EmployeeID,
				ShiftID:    key.ShiftID,
				Date:       monthStart.AddDate(0, 0, key.Day-1),
			})
		}
	}

	monthKey := model.MonthKey(year, month)
	schedule, err := g.schedules.Replace(ctx, monthKey, entries)
	if err != nil {
		return nil, nil, nil, err
	}

	issues, err := g.validator.ValidateBasic(ctx, schedule.Entries, shifts, holidays)
	if err != nil {
		return nil, nil, nil, err
	}

	return schedule, schedule.Entries, issues, nil
}

// buildAbsenceMap expands each absence's range, clipped to the schedule
// window, into a date -> set<employee_id> map.
func buildAbsenceMap(absences []model.Absence, monthStart, monthEnd time.Time) map[string]map[uuid.UUID]bool {
	out := map[string]map[uuid.UUID]bool{}
	for _, a := range absences {
		start := a.From
		if start.Before(monthStart) {
			start = monthStart
		}
		end := a.To
		if end.After(monthEnd) {
			end = monthEnd
		}
		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			key := d.Format("2006-01-02")
			if out[key] == nil {
				out[key] = map[uuid.UUID]bool{}
			}
			out[key][a.EmployeeID] = true
		}
	}
	return out
}

func buildHolidayMap(holidays []model.Holiday) map[string]model.Holiday {
	out := make(map[string]model.Holiday, len(holidays))
	for _, h := range holidays {
		out[h.Date.Format("2006-01-02")] = h
	}
	return out
}

// minDailyRestHours reads REST_DAILY's min_hours parameter from the active
// rule set, falling back to the spec default of 11 hours.
func minDailyRestHours(rules []model.LaborLawRule) int {
	for _, r := range rules {
		code := r.Code
		if code != "REST_DAILY" && code != "rest_daily" && code != "odpoczynek_dobowy" {
			continue
		}
		params := map[string]float64{}
		if len(r.Parameters) > 0 {
			if err := json.Unmarshal(r.Parameters, &params); err == nil {
				if v, ok := params["min_hours"]; ok {
					return int(v)
				}
			}
		}
		break
	}
	return defaultMinDailyRestHours
}

// fairnessWeight reads the "fairness" weight from the scenario's generator
// parameters, falling back to the spec default of 10.
func fairnessWeight(params *model.GeneratorParameters) int64 {
	if params == nil {
		return defaultFairnessWeight
	}
	weights, err := params.WeightsMap()
	if err != nil {
		return defaultFairnessWeight
	}
	if w, ok := weights["fairness"]; ok {
		return int64(w)
	}
	return defaultFairnessWeight
}
