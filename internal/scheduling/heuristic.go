package scheduling

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/shiftforge/scheduler/internal/model"
)

// heuristicEmployeeStore is the narrow slice of repository.EmployeeRepository
// the Heuristic Generator depends on.
type heuristicEmployeeStore interface {
	List(ctx context.Context) ([]model.Employee, error)
}

// heuristicShiftStore is the narrow slice of repository.ShiftRepository the
// Heuristic Generator depends on.
type heuristicShiftStore interface {
	List(ctx context.Context) ([]model.Shift, error)
}

// heuristicAbsenceStore is the narrow slice of repository.AbsenceRepository
// the Heuristic Generator depends on.
type heuristicAbsenceStore interface {
	ListInRange(ctx context.Context, from, to time.Time) ([]model.Absence, error)
}

// heuristicScheduleStore is the narrow slice of repository.ScheduleRepository
// the Heuristic Generator depends on.
type heuristicScheduleStore interface {
	Replace(ctx context.Context, monthKey string, entries []model.ScheduleEntry) (*model.MonthlySchedule, error)
}

// HeuristicGenerator is a deterministic, single-pass round-robin filler.
// Fast fallback and regression baseline: it always produces some schedule
// but ignores most legal constraints (rest, hour caps, store-closed
// holidays — spec design note, open question 4, preserved).
type HeuristicGenerator struct {
	employees heuristicEmployeeStore
	shifts    heuristicShiftStore
	absences  heuristicAbsenceStore
	schedules heuristicScheduleStore
	validator *Validator
}

// NewHeuristicGenerator builds a HeuristicGenerator over the given repositories.
func NewHeuristicGenerator(employees heuristicEmployeeStore, shifts heuristicShiftStore, absences heuristicAbsenceStore, schedules heuristicScheduleStore, validator *Validator) *HeuristicGenerator {
	return &HeuristicGenerator{
		employees: employees,
		shifts:    shifts,
		absences:  absences,
		schedules: schedules,
		validator: validator,
	}
}

// roleQueue is a FIFO queue of employee IDs for one role name, implemented
// as a slice with pop-from-front/push-to-back — the Go shape of the
// original's collections.deque per-role grouping.
type roleQueue []uuid.UUID

func (q *roleQueue) popFront() uuid.UUID {
	id := (*q)[0]
	*q = (*q)[1:]
	return id
}

func (q *roleQueue) pushBack(id uuid.UUID) {
	*q = append(*q, id)
}

// Generate runs the round-robin heuristic for the given year/month and
// persists the resulting schedule + entries, find-or-create +
// delete-children + insert-children in one transaction. Returns the
// schedule, its entries, and the basic-mode validation issues.
func (g *HeuristicGenerator) Generate(ctx context.Context, year, month int) (*model.MonthlySchedule, []model.ScheduleEntry, []Issue, error) {
	employees, err := g.employees.List(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	shifts, err := g.shifts.List(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	if len(employees) == 0 || len(shifts) == 0 {
		return nil, nil, nil, NewGenerationError("missing input data to generate schedule")
	}

	monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)

	absences, err := g.absences.ListInRange(ctx, monthStart, monthEnd)
	if err != nil {
		return nil, nil, nil, err
	}

	grouped, roleNameByID := groupEmployeesByRoleName(employees)
	if len(grouped) == 0 {
		return nil, nil, nil, NewGenerationError("no role-assigned employees")
	}
	_ = roleNameByID

	absenceMap := buildAbsenceMap(absences, monthStart, monthEnd)

	var entries []model.ScheduleEntry
	for day := monthStart; !day.After(monthEnd); day = day.AddDate(0, 0, 1) {
		absentToday := absenceMap[day.Format("2006-01-02")]

		for _, shift := range shifts {
			requirements, err := shift.RequiredStaffingMap()
			if err != nil {
				return nil, nil, nil, err
			}
			if len(requirements) == 0 {
				continue
			}

			for roleName, requiredCount := range requirements {
				queue, ok := grouped[roleName]
				if !ok || len(*queue) == 0 {
					return nil, nil, nil, NewGenerationError("no employees for role %s", roleName)
				}

				for i := 0; i < requiredCount; i++ {
					if len(*queue) == 0 {
						return nil, nil, nil, NewGenerationError("insufficient employees for role %s", roleName)
					}

					assigned := false
					cycleLen := len(*queue)
					for j := 0; j < cycleLen; j++ {
						employeeID := queue.popFront()
						if absentToday[employeeID] {
							queue.pushBack(employeeID)
							continue
						}

						entries = append(entries, model.ScheduleEntry{
							EmployeeID: employeeID,
							ShiftID:    shift.ID,
							Date:       day,
						})
						queue.pushBack(employeeID)
						assigned = true
						break
					}

					if !assigned {
						return nil, nil, nil, NewGenerationError("all role %s unavailable on %s", roleName, day.Format("2006-01-02"))
					}
				}
			}
		}
	}

	monthKey := model.MonthKey(year, month)
	schedule, err := g.schedules.Replace(ctx, monthKey, entries)
	if err != nil {
		return nil, nil, nil, err
	}

	issues, err := g.validator.ValidateBasic(ctx, schedule.Entries, shifts, nil)
	if err != nil {
		return nil, nil, nil, err
	}

	return schedule, schedule.Entries, issues, nil
}

// groupEmployeesByRoleName groups employees into a FIFO queue per role
// name, skipping employees with no role assignment.
func groupEmployeesByRoleName(employees []model.Employee) (map[string]*roleQueue, map[uuid.UUID]string) {
	grouped := map[string]*roleQueue{}
	roleNameByID := map[uuid.UUID]string{}
	for _, e := range employees {
		if e.Role == nil || e.Role.Name == "" {
			continue
		}
		q, ok := grouped[e.Role.Name]
		if !ok {
			q = &roleQueue{}
			grouped[e.Role.Name] = q
		}
		q.pushBack(e.ID)
		roleNameByID[e.ID] = e.Role.Name
	}
	return grouped, roleNameByID
}

// buildAbsenceMap expands each absence's inclusive range, clipped to
// [monthStart, monthEnd], into a date -> set<employee_id> map.
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
