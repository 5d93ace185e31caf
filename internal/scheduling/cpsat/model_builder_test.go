package cpsat

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftforge/scheduler/internal/model"
	"github.com/shiftforge/scheduler/internal/solver"
)

func mustRole(name string) *model.Role {
	return &model.Role{ID: uuid.New(), Name: name}
}

func mustEmployee(role *model.Role) model.Employee {
	return model.Employee{ID: uuid.New(), RoleID: &role.ID, Role: role}
}

func mustShift(name string, start, end int, requiredJSON string) model.Shift {
	return model.Shift{ID: uuid.New(), Name: name, StartMinutes: start, EndMinutes: end, RequiredStaffing: []byte(requiredJSON)}
}

func TestModelBuilder_CreateVariables_SkipsAbsentAndClosedDays(t *testing.T) {
	role := mustRole("cashier")
	emp := mustEmployee(role)
	shift := mustShift("Day", 8*60, 16*60, `{}`)
	monthStart := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	absenceMap := map[string]map[uuid.UUID]bool{
		"2026-02-02": {emp.ID: true},
	}
	holidayMap := map[string]model.Holiday{
		"2026-02-03": {Date: monthStart.AddDate(0, 0, 2), StoreClosed: true},
	}

	b := newModelBuilder([]model.Employee{emp}, []model.Shift{shift}, monthStart, 5, absenceMap, holidayMap)

	_, ok1 := b.assignments[tripleKey{EmployeeID: emp.ID, Day: 1, ShiftID: shift.ID}]
	assert.True(t, ok1, "day 1 should have a variable")

	_, ok2 := b.assignments[tripleKey{EmployeeID: emp.ID, Day: 2, ShiftID: shift.ID}]
	assert.False(t, ok2, "day 2 is an absence day")

	_, ok3 := b.assignments[tripleKey{EmployeeID: emp.ID, Day: 3, ShiftID: shift.ID}]
	assert.False(t, ok3, "day 3 is a closed holiday")
}

func TestModelBuilder_AddCoverageConstraints_SkipsUnstaffableRole(t *testing.T) {
	role := mustRole("cashier")
	emp := mustEmployee(role)
	shift := mustShift("Day", 8*60, 16*60, `{"stocker":1}`)
	monthStart := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	b := newModelBuilder([]model.Employee{emp}, []model.Shift{shift}, monthStart, 1, nil, nil)
	varsBefore := b.model.NumVars()
	b.addCoverageConstraints()
	// No "stocker" employees exist, so the requirement is silently
	// unenforceable and addCoverageConstraints must not introduce any new
	// variables for it (grounded on the original generator's behavior of
	// only adding the constraint when role_assignments is non-empty).
	require.Equal(t, varsBefore, b.model.NumVars())
}

func TestModelBuilder_AddDailyRestConstraints_FlagsShortRest(t *testing.T) {
	role := mustRole("cashier")
	emp := mustEmployee(role)
	evening := mustShift("Evening", 14*60, 22*60, `{}`)
	morning := mustShift("Morning", 6*60, 14*60, `{}`)
	monthStart := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	b := newModelBuilder([]model.Employee{emp}, []model.Shift{evening, morning}, monthStart, 2, nil, nil)
	b.addDailyRestConstraints(11)
	// Of the four day-1/day-2 pairings only Evening -> Morning rests less
	// than 11h (22:00 -> 06:00 = 8h), so exactly one constraint is added
	// over the 4 variables (1 employee x 2 days x 2 shifts).
	assert.Equal(t, "Model{vars=4 constraints=1}", b.model.String())
}

func TestModelBuilder_AddMonthlyHoursConstraints_UsesDefaultCapWhenUnset(t *testing.T) {
	role := mustRole("cashier")
	emp := mustEmployee(role)
	shift := mustShift("Day", 0, 8*60, `{}`)
	monthStart := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	statusWithDaysWorked := func(worked int) solver.Status {
		b := newModelBuilder([]model.Employee{emp}, []model.Shift{shift}, monthStart, 28, nil, nil)
		b.addMonthlyHoursConstraints()
		for day := 1; day <= 28; day++ {
			v := b.assignments[tripleKey{EmployeeID: emp.ID, Day: day, ShiftID: shift.ID}]
			if day <= worked {
				b.model.Fix(v, 1)
			} else {
				b.model.Fix(v, 0)
			}
		}
		status, _, err := solver.Solve(context.Background(), b.model, time.Second)
		require.NoError(t, err)
		return status
	}

	// No MonthlyHourCap is set, so the 160h default applies: 20 eight-hour
	// days fit exactly, a 21st does not.
	assert.Equal(t, solver.StatusOptimal, statusWithDaysWorked(20))
	assert.Equal(t, solver.StatusInfeasible, statusWithDaysWorked(21))
}

func TestModelBuilder_AddFairnessObjective_SetsModelObjective(t *testing.T) {
	role := mustRole("cashier")
	emp1 := mustEmployee(role)
	emp2 := mustEmployee(role)
	shift := mustShift("Day", 8*60, 16*60, `{}`)
	monthStart := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	b := newModelBuilder([]model.Employee{emp1, emp2}, []model.Shift{shift}, monthStart, 3, nil, nil)
	b.addFairnessObjective(10)
	assert.True(t, b.model.HasObjective())
}
