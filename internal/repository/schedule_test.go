package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftforge/scheduler/internal/model"
	"github.com/shiftforge/scheduler/internal/repository"
	"github.com/shiftforge/scheduler/internal/testutil"
)

func TestScheduleRepository_Replace_CreatesAndReplacesEntries(t *testing.T) {
	db := testutil.SetupTestDB(t)
	scheduleRepo := repository.NewScheduleRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	shiftRepo := repository.NewShiftRepository(db)
	ctx := context.Background()

	role := &model.Role{Name: "Cashier"}
	require.NoError(t, roleRepo.Create(ctx, role))

	employee := &model.Employee{FirstName: "Anna", LastName: "Kowalska", RoleID: &role.ID}
	require.NoError(t, employeeRepo.Create(ctx, employee))

	shift := &model.Shift{Name: "Morning", StartMinutes: 8 * 60, EndMinutes: 16 * 60}
	require.NoError(t, shiftRepo.Create(ctx, shift))

	monthKey := model.MonthKey(2024, 1)
	entries := []model.ScheduleEntry{
		{EmployeeID: employee.ID, ShiftID: shift.ID, Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	schedule, err := scheduleRepo.Replace(ctx, monthKey, entries)
	require.NoError(t, err)
	assert.Equal(t, monthKey, schedule.MonthKey)
	assert.Len(t, schedule.Entries, 1)

	// Replacing again with a different set must delete the prior entries.
	entries2 := []model.ScheduleEntry{
		{EmployeeID: employee.ID, ShiftID: shift.ID, Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
		{EmployeeID: employee.ID, ShiftID: shift.ID, Date: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)},
	}
	schedule2, err := scheduleRepo.Replace(ctx, monthKey, entries2)
	require.NoError(t, err)
	assert.Equal(t, schedule.ID, schedule2.ID, "re-generating the same month must reuse the existing schedule row")
	assert.Len(t, schedule2.Entries, 2)
}

func TestScheduleRepository_GetByMonthKey_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewScheduleRepository(db)

	_, err := repo.GetByMonthKey(context.Background(), "2099-12")
	assert.ErrorIs(t, err, repository.ErrScheduleNotFound)
}
