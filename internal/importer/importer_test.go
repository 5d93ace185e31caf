package importer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/shiftforge/scheduler/internal/model"
)

func buildWorkbook(t *testing.T) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	_, err := f.NewSheet(SheetEmployees)
	require.NoError(t, err)
	for cell, v := range map[string]string{
		"A1": "first_name", "B1": "last_name", "C1": "role_name", "D1": "employment_fraction", "E1": "monthly_hour_cap",
		"A2": "Anna", "B2": "Kowalska", "C2": "Cashier", "D2": "full_time", "E2": "160",
		"A3": "", "B3": "Missing", "C3": "", "D3": "", "E3": "",
	} {
		require.NoError(t, f.SetCellValue(SheetEmployees, cell, v))
	}

	_, err = f.NewSheet(SheetShifts)
	require.NoError(t, err)
	for cell, v := range map[string]string{
		"A1": "name", "B1": "start", "C1": "end", "D1": "required_staffing",
		"A2": "Morning", "B2": "06:00", "C2": "14:00", "D2": "Cashier:2,Stocker:1",
	} {
		require.NoError(t, f.SetCellValue(SheetShifts, cell, v))
	}

	_, err = f.NewSheet(SheetStaffingTemplates)
	require.NoError(t, err)
	for cell, v := range map[string]string{
		"A1": "day_type", "B1": "shift_name", "C1": "role_name", "D1": "min_staff", "E1": "target_staff",
		"A2": "WEEKDAY", "B2": "Morning", "C2": "Cashier", "D2": "1", "E2": "2",
	} {
		require.NoError(t, f.SetCellValue(SheetStaffingTemplates, cell, v))
	}

	require.NoError(t, f.DeleteSheet("Sheet1"))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return &buf
}

func TestParseWorkbook_ParsesAllSheets(t *testing.T) {
	wb, err := ParseWorkbook(buildWorkbook(t))
	require.NoError(t, err)

	require.Len(t, wb.Employees, 1)
	assert.Equal(t, "Anna", wb.Employees[0].FirstName)
	assert.Equal(t, "Cashier", wb.Employees[0].RoleName)
	assert.Equal(t, model.EmploymentFraction("full_time"), wb.Employees[0].EmploymentFraction)
	require.NotNil(t, wb.Employees[0].MonthlyHourCap)
	assert.Equal(t, 160, *wb.Employees[0].MonthlyHourCap)

	require.Len(t, wb.RowErrors, 1)
	assert.Equal(t, SheetEmployees, wb.RowErrors[0].Sheet)

	require.Len(t, wb.Shifts, 1)
	assert.Equal(t, 6*60, wb.Shifts[0].StartMinutes)
	assert.Equal(t, 14*60, wb.Shifts[0].EndMinutes)
	assert.Equal(t, 2, wb.Shifts[0].RequiredStaffing["Cashier"])
	assert.Equal(t, 1, wb.Shifts[0].RequiredStaffing["Stocker"])

	require.Len(t, wb.StaffingTemplates, 1)
	assert.Equal(t, model.DayTypeWeekday, wb.StaffingTemplates[0].DayType)
	assert.Equal(t, "Morning", wb.StaffingTemplates[0].ShiftName)
	assert.Equal(t, 1, wb.StaffingTemplates[0].MinStaff)
	assert.Equal(t, 2, wb.StaffingTemplates[0].TargetStaff)
}

func TestParseWorkbook_MissingSheetsYieldEmptyResult(t *testing.T) {
	f := excelize.NewFile()
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	_ = f.Close()

	wb, err := ParseWorkbook(&buf)
	require.NoError(t, err)
	assert.Empty(t, wb.Employees)
	assert.Empty(t, wb.Shifts)
	assert.Empty(t, wb.StaffingTemplates)
}

func TestParseClock_RejectsMalformedInput(t *testing.T) {
	_, err := parseClock("not-a-time")
	assert.Error(t, err)
}

func TestParseRequiredStaffing_RejectsMalformedEntry(t *testing.T) {
	_, err := parseRequiredStaffing("Cashier-2")
	assert.Error(t, err)
}
