package scheduling

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftforge/scheduler/internal/model"
)

func mustShift(t *testing.T, name string, start, end int, requiredJSON string) model.Shift {
	t.Helper()
	return model.Shift{
		ID:               uuid.New(),
		Name:             name,
		StartMinutes:     start,
		EndMinutes:       end,
		RequiredStaffing: []byte(requiredJSON),
	}
}

func day2(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

func TestValidator_ValidateBasic_DailyRestViolation(t *testing.T) {
	v := NewValidator(nil)
	shift := mustShift(t, "Evening", 14*60, 22*60, `{}`)
	nextShift := mustShift(t, "Morning", 6*60, 14*60, `{}`)
	employeeID := uuid.New()

	entries := []model.ScheduleEntry{
		{EmployeeID: employeeID, ShiftID: shift.ID, Date: day2("2026-01-01"), Shift: &shift},
		{EmployeeID: employeeID, ShiftID: nextShift.ID, Date: day2("2026-01-02"), Shift: &nextShift},
	}

	issues, err := v.ValidateBasic(t.Context(), entries, []model.Shift{shift, nextShift}, nil)
	require.NoError(t, err)

	var found bool
	for _, i := range issues {
		if i.Level == levelWarning && i.Message != "" && strings.Contains(i.Message, "less than 11 hours") {
			found = true
		}
	}
	assert.True(t, found, "expected a daily rest warning, got: %+v", issues)
}

func TestValidator_ValidateBasic_WeeklyRestViolation(t *testing.T) {
	v := NewValidator(nil)
	shift := mustShift(t, "Day", 8*60, 16*60, `{}`)
	employeeID := uuid.New()

	var entries []model.ScheduleEntry
	for i := 0; i < 7; i++ {
		entries = append(entries, model.ScheduleEntry{
			EmployeeID: employeeID,
			ShiftID:    shift.ID,
			Date:       day2("2026-01-01").AddDate(0, 0, i),
			Shift:      &shift,
		})
	}

	issues, err := v.ValidateBasic(t.Context(), entries, []model.Shift{shift}, nil)
	require.NoError(t, err)

	var found bool
	for _, i := range issues {
		if strings.Contains(i.Message, "7 days in a row") {
			found = true
		}
	}
	assert.True(t, found, "expected a weekly rest warning, got: %+v", issues)
}

func TestValidator_ValidateBasic_HoursLimitViolation(t *testing.T) {
	v := NewValidator(nil)
	shift := mustShift(t, "Long", 0, 12*60, `{}`) // 12h/day
	employeeID := uuid.New()

	var entries []model.ScheduleEntry
	for i := 0; i < 4; i++ {
		entries = append(entries, model.ScheduleEntry{
			EmployeeID: employeeID,
			ShiftID:    shift.ID,
			Date:       day2("2026-01-01").AddDate(0, 0, i*2), // spread to avoid weekly-rest overlap
			Shift:      &shift,
		})
	}

	issues, err := v.ValidateBasic(t.Context(), entries, []model.Shift{shift}, nil)
	require.NoError(t, err)

	var found bool
	for _, i := range issues {
		if strings.Contains(i.Message, "exceeded working hours limit") {
			found = true
		}
	}
	assert.True(t, found, "expected an hours-limit warning, got: %+v", issues)
}

func TestValidator_ValidateBasic_HolidayMatchFlagsRegardlessOfStoreClosed(t *testing.T) {
	v := NewValidator(nil)
	shift := mustShift(t, "Day", 8*60, 16*60, `{}`)
	employeeID := uuid.New()

	holidays := []model.Holiday{
		{Date: day2("2026-01-01"), Name: "New Year", StoreClosed: false},
	}
	entries := []model.ScheduleEntry{
		{EmployeeID: employeeID, ShiftID: shift.ID, Date: day2("2026-01-01"), Shift: &shift},
	}

	issues, err := v.ValidateBasic(t.Context(), entries, []model.Shift{shift}, holidays)
	require.NoError(t, err)

	var found bool
	for _, i := range issues {
		if i.Level == levelWarning && strings.Contains(i.Message, "assigned to work on a holiday") {
			found = true
		}
	}
	assert.True(t, found, "expected a holiday warning even though store_closed=false, got: %+v", issues)
}

func TestValidator_ValidateBasic_CoverageShortfall(t *testing.T) {
	v := NewValidator(nil)
	shift := mustShift(t, "Morning", 6*60, 14*60, `{"cashier":2}`)

	entries := []model.ScheduleEntry{
		{
			EmployeeID: uuid.New(),
			ShiftID:    shift.ID,
			Date:       day2("2026-01-01"),
			Shift:      &shift,
			Employee: &model.Employee{
				Role: &model.Role{Name: "cashier"},
			},
		},
	}

	issues, err := v.ValidateBasic(t.Context(), entries, []model.Shift{shift}, nil)
	require.NoError(t, err)

	var found bool
	for _, i := range issues {
		if i.Level == levelError && strings.Contains(i.Message, "brakuje 1 pracowników w roli cashier") {
			found = true
		}
	}
	assert.True(t, found, "expected a coverage shortfall error, got: %+v", issues)
}

func TestCanonicalizeCode_ResolvesLegacyAliases(t *testing.T) {
	assert.Equal(t, ruleKeyRestDaily, canonicalizeCode("odpoczynek_dobowy"))
	assert.Equal(t, ruleKeyRestDaily, canonicalizeCode("REST_DAILY"))
	assert.Equal(t, ruleKeyRestWeekly, canonicalizeCode("odpoczynek_tygodniowy"))
	assert.Equal(t, ruleKeyHoursLimit, canonicalizeCode("limit_godzin_miesieczny"))
	assert.Equal(t, ruleKeyHolidayWork, canonicalizeCode("PRACA_W_SWIETO"))
}

func TestSummarize_PassedOnlyWhenNoBlockingIssues(t *testing.T) {
	code := "rest_daily"
	issues := []Issue{
		{Level: levelWarning, Message: "w1"},
		{Level: levelError, Message: "e1", RuleCode: &code},
	}
	s := Summarize(issues)
	assert.Equal(t, 2, s.TotalIssues)
	assert.Equal(t, 1, s.BlockingIssues)
	assert.Equal(t, 1, s.Warnings)
	assert.False(t, s.Passed)

	s2 := Summarize([]Issue{{Level: levelWarning, Message: "w1"}})
	assert.True(t, s2.Passed)
}
