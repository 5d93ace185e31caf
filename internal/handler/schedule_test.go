package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftforge/scheduler/internal/handler"
	"github.com/shiftforge/scheduler/internal/model"
	"github.com/shiftforge/scheduler/internal/repository"
	"github.com/shiftforge/scheduler/internal/scheduling"
	"github.com/shiftforge/scheduler/internal/testutil"
)

// TestScheduleHandler_ValidateEntries_HonorsEmployeeMonthlyHourCap proves
// that a configured MonthlyHourCap below the rule's default_limit actually
// overrides it during HTTP-driven rules-based validation, rather than the
// request silently falling back to the 160h default.
func TestScheduleHandler_ValidateEntries_HonorsEmployeeMonthlyHourCap(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := t.Context()

	employeeRepo := repository.NewEmployeeRepository(db)
	shiftRepo := repository.NewShiftRepository(db)
	absenceRepo := repository.NewAbsenceRepository(db)
	holidayRepo := repository.NewHolidayRepository(db)
	ruleRepo := repository.NewLaborLawRuleRepository(db)
	templateRepo := repository.NewStaffingTemplateRepository(db)
	genParamsRepo := repository.NewGeneratorParametersRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)

	monthlyCap := 20
	employee := &model.Employee{FirstName: "Piotr", LastName: "Zielinski", MonthlyHourCap: &monthlyCap}
	require.NoError(t, employeeRepo.Create(ctx, employee))

	shift := &model.Shift{Name: "Day", StartMinutes: 8 * 60, EndMinutes: 16 * 60, RequiredStaffing: []byte(`{}`)}
	require.NoError(t, shiftRepo.Create(ctx, shift))

	rule := &model.LaborLawRule{
		Code:     "hours_weekly_max",
		Name:     "Monthly hours limit",
		Category: model.CategoryHoursLimit,
		Severity: model.SeverityHard,
	}
	require.NoError(t, ruleRepo.Create(ctx, rule))

	configLoader := scheduling.NewConfigLoader(holidayRepo, templateRepo, ruleRepo, genParamsRepo, employeeRepo)
	validator := scheduling.NewValidator(configLoader)
	h := handler.NewScheduleHandler(nil, validator, configLoader, scheduleRepo, shiftRepo, absenceRepo, employeeRepo)

	// 3 eight-hour shifts = 24h: over the employee's 20h cap, but well
	// under the rule's unconfigured 160h default_limit.
	entries := []model.ScheduleEntry{
		{EmployeeID: employee.ID, ShiftID: shift.ID, Date: day("2026-02-02"), Shift: shift},
		{EmployeeID: employee.ID, ShiftID: shift.ID, Date: day("2026-02-03"), Shift: shift},
		{EmployeeID: employee.ID, ShiftID: shift.ID, Date: day("2026-02-04"), Shift: shift},
	}

	body, err := json.Marshal(map[string]any{
		"entries": entries,
		"year":    2026,
		"month":   2,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/validation/entries", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.ValidateEntries(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Issues []scheduling.Issue `json:"issues"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	var found bool
	for _, i := range resp.Issues {
		if i.Level == "error" && i.RuleCode != nil && *i.RuleCode == "hours_weekly_max" {
			found = true
		}
	}
	assert.True(t, found, "expected an hours-limit issue honoring the employee's 20h cap, got: %+v", resp.Issues)
}
