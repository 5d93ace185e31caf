package cpsat

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shiftforge/scheduler/internal/model"
	"github.com/shiftforge/scheduler/internal/scheduling"
)

type mockEmployees struct{ mock.Mock }

func (m *mockEmployees) List(ctx context.Context) ([]model.Employee, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Employee), args.Error(1)
}

type mockShifts struct{ mock.Mock }

func (m *mockShifts) List(ctx context.Context) ([]model.Shift, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Shift), args.Error(1)
}

type mockAbsences struct{ mock.Mock }

func (m *mockAbsences) ListInRange(ctx context.Context, from, to time.Time) ([]model.Absence, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]model.Absence), args.Error(1)
}

type mockSchedules struct{ mock.Mock }

func (m *mockSchedules) Replace(ctx context.Context, monthKey string, entries []model.ScheduleEntry) (*model.MonthlySchedule, error) {
	args := m.Called(ctx, monthKey, entries)
	return args.Get(0).(*model.MonthlySchedule), args.Error(1)
}

type mockHolidays struct{ mock.Mock }

func (m *mockHolidays) GetByDate(ctx context.Context, date time.Time) (*model.Holiday, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Holiday), args.Error(1)
}
func (m *mockHolidays) ListInRange(ctx context.Context, from, to time.Time) ([]model.Holiday, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]model.Holiday), args.Error(1)
}
func (m *mockHolidays) Upsert(ctx context.Context, h *model.Holiday) error {
	return m.Called(ctx, h).Error(0)
}

type mockTemplates struct{ mock.Mock }

func (m *mockTemplates) List(ctx context.Context, dayType *model.DayType, shiftID, roleID *uuid.UUID, effective *time.Time) ([]model.StaffingTemplate, error) {
	args := m.Called(ctx, dayType, shiftID, roleID, effective)
	return args.Get(0).([]model.StaffingTemplate), args.Error(1)
}
func (m *mockTemplates) Upsert(ctx context.Context, t *model.StaffingTemplate) error {
	return m.Called(ctx, t).Error(0)
}

type mockRules struct{ mock.Mock }

func (m *mockRules) ListActive(ctx context.Context, from, to time.Time, category *model.RuleCategory, severity *model.RuleSeverity) ([]model.LaborLawRule, error) {
	args := m.Called(ctx, from, to, category, severity)
	return args.Get(0).([]model.LaborLawRule), args.Error(1)
}
func (m *mockRules) GetByCode(ctx context.Context, code string) (*model.LaborLawRule, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.LaborLawRule), args.Error(1)
}

type mockGenParams struct{ mock.Mock }

func (m *mockGenParams) GetByScenario(ctx context.Context, scenarioType string) (*model.GeneratorParameters, error) {
	args := m.Called(ctx, scenarioType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.GeneratorParameters), args.Error(1)
}
func (m *mockGenParams) Upsert(ctx context.Context, p *model.GeneratorParameters) error {
	return m.Called(ctx, p).Error(0)
}

type mockEmployeesForConfig struct{ mock.Mock }

func (m *mockEmployeesForConfig) GetByID(ctx context.Context, id uuid.UUID) (*model.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Employee), args.Error(1)
}
func (m *mockEmployeesForConfig) List(ctx context.Context) ([]model.Employee, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Employee), args.Error(1)
}

func TestGenerator_Generate_ProducesFeasibleScheduleForTinyInput(t *testing.T) {
	role := mustRole("cashier")
	emp1 := mustEmployee(role)
	emp2 := mustEmployee(role)
	shift := mustShift("Day", 8*60, 16*60, `{"cashier":1}`)

	employees := new(mockEmployees)
	employees.On("List", mock.Anything).Return([]model.Employee{emp1, emp2}, nil)

	shifts := new(mockShifts)
	shifts.On("List", mock.Anything).Return([]model.Shift{shift}, nil)

	absences := new(mockAbsences)
	absences.On("ListInRange", mock.Anything, mock.Anything, mock.Anything).Return([]model.Absence{}, nil)

	persisted := &model.MonthlySchedule{ID: uuid.New(), MonthKey: "2026-02"}
	schedules := new(mockSchedules)
	schedules.On("Replace", mock.Anything, "2026-02", mock.Anything).
		Run(func(args mock.Arguments) {
			persisted.Entries = args.Get(2).([]model.ScheduleEntry)
		}).
		Return(persisted, nil)

	holidays := new(mockHolidays)
	holidays.On("ListInRange", mock.Anything, mock.Anything, mock.Anything).Return([]model.Holiday{}, nil)

	rules := new(mockRules)
	rules.On("ListActive", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return([]model.LaborLawRule{}, nil)

	genParams := new(mockGenParams)
	genParams.On("GetByScenario", mock.Anything, model.DefaultScenario).Return(nil, nil)

	configEmployees := new(mockEmployeesForConfig)

	config := scheduling.NewConfigLoader(holidays, nil, rules, genParams, configEmployees)
	validator := scheduling.NewValidator(nil)

	gen := NewGenerator(employees, shifts, absences, schedules, config, validator, time.Second)

	schedule, entries, issues, err := gen.Generate(context.Background(), 2026, 2, model.DefaultScenario)
	require.NoError(t, err)
	assert.NotNil(t, schedule)
	assert.NotEmpty(t, entries)
	_ = issues
}

func TestGenerator_Generate_FailsFastOnEmptyInput(t *testing.T) {
	employees := new(mockEmployees)
	employees.On("List", mock.Anything).Return([]model.Employee{}, nil)
	shifts := new(mockShifts)
	shifts.On("List", mock.Anything).Return([]model.Shift{}, nil)

	gen := NewGenerator(employees, shifts, nil, nil, nil, nil, time.Second)

	_, _, _, err := gen.Generate(context.Background(), 2026, 2, model.DefaultScenario)
	var genErr *scheduling.GenerationError
	assert.ErrorAs(t, err, &genErr)
}
