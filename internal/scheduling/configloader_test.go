package scheduling

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shiftforge/scheduler/internal/model"
	"github.com/shiftforge/scheduler/internal/repository"
)

type mockHolidayStore struct{ mock.Mock }

func (m *mockHolidayStore) GetByDate(ctx context.Context, date time.Time) (*model.Holiday, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Holiday), args.Error(1)
}
func (m *mockHolidayStore) ListInRange(ctx context.Context, from, to time.Time) ([]model.Holiday, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]model.Holiday), args.Error(1)
}
func (m *mockHolidayStore) Upsert(ctx context.Context, h *model.Holiday) error {
	args := m.Called(ctx, h)
	return args.Error(0)
}

type mockTemplateStore struct{ mock.Mock }

func (m *mockTemplateStore) List(ctx context.Context, dayType *model.DayType, shiftID, roleID *uuid.UUID, effective *time.Time) ([]model.StaffingTemplate, error) {
	args := m.Called(ctx, dayType, shiftID, roleID, effective)
	return args.Get(0).([]model.StaffingTemplate), args.Error(1)
}
func (m *mockTemplateStore) Upsert(ctx context.Context, t *model.StaffingTemplate) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

type mockRuleStore struct{ mock.Mock }

func (m *mockRuleStore) ListActive(ctx context.Context, from, to time.Time, category *model.RuleCategory, severity *model.RuleSeverity) ([]model.LaborLawRule, error) {
	args := m.Called(ctx, from, to, category, severity)
	return args.Get(0).([]model.LaborLawRule), args.Error(1)
}
func (m *mockRuleStore) GetByCode(ctx context.Context, code string) (*model.LaborLawRule, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.LaborLawRule), args.Error(1)
}

type mockGenParamsStore struct{ mock.Mock }

func (m *mockGenParamsStore) GetByScenario(ctx context.Context, scenarioType string) (*model.GeneratorParameters, error) {
	args := m.Called(ctx, scenarioType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.GeneratorParameters), args.Error(1)
}
func (m *mockGenParamsStore) Upsert(ctx context.Context, p *model.GeneratorParameters) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

type mockEmployeeStore struct{ mock.Mock }

func (m *mockEmployeeStore) GetByID(ctx context.Context, id uuid.UUID) (*model.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Employee), args.Error(1)
}
func (m *mockEmployeeStore) List(ctx context.Context) ([]model.Employee, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Employee), args.Error(1)
}

func TestConfigLoader_GeneratorParams_FallsBackToDefault(t *testing.T) {
	genParams := new(mockGenParamsStore)
	genParams.On("GetByScenario", mock.Anything, "NIGHT_FOCUS").Return(nil, repository.ErrGeneratorParametersNotFound)
	defaultParams := &model.GeneratorParameters{ScenarioType: model.DefaultScenario}
	genParams.On("GetByScenario", mock.Anything, model.DefaultScenario).Return(defaultParams, nil)

	loader := NewConfigLoader(nil, nil, nil, genParams, nil)

	got, err := loader.GeneratorParams(context.Background(), "NIGHT_FOCUS")
	require.NoError(t, err)
	assert.Equal(t, model.DefaultScenario, got.ScenarioType)
	genParams.AssertExpectations(t)
}

func TestConfigLoader_GeneratorParams_NoneFound(t *testing.T) {
	genParams := new(mockGenParamsStore)
	genParams.On("GetByScenario", mock.Anything, "PEAK_SEASON").Return(nil, repository.ErrGeneratorParametersNotFound)
	genParams.On("GetByScenario", mock.Anything, model.DefaultScenario).Return(nil, repository.ErrGeneratorParametersNotFound)

	loader := NewConfigLoader(nil, nil, nil, genParams, nil)

	got, err := loader.GeneratorParams(context.Background(), "PEAK_SEASON")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestConfigLoader_GeneratorParams_ExactMatch(t *testing.T) {
	genParams := new(mockGenParamsStore)
	params := &model.GeneratorParameters{ScenarioType: "NIGHT_FOCUS"}
	genParams.On("GetByScenario", mock.Anything, "NIGHT_FOCUS").Return(params, nil)

	loader := NewConfigLoader(nil, nil, nil, genParams, nil)

	got, err := loader.GeneratorParams(context.Background(), "NIGHT_FOCUS")
	require.NoError(t, err)
	assert.Same(t, params, got)
	genParams.AssertNotCalled(t, "GetByScenario", mock.Anything, model.DefaultScenario)
}

func TestConfigLoader_EmployeePreferences_MissingEmployeeReturnsEmpty(t *testing.T) {
	employees := new(mockEmployeeStore)
	employees.On("GetByID", mock.Anything, mock.Anything).Return(nil, repository.ErrEmployeeNotFound)

	loader := NewConfigLoader(nil, nil, nil, nil, employees)

	prefs, err := loader.EmployeePreferences(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, prefs)
}

func TestConfigLoader_UpsertStaffingTemplate_RejectsInvalidBounds(t *testing.T) {
	templates := new(mockTemplateStore)
	loader := NewConfigLoader(nil, templates, nil, nil, nil)

	_, err := loader.UpsertStaffingTemplate(context.Background(), CreateOrUpdateStaffingTemplateInput{
		MinStaff:    3,
		TargetStaff: 1,
	})
	var genErr *GenerationError
	assert.ErrorAs(t, err, &genErr)
	templates.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}
