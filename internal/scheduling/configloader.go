package scheduling

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/shiftforge/scheduler/internal/model"
)

// holidayStore is the narrow slice of repository.HolidayRepository the
// Configuration Loader depends on.
type holidayStore interface {
	GetByDate(ctx context.Context, date time.Time) (*model.Holiday, error)
	ListInRange(ctx context.Context, from, to time.Time) ([]model.Holiday, error)
	Upsert(ctx context.Context, h *model.Holiday) error
}

// staffingTemplateStore is the narrow slice of
// repository.StaffingTemplateRepository the Configuration Loader depends on.
type staffingTemplateStore interface {
	List(ctx context.Context, dayType *model.DayType, shiftID, roleID *uuid.UUID, effective *time.Time) ([]model.StaffingTemplate, error)
	Upsert(ctx context.Context, t *model.StaffingTemplate) error
}

// laborLawRuleStore is the narrow slice of repository.LaborLawRuleRepository
// the Configuration Loader depends on.
type laborLawRuleStore interface {
	ListActive(ctx context.Context, from, to time.Time, category *model.RuleCategory, severity *model.RuleSeverity) ([]model.LaborLawRule, error)
	GetByCode(ctx context.Context, code string) (*model.LaborLawRule, error)
}

// generatorParametersStore is the narrow slice of
// repository.GeneratorParametersRepository the Configuration Loader depends on.
type generatorParametersStore interface {
	GetByScenario(ctx context.Context, scenarioType string) (*model.GeneratorParameters, error)
	Upsert(ctx context.Context, p *model.GeneratorParameters) error
}

// employeeStore is the narrow slice of repository.EmployeeRepository the
// Configuration Loader depends on for preference lookups.
type employeeStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Employee, error)
	List(ctx context.Context) ([]model.Employee, error)
}

// ConfigLoader is the sole authority for interpreting rule parameter bags
// and the other configuration tables consumed by the generators and the
// validator. Stateless beyond its repository dependencies.
type ConfigLoader struct {
	holidays   holidayStore
	templates  staffingTemplateStore
	rules      laborLawRuleStore
	genParams  generatorParametersStore
	employees  employeeStore
}

// NewConfigLoader builds a ConfigLoader over the given repositories.
func NewConfigLoader(holidays holidayStore, templates staffingTemplateStore, rules laborLawRuleStore, genParams generatorParametersStore, employees employeeStore) *ConfigLoader {
	return &ConfigLoader{
		holidays:  holidays,
		templates: templates,
		rules:     rules,
		genParams: genParams,
		employees: employees,
	}
}

// ActiveRules returns rules whose active window intersects [from, to],
// optionally filtered by category and/or severity.
func (c *ConfigLoader) ActiveRules(ctx context.Context, from, to time.Time, category *model.RuleCategory, severity *model.RuleSeverity) ([]model.LaborLawRule, error) {
	return c.rules.ListActive(ctx, from, to, category, severity)
}

// RuleByCode returns the rule with the given code, or
// repository.ErrLaborLawRuleNotFound if none exists.
func (c *ConfigLoader) RuleByCode(ctx context.Context, code string) (*model.LaborLawRule, error) {
	return c.rules.GetByCode(ctx, code)
}

// Holidays returns holidays with date in [from, to], ordered by date.
func (c *ConfigLoader) Holidays(ctx context.Context, from, to time.Time) ([]model.Holiday, error) {
	return c.holidays.ListInRange(ctx, from, to)
}

// HolidayOn returns the holiday on the given date, or
// repository.ErrHolidayNotFound if the date is not a holiday.
func (c *ConfigLoader) HolidayOn(ctx context.Context, date time.Time) (*model.Holiday, error) {
	return c.holidays.GetByDate(ctx, date)
}

// StaffingTemplates filters staffing templates by optional day type, shift,
// role, and effective date.
func (c *ConfigLoader) StaffingTemplates(ctx context.Context, dayType *model.DayType, shiftID, roleID *uuid.UUID, effective *time.Time) ([]model.StaffingTemplate, error) {
	return c.templates.List(ctx, dayType, shiftID, roleID, effective)
}

// GeneratorParams returns the parameters for scenarioType, falling back to
// model.DefaultScenario if the requested scenario has no record, and
// returning (nil, nil) if neither exists.
func (c *ConfigLoader) GeneratorParams(ctx context.Context, scenarioType string) (*model.GeneratorParameters, error) {
	params, err := c.genParams.GetByScenario(ctx, scenarioType)
	if err == nil {
		return params, nil
	}
	if !isNotFound(err) {
		return nil, err
	}
	if scenarioType == model.DefaultScenario {
		return nil, nil
	}
	params, err = c.genParams.GetByScenario(ctx, model.DefaultScenario)
	if err == nil {
		return params, nil
	}
	if isNotFound(err) {
		return nil, nil
	}
	return nil, err
}

// EmployeePreferences returns the preferences bag for one employee.
func (c *ConfigLoader) EmployeePreferences(ctx context.Context, employeeID uuid.UUID) (map[string]any, error) {
	emp, err := c.employees.GetByID(ctx, employeeID)
	if err != nil {
		if isNotFound(err) {
			return map[string]any{}, nil
		}
		return nil, err
	}
	return preferencesMap(emp)
}

// AllPreferences returns every employee's preferences bag keyed by employee ID.
func (c *ConfigLoader) AllPreferences(ctx context.Context) (map[uuid.UUID]map[string]any, error) {
	employees, err := c.employees.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]map[string]any, len(employees))
	for i := range employees {
		prefs, err := preferencesMap(&employees[i])
		if err != nil {
			return nil, err
		}
		if len(prefs) > 0 {
			out[employees[i].ID] = prefs
		}
	}
	return out, nil
}

// CreateOrUpdateHolidayInput is the typed counterpart of the original
// loader's create_or_update_holiday_api raw-dict payload.
type CreateOrUpdateHolidayInput struct {
	Date              time.Time
	Name              string
	CoverageOverrides []byte
	StoreClosed       bool
}

// UpsertHoliday idempotently creates or updates a holiday keyed by date.
func (c *ConfigLoader) UpsertHoliday(ctx context.Context, in CreateOrUpdateHolidayInput) (*model.Holiday, error) {
	h := &model.Holiday{
		Date:        in.Date,
		Name:        in.Name,
		StoreClosed: in.StoreClosed,
	}
	if len(in.CoverageOverrides) > 0 {
		h.CoverageOverrides = in.CoverageOverrides
	}
	if err := c.holidays.Upsert(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

// CreateOrUpdateStaffingTemplateInput is the typed counterpart of the
// original loader's create_or_update_staffing_template_api payload.
type CreateOrUpdateStaffingTemplateInput struct {
	DayType       model.DayType
	ShiftID       uuid.UUID
	RoleID        uuid.UUID
	MinStaff      int
	TargetStaff   int
	MaxStaff      *int
	EffectiveFrom *time.Time
	EffectiveTo   *time.Time
}

// UpsertStaffingTemplate idempotently creates or updates a staffing
// template keyed by (day_type, shift_id, role_id).
func (c *ConfigLoader) UpsertStaffingTemplate(ctx context.Context, in CreateOrUpdateStaffingTemplateInput) (*model.StaffingTemplate, error) {
	t := &model.StaffingTemplate{
		DayType:       in.DayType,
		ShiftID:       in.ShiftID,
		RoleID:        in.RoleID,
		MinStaff:      in.MinStaff,
		TargetStaff:   in.TargetStaff,
		MaxStaff:      in.MaxStaff,
		EffectiveFrom: in.EffectiveFrom,
		EffectiveTo:   in.EffectiveTo,
	}
	if !t.ValidBounds() {
		return nil, NewGenerationError("invalid staffing template bounds: min_staff <= target_staff <= max_staff must hold")
	}
	if err := c.templates.Upsert(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// CreateOrUpdateGeneratorParametersInput is the typed counterpart of the
// original loader's create_or_update_generator_parameters_api payload.
type CreateOrUpdateGeneratorParametersInput struct {
	ScenarioType         string
	Weights              []byte
	MaxConsecutiveNights *int
	MinRestHoursOverride *int
	LastUpdatedBy        *string
}

// UpsertGeneratorParameters idempotently creates or updates generator
// parameters keyed by scenario_type.
func (c *ConfigLoader) UpsertGeneratorParameters(ctx context.Context, in CreateOrUpdateGeneratorParametersInput) (*model.GeneratorParameters, error) {
	p := &model.GeneratorParameters{
		ScenarioType:         in.ScenarioType,
		MaxConsecutiveNights: in.MaxConsecutiveNights,
		MinRestHoursOverride: in.MinRestHoursOverride,
		LastUpdatedBy:        in.LastUpdatedBy,
	}
	if len(in.Weights) > 0 {
		p.Weights = in.Weights
	}
	if err := c.genParams.Upsert(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
