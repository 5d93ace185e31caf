package scheduling

import (
	"encoding/json"
	"errors"

	"github.com/shiftforge/scheduler/internal/model"
	"github.com/shiftforge/scheduler/internal/repository"
)

// isNotFound reports whether err is one of the repository package's
// sentinel not-found errors. The Configuration Loader depends on this to
// implement the generator_params DEFAULT-scenario fallback.
func isNotFound(err error) bool {
	switch {
	case errors.Is(err, repository.ErrHolidayNotFound),
		errors.Is(err, repository.ErrEmployeeNotFound),
		errors.Is(err, repository.ErrGeneratorParametersNotFound),
		errors.Is(err, repository.ErrLaborLawRuleNotFound),
		errors.Is(err, repository.ErrRoleNotFound),
		errors.Is(err, repository.ErrScheduleNotFound),
		errors.Is(err, repository.ErrShiftNotFound),
		errors.Is(err, repository.ErrStaffingTemplateNotFound),
		errors.Is(err, repository.ErrAbsenceNotFound):
		return true
	default:
		return false
	}
}

// preferencesMap unmarshals an employee's opaque preferences bag.
func preferencesMap(e *model.Employee) (map[string]any, error) {
	out := map[string]any{}
	if len(e.Preferences) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(e.Preferences, &out); err != nil {
		return nil, err
	}
	return out, nil
}
