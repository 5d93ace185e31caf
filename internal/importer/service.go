package importer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/shiftforge/scheduler/internal/model"
	"github.com/shiftforge/scheduler/internal/repository"
	"github.com/shiftforge/scheduler/internal/scheduling"
)

// Importer persists a parsed Workbook against the catalog repositories,
// resolving role and shift names to IDs along the way.
type Importer struct {
	roles     *repository.RoleRepository
	shifts    *repository.ShiftRepository
	employees *repository.EmployeeRepository
	config    *scheduling.ConfigLoader
}

func NewImporter(roles *repository.RoleRepository, shifts *repository.ShiftRepository, employees *repository.EmployeeRepository, config *scheduling.ConfigLoader) *Importer {
	return &Importer{roles: roles, shifts: shifts, employees: employees, config: config}
}

// Result tallies what an Import call did, plus any per-row failures
// collected along the way (from parsing and from persistence).
type Result struct {
	EmployeesCreated  int
	ShiftsCreated     int
	TemplatesUpserted int
	RowErrors         []RowError
}

// Import persists every row in wb, continuing past individual row failures
// so one bad row doesn't block the rest of the workbook. Shifts are
// persisted before staffing templates so template rows can resolve
// shift_name against shifts just created in the same call.
func (imp *Importer) Import(ctx context.Context, wb *Workbook) (*Result, error) {
	result := &Result{RowErrors: append([]RowError{}, wb.RowErrors...)}

	roleIDs, err := imp.roleNameIndex(ctx)
	if err != nil {
		return nil, fmt.Errorf("load roles: %w", err)
	}

	for i, row := range wb.Employees {
		emp := &model.Employee{
			FirstName:          row.FirstName,
			LastName:           row.LastName,
			EmploymentFraction: row.EmploymentFraction,
			MonthlyHourCap:     row.MonthlyHourCap,
			HireDate:           row.HireDate,
		}
		if row.RoleName != "" {
			id, ok := roleIDs[row.RoleName]
			if !ok {
				result.RowErrors = append(result.RowErrors, RowError{Sheet: SheetEmployees, Row: i + 2, Err: fmt.Errorf("unknown role %q", row.RoleName)})
				continue
			}
			emp.RoleID = &id
		}
		if err := imp.employees.Create(ctx, emp); err != nil {
			result.RowErrors = append(result.RowErrors, RowError{Sheet: SheetEmployees, Row: i + 2, Err: err})
			continue
		}
		result.EmployeesCreated++
	}

	for i, row := range wb.Shifts {
		required, err := encodeRequiredStaffing(row.RequiredStaffing)
		if err != nil {
			result.RowErrors = append(result.RowErrors, RowError{Sheet: SheetShifts, Row: i + 2, Err: err})
			continue
		}
		shift := &model.Shift{
			Name:             row.Name,
			StartMinutes:     row.StartMinutes,
			EndMinutes:       row.EndMinutes,
			RequiredStaffing: required,
		}
		if err := imp.shifts.Create(ctx, shift); err != nil {
			result.RowErrors = append(result.RowErrors, RowError{Sheet: SheetShifts, Row: i + 2, Err: err})
			continue
		}
		result.ShiftsCreated++
	}

	shiftIDs, err := imp.shiftNameIndex(ctx)
	if err != nil {
		return nil, fmt.Errorf("load shifts: %w", err)
	}

	for i, row := range wb.StaffingTemplates {
		shiftID, ok := shiftIDs[row.ShiftName]
		if !ok {
			result.RowErrors = append(result.RowErrors, RowError{Sheet: SheetStaffingTemplates, Row: i + 2, Err: fmt.Errorf("unknown shift %q", row.ShiftName)})
			continue
		}
		roleID, ok := roleIDs[row.RoleName]
		if !ok {
			result.RowErrors = append(result.RowErrors, RowError{Sheet: SheetStaffingTemplates, Row: i + 2, Err: fmt.Errorf("unknown role %q", row.RoleName)})
			continue
		}

		_, err := imp.config.UpsertStaffingTemplate(ctx, scheduling.CreateOrUpdateStaffingTemplateInput{
			DayType:       row.DayType,
			ShiftID:       shiftID,
			RoleID:        roleID,
			MinStaff:      row.MinStaff,
			TargetStaff:   row.TargetStaff,
			MaxStaff:      row.MaxStaff,
			EffectiveFrom: row.EffectiveFrom,
			EffectiveTo:   row.EffectiveTo,
		})
		if err != nil {
			result.RowErrors = append(result.RowErrors, RowError{Sheet: SheetStaffingTemplates, Row: i + 2, Err: err})
			continue
		}
		result.TemplatesUpserted++
	}

	return result, nil
}

func (imp *Importer) roleNameIndex(ctx context.Context) (map[string]uuid.UUID, error) {
	roles, err := imp.roles.List(ctx)
	if err != nil {
		return nil, err
	}
	idx := make(map[string]uuid.UUID, len(roles))
	for _, r := range roles {
		idx[r.Name] = r.ID
	}
	return idx, nil
}

func (imp *Importer) shiftNameIndex(ctx context.Context) (map[string]uuid.UUID, error) {
	shifts, err := imp.shifts.List(ctx)
	if err != nil {
		return nil, err
	}
	idx := make(map[string]uuid.UUID, len(shifts))
	for _, s := range shifts {
		idx[s.Name] = s.ID
	}
	return idx, nil
}

func encodeRequiredStaffing(m map[string]int) (datatypes.JSON, error) {
	raw, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}
