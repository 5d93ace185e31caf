// Package importer parses operator-supplied spreadsheets into the catalog
// rows the scheduling core consumes: employees, shifts, and staffing
// templates. It is a narrow collaborator, not exercised by the
// generator/validator core itself.
package importer

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/shiftforge/scheduler/internal/model"
)

// Sheet names a workbook is expected to carry. Any subset may be present;
// a missing sheet simply yields zero rows for that kind.
const (
	SheetEmployees         = "Employees"
	SheetShifts            = "Shifts"
	SheetStaffingTemplates = "StaffingTemplates"
)

// RowError records a single row that failed to parse, keyed by its sheet
// and 1-based row number (header row is row 1).
type RowError struct {
	Sheet string
	Row   int
	Err   error
}

func (e RowError) Error() string {
	return fmt.Sprintf("%s row %d: %v", e.Sheet, e.Row, e.Err)
}

// EmployeeRow is a parsed Employees sheet row, ready to become a
// model.Employee once its role name is resolved to a role ID.
type EmployeeRow struct {
	FirstName          string
	LastName           string
	RoleName           string
	EmploymentFraction model.EmploymentFraction
	MonthlyHourCap     *int
	HireDate           *time.Time
}

// ShiftRow is a parsed Shifts sheet row, ready to become a model.Shift.
type ShiftRow struct {
	Name             string
	StartMinutes     int
	EndMinutes       int
	RequiredStaffing map[string]int // role name -> required count
}

// StaffingTemplateRow is a parsed StaffingTemplates sheet row; ShiftName
// and RoleName are resolved to IDs by the Importer at persist time.
type StaffingTemplateRow struct {
	DayType       model.DayType
	ShiftName     string
	RoleName      string
	MinStaff      int
	TargetStaff   int
	MaxStaff      *int
	EffectiveFrom *time.Time
	EffectiveTo   *time.Time
}

// Workbook is the parsed, not-yet-persisted content of an import file.
type Workbook struct {
	Employees         []EmployeeRow
	Shifts            []ShiftRow
	StaffingTemplates []StaffingTemplateRow
	RowErrors         []RowError
}

// ParseWorkbook reads an xlsx file from r and extracts whichever of the
// Employees / Shifts / StaffingTemplates sheets are present. Malformed
// individual rows are collected in Workbook.RowErrors rather than aborting
// the whole import; a sheet-level error (unreadable file) is fatal.
func ParseWorkbook(r io.Reader) (*Workbook, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read workbook: %w", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	wb := &Workbook{}

	if rows, ok := sheetRows(f, SheetEmployees); ok {
		wb.Employees, wb.RowErrors = parseEmployeeRows(rows, wb.RowErrors)
	}
	if rows, ok := sheetRows(f, SheetShifts); ok {
		wb.Shifts, wb.RowErrors = parseShiftRows(rows, wb.RowErrors)
	}
	if rows, ok := sheetRows(f, SheetStaffingTemplates); ok {
		wb.StaffingTemplates, wb.RowErrors = parseStaffingTemplateRows(rows, wb.RowErrors)
	}

	return wb, nil
}

func sheetRows(f *excelize.File, name string) ([][]string, bool) {
	for _, s := range f.GetSheetList() {
		if s == name {
			rows, err := f.GetRows(name)
			if err != nil || len(rows) < 2 {
				return nil, false
			}
			return rows, true
		}
	}
	return nil, false
}

func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}

func cell(row []string, idx map[string]int, key string) string {
	i, ok := idx[key]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func parseEmployeeRows(rows [][]string, errs []RowError) ([]EmployeeRow, []RowError) {
	idx := headerIndex(rows[0])
	var out []EmployeeRow
	for i, row := range rows[1:] {
		rowNum := i + 2
		firstName := cell(row, idx, "first_name")
		lastName := cell(row, idx, "last_name")
		if firstName == "" || lastName == "" {
			errs = append(errs, RowError{Sheet: SheetEmployees, Row: rowNum, Err: fmt.Errorf("first_name and last_name are required")})
			continue
		}

		er := EmployeeRow{
			FirstName:          firstName,
			LastName:           lastName,
			RoleName:           cell(row, idx, "role_name"),
			EmploymentFraction: model.EmploymentFraction(cell(row, idx, "employment_fraction")),
		}

		if v := cell(row, idx, "monthly_hour_cap"); v != "" {
			cap, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, RowError{Sheet: SheetEmployees, Row: rowNum, Err: fmt.Errorf("invalid monthly_hour_cap %q", v)})
				continue
			}
			er.MonthlyHourCap = &cap
		}

		if v := cell(row, idx, "hire_date"); v != "" {
			hireDate, err := time.Parse("2006-01-02", v)
			if err != nil {
				errs = append(errs, RowError{Sheet: SheetEmployees, Row: rowNum, Err: fmt.Errorf("invalid hire_date %q", v)})
				continue
			}
			er.HireDate = &hireDate
		}

		out = append(out, er)
	}
	return out, errs
}

func parseShiftRows(rows [][]string, errs []RowError) ([]ShiftRow, []RowError) {
	idx := headerIndex(rows[0])
	var out []ShiftRow
	for i, row := range rows[1:] {
		rowNum := i + 2
		name := cell(row, idx, "name")
		if name == "" {
			errs = append(errs, RowError{Sheet: SheetShifts, Row: rowNum, Err: fmt.Errorf("name is required")})
			continue
		}

		start, err := parseClock(cell(row, idx, "start"))
		if err != nil {
			errs = append(errs, RowError{Sheet: SheetShifts, Row: rowNum, Err: fmt.Errorf("invalid start: %w", err)})
			continue
		}
		end, err := parseClock(cell(row, idx, "end"))
		if err != nil {
			errs = append(errs, RowError{Sheet: SheetShifts, Row: rowNum, Err: fmt.Errorf("invalid end: %w", err)})
			continue
		}

		required, err := parseRequiredStaffing(cell(row, idx, "required_staffing"))
		if err != nil {
			errs = append(errs, RowError{Sheet: SheetShifts, Row: rowNum, Err: err})
			continue
		}

		out = append(out, ShiftRow{Name: name, StartMinutes: start, EndMinutes: end, RequiredStaffing: required})
	}
	return out, errs
}

func parseStaffingTemplateRows(rows [][]string, errs []RowError) ([]StaffingTemplateRow, []RowError) {
	idx := headerIndex(rows[0])
	var out []StaffingTemplateRow
	for i, row := range rows[1:] {
		rowNum := i + 2
		shiftName := cell(row, idx, "shift_name")
		roleName := cell(row, idx, "role_name")
		if shiftName == "" || roleName == "" {
			errs = append(errs, RowError{Sheet: SheetStaffingTemplates, Row: rowNum, Err: fmt.Errorf("shift_name and role_name are required")})
			continue
		}

		minStaff, err := strconv.Atoi(cell(row, idx, "min_staff"))
		if err != nil {
			errs = append(errs, RowError{Sheet: SheetStaffingTemplates, Row: rowNum, Err: fmt.Errorf("invalid min_staff")})
			continue
		}
		targetStaff, err := strconv.Atoi(cell(row, idx, "target_staff"))
		if err != nil {
			errs = append(errs, RowError{Sheet: SheetStaffingTemplates, Row: rowNum, Err: fmt.Errorf("invalid target_staff")})
			continue
		}

		str := StaffingTemplateRow{
			DayType:     model.DayType(strings.ToUpper(cell(row, idx, "day_type"))),
			ShiftName:   shiftName,
			RoleName:    roleName,
			MinStaff:    minStaff,
			TargetStaff: targetStaff,
		}

		if v := cell(row, idx, "max_staff"); v != "" {
			max, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, RowError{Sheet: SheetStaffingTemplates, Row: rowNum, Err: fmt.Errorf("invalid max_staff %q", v)})
				continue
			}
			str.MaxStaff = &max
		}
		if v := cell(row, idx, "effective_from"); v != "" {
			from, err := time.Parse("2006-01-02", v)
			if err != nil {
				errs = append(errs, RowError{Sheet: SheetStaffingTemplates, Row: rowNum, Err: fmt.Errorf("invalid effective_from %q", v)})
				continue
			}
			str.EffectiveFrom = &from
		}
		if v := cell(row, idx, "effective_to"); v != "" {
			to, err := time.Parse("2006-01-02", v)
			if err != nil {
				errs = append(errs, RowError{Sheet: SheetStaffingTemplates, Row: rowNum, Err: fmt.Errorf("invalid effective_to %q", v)})
				continue
			}
			str.EffectiveTo = &to
		}

		out = append(out, str)
	}
	return out, errs
}

// parseClock turns "HH:MM" into minutes-from-midnight.
func parseClock(v string) (int, error) {
	parts := strings.Split(v, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("expected HH:MM, got %q", v)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("expected HH:MM, got %q", v)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("expected HH:MM, got %q", v)
	}
	return h*60 + m, nil
}

// parseRequiredStaffing accepts "ROLE:3,OTHER_ROLE:1" style cells.
func parseRequiredStaffing(v string) (map[string]int, error) {
	out := map[string]int{}
	if v == "" {
		return out, nil
	}
	for _, pair := range strings.Split(v, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		kv := strings.SplitN(pair, ":", 2)
		if len(kv) != 2 {
			return nil, fmt.Errorf("invalid required_staffing entry %q", pair)
		}
		count, err := strconv.Atoi(strings.TrimSpace(kv[1]))
		if err != nil {
			return nil, fmt.Errorf("invalid required_staffing count in %q", pair)
		}
		out[strings.TrimSpace(kv[0])] = count
	}
	return out, nil
}
