package scheduling

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shiftforge/scheduler/internal/model"
)

// Issue is a structured validation finding attached to a (possibly valid)
// schedule. It is not an error: level=error blocks publication, level=warning
// does not.
type Issue struct {
	Level    string  `json:"level"`
	Message  string  `json:"message"`
	RuleCode *string `json:"rule_code,omitempty"`
}

const (
	levelError   = "error"
	levelWarning = "warning"
)

// Default thresholds used by basic mode and as rules-based fallbacks when a
// rule carries no matching parameter (spec §6 required parameter schema).
const (
	defaultMinDailyRestHours  = 11
	defaultMaxConsecutiveDays = 6
	defaultBasicHoursLimit    = 40
	defaultRulesHoursLimit    = 160
)

// Canonical rule-code keys the check registry is addressed by. Spec §9
// Open Question 2: rule-code casing is mixed in source (REST_DAILY in
// seeds, odpoczynek_dobowy / rest_daily accepted by validators). This
// validator canonicalizes every code to lower_snake_case at lookup time, so
// any of those spellings resolves to the same check.
const (
	ruleKeyRestDaily   = "rest_daily"
	ruleKeyRestWeekly  = "rest_weekly"
	ruleKeyHoursLimit  = "hours_weekly_max"
	ruleKeyHolidayWork = "praca_w_swieto"
)

// legacyRuleAliases maps legacy/alternate spellings to the canonical key
// the registry is addressed by.
var legacyRuleAliases = map[string]string{
	"odpoczynek_dobowy":       ruleKeyRestDaily,
	"rest_daily":              ruleKeyRestDaily,
	"odpoczynek_tygodniowy":   ruleKeyRestWeekly,
	"rest_weekly":             ruleKeyRestWeekly,
	"limit_godzin_miesieczny": ruleKeyHoursLimit,
	"hours_weekly_max":        ruleKeyHoursLimit,
	"praca_w_swieto":          ruleKeyHolidayWork,
}

// canonicalizeCode lower-snake-cases a rule code and resolves it through
// legacyRuleAliases to the key the check registry is keyed by.
func canonicalizeCode(code string) string {
	c := strings.ToLower(strings.TrimSpace(code))
	if canonical, ok := legacyRuleAliases[c]; ok {
		return canonical
	}
	return c
}

// ruleCheckFunc is one entry of the data-driven rule-code -> check-function
// registry, mirroring the teacher's map[model.TaskType]TaskExecutor
// dispatch (internal/service/scheduler_executor.go in the teacher repo).
type ruleCheckFunc func(entries []model.ScheduleEntry, params checkParams) []Issue

// checkParams bundles the inputs a rules-based check needs beyond the
// entries themselves.
type checkParams struct {
	rule         *model.LaborLawRule
	holidays     []model.Holiday
	employeeCaps map[uuid.UUID]int
}

var ruleRegistry = map[string]ruleCheckFunc{
	ruleKeyRestDaily:   checkDailyRest,
	ruleKeyRestWeekly:  checkWeeklyRest,
	ruleKeyHoursLimit:  checkHoursLimit,
	ruleKeyHolidayWork: checkHolidayWork,
}

// Validator implements the two validation modes against a fixed,
// spec-mandated check order: daily rest, weekly rest, hours limit, holiday
// work, coverage. Coverage always runs and is always a hard error.
type Validator struct {
	loader *ConfigLoader
}

// NewValidator builds a Validator over the given Configuration Loader.
// loader may be nil if only ValidateBasic will be used.
func NewValidator(loader *ConfigLoader) *Validator {
	return &Validator{loader: loader}
}

// ValidateBasic runs hard-coded-threshold checks: 11h daily rest, 6
// consecutive work days, a 40h hours limit, unconditional holiday-match
// flagging, and coverage. Intended for generator self-checks and the light
// legacy path.
func (v *Validator) ValidateBasic(ctx context.Context, entries []model.ScheduleEntry, shifts []model.Shift, holidays []model.Holiday) ([]Issue, error) {
	var issues []Issue
	issues = append(issues, checkDailyRest(entries, checkParams{})...)
	issues = append(issues, checkWeeklyRest(entries, checkParams{})...)
	issues = append(issues, checkHoursLimitBasic(entries)...)
	issues = append(issues, checkHolidayMatchBasic(entries, holidays)...)
	issues = append(issues, checkCoverage(entries, shifts)...)
	return issues, nil
}

// ValidateRulesBased runs the database-driven checks: active rules for
// [from, to] are looked up, dispatched through the canonical-code
// registry with their configured severities, and coverage always runs
// as a hard error regardless of rule configuration.
func (v *Validator) ValidateRulesBased(ctx context.Context, entries []model.ScheduleEntry, shifts []model.Shift, holidays []model.Holiday, employeeCaps map[uuid.UUID]int, from, to time.Time) ([]Issue, error) {
	rules, err := v.loader.ActiveRules(ctx, from, to, nil, nil)
	if err != nil {
		return nil, err
	}

	rulesByCanonicalCode := map[string]*model.LaborLawRule{}
	for i := range rules {
		rulesByCanonicalCode[canonicalizeCode(rules[i].Code)] = &rules[i]
	}

	var issues []Issue
	for _, key := range []string{ruleKeyRestDaily, ruleKeyRestWeekly, ruleKeyHoursLimit, ruleKeyHolidayWork} {
		rule, ok := rulesByCanonicalCode[key]
		if !ok {
			continue
		}
		fn := ruleRegistry[key]
		issues = append(issues, fn(entries, checkParams{rule: rule, holidays: holidays, employeeCaps: employeeCaps})...)
	}
	issues = append(issues, checkCoverage(entries, shifts)...)
	return issues, nil
}

// Summary computes the {total_issues, blocking_issues, warnings, passed}
// response shape of spec §6.
type Summary struct {
	TotalIssues    int  `json:"total_issues"`
	BlockingIssues int  `json:"blocking_issues"`
	Warnings       int  `json:"warnings"`
	Passed         bool `json:"passed"`
}

// Summarize computes a Summary from a list of issues. passed ⇔ blocking_issues == 0.
func Summarize(issues []Issue) Summary {
	s := Summary{TotalIssues: len(issues)}
	for _, i := range issues {
		if i.Level == levelError {
			s.BlockingIssues++
		} else {
			s.Warnings++
		}
	}
	s.Passed = s.BlockingIssues == 0
	return s
}

func ruleCodePtr(rule *model.LaborLawRule) *string {
	if rule == nil {
		return nil
	}
	code := rule.Code
	return &code
}

func severityLevel(rule *model.LaborLawRule) string {
	if rule != nil && rule.Severity == model.SeveritySoft {
		return levelWarning
	}
	if rule != nil && rule.Severity == model.SeverityHard {
		return levelError
	}
	return levelWarning
}

// checkDailyRest flags adjacent-day shift pairs for an employee whose rest
// interval falls short of the configured minimum (default 11 hours).
func checkDailyRest(entries []model.ScheduleEntry, p checkParams) []Issue {
	minHours := defaultMinDailyRestHours
	if p.rule != nil {
		if params, err := ruleParamsMap(p.rule); err == nil {
			if v, ok := params["min_hours"]; ok {
				minHours = int(v)
			}
		}
	}
	level := levelWarning
	if p.rule != nil {
		level = severityLevel(p.rule)
	}

	perEmployee := map[uuid.UUID][]model.ScheduleEntry{}
	for _, e := range entries {
		perEmployee[e.EmployeeID] = append(perEmployee[e.EmployeeID], e)
	}

	var issues []Issue
	for employeeID, empEntries := range perEmployee {
		sort.Slice(empEntries, func(i, j int) bool { return empEntries[i].Date.Before(empEntries[j].Date) })
		for idx := 1; idx < len(empEntries); idx++ {
			prev, cur := empEntries[idx-1], empEntries[idx]
			if prev.Shift == nil || cur.Shift == nil {
				continue
			}
			prevEnd := prev.Date.Add(time.Duration(prev.Shift.EndMinutes) * time.Minute)
			curStart := cur.Date.Add(time.Duration(cur.Shift.StartMinutes) * time.Minute)
			restHours := curStart.Sub(prevEnd).Hours()
			if restHours < float64(minHours) {
				issues = append(issues, Issue{
					Level:    level,
					Message:  fmt.Sprintf("employee %s has less than %d hours rest between shifts on %s and %s", employeeID, minHours, prev.Date.Format("2006-01-02"), cur.Date.Format("2006-01-02")),
					RuleCode: ruleCodePtr(p.rule),
				})
			}
		}
	}
	return issues
}

// checkWeeklyRest flags runs of maxConsecutive+1 distinct consecutive
// work-days per employee (default 6 -> report 7-in-a-row).
func checkWeeklyRest(entries []model.ScheduleEntry, p checkParams) []Issue {
	maxConsecutive := defaultMaxConsecutiveDays
	if p.rule != nil {
		if params, err := ruleParamsMap(p.rule); err == nil {
			if v, ok := params["max_consecutive_days"]; ok {
				maxConsecutive = int(v)
			}
		}
	}
	level := levelWarning
	if p.rule != nil {
		level = severityLevel(p.rule)
	}

	perEmployee := map[uuid.UUID][]time.Time{}
	for _, e := range entries {
		perEmployee[e.EmployeeID] = append(perEmployee[e.EmployeeID], e.Date)
	}

	var issues []Issue
	for employeeID, days := range perEmployee {
		sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
		for i := 0; i+maxConsecutive < len(days); i++ {
			consecutive := true
			for j := 0; j < maxConsecutive; j++ {
				if days[i+j+1].Sub(days[i+j]).Hours() != 24 {
					consecutive = false
					break
				}
			}
			if consecutive {
				issues = append(issues, Issue{
					Level:    level,
					Message:  fmt.Sprintf("employee %s works %d days in a row starting %s", employeeID, maxConsecutive+1, days[i].Format("2006-01-02")),
					RuleCode: ruleCodePtr(p.rule),
				})
			}
		}
	}
	return issues
}

// checkHoursLimit sums shift durations per employee against the
// per-employee monthly cap, falling back to the rule's default_limit.
func checkHoursLimit(entries []model.ScheduleEntry, p checkParams) []Issue {
	defaultLimit := defaultRulesHoursLimit
	if p.rule != nil {
		if params, err := ruleParamsMap(p.rule); err == nil {
			if v, ok := params["default_limit"]; ok {
				defaultLimit = int(v)
			}
		}
	}
	level := severityLevel(p.rule)
	return hoursLimitIssues(entries, p.employeeCaps, defaultLimit, level, ruleCodePtr(p.rule))
}

// checkHoursLimitBasic is basic mode's hours check: a flat 40h limit, no
// per-employee override, warning severity.
func checkHoursLimitBasic(entries []model.ScheduleEntry) []Issue {
	return hoursLimitIssues(entries, nil, defaultBasicHoursLimit, levelWarning, nil)
}

func hoursLimitIssues(entries []model.ScheduleEntry, employeeCaps map[uuid.UUID]int, defaultLimit int, level string, ruleCode *string) []Issue {
	perEmployeeHours := map[uuid.UUID]float64{}
	for _, e := range entries {
		if e.Shift == nil {
			continue
		}
		perEmployeeHours[e.EmployeeID] += e.Shift.DurationHours()
	}

	var issues []Issue
	for employeeID, totalHours := range perEmployeeHours {
		limit := defaultLimit
		if employeeCap, ok := employeeCaps[employeeID]; ok {
			limit = employeeCap
		}
		if totalHours > float64(limit) {
			issues = append(issues, Issue{
				Level:    level,
				Message:  fmt.Sprintf("employee %s exceeded working hours limit (%.2f/%d)", employeeID, totalHours, limit),
				RuleCode: ruleCode,
			})
		}
	}
	return issues
}

// checkHolidayWork flags entries whose date matches a Holiday that is not
// store-closed (rules-based mode).
func checkHolidayWork(entries []model.ScheduleEntry, p checkParams) []Issue {
	level := severityLevel(p.rule)
	holidayDates := map[string]bool{}
	for _, h := range p.holidays {
		if !h.StoreClosed {
			holidayDates[h.Date.Format("2006-01-02")] = true
		}
	}
	return holidayIssues(entries, holidayDates, level, ruleCodePtr(p.rule))
}

// checkHolidayMatchBasic flags every entry whose date matches any Holiday,
// store-closed or not (basic mode flags all holiday matches).
func checkHolidayMatchBasic(entries []model.ScheduleEntry, holidays []model.Holiday) []Issue {
	holidayDates := map[string]bool{}
	for _, h := range holidays {
		holidayDates[h.Date.Format("2006-01-02")] = true
	}
	return holidayIssues(entries, holidayDates, levelWarning, nil)
}

func holidayIssues(entries []model.ScheduleEntry, holidayDates map[string]bool, level string, ruleCode *string) []Issue {
	var issues []Issue
	for _, e := range entries {
		if holidayDates[e.Date.Format("2006-01-02")] {
			issues = append(issues, Issue{
				Level:    level,
				Message:  fmt.Sprintf("employee %s is assigned to work on a holiday (%s)", e.EmployeeID, e.Date.Format("2006-01-02")),
				RuleCode: ruleCode,
			})
		}
	}
	return issues
}

// checkCoverage groups actual-per-role counts for each (date, shift) and
// emits an error for every role understaffed relative to its requirement.
// Always a hard error, regardless of mode or rule configuration.
func checkCoverage(entries []model.ScheduleEntry, shifts []model.Shift) []Issue {
	requirementsByShift := map[uuid.UUID]map[string]int{}
	for _, s := range shifts {
		reqs, err := s.RequiredStaffingMap()
		if err != nil {
			continue
		}
		requirementsByShift[s.ID] = reqs
	}

	type dayShiftKey struct {
		date    string
		shiftID uuid.UUID
	}
	perDayShift := map[dayShiftKey][]model.ScheduleEntry{}
	for _, e := range entries {
		key := dayShiftKey{date: e.Date.Format("2006-01-02"), shiftID: e.ShiftID}
		perDayShift[key] = append(perDayShift[key], e)
	}

	var issues []Issue
	for key, dayEntries := range perDayShift {
		requirements := requirementsByShift[key.shiftID]
		if len(requirements) == 0 {
			continue
		}

		perRole := map[string]int{}
		for _, e := range dayEntries {
			if e.Employee == nil || e.Employee.Role == nil {
				continue
			}
			perRole[e.Employee.Role.Name]++
		}

		for roleName, required := range requirements {
			actual := perRole[roleName]
			if actual < required {
				issues = append(issues, Issue{
					Level:   levelError,
					Message: fmt.Sprintf("%s shift %s: brakuje %d pracowników w roli %s", key.date, key.shiftID, required-actual, roleName),
				})
			}
		}
	}
	return issues
}

func ruleParamsMap(rule *model.LaborLawRule) (map[string]float64, error) {
	out := map[string]float64{}
	if len(rule.Parameters) == 0 {
		return out, nil
	}
	if err := unmarshalJSON(rule.Parameters, &out); err != nil {
		return nil, err
	}
	return out, nil
}
