package scheduling

import (
	"context"
	"time"

	"github.com/shiftforge/scheduler/internal/model"
)

// Diagnostics is the façade's per-generation telemetry object, the
// `diagnostics` field of the generation response (spec §6).
type Diagnostics struct {
	GeneratorType  string `json:"generator_type"`
	ScenarioType   string `json:"scenario_type,omitempty"`
	RuntimeMS      int64  `json:"runtime_ms"`
	EntryCount     int    `json:"entry_count"`
	IssueCount     int    `json:"issue_count"`
	BlockingIssues int    `json:"blocking_issues"`
	WarningIssues  int    `json:"warning_issues"`
}

const (
	GeneratorTypeHeuristic = "heuristic"
	GeneratorTypeORTools   = "ortools"
)

// DefaultGeneratorType and DefaultScenarioType are the façade's fallback
// values when a generation request omits them.
const (
	DefaultGeneratorType = GeneratorTypeHeuristic
	DefaultScenarioType  = "DEFAULT"
)

// GenerationRequest is the façade's input, mirroring the optional fields of
// spec §6's `POST /schedules/generate` body.
type GenerationRequest struct {
	Year          int
	Month         int
	GeneratorType string
	ScenarioType  string
}

// normalize fills in the façade's defaults: current month/year, heuristic
// generator, DEFAULT scenario.
func (r GenerationRequest) normalize(now time.Time) GenerationRequest {
	if r.Year == 0 {
		r.Year = now.Year()
	}
	if r.Month == 0 {
		r.Month = int(now.Month())
	}
	if r.GeneratorType == "" {
		r.GeneratorType = DefaultGeneratorType
	}
	if r.ScenarioType == "" {
		r.ScenarioType = DefaultScenarioType
	}
	return r
}

// HeuristicRunner and ORToolsRunner adapt the two concrete generators'
// differing Generate signatures (the heuristic ignores scenario_type, the
// CP-SAT generator consumes it) to one shape the façade can invoke
// uniformly without importing internal/scheduling/cpsat — which itself
// imports this package — so main wires the closures instead.
type HeuristicRunner func(ctx context.Context, year, month int) (*model.MonthlySchedule, []model.ScheduleEntry, []Issue, error)
type ORToolsRunner func(ctx context.Context, year, month int, scenarioType string) (*model.MonthlySchedule, []model.ScheduleEntry, []Issue, error)

// Facade is a thin dispatcher over the registered generators, keyed by
// generator_type. It validates the request, measures wall-clock runtime,
// and reports diagnostics.
type Facade struct {
	heuristic HeuristicRunner
	ortools   ORToolsRunner
	now       func() time.Time
}

// NewFacade builds a Facade over the two generator entry points.
func NewFacade(heuristic HeuristicRunner, ortools ORToolsRunner) *Facade {
	return &Facade{heuristic: heuristic, ortools: ortools, now: time.Now}
}

// Generate validates generator_type, dispatches to the matching generator,
// and returns its persisted schedule, entries, issues, and diagnostics. A
// *GenerationError propagates unchanged; no schedule is left persisted in
// that case (the generator's own transaction rolls back).
func (f *Facade) Generate(ctx context.Context, req GenerationRequest) (*model.MonthlySchedule, []model.ScheduleEntry, []Issue, *Diagnostics, error) {
	req = req.normalize(f.now())

	if req.GeneratorType != GeneratorTypeHeuristic && req.GeneratorType != GeneratorTypeORTools {
		return nil, nil, nil, nil, NewGenerationError("unknown generator_type %q", req.GeneratorType)
	}

	start := f.now()
	var (
		schedule *model.MonthlySchedule
		entries  []model.ScheduleEntry
		issues   []Issue
		err      error
	)
	switch req.GeneratorType {
	case GeneratorTypeHeuristic:
		schedule, entries, issues, err = f.heuristic(ctx, req.Year, req.Month)
	case GeneratorTypeORTools:
		schedule, entries, issues, err = f.ortools(ctx, req.Year, req.Month, req.ScenarioType)
	}
	if err != nil {
		return nil, nil, nil, nil, err
	}
	runtime := f.now().Sub(start)

	summary := Summarize(issues)
	diag := &Diagnostics{
		GeneratorType:  req.GeneratorType,
		ScenarioType:   req.ScenarioType,
		RuntimeMS:      runtime.Milliseconds(),
		EntryCount:     len(entries),
		IssueCount:     summary.TotalIssues,
		BlockingIssues: summary.BlockingIssues,
		WarningIssues:  summary.Warnings,
	}
	return schedule, entries, issues, diag, nil
}
