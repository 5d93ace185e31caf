package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/shiftforge/scheduler/internal/model"
	"github.com/shiftforge/scheduler/internal/repository"
	"github.com/shiftforge/scheduler/internal/scheduling"
)

// ScheduleHandler serves schedule generation and validation requests. It
// holds no domain logic of its own: it decodes requests, dispatches to the
// Generation Façade / Validation Engine, and shapes the JSON response.
type ScheduleHandler struct {
	facade    *scheduling.Facade
	validator *scheduling.Validator
	config    *scheduling.ConfigLoader
	schedules *repository.ScheduleRepository
	shifts    *repository.ShiftRepository
	absences  *repository.AbsenceRepository
	employees *repository.EmployeeRepository
}

// NewScheduleHandler builds a ScheduleHandler over its collaborators.
func NewScheduleHandler(facade *scheduling.Facade, validator *scheduling.Validator, config *scheduling.ConfigLoader, schedules *repository.ScheduleRepository, shifts *repository.ShiftRepository, absences *repository.AbsenceRepository, employees *repository.EmployeeRepository) *ScheduleHandler {
	return &ScheduleHandler{
		facade:    facade,
		validator: validator,
		config:    config,
		schedules: schedules,
		shifts:    shifts,
		absences:  absences,
		employees: employees,
	}
}

type generateRequestBody struct {
	Month         *int   `json:"month"`
	Year          *int   `json:"year"`
	GeneratorType string `json:"generator_type"`
	ScenarioType  string `json:"scenario_type"`
}

// scheduleResponse is the generation/lookup response shape of spec §6:
// {id, miesiac_rok, status, data_utworzenia, entries, issues, shifts,
// absences, diagnostics}. Field names keep the original Polish labels the
// frontend already depends on.
type scheduleResponse struct {
	ID             uuid.UUID                `json:"id"`
	MiesiacRok     string                   `json:"miesiac_rok"`
	Status         model.ScheduleStatus     `json:"status"`
	DataUtworzenia time.Time                `json:"data_utworzenia"`
	Entries        []model.ScheduleEntry    `json:"entries"`
	Issues         []scheduling.Issue       `json:"issues"`
	Shifts         []model.Shift            `json:"shifts"`
	Absences       []model.Absence          `json:"absences"`
	Diagnostics    *scheduling.Diagnostics  `json:"diagnostics"`
}

// Generate handles POST /schedules/generate.
func (h *ScheduleHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var body generateRequestBody
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	req := scheduling.GenerationRequest{
		GeneratorType: body.GeneratorType,
		ScenarioType:  body.ScenarioType,
	}
	if body.Year != nil {
		req.Year = *body.Year
	}
	if body.Month != nil {
		req.Month = *body.Month
	}

	schedule, entries, issues, diag, err := h.facade.Generate(r.Context(), req)
	if err != nil {
		var genErr *scheduling.GenerationError
		if errors.As(err, &genErr) {
			respondError(w, http.StatusBadRequest, genErr.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to generate schedule")
		return
	}

	shifts, err := h.shifts.List(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load shifts")
		return
	}
	monthStart, monthEnd := monthBounds(schedule.MonthKey)
	absences, err := h.absences.ListInRange(r.Context(), monthStart, monthEnd)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load absences")
		return
	}

	respondJSON(w, http.StatusOK, scheduleResponse{
		ID:             schedule.ID,
		MiesiacRok:     schedule.MonthKey,
		Status:         schedule.Status,
		DataUtworzenia: schedule.CreatedAt,
		Entries:        entries,
		Issues:         issues,
		Shifts:         shifts,
		Absences:       absences,
		Diagnostics:    diag,
	})
}

type validateScheduleRequestBody struct {
	UseRules *bool `json:"use_rules"`
}

type validationResponse struct {
	ScheduleID       uuid.UUID           `json:"schedule_id"`
	ValidationSummary scheduling.Summary `json:"validation_summary"`
	Issues           []scheduling.Issue  `json:"issues"`
	ValidationType   string              `json:"validation_type"`
}

// ValidateSchedule handles POST /validation/schedule/{id}.
func (h *ScheduleHandler) ValidateSchedule(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid schedule id")
		return
	}

	var body validateScheduleRequestBody
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}
	useRules := true
	if body.UseRules != nil {
		useRules = *body.UseRules
	}

	schedule, err := h.schedules.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrScheduleNotFound) {
			respondError(w, http.StatusNotFound, "schedule not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to load schedule")
		return
	}

	shifts, err := h.shifts.List(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load shifts")
		return
	}
	monthStart, monthEnd := monthBounds(schedule.MonthKey)
	holidays, err := h.config.Holidays(r.Context(), monthStart, monthEnd)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load holidays")
		return
	}

	issues, validationType, err := h.runValidation(r.Context(), schedule.Entries, shifts, holidays, monthStart, monthEnd, useRules)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to run validation")
		return
	}

	respondJSON(w, http.StatusOK, validationResponse{
		ScheduleID:        schedule.ID,
		ValidationSummary: scheduling.Summarize(issues),
		Issues:            issues,
		ValidationType:    validationType,
	})
}

type validateEntriesRequestBody struct {
	Entries  []model.ScheduleEntry `json:"entries"`
	Year     int                   `json:"year"`
	Month    int                   `json:"month"`
	UseRules *bool                 `json:"use_rules"`
}

// ValidateEntries handles POST /validation/entries — validates an in-memory
// set of entries without persisting anything.
func (h *ScheduleHandler) ValidateEntries(w http.ResponseWriter, r *http.Request) {
	var body validateEntriesRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Year == 0 || body.Month == 0 {
		respondError(w, http.StatusBadRequest, "year and month are required")
		return
	}
	useRules := true
	if body.UseRules != nil {
		useRules = *body.UseRules
	}

	monthStart := time.Date(body.Year, time.Month(body.Month), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)

	shifts, err := h.shifts.List(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load shifts")
		return
	}
	holidays, err := h.config.Holidays(r.Context(), monthStart, monthEnd)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load holidays")
		return
	}

	issues, validationType, err := h.runValidation(r.Context(), body.Entries, shifts, holidays, monthStart, monthEnd, useRules)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to run validation")
		return
	}

	respondJSON(w, http.StatusOK, validationResponse{
		ValidationSummary: scheduling.Summarize(issues),
		Issues:            issues,
		ValidationType:    validationType,
	})
}

func (h *ScheduleHandler) runValidation(ctx context.Context, entries []model.ScheduleEntry, shifts []model.Shift, holidays []model.Holiday, from, to time.Time, useRules bool) ([]scheduling.Issue, string, error) {
	if useRules {
		employeeCaps, err := h.employeeCaps(ctx)
		if err != nil {
			return nil, "", err
		}
		issues, err := h.validator.ValidateRulesBased(ctx, entries, shifts, holidays, employeeCaps, from, to)
		return issues, "rules-based", err
	}
	issues, err := h.validator.ValidateBasic(ctx, entries, shifts, holidays)
	return issues, "basic", err
}

// employeeCaps builds the per-employee monthly hour cap overrides
// ValidateRulesBased applies on top of a rule's default_limit; employees
// with no configured MonthlyHourCap are simply absent from the map, so the
// rule's default still applies to them.
func (h *ScheduleHandler) employeeCaps(ctx context.Context) (map[uuid.UUID]int, error) {
	employees, err := h.employees.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load employees: %w", err)
	}
	caps := make(map[uuid.UUID]int, len(employees))
	for _, e := range employees {
		if e.MonthlyHourCap != nil {
			caps[e.ID] = *e.MonthlyHourCap
		}
	}
	return caps, nil
}

// monthBounds parses a YYYY-MM key into its first and last calendar date.
func monthBounds(monthKey string) (time.Time, time.Time) {
	start, err := time.Parse("2006-01", monthKey)
	if err != nil {
		return time.Time{}, time.Time{}
	}
	return start, start.AddDate(0, 1, -1)
}
