package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shiftforge/scheduler/internal/repository"
	"github.com/shiftforge/scheduler/internal/scheduling"
)

// GeneratorParametersHandler serves CRUD requests for generator parameter
// scenarios, one of the four durable configuration tables (spec §6).
type GeneratorParametersHandler struct {
	config     *scheduling.ConfigLoader
	genParams  *repository.GeneratorParametersRepository
}

func NewGeneratorParametersHandler(config *scheduling.ConfigLoader, genParams *repository.GeneratorParametersRepository) *GeneratorParametersHandler {
	return &GeneratorParametersHandler{config: config, genParams: genParams}
}

func (h *GeneratorParametersHandler) Get(w http.ResponseWriter, r *http.Request) {
	scenario := chi.URLParam(r, "scenario")
	params, err := h.genParams.GetByScenario(r.Context(), scenario)
	if err != nil {
		if errors.Is(err, repository.ErrGeneratorParametersNotFound) {
			respondError(w, http.StatusNotFound, "generator parameters not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to load generator parameters")
		return
	}
	respondJSON(w, http.StatusOK, params)
}

type upsertGeneratorParametersBody struct {
	ScenarioType         string          `json:"scenario_type"`
	Weights              json.RawMessage `json:"weights"`
	MaxConsecutiveNights *int            `json:"max_consecutive_nights,omitempty"`
	MinRestHoursOverride *int            `json:"min_rest_hours_override,omitempty"`
	LastUpdatedBy        *string         `json:"last_updated_by,omitempty"`
}

// Upsert handles POST /generator-parameters — idempotent create-or-update
// keyed by scenario_type.
func (h *GeneratorParametersHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var body upsertGeneratorParametersBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.ScenarioType == "" {
		respondError(w, http.StatusBadRequest, "scenario_type is required")
		return
	}

	params, err := h.config.UpsertGeneratorParameters(r.Context(), scheduling.CreateOrUpdateGeneratorParametersInput{
		ScenarioType:         body.ScenarioType,
		Weights:              body.Weights,
		MaxConsecutiveNights: body.MaxConsecutiveNights,
		MinRestHoursOverride: body.MinRestHoursOverride,
		LastUpdatedBy:        body.LastUpdatedBy,
	})
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, params)
}
