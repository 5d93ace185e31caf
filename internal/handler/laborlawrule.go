package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/shiftforge/scheduler/internal/model"
	"github.com/shiftforge/scheduler/internal/repository"
)

// LaborLawRuleHandler serves CRUD requests for labor-law rules, one of the
// four durable configuration tables (spec §6).
type LaborLawRuleHandler struct {
	rules *repository.LaborLawRuleRepository
}

func NewLaborLawRuleHandler(rules *repository.LaborLawRuleRepository) *LaborLawRuleHandler {
	return &LaborLawRuleHandler{rules: rules}
}

func (h *LaborLawRuleHandler) List(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	from, to := now, now
	if fromStr := r.URL.Query().Get("from"); fromStr != "" {
		if parsed, err := time.Parse("2006-01-02", fromStr); err == nil {
			from = parsed
		}
	}
	if toStr := r.URL.Query().Get("to"); toStr != "" {
		if parsed, err := time.Parse("2006-01-02", toStr); err == nil {
			to = parsed
		}
	}
	rules, err := h.rules.ListActive(r.Context(), from, to, nil, nil)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list rules")
		return
	}
	respondJSON(w, http.StatusOK, rules)
}

func (h *LaborLawRuleHandler) Get(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	rule, err := h.rules.GetByCode(r.Context(), code)
	if err != nil {
		if errors.Is(err, repository.ErrLaborLawRuleNotFound) {
			respondError(w, http.StatusNotFound, "rule not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to load rule")
		return
	}
	respondJSON(w, http.StatusOK, rule)
}

func (h *LaborLawRuleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var rule model.LaborLawRule
	if err := json.NewDecoder(r.Body).Decode(&rule); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if rule.Code == "" || rule.Name == "" {
		respondError(w, http.StatusBadRequest, "code and name are required")
		return
	}
	if err := h.rules.Create(r.Context(), &rule); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, rule)
}

func (h *LaborLawRuleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid rule id")
		return
	}
	var rule model.LaborLawRule
	if err := json.NewDecoder(r.Body).Decode(&rule); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	rule.ID = id
	if err := h.rules.Update(r.Context(), &rule); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, rule)
}

func (h *LaborLawRuleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid rule id")
		return
	}
	if err := h.rules.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrLaborLawRuleNotFound) {
			respondError(w, http.StatusNotFound, "rule not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to delete rule")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
