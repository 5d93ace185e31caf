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
	"github.com/shiftforge/scheduler/internal/scheduling"
)

// StaffingTemplateHandler serves CRUD requests for staffing templates, one
// of the four durable configuration tables (spec §6).
type StaffingTemplateHandler struct {
	config    *scheduling.ConfigLoader
	templates *repository.StaffingTemplateRepository
}

func NewStaffingTemplateHandler(config *scheduling.ConfigLoader, templates *repository.StaffingTemplateRepository) *StaffingTemplateHandler {
	return &StaffingTemplateHandler{config: config, templates: templates}
}

func (h *StaffingTemplateHandler) List(w http.ResponseWriter, r *http.Request) {
	var dayType *model.DayType
	if dt := r.URL.Query().Get("day_type"); dt != "" {
		v := model.DayType(dt)
		dayType = &v
	}
	var shiftID, roleID *uuid.UUID
	if s := r.URL.Query().Get("shift_id"); s != "" {
		if id, err := uuid.Parse(s); err == nil {
			shiftID = &id
		}
	}
	if s := r.URL.Query().Get("role_id"); s != "" {
		if id, err := uuid.Parse(s); err == nil {
			roleID = &id
		}
	}
	var effective *time.Time
	if s := r.URL.Query().Get("effective"); s != "" {
		if parsed, err := time.Parse("2006-01-02", s); err == nil {
			effective = &parsed
		}
	}

	templates, err := h.templates.List(r.Context(), dayType, shiftID, roleID, effective)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list staffing templates")
		return
	}
	respondJSON(w, http.StatusOK, templates)
}

func (h *StaffingTemplateHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid template id")
		return
	}
	template, err := h.templates.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrStaffingTemplateNotFound) {
			respondError(w, http.StatusNotFound, "staffing template not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to load staffing template")
		return
	}
	respondJSON(w, http.StatusOK, template)
}

type upsertStaffingTemplateBody struct {
	DayType       model.DayType `json:"day_type"`
	ShiftID       uuid.UUID     `json:"shift_id"`
	RoleID        uuid.UUID     `json:"role_id"`
	MinStaff      int           `json:"min_staff"`
	TargetStaff   int           `json:"target_staff"`
	MaxStaff      *int          `json:"max_staff,omitempty"`
	EffectiveFrom *time.Time    `json:"effective_from,omitempty"`
	EffectiveTo   *time.Time    `json:"effective_to,omitempty"`
}

// Upsert handles POST /staffing-templates — idempotent create-or-update
// keyed by (day_type, shift_id, role_id), enforcing
// min_staff <= target_staff <= max_staff.
func (h *StaffingTemplateHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var body upsertStaffingTemplateBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	template, err := h.config.UpsertStaffingTemplate(r.Context(), scheduling.CreateOrUpdateStaffingTemplateInput{
		DayType:       body.DayType,
		ShiftID:       body.ShiftID,
		RoleID:        body.RoleID,
		MinStaff:      body.MinStaff,
		TargetStaff:   body.TargetStaff,
		MaxStaff:      body.MaxStaff,
		EffectiveFrom: body.EffectiveFrom,
		EffectiveTo:   body.EffectiveTo,
	})
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, template)
}

func (h *StaffingTemplateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid template id")
		return
	}
	if err := h.templates.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrStaffingTemplateNotFound) {
			respondError(w, http.StatusNotFound, "staffing template not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to delete staffing template")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
