package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/shiftforge/scheduler/internal/model"
	"github.com/shiftforge/scheduler/internal/repository"
)

// ShiftHandler serves CRUD requests for shifts.
type ShiftHandler struct {
	shifts *repository.ShiftRepository
}

func NewShiftHandler(shifts *repository.ShiftRepository) *ShiftHandler {
	return &ShiftHandler{shifts: shifts}
}

func (h *ShiftHandler) List(w http.ResponseWriter, r *http.Request) {
	shifts, err := h.shifts.List(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list shifts")
		return
	}
	respondJSON(w, http.StatusOK, shifts)
}

func (h *ShiftHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid shift id")
		return
	}
	shift, err := h.shifts.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrShiftNotFound) {
			respondError(w, http.StatusNotFound, "shift not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to load shift")
		return
	}
	respondJSON(w, http.StatusOK, shift)
}

func (h *ShiftHandler) Create(w http.ResponseWriter, r *http.Request) {
	var shift model.Shift
	if err := json.NewDecoder(r.Body).Decode(&shift); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if shift.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}
	if _, err := shift.RequiredStaffingMap(); err != nil {
		respondError(w, http.StatusBadRequest, "required_staffing must be a valid role->count map")
		return
	}
	if err := h.shifts.Create(r.Context(), &shift); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, shift)
}

func (h *ShiftHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid shift id")
		return
	}
	var shift model.Shift
	if err := json.NewDecoder(r.Body).Decode(&shift); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	shift.ID = id
	if err := h.shifts.Update(r.Context(), &shift); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, shift)
}

func (h *ShiftHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid shift id")
		return
	}
	if err := h.shifts.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrShiftNotFound) {
			respondError(w, http.StatusNotFound, "shift not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to delete shift")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
