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

// RoleHandler serves CRUD requests for roles.
type RoleHandler struct {
	roles *repository.RoleRepository
}

func NewRoleHandler(roles *repository.RoleRepository) *RoleHandler {
	return &RoleHandler{roles: roles}
}

func (h *RoleHandler) List(w http.ResponseWriter, r *http.Request) {
	roles, err := h.roles.List(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list roles")
		return
	}
	respondJSON(w, http.StatusOK, roles)
}

func (h *RoleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid role id")
		return
	}
	role, err := h.roles.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrRoleNotFound) {
			respondError(w, http.StatusNotFound, "role not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to load role")
		return
	}
	respondJSON(w, http.StatusOK, role)
}

func (h *RoleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var role model.Role
	if err := json.NewDecoder(r.Body).Decode(&role); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if role.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}
	if err := h.roles.Create(r.Context(), &role); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, role)
}

func (h *RoleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid role id")
		return
	}
	var role model.Role
	if err := json.NewDecoder(r.Body).Decode(&role); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	role.ID = id
	if err := h.roles.Update(r.Context(), &role); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, role)
}

func (h *RoleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid role id")
		return
	}
	if err := h.roles.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrRoleNotFound) {
			respondError(w, http.StatusNotFound, "role not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to delete role")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
