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

// EmployeeHandler serves CRUD requests for employees.
type EmployeeHandler struct {
	employees *repository.EmployeeRepository
}

func NewEmployeeHandler(employees *repository.EmployeeRepository) *EmployeeHandler {
	return &EmployeeHandler{employees: employees}
}

func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	if roleIDStr := r.URL.Query().Get("role_id"); roleIDStr != "" {
		roleID, err := uuid.Parse(roleIDStr)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid role_id")
			return
		}
		employees, err := h.employees.ListByRole(r.Context(), roleID)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "failed to list employees")
			return
		}
		respondJSON(w, http.StatusOK, employees)
		return
	}

	employees, err := h.employees.List(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list employees")
		return
	}
	respondJSON(w, http.StatusOK, employees)
}

func (h *EmployeeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid employee id")
		return
	}
	employee, err := h.employees.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrEmployeeNotFound) {
			respondError(w, http.StatusNotFound, "employee not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to load employee")
		return
	}
	respondJSON(w, http.StatusOK, employee)
}

func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var employee model.Employee
	if err := json.NewDecoder(r.Body).Decode(&employee); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if employee.FirstName == "" || employee.LastName == "" {
		respondError(w, http.StatusBadRequest, "first_name and last_name are required")
		return
	}
	if err := h.employees.Create(r.Context(), &employee); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, employee)
}

func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid employee id")
		return
	}
	var employee model.Employee
	if err := json.NewDecoder(r.Body).Decode(&employee); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	employee.ID = id
	if err := h.employees.Update(r.Context(), &employee); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, employee)
}

func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid employee id")
		return
	}
	if err := h.employees.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrEmployeeNotFound) {
			respondError(w, http.StatusNotFound, "employee not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to delete employee")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AbsenceHandler serves CRUD requests for absences.
type AbsenceHandler struct {
	absences *repository.AbsenceRepository
}

func NewAbsenceHandler(absences *repository.AbsenceRepository) *AbsenceHandler {
	return &AbsenceHandler{absences: absences}
}

func (h *AbsenceHandler) List(w http.ResponseWriter, r *http.Request) {
	fromStr, toStr := r.URL.Query().Get("from"), r.URL.Query().Get("to")
	if fromStr == "" || toStr == "" {
		respondError(w, http.StatusBadRequest, "from and to query parameters are required (YYYY-MM-DD)")
		return
	}
	from, err := time.Parse("2006-01-02", fromStr)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid from date")
		return
	}
	to, err := time.Parse("2006-01-02", toStr)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid to date")
		return
	}
	absences, err := h.absences.ListInRange(r.Context(), from, to)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list absences")
		return
	}
	respondJSON(w, http.StatusOK, absences)
}

func (h *AbsenceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var absence model.Absence
	if err := json.NewDecoder(r.Body).Decode(&absence); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if absence.From.After(absence.To) {
		respondError(w, http.StatusBadRequest, "from must not be after to")
		return
	}

	overlapping, err := h.absences.ListOverlappingEmployee(r.Context(), absence.EmployeeID, absence.From, absence.To)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to check for overlapping absences")
		return
	}
	for _, existing := range overlapping {
		if existing.Kind != absence.Kind {
			respondError(w, http.StatusConflict, "overlaps an existing absence of a different kind")
			return
		}
	}

	if err := h.absences.Create(r.Context(), &absence); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, absence)
}

func (h *AbsenceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid absence id")
		return
	}
	if err := h.absences.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrAbsenceNotFound) {
			respondError(w, http.StatusNotFound, "absence not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to delete absence")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
