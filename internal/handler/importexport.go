package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/shiftforge/scheduler/internal/export"
	"github.com/shiftforge/scheduler/internal/importer"
	"github.com/shiftforge/scheduler/internal/model"
	"github.com/shiftforge/scheduler/internal/repository"
)

// maxImportFileBytes bounds the multipart upload accepted by ImportHandler,
// matching the teacher's own upload-size guard in its report endpoints.
const maxImportFileBytes = 10 << 20 // 10 MiB

// ImportHandler serves bulk catalog imports from an operator-supplied
// spreadsheet (employees, shifts, staffing templates).
type ImportHandler struct {
	importer *importer.Importer
}

func NewImportHandler(importer *importer.Importer) *ImportHandler {
	return &ImportHandler{importer: importer}
}

// Upload handles POST /import — a multipart form carrying a "file" field
// with an xlsx workbook. Individual malformed rows are reported back
// without aborting the rest of the import.
func (h *ImportHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImportFileBytes); err != nil {
		respondError(w, http.StatusBadRequest, "request body too large or not multipart")
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	wb, err := importer.ParseWorkbook(file)
	if err != nil {
		respondError(w, http.StatusBadRequest, "failed to parse workbook: "+err.Error())
		return
	}

	result, err := h.importer.Import(r.Context(), wb)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to persist import: "+err.Error())
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// RosterHandler renders a MonthlySchedule to a PDF roster. The schedule's
// status is not checked: drafts are rendered the same as published ones.
type RosterHandler struct {
	schedules *repository.ScheduleRepository
	shifts    *repository.ShiftRepository
	employees *repository.EmployeeRepository
}

func NewRosterHandler(schedules *repository.ScheduleRepository, shifts *repository.ShiftRepository, employees *repository.EmployeeRepository) *RosterHandler {
	return &RosterHandler{schedules: schedules, shifts: shifts, employees: employees}
}

// Get handles GET /schedules/{id}/roster.pdf.
func (h *RosterHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid schedule id")
		return
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
	employees, err := h.employees.List(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load employees")
		return
	}

	shiftsByID := make(map[uuid.UUID]model.Shift, len(shifts))
	for _, s := range shifts {
		shiftsByID[s.ID] = s
	}
	employeesByID := make(map[uuid.UUID]model.Employee, len(employees))
	for _, e := range employees {
		employeesByID[e.ID] = e
	}

	pdf, err := export.RenderRosterPDF(export.RosterInput{
		Schedule:  schedule,
		Entries:   schedule.Entries,
		Shifts:    shiftsByID,
		Employees: employeesByID,
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to render roster: "+err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\""+schedule.MonthKey+"-roster.pdf\"")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}
