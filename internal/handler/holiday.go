package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/shiftforge/scheduler/internal/repository"
	"github.com/shiftforge/scheduler/internal/scheduling"
)

// HolidayHandler serves CRUD requests for holidays, one of the four
// durable configuration tables (spec §6).
type HolidayHandler struct {
	config   *scheduling.ConfigLoader
	holidays *repository.HolidayRepository
}

func NewHolidayHandler(config *scheduling.ConfigLoader, holidays *repository.HolidayRepository) *HolidayHandler {
	return &HolidayHandler{config: config, holidays: holidays}
}

func (h *HolidayHandler) List(w http.ResponseWriter, r *http.Request) {
	year := time.Now().Year()
	if yearStr := r.URL.Query().Get("year"); yearStr != "" {
		parsed, err := strconv.Atoi(yearStr)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid year parameter")
			return
		}
		year = parsed
	}
	from := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(year, 12, 31, 0, 0, 0, 0, time.UTC)

	holidays, err := h.holidays.ListInRange(r.Context(), from, to)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list holidays")
		return
	}
	respondJSON(w, http.StatusOK, holidays)
}

func (h *HolidayHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid holiday id")
		return
	}
	holiday, err := h.holidays.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrHolidayNotFound) {
			respondError(w, http.StatusNotFound, "holiday not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to load holiday")
		return
	}
	respondJSON(w, http.StatusOK, holiday)
}

type upsertHolidayBody struct {
	Date              string          `json:"date"`
	Name              string          `json:"name"`
	CoverageOverrides json.RawMessage `json:"coverage_overrides"`
	StoreClosed       bool            `json:"store_closed"`
}

// Upsert handles POST /holidays — idempotent create-or-update keyed by date.
func (h *HolidayHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var body upsertHolidayBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}
	date, err := time.Parse("2006-01-02", body.Date)
	if err != nil {
		respondError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	holiday, err := h.config.UpsertHoliday(r.Context(), scheduling.CreateOrUpdateHolidayInput{
		Date:              date,
		Name:              body.Name,
		CoverageOverrides: body.CoverageOverrides,
		StoreClosed:       body.StoreClosed,
	})
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, holiday)
}

func (h *HolidayHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid holiday id")
		return
	}
	if err := h.holidays.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrHolidayNotFound) {
			respondError(w, http.StatusNotFound, "holiday not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to delete holiday")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
