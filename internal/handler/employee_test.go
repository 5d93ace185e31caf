package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftforge/scheduler/internal/handler"
	"github.com/shiftforge/scheduler/internal/model"
	"github.com/shiftforge/scheduler/internal/repository"
	"github.com/shiftforge/scheduler/internal/testutil"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestAbsenceHandler_Create_RejectsOverlappingDifferentKind(t *testing.T) {
	db := testutil.SetupTestDB(t)
	employeeRepo := repository.NewEmployeeRepository(db)
	absenceRepo := repository.NewAbsenceRepository(db)
	h := handler.NewAbsenceHandler(absenceRepo)
	ctx := t.Context()

	employee := &model.Employee{FirstName: "Anna", LastName: "Kowalska"}
	require.NoError(t, employeeRepo.Create(ctx, employee))

	vacation := &model.Absence{
		EmployeeID: employee.ID,
		Kind:       model.AbsenceKindVacation,
		From:       day("2026-02-10"),
		To:         day("2026-02-14"),
	}
	require.NoError(t, absenceRepo.Create(ctx, vacation))

	body, err := json.Marshal(model.Absence{
		EmployeeID: employee.ID,
		Kind:       model.AbsenceKindSick,
		From:       day("2026-02-12"),
		To:         day("2026-02-13"),
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/absences", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAbsenceHandler_Create_AllowsOverlappingSameKind(t *testing.T) {
	db := testutil.SetupTestDB(t)
	employeeRepo := repository.NewEmployeeRepository(db)
	absenceRepo := repository.NewAbsenceRepository(db)
	h := handler.NewAbsenceHandler(absenceRepo)
	ctx := t.Context()

	employee := &model.Employee{FirstName: "Jan", LastName: "Nowak"}
	require.NoError(t, employeeRepo.Create(ctx, employee))

	sick := &model.Absence{
		EmployeeID: employee.ID,
		Kind:       model.AbsenceKindSick,
		From:       day("2026-03-01"),
		To:         day("2026-03-05"),
	}
	require.NoError(t, absenceRepo.Create(ctx, sick))

	body, err := json.Marshal(model.Absence{
		EmployeeID: employee.ID,
		Kind:       model.AbsenceKindSick,
		From:       day("2026-03-03"),
		To:         day("2026-03-06"),
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/absences", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
}
