package export

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftforge/scheduler/internal/model"
)

func TestRenderRosterPDF_ProducesNonEmptyOutput(t *testing.T) {
	scheduleID := uuid.New()
	employeeID := uuid.New()
	shiftID := uuid.New()

	schedule := &model.MonthlySchedule{ID: scheduleID, MonthKey: "2026-08", Status: model.ScheduleStatusPublished}
	entries := []model.ScheduleEntry{
		{ID: uuid.New(), ScheduleID: scheduleID, EmployeeID: employeeID, ShiftID: shiftID, Date: time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)},
		{ID: uuid.New(), ScheduleID: scheduleID, EmployeeID: employeeID, ShiftID: shiftID, Date: time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)},
	}
	cap := 160
	in := RosterInput{
		Schedule: schedule,
		Entries:  entries,
		Shifts: map[uuid.UUID]model.Shift{
			shiftID: {ID: shiftID, Name: "Morning", StartMinutes: 6 * 60, EndMinutes: 14 * 60},
		},
		Employees: map[uuid.UUID]model.Employee{
			employeeID: {ID: employeeID, FirstName: "Anna", LastName: "Kowalska", MonthlyHourCap: &cap},
		},
	}

	out, err := RenderRosterPDF(in)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestRenderRosterPDF_RequiresSchedule(t *testing.T) {
	_, err := RenderRosterPDF(RosterInput{})
	assert.Error(t, err)
}

func TestWeeksCovering_SpansMondayToSunday(t *testing.T) {
	entries := []model.ScheduleEntry{
		{Date: time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)},  // Monday
		{Date: time.Date(2026, 8, 16, 0, 0, 0, 0, time.UTC)}, // Sunday of the following week
	}
	weeks := weeksCovering(entries)
	require.Len(t, weeks, 2)
	assert.Equal(t, time.Monday, weeks[0].start.Weekday())
	assert.Equal(t, time.Sunday, weeks[len(weeks)-1].end.Weekday())
}
