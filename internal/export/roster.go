// Package export renders a MonthlySchedule, whatever its status, to a
// one-page-per-week PDF roster. It is a narrow collaborator, not exercised by the
// generator/validator core.
package export

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shiftforge/scheduler/internal/model"
)

// RosterInput bundles everything the renderer needs beyond the schedule
// itself: the shift catalog (for names/durations) and employee catalog
// (for display names and monthly hour caps), both keyed by ID.
type RosterInput struct {
	Schedule  *model.MonthlySchedule
	Entries   []model.ScheduleEntry
	Shifts    map[uuid.UUID]model.Shift
	Employees map[uuid.UUID]model.Employee
}

// week is a Monday-anchored 7-day span used to paginate the roster.
type week struct {
	start time.Time
	end   time.Time
}

// RenderRosterPDF renders in.Entries as a landscape A4 PDF, one page per
// calendar week, followed by a final page summarizing each employee's
// total scheduled hours against their monthly cap.
func RenderRosterPDF(in RosterInput) ([]byte, error) {
	if in.Schedule == nil {
		return nil, fmt.Errorf("roster input requires a schedule")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Schedule %s", in.Schedule.MonthKey), false)

	weeks := weeksCovering(in.Entries)
	for _, wk := range weeks {
		renderWeekPage(pdf, in, wk)
	}
	renderSummaryPage(pdf, in)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render roster pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func weeksCovering(entries []model.ScheduleEntry) []week {
	if len(entries) == 0 {
		return nil
	}
	minDate, maxDate := entries[0].Date, entries[0].Date
	for _, e := range entries {
		if e.Date.Before(minDate) {
			minDate = e.Date
		}
		if e.Date.After(maxDate) {
			maxDate = e.Date
		}
	}

	start := mondayOf(minDate)
	var weeks []week
	for start.Before(maxDate) || sameDay(start, maxDate) {
		end := start.AddDate(0, 0, 6)
		weeks = append(weeks, week{start: start, end: end})
		start = start.AddDate(0, 0, 7)
	}
	return weeks
}

func mondayOf(d time.Time) time.Time {
	offset := int(d.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7
	}
	return d.AddDate(0, 0, -offset)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func renderWeekPage(pdf *fpdf.Fpdf, in RosterInput, wk week) {
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 14)
	title := fmt.Sprintf("Week of %s to %s", wk.start.Format("2006-01-02"), wk.end.Format("2006-01-02"))
	pdf.CellFormat(0, 10, title, "", 1, "C", false, 0, "")
	pdf.Ln(3)

	byEmployee := map[uuid.UUID][]model.ScheduleEntry{}
	for _, e := range in.Entries {
		if e.Date.Before(wk.start) || e.Date.After(wk.end) {
			continue
		}
		byEmployee[e.EmployeeID] = append(byEmployee[e.EmployeeID], e)
	}

	employeeIDs := make([]uuid.UUID, 0, len(byEmployee))
	for id := range byEmployee {
		employeeIDs = append(employeeIDs, id)
	}
	sort.Slice(employeeIDs, func(i, j int) bool {
		return employeeDisplayName(in, employeeIDs[i]) < employeeDisplayName(in, employeeIDs[j])
	})

	colWidth := 277.0 / 8.0 // name column + 7 days, A4 landscape usable width

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(colWidth, 7, "Employee", "1", 0, "C", false, 0, "")
	for d := wk.start; !d.After(wk.end); d = d.AddDate(0, 0, 1) {
		pdf.CellFormat(colWidth, 7, d.Format("Mon 01-02"), "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 7)
	for _, id := range employeeIDs {
		pdf.CellFormat(colWidth, 6, employeeDisplayName(in, id), "1", 0, "", false, 0, "")
		entriesByDate := map[string]string{}
		for _, e := range byEmployee[id] {
			entriesByDate[e.Date.Format("2006-01-02")] = shiftDisplayName(in, e.ShiftID)
		}
		for d := wk.start; !d.After(wk.end); d = d.AddDate(0, 0, 1) {
			pdf.CellFormat(colWidth, 6, entriesByDate[d.Format("2006-01-02")], "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}
}

func renderSummaryPage(pdf *fpdf.Fpdf, in RosterInput) {
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, "Monthly Hours Summary", "", 1, "C", false, 0, "")
	pdf.Ln(3)

	hoursByEmployee := map[uuid.UUID]decimal.Decimal{}
	for _, e := range in.Entries {
		shift, ok := in.Shifts[e.ShiftID]
		if !ok {
			continue
		}
		hours := decimal.NewFromFloat(shift.DurationHours())
		hoursByEmployee[e.EmployeeID] = hoursByEmployee[e.EmployeeID].Add(hours)
	}

	employeeIDs := make([]uuid.UUID, 0, len(hoursByEmployee))
	for id := range hoursByEmployee {
		employeeIDs = append(employeeIDs, id)
	}
	sort.Slice(employeeIDs, func(i, j int) bool {
		return employeeDisplayName(in, employeeIDs[i]) < employeeDisplayName(in, employeeIDs[j])
	})

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(100, 7, "Employee", "1", 0, "", false, 0, "")
	pdf.CellFormat(50, 7, "Scheduled Hours", "1", 0, "C", false, 0, "")
	pdf.CellFormat(50, 7, "Monthly Cap", "1", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	for _, id := range employeeIDs {
		cap := decimal.NewFromInt(model.DefaultMonthlyHoursCap)
		if e, ok := in.Employees[id]; ok && e.MonthlyHourCap != nil {
			cap = decimal.NewFromInt(int64(*e.MonthlyHourCap))
		}
		pdf.CellFormat(100, 6, employeeDisplayName(in, id), "1", 0, "", false, 0, "")
		pdf.CellFormat(50, 6, hoursByEmployee[id].StringFixed(1), "1", 0, "C", false, 0, "")
		pdf.CellFormat(50, 6, cap.StringFixed(1), "1", 1, "C", false, 0, "")
	}
}

func employeeDisplayName(in RosterInput, id uuid.UUID) string {
	if e, ok := in.Employees[id]; ok {
		return e.FullName()
	}
	return id.String()
}

func shiftDisplayName(in RosterInput, id uuid.UUID) string {
	if s, ok := in.Shifts[id]; ok {
		return s.Name
	}
	return id.String()
}
