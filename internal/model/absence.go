package model

import (
	"time"

	"github.com/google/uuid"
)

// AbsenceKind enumerates the reasons an employee is unavailable for assignment.
type AbsenceKind string

const (
	AbsenceKindVacation AbsenceKind = "vacation"
	AbsenceKindSick     AbsenceKind = "sick"
)

// Absence is a contiguous, inclusive date range during which an employee is
// unavailable for assignment.
type Absence struct {
	ID         uuid.UUID   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	EmployeeID uuid.UUID   `gorm:"type:uuid;not null;index" json:"employee_id"`
	Kind       AbsenceKind `gorm:"type:varchar(40);not null" json:"kind"`
	From       time.Time   `gorm:"type:date;not null" json:"from"`
	To         time.Time   `gorm:"type:date;not null" json:"to"`
	CreatedAt  time.Time   `gorm:"default:now()" json:"created_at"`
	UpdatedAt  time.Time   `gorm:"default:now()" json:"updated_at"`

	Employee *Employee `gorm:"foreignKey:EmployeeID" json:"-"`
}

func (Absence) TableName() string {
	return "absences"
}

// Covers reports whether the absence range includes the given date.
func (a *Absence) Covers(date time.Time) bool {
	d := dateOnly(date)
	return !d.Before(dateOnly(a.From)) && !d.After(dateOnly(a.To))
}

// OverlapsRange reports whether this absence's date range intersects [from, to].
func (a *Absence) OverlapsRange(from, to time.Time) bool {
	return !dateOnly(a.From).After(dateOnly(to)) && !dateOnly(a.To).Before(dateOnly(from))
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
