package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ScheduleStatus is the publication state of a MonthlySchedule.
type ScheduleStatus string

const (
	ScheduleStatusDraft     ScheduleStatus = "draft"
	ScheduleStatusPublished ScheduleStatus = "published"
)

// MonthlySchedule is the planned output for a given YYYY-MM: a set of
// (employee, date, shift) triples materialized as ScheduleEntry rows.
type MonthlySchedule struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	MonthKey  string         `gorm:"column:month_key;type:varchar(7);not null;uniqueIndex" json:"month_key"`
	Status    ScheduleStatus `gorm:"type:varchar(20);not null;default:'draft'" json:"status"`
	CreatedAt time.Time      `gorm:"column:created_at;default:now();not null" json:"created_at"`

	Entries []ScheduleEntry `gorm:"foreignKey:ScheduleID;constraint:OnDelete:CASCADE" json:"entries,omitempty"`
}

func (MonthlySchedule) TableName() string {
	return "monthly_schedules"
}

// MonthKey formats a year/month pair as the schedule's natural key.
func MonthKey(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

// ScheduleEntry is one (employee, date, shift) assignment within a
// MonthlySchedule. Uniqueness of (schedule_id, employee_id, date, shift_id)
// is an invariant the core must maintain; it is not enforced by the database.
type ScheduleEntry struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ScheduleID uuid.UUID `gorm:"type:uuid;not null;index" json:"schedule_id"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index" json:"employee_id"`
	ShiftID    uuid.UUID `gorm:"type:uuid;not null;index" json:"shift_id"`
	Date       time.Time `gorm:"type:date;not null" json:"date"`

	Employee *Employee `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
	Shift    *Shift    `gorm:"foreignKey:ShiftID" json:"shift,omitempty"`
}

func (ScheduleEntry) TableName() string {
	return "schedule_entries"
}

// EntryKey is the natural-key tuple ScheduleEntry rows must not duplicate.
type EntryKey struct {
	EmployeeID uuid.UUID
	Date       string
	ShiftID    uuid.UUID
}

// Key returns the entry's natural-key tuple for duplicate detection.
func (e *ScheduleEntry) Key() EntryKey {
	return EntryKey{
		EmployeeID: e.EmployeeID,
		Date:       e.Date.Format("2006-01-02"),
		ShiftID:    e.ShiftID,
	}
}
