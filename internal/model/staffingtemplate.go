package model

import (
	"time"

	"github.com/google/uuid"
)

// DayType classifies a calendar date for the purpose of staffing templates.
type DayType string

const (
	DayTypeWeekday DayType = "WEEKDAY"
	DayTypeWeekend DayType = "WEEKEND"
	DayTypeHoliday DayType = "HOLIDAY"
)

// StaffingTemplate is a per-day-type, per-shift, per-role target
// (min, target, max) used by reporting and as input to richer scenarios.
// Invariant: MinStaff <= TargetStaff <= MaxStaff (when MaxStaff is set).
type StaffingTemplate struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	DayType        DayType    `gorm:"type:varchar(20);not null;uniqueIndex:idx_staffing_template_key" json:"day_type"`
	ShiftID        uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:idx_staffing_template_key" json:"shift_id"`
	RoleID         uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:idx_staffing_template_key" json:"role_id"`
	MinStaff       int        `gorm:"column:min_staff;default:0" json:"min_staff"`
	TargetStaff    int        `gorm:"column:target_staff;default:0" json:"target_staff"`
	MaxStaff       *int       `gorm:"column:max_staff" json:"max_staff,omitempty"`
	EffectiveFrom  *time.Time `gorm:"type:date" json:"effective_from,omitempty"`
	EffectiveTo    *time.Time `gorm:"type:date" json:"effective_to,omitempty"`
	CreatedAt      time.Time  `gorm:"default:now()" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"default:now()" json:"updated_at"`

	Shift *Shift `gorm:"foreignKey:ShiftID" json:"shift,omitempty"`
	Role  *Role  `gorm:"foreignKey:RoleID" json:"role,omitempty"`
}

func (StaffingTemplate) TableName() string {
	return "staffing_templates"
}

// ValidBounds reports whether MinStaff <= TargetStaff <= MaxStaff holds.
func (t *StaffingTemplate) ValidBounds() bool {
	if t.MinStaff > t.TargetStaff {
		return false
	}
	if t.MaxStaff != nil && t.TargetStaff > *t.MaxStaff {
		return false
	}
	return true
}

// EffectiveOn reports whether the template applies on the given date.
func (t *StaffingTemplate) EffectiveOn(date time.Time) bool {
	d := dateOnly(date)
	if t.EffectiveFrom != nil && d.Before(dateOnly(*t.EffectiveFrom)) {
		return false
	}
	if t.EffectiveTo != nil && d.After(dateOnly(*t.EffectiveTo)) {
		return false
	}
	return true
}
