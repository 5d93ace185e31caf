package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/shiftforge/scheduler/internal/timeutil"
)

// Shift is a labeled time window within a calendar day with an associated
// per-role staffing requirement. Start/end are minutes from midnight; a
// shift crosses midnight when EndMinutes < StartMinutes.
type Shift struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name             string         `gorm:"type:varchar(120);not null" json:"name"`
	StartMinutes     int            `gorm:"column:start_minutes;not null" json:"start_minutes"`
	EndMinutes       int            `gorm:"column:end_minutes;not null" json:"end_minutes"`
	RequiredStaffing datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"required_staffing"`
	CreatedAt        time.Time      `gorm:"default:now()" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"default:now()" json:"updated_at"`
}

func (Shift) TableName() string {
	return "shifts"
}

// DurationMinutes returns the shift's length in minutes, treating
// end <= start as crossing midnight.
func (s *Shift) DurationMinutes() int {
	end := timeutil.NormalizeCrossMidnight(s.StartMinutes, s.EndMinutes)
	if end == s.StartMinutes {
		end += timeutil.MinutesPerDay
	}
	return end - s.StartMinutes
}

// DurationHours returns the shift's length in hours, including any
// fractional part (e.g. 7.5 for a 450-minute shift).
func (s *Shift) DurationHours() float64 {
	return float64(s.DurationMinutes()) / 60.0
}

// RequiredStaffingMap unmarshals the required_staffing column into a
// role-name -> required-count map.
func (s *Shift) RequiredStaffingMap() (map[string]int, error) {
	out := map[string]int{}
	if len(s.RequiredStaffing) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(s.RequiredStaffing, &out); err != nil {
		return nil, err
	}
	return out, nil
}
