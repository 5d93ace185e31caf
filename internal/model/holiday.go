package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Holiday is a named calendar date, optionally closing the store entirely
// or overriding the normal staffing requirements for that date.
type Holiday struct {
	ID                uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Date              time.Time      `gorm:"type:date;not null;uniqueIndex" json:"date"`
	Name              string         `gorm:"type:varchar(120);not null" json:"name"`
	CoverageOverrides datatypes.JSON `gorm:"type:jsonb" json:"coverage_overrides,omitempty"`
	StoreClosed       bool           `gorm:"column:store_closed;default:false" json:"store_closed"`
	CreatedAt         time.Time      `gorm:"default:now()" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"default:now()" json:"updated_at"`
}

func (Holiday) TableName() string {
	return "holidays"
}
