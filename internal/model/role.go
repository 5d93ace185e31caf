package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Role is a job function used both to gate employee eligibility and to
// express per-shift staffing requirements.
type Role struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name            string         `gorm:"type:varchar(120);not null" json:"name"`
	AlternateNames  pq.StringArray `gorm:"type:text[];column:alternate_names" json:"alternate_names,omitempty"`
	MinStaffing     *int           `gorm:"column:min_staffing" json:"min_staffing,omitempty"`
	MaxStaffing     *int           `gorm:"column:max_staffing" json:"max_staffing,omitempty"`
	CreatedAt       time.Time      `gorm:"default:now()" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"default:now()" json:"updated_at"`

	Employees []Employee `gorm:"foreignKey:RoleID" json:"-"`
}

func (Role) TableName() string {
	return "roles"
}
