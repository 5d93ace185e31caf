package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// EmploymentFraction tags an employee's contracted workload.
type EmploymentFraction string

const (
	EmploymentFractionFullTime      EmploymentFraction = "full_time"
	EmploymentFractionThreeQuarters EmploymentFraction = "three_quarters"
	EmploymentFractionHalf          EmploymentFraction = "half"
	EmploymentFractionQuarter       EmploymentFraction = "quarter"
)

// Employee is a scheduling subject: a person who can be assigned to shifts.
type Employee struct {
	ID                 uuid.UUID          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	FirstName          string             `gorm:"type:varchar(80);not null" json:"first_name"`
	LastName           string             `gorm:"type:varchar(120);not null" json:"last_name"`
	RoleID             *uuid.UUID         `gorm:"type:uuid;index" json:"role_id,omitempty"`
	EmploymentFraction EmploymentFraction `gorm:"type:varchar(32)" json:"employment_fraction,omitempty"`
	MonthlyHourCap     *int               `gorm:"column:monthly_hour_cap" json:"monthly_hour_cap,omitempty"`
	Preferences        datatypes.JSON     `gorm:"type:jsonb" json:"preferences,omitempty"`
	HireDate           *time.Time         `gorm:"type:date" json:"hire_date,omitempty"`
	CreatedAt          time.Time          `gorm:"default:now()" json:"created_at"`
	UpdatedAt          time.Time          `gorm:"default:now()" json:"updated_at"`

	Role       *Role      `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	Absences   []Absence  `gorm:"foreignKey:EmployeeID" json:"-"`
}

func (Employee) TableName() string {
	return "employees"
}

// FullName joins first and last name for display contexts (PDF rosters, CLI tables).
func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}
