package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// HourLimit carries optional hard caps for daily/weekly/monthly/quarterly
// hours for a given employment fraction.
type HourLimit struct {
	ID                 uuid.UUID          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	EmploymentFraction EmploymentFraction `gorm:"type:varchar(32);not null;uniqueIndex" json:"employment_fraction"`
	DailyHoursCap      *int               `gorm:"column:daily_hours_cap" json:"daily_hours_cap,omitempty"`
	WeeklyHoursCap     *int               `gorm:"column:weekly_hours_cap" json:"weekly_hours_cap,omitempty"`
	MonthlyHoursCap    *int               `gorm:"column:monthly_hours_cap" json:"monthly_hours_cap,omitempty"`
	QuarterlyHoursCap  *int               `gorm:"column:quarterly_hours_cap" json:"quarterly_hours_cap,omitempty"`

	// DefaultMonthlyHoursDecimal is a decimal-typed, non-persisted and
	// non-serialized field. Nothing in this module sets or reads it; the
	// PDF roster exporter builds its decimal caps from
	// Employee.MonthlyHourCap and DefaultMonthlyHoursCap instead.
	DefaultMonthlyHoursDecimal decimal.Decimal `gorm:"-" json:"-"`
}

func (HourLimit) TableName() string {
	return "hour_limits"
}

// DefaultMonthlyHoursCap is the monthly cap used when an employee has no
// explicit MonthlyHourCap (spec default: 160). HourLimit rows are not
// consulted for this fallback.
const DefaultMonthlyHoursCap = 160

// MonthlyHoursDecimal returns the monthly cap as a decimal.Decimal, falling
// back to DefaultMonthlyHoursCap when unset.
func (h *HourLimit) MonthlyHoursDecimal() decimal.Decimal {
	if h == nil || h.MonthlyHoursCap == nil {
		return decimal.NewFromInt(DefaultMonthlyHoursCap)
	}
	return decimal.NewFromInt(int64(*h.MonthlyHoursCap))
}
