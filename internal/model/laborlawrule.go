package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// RuleSeverity grades a LaborLawRule's impact on validation.
type RuleSeverity string

const (
	SeverityHard RuleSeverity = "HARD" // blocking error
	SeveritySoft RuleSeverity = "SOFT" // non-blocking warning
)

// RuleCategory groups LaborLawRules by concern.
type RuleCategory string

const (
	CategoryRest        RuleCategory = "REST"
	CategoryHoursLimit  RuleCategory = "HOURS_LIMIT"
	CategoryHoliday     RuleCategory = "HOLIDAY"
	CategoryCoverage    RuleCategory = "COVERAGE"
)

// LaborLawRule is a configurable, severity-graded rule whose parameter
// schema is determined by its code.
type LaborLawRule struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Code        string         `gorm:"type:varchar(120);not null;uniqueIndex" json:"code"`
	Name        string         `gorm:"type:varchar(255);not null" json:"name"`
	Category    RuleCategory   `gorm:"type:varchar(80);not null" json:"category"`
	Severity    RuleSeverity   `gorm:"type:varchar(40);not null" json:"severity"`
	Parameters  datatypes.JSON `gorm:"type:jsonb" json:"parameters,omitempty"`
	Description *string        `gorm:"type:text" json:"description,omitempty"`
	ActiveFrom  *time.Time     `gorm:"type:date" json:"active_from,omitempty"`
	ActiveTo    *time.Time     `gorm:"type:date" json:"active_to,omitempty"`
	CreatedAt   time.Time      `gorm:"default:now()" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"default:now()" json:"updated_at"`
}

func (LaborLawRule) TableName() string {
	return "labor_law_rules"
}

// ActiveDuring reports whether the rule's active window intersects [from, to].
// A nil bound is open-ended.
func (r *LaborLawRule) ActiveDuring(from, to time.Time) bool {
	if r.ActiveFrom != nil && dateOnly(*r.ActiveFrom).After(dateOnly(to)) {
		return false
	}
	if r.ActiveTo != nil && dateOnly(*r.ActiveTo).Before(dateOnly(from)) {
		return false
	}
	return true
}

// IssueLevel maps the rule's severity to a validation issue level.
func (r *LaborLawRule) IssueLevel() string {
	if r.Severity == SeverityHard {
		return "error"
	}
	return "warning"
}
