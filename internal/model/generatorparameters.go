package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// DefaultScenario is the scenario-tag used as a fallback when a requested
// scenario has no GeneratorParameters record.
const DefaultScenario = "DEFAULT"

// GeneratorParameters is a named bundle of solver weights and overrides.
type GeneratorParameters struct {
	ID                   uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ScenarioType         string         `gorm:"type:varchar(80);not null;uniqueIndex" json:"scenario_type"`
	Weights              datatypes.JSON `gorm:"type:jsonb;not null;default:'{}'" json:"weights"`
	MaxConsecutiveNights *int           `gorm:"column:max_consecutive_nights" json:"max_consecutive_nights,omitempty"`
	MinRestHoursOverride *int           `gorm:"column:min_rest_hours_override" json:"min_rest_hours_override,omitempty"`
	LastUpdatedBy        *string        `gorm:"type:varchar(120)" json:"last_updated_by,omitempty"`
	UpdatedAt            time.Time      `gorm:"default:now()" json:"updated_at"`
}

func (GeneratorParameters) TableName() string {
	return "generator_parameters"
}

// WeightsMap unmarshals the weights column into a name -> weight map.
func (p *GeneratorParameters) WeightsMap() (map[string]float64, error) {
	out := map[string]float64{}
	if len(p.Weights) == 0 {
		return out, nil
	}
	if err := unmarshalJSON(p.Weights, &out); err != nil {
		return nil, err
	}
	return out, nil
}
