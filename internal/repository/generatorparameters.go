package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shiftforge/scheduler/internal/model"
)

var ErrGeneratorParametersNotFound = errors.New("generator parameters not found")

// GeneratorParametersRepository handles generator parameters data access.
type GeneratorParametersRepository struct {
	db *DB
}

// NewGeneratorParametersRepository creates a new GeneratorParametersRepository.
func NewGeneratorParametersRepository(db *DB) *GeneratorParametersRepository {
	return &GeneratorParametersRepository{db: db}
}

// GetByScenario returns the parameters for the exact scenario tag given.
// Fallback to model.DefaultScenario is the Configuration Loader's job.
func (r *GeneratorParametersRepository) GetByScenario(ctx context.Context, scenarioType string) (*model.GeneratorParameters, error) {
	var p model.GeneratorParameters
	err := r.db.GORM.WithContext(ctx).First(&p, "scenario_type = ?", scenarioType).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrGeneratorParametersNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get generator parameters: %w", err)
	}
	return &p, nil
}

// Upsert idempotently creates or updates parameters keyed by scenario_type.
func (r *GeneratorParametersRepository) Upsert(ctx context.Context, p *model.GeneratorParameters) error {
	err := r.db.GORM.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "scenario_type"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"weights", "max_consecutive_nights", "min_rest_hours_override", "last_updated_by", "updated_at",
			}),
		}).
		Create(p).Error
	if err != nil {
		return fmt.Errorf("failed to upsert generator parameters: %w", err)
	}
	return nil
}
