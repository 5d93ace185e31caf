package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shiftforge/scheduler/internal/model"
)

var ErrLaborLawRuleNotFound = errors.New("labor law rule not found")

// LaborLawRuleRepository handles labor law rule data access.
type LaborLawRuleRepository struct {
	db *DB
}

// NewLaborLawRuleRepository creates a new LaborLawRuleRepository.
func NewLaborLawRuleRepository(db *DB) *LaborLawRuleRepository {
	return &LaborLawRuleRepository{db: db}
}

func (r *LaborLawRuleRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.LaborLawRule, error) {
	var rule model.LaborLawRule
	err := r.db.GORM.WithContext(ctx).First(&rule, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrLaborLawRuleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get labor law rule: %w", err)
	}
	return &rule, nil
}

// GetByCode returns the rule with the given code, exact match (the
// Configuration Loader is responsible for code canonicalization).
func (r *LaborLawRuleRepository) GetByCode(ctx context.Context, code string) (*model.LaborLawRule, error) {
	var rule model.LaborLawRule
	err := r.db.GORM.WithContext(ctx).First(&rule, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrLaborLawRuleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get labor law rule by code: %w", err)
	}
	return &rule, nil
}

// ListActive returns rules whose active window intersects [from, to],
// optionally filtered by category and/or severity.
func (r *LaborLawRuleRepository) ListActive(ctx context.Context, from, to time.Time, category *model.RuleCategory, severity *model.RuleSeverity) ([]model.LaborLawRule, error) {
	q := r.db.GORM.WithContext(ctx).
		Where("(active_from IS NULL OR active_from <= ?) AND (active_to IS NULL OR active_to >= ?)", to, from)
	if category != nil {
		q = q.Where("category = ?", *category)
	}
	if severity != nil {
		q = q.Where("severity = ?", *severity)
	}

	var rules []model.LaborLawRule
	if err := q.Order("code ASC").Find(&rules).Error; err != nil {
		return nil, fmt.Errorf("failed to list active labor law rules: %w", err)
	}
	return rules, nil
}

func (r *LaborLawRuleRepository) Create(ctx context.Context, rule *model.LaborLawRule) error {
	return r.db.GORM.WithContext(ctx).Create(rule).Error
}

func (r *LaborLawRuleRepository) Update(ctx context.Context, rule *model.LaborLawRule) error {
	if err := r.db.GORM.WithContext(ctx).Save(rule).Error; err != nil {
		return fmt.Errorf("failed to update labor law rule: %w", err)
	}
	return nil
}

func (r *LaborLawRuleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.GORM.WithContext(ctx).Delete(&model.LaborLawRule{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete labor law rule: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrLaborLawRuleNotFound
	}
	return nil
}
