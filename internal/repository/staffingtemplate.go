package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shiftforge/scheduler/internal/model"
)

var ErrStaffingTemplateNotFound = errors.New("staffing template not found")

// StaffingTemplateRepository handles staffing template data access.
type StaffingTemplateRepository struct {
	db *DB
}

// NewStaffingTemplateRepository creates a new StaffingTemplateRepository.
func NewStaffingTemplateRepository(db *DB) *StaffingTemplateRepository {
	return &StaffingTemplateRepository{db: db}
}

func (r *StaffingTemplateRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.StaffingTemplate, error) {
	var t model.StaffingTemplate
	err := r.db.GORM.WithContext(ctx).First(&t, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrStaffingTemplateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get staffing template: %w", err)
	}
	return &t, nil
}

// List filters staffing templates by optional day type, shift, role, and
// effective date, mirroring the Configuration Loader's
// staffing_templates(day_type?, shift_id?, role_id?, effective?) signature.
func (r *StaffingTemplateRepository) List(ctx context.Context, dayType *model.DayType, shiftID, roleID *uuid.UUID, effective *time.Time) ([]model.StaffingTemplate, error) {
	q := r.db.GORM.WithContext(ctx).Model(&model.StaffingTemplate{})
	if dayType != nil {
		q = q.Where("day_type = ?", *dayType)
	}
	if shiftID != nil {
		q = q.Where("shift_id = ?", *shiftID)
	}
	if roleID != nil {
		q = q.Where("role_id = ?", *roleID)
	}
	if effective != nil {
		q = q.Where("(effective_from IS NULL OR effective_from <= ?) AND (effective_to IS NULL OR effective_to >= ?)", *effective, *effective)
	}

	var templates []model.StaffingTemplate
	if err := q.Find(&templates).Error; err != nil {
		return nil, fmt.Errorf("failed to list staffing templates: %w", err)
	}
	return templates, nil
}

// Upsert idempotently creates or updates a staffing template keyed by its
// natural key (day_type, shift_id, role_id).
func (r *StaffingTemplateRepository) Upsert(ctx context.Context, t *model.StaffingTemplate) error {
	err := r.db.GORM.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "day_type"}, {Name: "shift_id"}, {Name: "role_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"min_staff", "target_staff", "max_staff", "effective_from", "effective_to", "updated_at"}),
		}).
		Create(t).Error
	if err != nil {
		return fmt.Errorf("failed to upsert staffing template: %w", err)
	}
	return nil
}

func (r *StaffingTemplateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.GORM.WithContext(ctx).Delete(&model.StaffingTemplate{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete staffing template: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrStaffingTemplateNotFound
	}
	return nil
}
