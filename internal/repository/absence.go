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

var ErrAbsenceNotFound = errors.New("absence not found")

// AbsenceRepository handles absence data access.
type AbsenceRepository struct {
	db *DB
}

// NewAbsenceRepository creates a new AbsenceRepository.
func NewAbsenceRepository(db *DB) *AbsenceRepository {
	return &AbsenceRepository{db: db}
}

func (r *AbsenceRepository) Create(ctx context.Context, a *model.Absence) error {
	return r.db.GORM.WithContext(ctx).Create(a).Error
}

func (r *AbsenceRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Absence, error) {
	var a model.Absence
	err := r.db.GORM.WithContext(ctx).First(&a, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAbsenceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get absence: %w", err)
	}
	return &a, nil
}

// ListOverlappingEmployee returns every absence of the employee that
// overlaps [from, to], used to enforce the different-kinds-must-not-overlap
// invariant before inserting a new absence.
func (r *AbsenceRepository) ListOverlappingEmployee(ctx context.Context, employeeID uuid.UUID, from, to time.Time) ([]model.Absence, error) {
	var absences []model.Absence
	err := r.db.GORM.WithContext(ctx).
		Where("employee_id = ? AND \"from\" <= ? AND \"to\" >= ?", employeeID, to, from).
		Find(&absences).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list overlapping absences: %w", err)
	}
	return absences, nil
}

// ListInRange returns every absence intersecting [from, to], used to build
// the generators' absence_map.
func (r *AbsenceRepository) ListInRange(ctx context.Context, from, to time.Time) ([]model.Absence, error) {
	var absences []model.Absence
	err := r.db.GORM.WithContext(ctx).
		Where("\"from\" <= ? AND \"to\" >= ?", to, from).
		Find(&absences).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list absences in range: %w", err)
	}
	return absences, nil
}

func (r *AbsenceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.GORM.WithContext(ctx).Delete(&model.Absence{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete absence: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrAbsenceNotFound
	}
	return nil
}
