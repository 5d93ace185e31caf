package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shiftforge/scheduler/internal/model"
)

var ErrShiftNotFound = errors.New("shift not found")

// ShiftRepository handles shift data access.
type ShiftRepository struct {
	db *DB
}

// NewShiftRepository creates a new ShiftRepository.
func NewShiftRepository(db *DB) *ShiftRepository {
	return &ShiftRepository{db: db}
}

func (r *ShiftRepository) Create(ctx context.Context, s *model.Shift) error {
	return r.db.GORM.WithContext(ctx).Create(s).Error
}

func (r *ShiftRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Shift, error) {
	var s model.Shift
	err := r.db.GORM.WithContext(ctx).First(&s, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrShiftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get shift: %w", err)
	}
	return &s, nil
}

// List retrieves all shifts ordered by id, the order both generators iterate in.
func (r *ShiftRepository) List(ctx context.Context) ([]model.Shift, error) {
	var shifts []model.Shift
	err := r.db.GORM.WithContext(ctx).Order("id ASC").Find(&shifts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	return shifts, nil
}

func (r *ShiftRepository) Update(ctx context.Context, s *model.Shift) error {
	if err := r.db.GORM.WithContext(ctx).Save(s).Error; err != nil {
		return fmt.Errorf("failed to update shift: %w", err)
	}
	return nil
}

func (r *ShiftRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.GORM.WithContext(ctx).Delete(&model.Shift{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete shift: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrShiftNotFound
	}
	return nil
}
