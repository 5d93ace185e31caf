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

var ErrHolidayNotFound = errors.New("holiday not found")

// HolidayRepository handles holiday data access.
type HolidayRepository struct {
	db *DB
}

// NewHolidayRepository creates a new HolidayRepository.
func NewHolidayRepository(db *DB) *HolidayRepository {
	return &HolidayRepository{db: db}
}

func (r *HolidayRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Holiday, error) {
	var h model.Holiday
	err := r.db.GORM.WithContext(ctx).First(&h, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrHolidayNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get holiday: %w", err)
	}
	return &h, nil
}

// GetByDate returns the holiday on the given date, if any.
func (r *HolidayRepository) GetByDate(ctx context.Context, date time.Time) (*model.Holiday, error) {
	var h model.Holiday
	err := r.db.GORM.WithContext(ctx).First(&h, "date = ?", date).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrHolidayNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get holiday by date: %w", err)
	}
	return &h, nil
}

// ListInRange returns holidays with date in [from, to], ordered by date.
func (r *HolidayRepository) ListInRange(ctx context.Context, from, to time.Time) ([]model.Holiday, error) {
	var holidays []model.Holiday
	err := r.db.GORM.WithContext(ctx).
		Where("date BETWEEN ? AND ?", from, to).
		Order("date ASC").
		Find(&holidays).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	return holidays, nil
}

// Upsert idempotently creates or updates a holiday keyed by its natural key
// (date). On conflict, overwrites every mutable column.
func (r *HolidayRepository) Upsert(ctx context.Context, h *model.Holiday) error {
	err := r.db.GORM.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "coverage_overrides", "store_closed", "updated_at"}),
		}).
		Create(h).Error
	if err != nil {
		return fmt.Errorf("failed to upsert holiday: %w", err)
	}
	return nil
}

func (r *HolidayRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.GORM.WithContext(ctx).Delete(&model.Holiday{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete holiday: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrHolidayNotFound
	}
	return nil
}
