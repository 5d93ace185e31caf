package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shiftforge/scheduler/internal/model"
)

var ErrScheduleNotFound = errors.New("schedule not found")

// ScheduleRepository handles monthly schedule and entry data access.
type ScheduleRepository struct {
	db *DB
}

// NewScheduleRepository creates a new ScheduleRepository.
func NewScheduleRepository(db *DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

func (r *ScheduleRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.MonthlySchedule, error) {
	var s model.MonthlySchedule
	err := r.db.GORM.WithContext(ctx).
		Preload("Entries").
		Preload("Entries.Employee").
		Preload("Entries.Shift").
		First(&s, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get schedule: %w", err)
	}
	return &s, nil
}

// GetByMonthKey returns the schedule for the given YYYY-MM key, if any.
func (r *ScheduleRepository) GetByMonthKey(ctx context.Context, monthKey string) (*model.MonthlySchedule, error) {
	var s model.MonthlySchedule
	err := r.db.GORM.WithContext(ctx).First(&s, "month_key = ?", monthKey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get schedule by month key: %w", err)
	}
	return &s, nil
}

// FindOrCreate returns the schedule for monthKey, creating a fresh draft
// row if none exists. Must run inside the caller's transaction.
func (r *ScheduleRepository) FindOrCreate(ctx context.Context, tx *gorm.DB, monthKey string) (*model.MonthlySchedule, error) {
	var s model.MonthlySchedule
	err := tx.WithContext(ctx).First(&s, "month_key = ?", monthKey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s = model.MonthlySchedule{MonthKey: monthKey, Status: model.ScheduleStatusDraft}
		if err := tx.WithContext(ctx).Create(&s).Error; err != nil {
			return nil, fmt.Errorf("failed to create schedule: %w", err)
		}
		return &s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find schedule: %w", err)
	}
	return &s, nil
}

// DeleteEntries removes every ScheduleEntry belonging to the schedule. Must
// run inside the caller's transaction, ahead of ReplaceEntries.
func (r *ScheduleRepository) DeleteEntries(ctx context.Context, tx *gorm.DB, scheduleID uuid.UUID) error {
	if err := tx.WithContext(ctx).Where("schedule_id = ?", scheduleID).Delete(&model.ScheduleEntry{}).Error; err != nil {
		return fmt.Errorf("failed to delete schedule entries: %w", err)
	}
	return nil
}

// InsertEntries bulk-inserts the given entries. Must run inside the
// caller's transaction, after DeleteEntries.
func (r *ScheduleRepository) InsertEntries(ctx context.Context, tx *gorm.DB, entries []model.ScheduleEntry) error {
	if len(entries) == 0 {
		return nil
	}
	if err := tx.WithContext(ctx).CreateInBatches(entries, 200).Error; err != nil {
		return fmt.Errorf("failed to insert schedule entries: %w", err)
	}
	return nil
}

// Replace performs find-or-create, delete-children, insert-children for
// monthKey in one transaction, returning the resulting schedule with
// entries preloaded. This is the persistence shape both generators use.
func (r *ScheduleRepository) Replace(ctx context.Context, monthKey string, entries []model.ScheduleEntry) (*model.MonthlySchedule, error) {
	var schedule *model.MonthlySchedule
	err := r.db.WithTransaction(ctx, func(tx *gorm.DB) error {
		s, err := r.FindOrCreate(ctx, tx, monthKey)
		if err != nil {
			return err
		}
		if err := r.DeleteEntries(ctx, tx, s.ID); err != nil {
			return err
		}
		for i := range entries {
			entries[i].ScheduleID = s.ID
		}
		if err := r.InsertEntries(ctx, tx, entries); err != nil {
			return err
		}
		schedule = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, schedule.ID)
}

func (r *ScheduleRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.ScheduleStatus) error {
	result := r.db.GORM.WithContext(ctx).Model(&model.MonthlySchedule{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update schedule status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrScheduleNotFound
	}
	return nil
}

func (r *ScheduleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.GORM.WithContext(ctx).Delete(&model.MonthlySchedule{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete schedule: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrScheduleNotFound
	}
	return nil
}
