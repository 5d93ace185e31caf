package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shiftforge/scheduler/internal/model"
)

var ErrEmployeeNotFound = errors.New("employee not found")

// EmployeeRepository handles employee data access.
type EmployeeRepository struct {
	db *DB
}

// NewEmployeeRepository creates a new EmployeeRepository.
func NewEmployeeRepository(db *DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) Create(ctx context.Context, e *model.Employee) error {
	return r.db.GORM.WithContext(ctx).Create(e).Error
}

func (r *EmployeeRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Employee, error) {
	var e model.Employee
	err := r.db.GORM.WithContext(ctx).Preload("Role").First(&e, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEmployeeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}
	return &e, nil
}

// List retrieves all employees ordered by id, the order the heuristic
// generator depends on when draining per-role queues.
func (r *EmployeeRepository) List(ctx context.Context) ([]model.Employee, error) {
	var employees []model.Employee
	err := r.db.GORM.WithContext(ctx).Preload("Role").Order("id ASC").Find(&employees).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return employees, nil
}

// ListByRole retrieves employees assigned to the given role, ordered by id.
func (r *EmployeeRepository) ListByRole(ctx context.Context, roleID uuid.UUID) ([]model.Employee, error) {
	var employees []model.Employee
	err := r.db.GORM.WithContext(ctx).
		Where("role_id = ?", roleID).
		Order("id ASC").
		Find(&employees).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list employees by role: %w", err)
	}
	return employees, nil
}

func (r *EmployeeRepository) Update(ctx context.Context, e *model.Employee) error {
	if err := r.db.GORM.WithContext(ctx).Save(e).Error; err != nil {
		return fmt.Errorf("failed to update employee: %w", err)
	}
	return nil
}

func (r *EmployeeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.GORM.WithContext(ctx).Delete(&model.Employee{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete employee: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrEmployeeNotFound
	}
	return nil
}
