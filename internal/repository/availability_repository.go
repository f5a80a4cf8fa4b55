package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/shiftline/rota-api/internal/models"
)

// AvailabilityRepository manages persistence for employee availability slots.
type AvailabilityRepository struct {
	db *sqlx.DB
}

// NewAvailabilityRepository constructs an AvailabilityRepository.
func NewAvailabilityRepository(db *sqlx.DB) *AvailabilityRepository {
	return &AvailabilityRepository{db: db}
}

// ListByEmployee returns an employee's availability ordered by day and start.
func (r *AvailabilityRepository) ListByEmployee(ctx context.Context, employeeID string) ([]models.AvailabilitySlot, error) {
	const query = `SELECT id, employee_id, day_of_week, start_time, end_time, created_at
FROM availability_slots WHERE employee_id = $1 ORDER BY day_of_week ASC, start_time ASC, id ASC`
	var slots []models.AvailabilitySlot
	if err := r.db.SelectContext(ctx, &slots, query, employeeID); err != nil {
		return nil, fmt.Errorf("list availability: %w", err)
	}
	return slots, nil
}

// ListByBranch returns the availability of every active employee of a branch.
// This is the snapshot the generation engine consumes.
func (r *AvailabilityRepository) ListByBranch(ctx context.Context, branchID string) ([]models.AvailabilitySlot, error) {
	const query = `SELECT a.id, a.employee_id, a.day_of_week, a.start_time, a.end_time, a.created_at
FROM availability_slots a
JOIN employees e ON e.id = a.employee_id
WHERE e.branch_id = $1 AND e.status = $2
ORDER BY a.employee_id ASC, a.day_of_week ASC, a.start_time ASC, a.id ASC`
	var slots []models.AvailabilitySlot
	if err := r.db.SelectContext(ctx, &slots, query, branchID, models.EmployeeStatusActive); err != nil {
		return nil, fmt.Errorf("list branch availability: %w", err)
	}
	return slots, nil
}

// Replace swaps an employee's entire availability for a new set atomically.
func (r *AvailabilityRepository) Replace(ctx context.Context, exec sqlx.ExtContext, employeeID string, slots []models.AvailabilitySlot) error {
	target := r.exec(exec)

	if _, err := target.ExecContext(ctx, `DELETE FROM availability_slots WHERE employee_id = $1`, employeeID); err != nil {
		return fmt.Errorf("clear availability: %w", err)
	}

	const insert = `INSERT INTO availability_slots (id, employee_id, day_of_week, start_time, end_time, created_at)
		VALUES (:id, :employee_id, :day_of_week, :start_time, :end_time, :created_at)`
	now := time.Now().UTC()
	for i := range slots {
		slots[i].EmployeeID = employeeID
		if slots[i].ID == "" {
			slots[i].ID = uuid.NewString()
		}
		if slots[i].CreatedAt.IsZero() {
			slots[i].CreatedAt = now
		}
		if _, err := sqlx.NamedExecContext(ctx, target, insert, slots[i]); err != nil {
			return fmt.Errorf("insert availability slot: %w", err)
		}
	}
	return nil
}

// Delete removes a single availability slot owned by the employee.
func (r *AvailabilityRepository) Delete(ctx context.Context, id, employeeID string) error {
	const query = `DELETE FROM availability_slots WHERE id = $1 AND employee_id = $2`
	res, err := r.db.ExecContext(ctx, query, id, employeeID)
	if err != nil {
		return fmt.Errorf("delete availability slot: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("availability rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("availability slot %s not found", id)
	}
	return nil
}

func (r *AvailabilityRepository) exec(exec sqlx.ExtContext) sqlx.ExtContext {
	if exec != nil {
		return exec
	}
	return r.db
}
