package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/shiftline/rota-api/internal/models"
)

// ShiftRepository manages persistence for shifts.
type ShiftRepository struct {
	db *sqlx.DB
}

// NewShiftRepository constructs a ShiftRepository.
func NewShiftRepository(db *sqlx.DB) *ShiftRepository {
	return &ShiftRepository{db: db}
}

func (r *ShiftRepository) exec(exec sqlx.ExtContext) sqlx.ExtContext {
	if exec != nil {
		return exec
	}
	return r.db
}

// BulkInsert writes a batch of shifts, typically the output of a generation
// run inside its transaction.
func (r *ShiftRepository) BulkInsert(ctx context.Context, exec sqlx.ExtContext, shifts []models.Shift) error {
	target := r.exec(exec)
	const query = `INSERT INTO shifts (id, schedule_id, employee_id, start_time, end_time, status, created_at)
		VALUES (:id, :schedule_id, :employee_id, :start_time, :end_time, :status, :created_at)`
	now := time.Now().UTC()
	for i := range shifts {
		if shifts[i].ID == "" {
			shifts[i].ID = uuid.NewString()
		}
		if shifts[i].Status == "" {
			shifts[i].Status = models.ShiftStatusApproved
		}
		if shifts[i].CreatedAt.IsZero() {
			shifts[i].CreatedAt = now
		}
		if _, err := sqlx.NamedExecContext(ctx, target, query, shifts[i]); err != nil {
			return fmt.Errorf("insert shift: %w", err)
		}
	}
	return nil
}

// ListBySchedule returns all shifts of a schedule with employee names,
// ordered chronologically.
func (r *ShiftRepository) ListBySchedule(ctx context.Context, scheduleID string) ([]models.ShiftDetail, error) {
	const query = `SELECT sh.id, sh.schedule_id, sh.employee_id, sh.start_time, sh.end_time, sh.status, sh.created_at, e.full_name AS employee_name
FROM shifts sh
JOIN employees e ON e.id = sh.employee_id
WHERE sh.schedule_id = $1
ORDER BY sh.start_time ASC, e.full_name ASC, sh.id ASC`
	var shifts []models.ShiftDetail
	if err := r.db.SelectContext(ctx, &shifts, query, scheduleID); err != nil {
		return nil, fmt.Errorf("list shifts: %w", err)
	}
	return shifts, nil
}

// ListByEmployee returns an employee's shifts inside a time range.
func (r *ShiftRepository) ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]models.Shift, error) {
	const query = `SELECT id, schedule_id, employee_id, start_time, end_time, status, created_at
FROM shifts WHERE employee_id = $1 AND start_time >= $2 AND start_time < $3 ORDER BY start_time ASC`
	var shifts []models.Shift
	if err := r.db.SelectContext(ctx, &shifts, query, employeeID, from, to); err != nil {
		return nil, fmt.Errorf("list employee shifts: %w", err)
	}
	return shifts, nil
}

// FindByID fetches a shift by ID.
func (r *ShiftRepository) FindByID(ctx context.Context, id string) (*models.Shift, error) {
	const query = `SELECT id, schedule_id, employee_id, start_time, end_time, status, created_at FROM shifts WHERE id = $1`
	var shift models.Shift
	if err := r.db.GetContext(ctx, &shift, query, id); err != nil {
		return nil, err
	}
	return &shift, nil
}

// Create inserts one manually added shift.
func (r *ShiftRepository) Create(ctx context.Context, shift *models.Shift) error {
	if shift.ID == "" {
		shift.ID = uuid.NewString()
	}
	if shift.Status == "" {
		shift.Status = models.ShiftStatusPending
	}
	if shift.CreatedAt.IsZero() {
		shift.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO shifts (id, schedule_id, employee_id, start_time, end_time, status, created_at)
		VALUES (:id, :schedule_id, :employee_id, :start_time, :end_time, :status, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, shift); err != nil {
		return fmt.Errorf("create shift: %w", err)
	}
	return nil
}

// Update modifies a shift's window and status.
func (r *ShiftRepository) Update(ctx context.Context, shift *models.Shift) error {
	const query = `UPDATE shifts SET start_time = :start_time, end_time = :end_time, status = :status WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, shift); err != nil {
		return fmt.Errorf("update shift: %w", err)
	}
	return nil
}

// ReassignEmployee hands a shift to a different employee, the persistence
// side of an approved trade.
func (r *ShiftRepository) ReassignEmployee(ctx context.Context, exec sqlx.ExtContext, shiftID, employeeID string) error {
	const query = `UPDATE shifts SET employee_id = $2 WHERE id = $1`
	if _, err := r.exec(exec).ExecContext(ctx, query, shiftID, employeeID); err != nil {
		return fmt.Errorf("reassign shift: %w", err)
	}
	return nil
}

// Delete removes a shift.
func (r *ShiftRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM shifts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete shift: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("shift rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// CountBySchedule returns the number of shifts stored for a schedule.
func (r *ShiftRepository) CountBySchedule(ctx context.Context, scheduleID string) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM shifts WHERE schedule_id = $1`, scheduleID); err != nil {
		return 0, fmt.Errorf("count shifts: %w", err)
	}
	return count, nil
}
