package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/shiftline/rota-api/internal/models"
)

// ExportRepository tracks async schedule export jobs.
type ExportRepository struct {
	db *sqlx.DB
}

// NewExportRepository constructs an ExportRepository.
func NewExportRepository(db *sqlx.DB) *ExportRepository {
	return &ExportRepository{db: db}
}

// Create inserts a new export job in QUEUED state.
func (r *ExportRepository) Create(ctx context.Context, job *models.ScheduleExport) error {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	if job.Status == "" {
		job.Status = models.ExportStatusQueued
	}
	now := time.Now().UTC()
	if job.CreatedAt.IsZero() {
		job.CreatedAt = now
	}
	job.UpdatedAt = now

	const query = `INSERT INTO schedule_exports (id, schedule_id, format, status, file_path, error, requested_by, created_at, updated_at)
		VALUES (:id, :schedule_id, :format, :status, :file_path, :error, :requested_by, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, job); err != nil {
		return fmt.Errorf("create export job: %w", err)
	}
	return nil
}

// FindByID fetches an export job by ID.
func (r *ExportRepository) FindByID(ctx context.Context, id string) (*models.ScheduleExport, error) {
	const query = `SELECT id, schedule_id, format, status, file_path, error, requested_by, created_at, updated_at FROM schedule_exports WHERE id = $1`
	var job models.ScheduleExport
	if err := r.db.GetContext(ctx, &job, query, id); err != nil {
		return nil, err
	}
	return &job, nil
}

// MarkProcessing flips a job to PROCESSING when a worker picks it up.
func (r *ExportRepository) MarkProcessing(ctx context.Context, id string) error {
	const query = `UPDATE schedule_exports SET status = $2, updated_at = $3 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, models.ExportStatusProcessing, time.Now().UTC()); err != nil {
		return fmt.Errorf("mark export processing: %w", err)
	}
	return nil
}

// MarkFinished records the rendered file path and flips the job to FINISHED.
func (r *ExportRepository) MarkFinished(ctx context.Context, id, filePath string) error {
	const query = `UPDATE schedule_exports SET status = $2, file_path = $3, error = NULL, updated_at = $4 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, models.ExportStatusFinished, filePath, time.Now().UTC()); err != nil {
		return fmt.Errorf("mark export finished: %w", err)
	}
	return nil
}

// MarkFailed records the failure reason and flips the job to FAILED.
func (r *ExportRepository) MarkFailed(ctx context.Context, id, reason string) error {
	const query = `UPDATE schedule_exports SET status = $2, error = $3, updated_at = $4 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, models.ExportStatusFailed, reason, time.Now().UTC()); err != nil {
		return fmt.Errorf("mark export failed: %w", err)
	}
	return nil
}

// ListBySchedule returns the export jobs requested for a schedule.
func (r *ExportRepository) ListBySchedule(ctx context.Context, scheduleID string) ([]models.ScheduleExport, error) {
	const query = `SELECT id, schedule_id, format, status, file_path, error, requested_by, created_at, updated_at
FROM schedule_exports WHERE schedule_id = $1 ORDER BY created_at DESC`
	var jobs []models.ScheduleExport
	if err := r.db.SelectContext(ctx, &jobs, query, scheduleID); err != nil {
		return nil, fmt.Errorf("list export jobs: %w", err)
	}
	return jobs, nil
}
