package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"

	"github.com/shiftline/rota-api/internal/models"
)

// ScheduleRepository persists schedules, their constraint settings and
// reusable settings templates.
type ScheduleRepository struct {
	db *sqlx.DB
}

// NewScheduleRepository constructs a ScheduleRepository.
func NewScheduleRepository(db *sqlx.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

func (r *ScheduleRepository) exec(exec sqlx.ExtContext) sqlx.ExtContext {
	if exec != nil {
		return exec
	}
	return r.db
}

// decodeDays parses the stored JSON day array into a typed slice.
func decodeDays(raw types.JSONText) ([]int, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var days []int
	if err := json.Unmarshal(raw, &days); err != nil {
		return nil, fmt.Errorf("decode active days: %w", err)
	}
	return days, nil
}

// encodeDays serializes the typed day slice for storage.
func encodeDays(days []int) (types.JSONText, error) {
	if days == nil {
		days = []int{}
	}
	raw, err := json.Marshal(days)
	if err != nil {
		return nil, fmt.Errorf("encode active days: %w", err)
	}
	return types.JSONText(raw), nil
}

// Create inserts a schedule row. A duplicate (branch_id, week_start) pair
// fails on the table's uniqueness constraint.
func (r *ScheduleRepository) Create(ctx context.Context, exec sqlx.ExtContext, schedule *models.Schedule) error {
	if schedule.ID == "" {
		schedule.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if schedule.CreatedAt.IsZero() {
		schedule.CreatedAt = now
	}
	schedule.UpdatedAt = now

	const query = `INSERT INTO schedules (id, branch_id, week_start, name, created_at, updated_at)
		VALUES (:id, :branch_id, :week_start, :name, :created_at, :updated_at)`
	if _, err := sqlx.NamedExecContext(ctx, r.exec(exec), query, schedule); err != nil {
		return fmt.Errorf("create schedule: %w", err)
	}
	return nil
}

// FindByID fetches a schedule by ID.
func (r *ScheduleRepository) FindByID(ctx context.Context, id string) (*models.Schedule, error) {
	const query = `SELECT id, branch_id, week_start, name, created_at, updated_at FROM schedules WHERE id = $1`
	var schedule models.Schedule
	if err := r.db.GetContext(ctx, &schedule, query, id); err != nil {
		return nil, err
	}
	return &schedule, nil
}

// FindByBranchWeek fetches the schedule for a branch and week, if any.
func (r *ScheduleRepository) FindByBranchWeek(ctx context.Context, branchID string, weekStart time.Time) (*models.Schedule, error) {
	const query = `SELECT id, branch_id, week_start, name, created_at, updated_at FROM schedules WHERE branch_id = $1 AND week_start = $2`
	var schedule models.Schedule
	if err := r.db.GetContext(ctx, &schedule, query, branchID, weekStart); err != nil {
		return nil, err
	}
	return &schedule, nil
}

// ListByBranch returns schedule summaries for a branch, newest week first.
func (r *ScheduleRepository) ListByBranch(ctx context.Context, branchID string) ([]models.ScheduleSummary, error) {
	const query = `SELECT s.id, s.branch_id, b.name AS branch_name, s.week_start, s.created_at,
	(SELECT COUNT(*) FROM shifts sh WHERE sh.schedule_id = s.id) AS shift_count
FROM schedules s
JOIN branches b ON b.id = s.branch_id
WHERE s.branch_id = $1
ORDER BY s.week_start DESC`
	var summaries []models.ScheduleSummary
	if err := r.db.SelectContext(ctx, &summaries, query, branchID); err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	return summaries, nil
}

// Delete removes a schedule; shift rows cascade at the database level.
func (r *ScheduleRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM schedules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete schedule: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("schedule rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// GetSettings loads the constraint settings stored for a schedule. The day
// array column is decoded here so callers only see the typed slice.
func (r *ScheduleRepository) GetSettings(ctx context.Context, scheduleID string) (*models.ScheduleSettings, error) {
	const query = `SELECT schedule_id, active_days, start_time, end_time, min_shift_length, max_shift_length, shift_increment,
	min_shifts_per_employee, max_shifts_per_employee, max_employees_per_shift, min_rest_hours, notes
FROM schedule_settings WHERE schedule_id = $1`
	var settings models.ScheduleSettings
	if err := r.db.GetContext(ctx, &settings, query, scheduleID); err != nil {
		return nil, err
	}
	days, err := decodeDays(settings.ActiveDays)
	if err != nil {
		return nil, err
	}
	settings.Days = days
	return &settings, nil
}

// UpsertSettings writes the constraint settings for a schedule.
func (r *ScheduleRepository) UpsertSettings(ctx context.Context, exec sqlx.ExtContext, settings *models.ScheduleSettings) error {
	raw, err := encodeDays(settings.Days)
	if err != nil {
		return err
	}
	settings.ActiveDays = raw

	const query = `INSERT INTO schedule_settings (schedule_id, active_days, start_time, end_time, min_shift_length, max_shift_length, shift_increment,
	min_shifts_per_employee, max_shifts_per_employee, max_employees_per_shift, min_rest_hours, notes)
VALUES (:schedule_id, :active_days, :start_time, :end_time, :min_shift_length, :max_shift_length, :shift_increment,
	:min_shifts_per_employee, :max_shifts_per_employee, :max_employees_per_shift, :min_rest_hours, :notes)
ON CONFLICT (schedule_id) DO UPDATE SET active_days = EXCLUDED.active_days, start_time = EXCLUDED.start_time, end_time = EXCLUDED.end_time,
	min_shift_length = EXCLUDED.min_shift_length, max_shift_length = EXCLUDED.max_shift_length, shift_increment = EXCLUDED.shift_increment,
	min_shifts_per_employee = EXCLUDED.min_shifts_per_employee, max_shifts_per_employee = EXCLUDED.max_shifts_per_employee,
	max_employees_per_shift = EXCLUDED.max_employees_per_shift, min_rest_hours = EXCLUDED.min_rest_hours, notes = EXCLUDED.notes`
	if _, err := sqlx.NamedExecContext(ctx, r.exec(exec), query, settings); err != nil {
		return fmt.Errorf("upsert schedule settings: %w", err)
	}
	return nil
}

// ListTemplates returns all stored settings templates.
func (r *ScheduleRepository) ListTemplates(ctx context.Context) ([]models.SettingsTemplate, error) {
	const query = `SELECT id, name, active_days, start_time, end_time, min_shift_length, max_shift_length, shift_increment,
	min_shifts_per_employee, max_shifts_per_employee, max_employees_per_shift, min_rest_hours, created_at
FROM settings_templates ORDER BY name ASC`
	var templates []models.SettingsTemplate
	if err := r.db.SelectContext(ctx, &templates, query); err != nil {
		return nil, fmt.Errorf("list settings templates: %w", err)
	}
	for i := range templates {
		days, err := decodeDays(templates[i].ActiveDays)
		if err != nil {
			return nil, err
		}
		templates[i].Days = days
	}
	return templates, nil
}

// FindTemplate fetches a settings template by ID.
func (r *ScheduleRepository) FindTemplate(ctx context.Context, id string) (*models.SettingsTemplate, error) {
	const query = `SELECT id, name, active_days, start_time, end_time, min_shift_length, max_shift_length, shift_increment,
	min_shifts_per_employee, max_shifts_per_employee, max_employees_per_shift, min_rest_hours, created_at
FROM settings_templates WHERE id = $1`
	var tmpl models.SettingsTemplate
	if err := r.db.GetContext(ctx, &tmpl, query, id); err != nil {
		return nil, err
	}
	days, err := decodeDays(tmpl.ActiveDays)
	if err != nil {
		return nil, err
	}
	tmpl.Days = days
	return &tmpl, nil
}

// CreateTemplate stores a new settings template.
func (r *ScheduleRepository) CreateTemplate(ctx context.Context, tmpl *models.SettingsTemplate) error {
	if tmpl.ID == "" {
		tmpl.ID = uuid.NewString()
	}
	if tmpl.CreatedAt.IsZero() {
		tmpl.CreatedAt = time.Now().UTC()
	}
	raw, err := encodeDays(tmpl.Days)
	if err != nil {
		return err
	}
	tmpl.ActiveDays = raw

	const query = `INSERT INTO settings_templates (id, name, active_days, start_time, end_time, min_shift_length, max_shift_length, shift_increment,
	min_shifts_per_employee, max_shifts_per_employee, max_employees_per_shift, min_rest_hours, created_at)
VALUES (:id, :name, :active_days, :start_time, :end_time, :min_shift_length, :max_shift_length, :shift_increment,
	:min_shifts_per_employee, :max_shifts_per_employee, :max_employees_per_shift, :min_rest_hours, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, tmpl); err != nil {
		return fmt.Errorf("create settings template: %w", err)
	}
	return nil
}

// DeleteTemplate removes a settings template.
func (r *ScheduleRepository) DeleteTemplate(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM settings_templates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete settings template: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("settings template rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
