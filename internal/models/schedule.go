package models

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

// Schedule is one generated (or generatable) week of shifts for a branch.
// (BranchID, WeekStart) is unique: a week can only be scheduled once per branch.
type Schedule struct {
	ID        string    `db:"id" json:"id"`
	BranchID  string    `db:"branch_id" json:"branch_id"`
	WeekStart time.Time `db:"week_start" json:"week_start"`
	Name      *string   `db:"name" json:"name,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// ScheduleSummary is a schedule in list views, with its shift count.
type ScheduleSummary struct {
	ID         string    `db:"id" json:"id"`
	BranchID   string    `db:"branch_id" json:"branch_id"`
	BranchName string    `db:"branch_name" json:"branch_name"`
	WeekStart  time.Time `db:"week_start" json:"week_start"`
	ShiftCount int       `db:"shift_count" json:"shift_count"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// ScheduleSettings carries the persisted constraint profile for a schedule.
// ActiveDays is stored as a JSON array column and parsed at the repository
// boundary; everything past that point works with the typed slice only.
type ScheduleSettings struct {
	ScheduleID           string         `db:"schedule_id" json:"schedule_id"`
	ActiveDays           types.JSONText `db:"active_days" json:"-"`
	StartTime            string         `db:"start_time" json:"start_time"`
	EndTime              string         `db:"end_time" json:"end_time"`
	MinShiftLength       int            `db:"min_shift_length" json:"min_shift_length"`
	MaxShiftLength       int            `db:"max_shift_length" json:"max_shift_length"`
	ShiftIncrement       int            `db:"shift_increment" json:"shift_increment"`
	MinShiftsPerEmployee int            `db:"min_shifts_per_employee" json:"min_shifts_per_employee"`
	MaxShiftsPerEmployee int            `db:"max_shifts_per_employee" json:"max_shifts_per_employee"`
	MaxEmployeesPerShift int            `db:"max_employees_per_shift" json:"max_employees_per_shift"`
	MinRestHours         int            `db:"min_rest_hours" json:"min_rest_hours"`
	Notes                *string        `db:"notes" json:"notes,omitempty"`
	Days                 []int          `db:"-" json:"active_days"`
}

// SettingsTemplate is a reusable named constraint profile.
type SettingsTemplate struct {
	ID                   string         `db:"id" json:"id"`
	Name                 string         `db:"name" json:"name"`
	ActiveDays           types.JSONText `db:"active_days" json:"-"`
	StartTime            string         `db:"start_time" json:"start_time"`
	EndTime              string         `db:"end_time" json:"end_time"`
	MinShiftLength       int            `db:"min_shift_length" json:"min_shift_length"`
	MaxShiftLength       int            `db:"max_shift_length" json:"max_shift_length"`
	ShiftIncrement       int            `db:"shift_increment" json:"shift_increment"`
	MinShiftsPerEmployee int            `db:"min_shifts_per_employee" json:"min_shifts_per_employee"`
	MaxShiftsPerEmployee int            `db:"max_shifts_per_employee" json:"max_shifts_per_employee"`
	MaxEmployeesPerShift int            `db:"max_employees_per_shift" json:"max_employees_per_shift"`
	MinRestHours         int            `db:"min_rest_hours" json:"min_rest_hours"`
	CreatedAt            time.Time      `db:"created_at" json:"created_at"`
	Days                 []int          `db:"-" json:"active_days"`
}
