package models

import "time"

// ShiftStatus enumerates shift lifecycle states.
type ShiftStatus string

const (
	ShiftStatusApproved ShiftStatus = "Approved"
	ShiftStatusPending  ShiftStatus = "Pending"
	ShiftStatusCanceled ShiftStatus = "Canceled"
)

// Shift is a persisted assignment of one employee to an absolute time window.
// Auto-generated shifts are created with status Approved.
type Shift struct {
	ID         string      `db:"id" json:"id"`
	ScheduleID string      `db:"schedule_id" json:"schedule_id"`
	EmployeeID string      `db:"employee_id" json:"employee_id"`
	StartTime  time.Time   `db:"start_time" json:"start_time"`
	EndTime    time.Time   `db:"end_time" json:"end_time"`
	Status     ShiftStatus `db:"status" json:"status"`
	CreatedAt  time.Time   `db:"created_at" json:"created_at"`
}

// ShiftDetail joins the employee name for display surfaces.
type ShiftDetail struct {
	Shift
	EmployeeName string `db:"employee_name" json:"employee_name"`
}
