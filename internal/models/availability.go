package models

import "time"

// AvailabilitySlot is one weekly time window during which an employee can work.
// DayOfWeek uses the canonical index 0=Monday .. 6=Sunday. Times are "HH:MM"
// strings as submitted; the scheduler parses them into hour-aligned intervals.
// Multiple (possibly overlapping) slots per employee and day are allowed and
// are treated as a union of coverage.
type AvailabilitySlot struct {
	ID         string    `db:"id" json:"id"`
	EmployeeID string    `db:"employee_id" json:"employee_id"`
	DayOfWeek  int       `db:"day_of_week" json:"day_of_week"`
	StartTime  string    `db:"start_time" json:"start_time"`
	EndTime    string    `db:"end_time" json:"end_time"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
