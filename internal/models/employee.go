package models

import "time"

// EmployeeStatus enumerates roster lifecycle states.
type EmployeeStatus string

const (
	EmployeeStatusActive   EmployeeStatus = "Active"
	EmployeeStatusInactive EmployeeStatus = "Inactive"
)

// Employee represents a roster member attached to a branch.
// The generation engine only ever sees Active employees of the target branch.
type Employee struct {
	ID        string         `db:"id" json:"id"`
	UserID    *string        `db:"user_id" json:"user_id,omitempty"`
	BranchID  string         `db:"branch_id" json:"branch_id"`
	FullName  string         `db:"full_name" json:"full_name"`
	Phone     *string        `db:"phone" json:"phone,omitempty"`
	Status    EmployeeStatus `db:"status" json:"status"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt time.Time      `db:"updated_at" json:"updated_at"`
}

// EmployeeFilter captures filtering options for listing employees.
type EmployeeFilter struct {
	BranchID  string
	Status    *EmployeeStatus
	Search    string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
