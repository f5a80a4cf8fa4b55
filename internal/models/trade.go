package models

import "time"

// TradeStatus enumerates states of a shift trade request.
type TradeStatus string

const (
	TradeStatusPending  TradeStatus = "Pending"
	TradeStatusAccepted TradeStatus = "Accepted"
	TradeStatusApproved TradeStatus = "Approved"
	TradeStatusRejected TradeStatus = "Rejected"
	TradeStatusCanceled TradeStatus = "Canceled"
)

// ShiftTrade records an employee offering a shift and, once accepted, the
// employee taking it over. Manager approval swaps the assignment.
type ShiftTrade struct {
	ID              string      `db:"id" json:"id"`
	ShiftID         string      `db:"shift_id" json:"shift_id"`
	FromEmployeeID  string      `db:"from_employee_id" json:"from_employee_id"`
	ToEmployeeID    *string     `db:"to_employee_id" json:"to_employee_id,omitempty"`
	Status          TradeStatus `db:"status" json:"status"`
	Reason          *string     `db:"reason" json:"reason,omitempty"`
	ResolvedBy      *string     `db:"resolved_by" json:"resolved_by,omitempty"`
	CreatedAt       time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time   `db:"updated_at" json:"updated_at"`
}

// TradeDetail joins display fields for listings.
type TradeDetail struct {
	ShiftTrade
	ShiftStart   time.Time `db:"shift_start" json:"shift_start"`
	ShiftEnd     time.Time `db:"shift_end" json:"shift_end"`
	FromEmployee string    `db:"from_employee" json:"from_employee"`
	ToEmployee   *string   `db:"to_employee" json:"to_employee,omitempty"`
}
