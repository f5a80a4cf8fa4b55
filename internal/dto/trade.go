package dto

// CreateTradeRequest offers one of the caller's shifts for trade.
type CreateTradeRequest struct {
	ShiftID string `json:"shiftId" validate:"required"`
	Reason  string `json:"reason" validate:"omitempty,max=255"`
}

// ResolveTradeRequest is the manager decision on an accepted trade.
type ResolveTradeRequest struct {
	Approve bool `json:"approve"`
}

// CreateShiftRequest adds a manual shift to a schedule.
type CreateShiftRequest struct {
	ScheduleID string `json:"scheduleId" validate:"required"`
	EmployeeID string `json:"employeeId" validate:"required"`
	StartTime  string `json:"startTime" validate:"required"`
	EndTime    string `json:"endTime" validate:"required"`
}

// UpdateShiftRequest changes a shift's window or status.
type UpdateShiftRequest struct {
	StartTime string `json:"startTime" validate:"required"`
	EndTime   string `json:"endTime" validate:"required"`
	Status    string `json:"status" validate:"omitempty,oneof=Approved Pending Canceled"`
}
