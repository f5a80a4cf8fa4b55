package dto

import "time"

// ScheduleSettingsRequest carries caller-supplied constraint overrides.
// Unset numeric fields fall back to documented defaults before generation.
// The two minimums are pointers because zero is a legal explicit choice
// there: "no rest requirement" and "no guaranteed shifts" must be sayable.
type ScheduleSettingsRequest struct {
	ActiveDays           []int  `json:"activeDays" validate:"omitempty,min=1,dive,min=0,max=6"`
	StartTime            string `json:"startTime" validate:"omitempty,len=5"`
	EndTime              string `json:"endTime" validate:"omitempty,len=5"`
	MinShiftLength       int    `json:"minShiftLength" validate:"omitempty,min=1,max=24"`
	MaxShiftLength       int    `json:"maxShiftLength" validate:"omitempty,min=1,max=24"`
	ShiftIncrement       int    `json:"shiftIncrement" validate:"omitempty,min=1,max=12"`
	MinShiftsPerEmployee *int   `json:"minShiftsPerEmployee" validate:"omitempty,min=0,max=50"`
	MaxShiftsPerEmployee int    `json:"maxShiftsPerEmployee" validate:"omitempty,min=1,max=50"`
	MaxEmployeesPerShift int    `json:"maxEmployeesPerShift" validate:"omitempty,min=1,max=50"`
	MinRestHours         *int   `json:"minRestHours" validate:"omitempty,min=0,max=48"`
	Notes                string `json:"notes"`
}

// GenerateScheduleRequest asks for a schedule week to be generated for a branch.
// WeekStart must be the Monday of the target week in "2006-01-02" form.
// Settings override values from the template (or defaults) when provided.
type GenerateScheduleRequest struct {
	BranchID   string                   `json:"branchId" validate:"required"`
	WeekStart  string                   `json:"weekStart" validate:"required,len=10"`
	Name       string                   `json:"name" validate:"omitempty,max=120"`
	TemplateID string                   `json:"templateId"`
	Settings   *ScheduleSettingsRequest `json:"settings" validate:"omitempty"`
}

// GenerateScheduleResponse reports the persisted outcome of a generation run.
type GenerateScheduleResponse struct {
	ScheduleID    string   `json:"scheduleId"`
	ShiftsCreated int      `json:"shiftsCreated"`
	Coverage      float64  `json:"coverage"`
	RepairPasses  int      `json:"repairPasses"`
	FallbackUsed  bool     `json:"fallbackUsed"`
	Unresolved    []string `json:"unresolved,omitempty"`
	Message       string   `json:"message"`
}

// GridShift is one shift cell in the weekly display grid.
type GridShift struct {
	ShiftID      string `json:"shiftId"`
	EmployeeID   string `json:"employeeId"`
	EmployeeName string `json:"employeeName"`
	StartHour    int    `json:"startHour"`
	EndHour      int    `json:"endHour"`
	Status       string `json:"status"`
}

// GridDay groups a day's shifts for display.
type GridDay struct {
	Day    int         `json:"day"`
	Date   string      `json:"date"`
	Shifts []GridShift `json:"shifts"`
}

// ScheduleGridResponse is the rendered week view of a schedule.
type ScheduleGridResponse struct {
	ScheduleID string    `json:"scheduleId"`
	BranchID   string    `json:"branchId"`
	WeekStart  time.Time `json:"weekStart"`
	Days       []GridDay `json:"days"`
}

// SettingsTemplateRequest stores a reusable constraint profile under a name.
type SettingsTemplateRequest struct {
	Name     string                  `json:"name" validate:"required,max=120"`
	Settings ScheduleSettingsRequest `json:"settings" validate:"required"`
}
