package dto

// AvailabilitySlotRequest is one declared weekly window. Times are "HH:MM".
type AvailabilitySlotRequest struct {
	DayOfWeek int    `json:"dayOfWeek" validate:"min=0,max=6"`
	StartTime string `json:"startTime" validate:"required,len=5"`
	EndTime   string `json:"endTime" validate:"required,len=5"`
}

// ReplaceAvailabilityRequest swaps an employee's full weekly availability.
type ReplaceAvailabilityRequest struct {
	Slots []AvailabilitySlotRequest `json:"slots" validate:"required,dive"`
}
