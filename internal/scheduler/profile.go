package scheduler

import "fmt"

// Default constraint values applied when a field is unset.
const (
	DefaultStartHour            = 7
	DefaultEndHour              = 23
	DefaultMinShiftLength       = 4
	DefaultMaxShiftLength       = 8
	DefaultShiftIncrement       = 2
	DefaultMinShiftsPerEmployee = 1
	DefaultMaxShiftsPerEmployee = 5
	DefaultMaxEmployeesPerShift = 5
	DefaultMinRestHours         = 8
)

// Profile is the validated constraint set for one generation run. Build it
// with NewProfile or fill a literal and call Normalize then Validate.
// Days use the canonical index 0=Monday..6=Sunday.
type Profile struct {
	ActiveDays           []int
	StartHour            int
	EndHour              int
	MinShiftLength       int
	MaxShiftLength       int
	ShiftIncrement       int
	MinShiftsPerEmployee int
	MaxShiftsPerEmployee int
	MaxEmployeesPerShift int
	MinRestHours         int
}

// NewProfile returns a profile with every field at its default: all seven
// days active, operating 07:00 to 23:00.
func NewProfile() Profile {
	return Profile{
		ActiveDays:           []int{0, 1, 2, 3, 4, 5, 6},
		StartHour:            DefaultStartHour,
		EndHour:              DefaultEndHour,
		MinShiftLength:       DefaultMinShiftLength,
		MaxShiftLength:       DefaultMaxShiftLength,
		ShiftIncrement:       DefaultShiftIncrement,
		MinShiftsPerEmployee: DefaultMinShiftsPerEmployee,
		MaxShiftsPerEmployee: DefaultMaxShiftsPerEmployee,
		MaxEmployeesPerShift: DefaultMaxEmployeesPerShift,
		MinRestHours:         DefaultMinRestHours,
	}
}

// Normalize substitutes defaults for zero-valued fields and deduplicates and
// sorts ActiveDays. It does not reject anything; call Validate afterwards.
func (p *Profile) Normalize() {
	if len(p.ActiveDays) == 0 {
		p.ActiveDays = []int{0, 1, 2, 3, 4, 5, 6}
	} else {
		seen := [7]bool{}
		days := make([]int, 0, len(p.ActiveDays))
		for d := 0; d < 7; d++ {
			for _, ad := range p.ActiveDays {
				if ad == d && !seen[d] {
					seen[d] = true
					days = append(days, d)
				}
			}
		}
		if len(days) > 0 {
			p.ActiveDays = days
		}
	}
	if p.StartHour == 0 && p.EndHour == 0 {
		p.StartHour = DefaultStartHour
		p.EndHour = DefaultEndHour
	}
	if p.EndHour == 0 {
		// Midnight expressed as hour 0 means the end of the day.
		p.EndHour = 24
	}
	if p.MinShiftLength == 0 {
		p.MinShiftLength = DefaultMinShiftLength
	}
	if p.MaxShiftLength == 0 {
		p.MaxShiftLength = DefaultMaxShiftLength
	}
	if p.ShiftIncrement == 0 {
		p.ShiftIncrement = DefaultShiftIncrement
	}
	if p.MaxShiftsPerEmployee == 0 {
		p.MaxShiftsPerEmployee = DefaultMaxShiftsPerEmployee
	}
	if p.MaxEmployeesPerShift == 0 {
		p.MaxEmployeesPerShift = DefaultMaxEmployeesPerShift
	}
	// MinShiftsPerEmployee and MinRestHours are left alone: zero is a
	// meaningful value for both. Their defaults apply when settings are
	// loaded, not here.
}

// Validate checks the profile invariants. A profile that passes Validate
// cannot make the solver panic or loop.
func (p Profile) Validate() error {
	for _, d := range p.ActiveDays {
		if d < 0 || d > 6 {
			return fmt.Errorf("active day %d out of range [0,6]", d)
		}
	}
	if len(p.ActiveDays) == 0 {
		return fmt.Errorf("at least one active day is required")
	}
	if p.StartHour < 0 || p.StartHour > 23 {
		return fmt.Errorf("start hour %d out of range [0,23]", p.StartHour)
	}
	if p.EndHour < 1 || p.EndHour > 24 {
		return fmt.Errorf("end hour %d out of range [1,24]", p.EndHour)
	}
	if p.StartHour >= p.EndHour {
		return fmt.Errorf("operating window start %d must precede end %d", p.StartHour, p.EndHour)
	}
	if p.MinShiftLength < 1 {
		return fmt.Errorf("minimum shift length must be positive")
	}
	if p.MinShiftLength > p.MaxShiftLength {
		return fmt.Errorf("minimum shift length %d exceeds maximum %d", p.MinShiftLength, p.MaxShiftLength)
	}
	if p.ShiftIncrement < 1 {
		return fmt.Errorf("shift increment must be positive")
	}
	if p.MinShiftsPerEmployee < 0 {
		return fmt.Errorf("minimum shifts per employee must not be negative")
	}
	if p.MinShiftsPerEmployee > p.MaxShiftsPerEmployee {
		return fmt.Errorf("minimum shifts per employee %d exceeds maximum %d", p.MinShiftsPerEmployee, p.MaxShiftsPerEmployee)
	}
	if p.MaxEmployeesPerShift < 1 {
		return fmt.Errorf("maximum employees per shift must be positive")
	}
	if p.MinRestHours < 0 {
		return fmt.Errorf("minimum rest hours must not be negative")
	}
	return nil
}
