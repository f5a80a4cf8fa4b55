package scheduler

import "time"

// Slot is a candidate shift window for one day, not yet tied to an employee.
type Slot struct {
	Day          int
	Date         time.Time
	Start        int
	End          int
	MaxEmployees int
	Assigned     int
}

// Length returns the slot duration in hours.
func (s Slot) Length() int { return s.End - s.Start }

// GenerateSlots expands a profile and week start date into the candidate
// slot set: every active day, every start hour in the operating window,
// every length from the minimum to the maximum stepping by the increment,
// provided the shift fits before closing. weekStart must be the Monday of
// the target week. The output order is stable for identical inputs.
func GenerateSlots(p Profile, weekStart time.Time) []Slot {
	var slots []Slot
	for _, day := range p.ActiveDays {
		date := weekStart.AddDate(0, 0, day)
		for start := p.StartHour; start <= p.EndHour-p.MinShiftLength; start++ {
			for length := p.MinShiftLength; length <= p.MaxShiftLength; length += p.ShiftIncrement {
				if start+length > p.EndHour {
					break
				}
				slots = append(slots, Slot{
					Day:          day,
					Date:         date,
					Start:        start,
					End:          start + length,
					MaxEmployees: p.MaxEmployeesPerShift,
				})
			}
		}
	}
	return slots
}
