package scheduler

import "fmt"

// AvailabilityEntry is one declared window during which an employee can
// work. Times are "HH:MM" strings; minutes are clamped inward to whole
// hours when the entry is indexed (a 07:30 start counts from 08:00, an
// 11:45 end counts until 11:00).
type AvailabilityEntry struct {
	EmployeeID string
	Day        int
	Start      string
	End        string
}

type hourInterval struct {
	start int
	end   int
}

// AvailabilityIndex answers hour-coverage queries for employees. Coverage
// is computed hour by hour over the union of an employee's entries for a
// day, so several short entries together can cover one long shift.
type AvailabilityIndex struct {
	byEmployee map[string]map[int][]hourInterval
	entries    int
}

// BuildAvailabilityIndex indexes the given entries. Entries that collapse
// to an empty interval after inward clamping are dropped. Malformed times
// or day indexes are rejected.
func BuildAvailabilityIndex(entries []AvailabilityEntry) (*AvailabilityIndex, error) {
	idx := &AvailabilityIndex{byEmployee: make(map[string]map[int][]hourInterval)}
	for _, e := range entries {
		if e.Day < 0 || e.Day > 6 {
			return nil, fmt.Errorf("availability for employee %s: day %d out of range [0,6]", e.EmployeeID, e.Day)
		}
		start, err := parseHourCeil(e.Start)
		if err != nil {
			return nil, fmt.Errorf("availability for employee %s: %w", e.EmployeeID, err)
		}
		end, err := parseHourFloor(e.End)
		if err != nil {
			return nil, fmt.Errorf("availability for employee %s: %w", e.EmployeeID, err)
		}
		if start >= end {
			continue
		}
		days := idx.byEmployee[e.EmployeeID]
		if days == nil {
			days = make(map[int][]hourInterval)
			idx.byEmployee[e.EmployeeID] = days
		}
		days[e.Day] = append(days[e.Day], hourInterval{start: start, end: end})
		idx.entries++
	}
	return idx, nil
}

// Empty reports whether no usable availability was indexed at all.
func (idx *AvailabilityIndex) Empty() bool { return idx.entries == 0 }

// HasAny reports whether the employee has at least one usable entry on any day.
func (idx *AvailabilityIndex) HasAny(employeeID string) bool {
	return len(idx.byEmployee[employeeID]) > 0
}

// Covers reports whether the employee's availability on day includes every
// hour of [start, end). Employees with no entries for the day are rejected
// without scanning hours.
func (idx *AvailabilityIndex) Covers(employeeID string, day, start, end int) bool {
	intervals := idx.byEmployee[employeeID][day]
	if len(intervals) == 0 {
		return false
	}
	for h := start; h < end; h++ {
		covered := false
		for _, iv := range intervals {
			if iv.start <= h && h+1 <= iv.end {
				covered = true
				break
			}
		}
		if !covered {
			return false
		}
	}
	return true
}
