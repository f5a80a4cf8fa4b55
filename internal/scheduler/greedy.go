package scheduler

import "sort"

// Assignment binds one employee to one slot, pending persistence.
type Assignment struct {
	EmployeeID string
	Day        int
	Date       string
	Start      int
	End        int
}

// assignState carries the per-run bookkeeping both phases share. Counters
// are rebuilt from the assignment list whenever a repair pass starts, so
// passes never share mutable state.
type assignState struct {
	profile   Profile
	employees []Employee
	idx       *AvailabilityIndex

	assignments []Assignment
	shiftCount  map[string]int
	dayCount    map[string]map[int]int
}

func newAssignState(p Profile, employees []Employee, idx *AvailabilityIndex) *assignState {
	return &assignState{
		profile:    p,
		employees:  employees,
		idx:        idx,
		shiftCount: make(map[string]int),
		dayCount:   make(map[string]map[int]int),
	}
}

// rebuild recomputes counters from an assignment list.
func (s *assignState) rebuild(assignments []Assignment) {
	s.assignments = assignments
	s.shiftCount = make(map[string]int)
	s.dayCount = make(map[string]map[int]int)
	for _, a := range assignments {
		s.record(a)
	}
}

func (s *assignState) record(a Assignment) {
	s.shiftCount[a.EmployeeID]++
	if s.dayCount[a.EmployeeID] == nil {
		s.dayCount[a.EmployeeID] = make(map[int]int)
	}
	s.dayCount[a.EmployeeID][a.Day]++
}

// overlapsExisting reports whether the employee already holds a same-day
// assignment intersecting [start, end). skip is the index of an assignment
// to ignore, or -1.
func (s *assignState) overlapsExisting(employeeID string, day, start, end, skip int) bool {
	for i, a := range s.assignments {
		if i == skip || a.EmployeeID != employeeID || a.Day != day {
			continue
		}
		if Overlaps(a.Start, a.End, start, end) {
			return true
		}
	}
	return false
}

// restOK reports whether placing [start, end) on day leaves at least
// minRestHours against every existing assignment of the employee. The
// earlier interval's end and the later one's start are compared after
// ordering the pair chronologically.
func (s *assignState) restOK(employeeID string, day, start, end, skip int) bool {
	for i, a := range s.assignments {
		if i == skip || a.EmployeeID != employeeID {
			continue
		}
		var gap int
		if a.Day < day || (a.Day == day && a.Start <= start) {
			gap = HoursBetween(a.Day, a.End, day, start)
		} else {
			gap = HoursBetween(day, end, a.Day, a.Start)
		}
		if gap < s.profile.MinRestHours {
			return false
		}
	}
	return true
}

// eligible is the shared hard-constraint predicate: availability coverage,
// no same-day overlap, rest respected, and under the per-employee maximum.
func (s *assignState) eligible(employeeID string, day, start, end, skip int) bool {
	if !s.idx.Covers(employeeID, day, start, end) {
		return false
	}
	if s.shiftCount[employeeID] >= s.profile.MaxShiftsPerEmployee {
		return false
	}
	if s.overlapsExisting(employeeID, day, start, end, skip) {
		return false
	}
	return s.restOK(employeeID, day, start, end, skip)
}

// pickEmployee chooses the next employee for a slot among those passing the
// eligibility predicate, skipping excludeID. Employees below their minimum
// shift quota win over those at or above it; within a group the fewest
// total shifts wins, then the fewest shifts already on that day, then the
// earlier position in the roster.
func (s *assignState) pickEmployee(day, start, end int, excludeID string, skip int) (string, bool) {
	bestID := ""
	bestUnder := false
	bestTotal := 0
	bestDay := 0
	for _, e := range s.employees {
		if e.ID == excludeID || !s.eligible(e.ID, day, start, end, skip) {
			continue
		}
		total := s.shiftCount[e.ID]
		onDay := s.dayCount[e.ID][day]
		under := total < s.profile.MinShiftsPerEmployee
		if bestID == "" ||
			(under && !bestUnder) ||
			(under == bestUnder && total < bestTotal) ||
			(under == bestUnder && total == bestTotal && onDay < bestDay) {
			bestID, bestUnder, bestTotal, bestDay = e.ID, under, total, onDay
		}
	}
	return bestID, bestID != ""
}

// runGreedy fills slots hardest-first and returns the initial assignment
// list. Slots nobody can take are left unfilled.
func (s *assignState) runGreedy(slots []Slot) []Assignment {
	type rankedSlot struct {
		slot     Slot
		eligible int
	}
	ranked := make([]rankedSlot, len(slots))
	for i, sl := range slots {
		n := 0
		for _, e := range s.employees {
			if s.idx.Covers(e.ID, sl.Day, sl.Start, sl.End) {
				n++
			}
		}
		ranked[i] = rankedSlot{slot: sl, eligible: n}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.eligible != b.eligible {
			return a.eligible < b.eligible
		}
		if a.slot.Length() != b.slot.Length() {
			return a.slot.Length() > b.slot.Length()
		}
		if a.slot.Day != b.slot.Day {
			return a.slot.Day < b.slot.Day
		}
		return a.slot.Start < b.slot.Start
	})

	for i := range ranked {
		sl := &ranked[i].slot
		for sl.Assigned < sl.MaxEmployees {
			id, ok := s.pickEmployee(sl.Day, sl.Start, sl.End, "", -1)
			if !ok {
				break
			}
			a := Assignment{
				EmployeeID: id,
				Day:        sl.Day,
				Date:       sl.Date.Format("2006-01-02"),
				Start:      sl.Start,
				End:        sl.End,
			}
			s.assignments = append(s.assignments, a)
			s.record(a)
			sl.Assigned++
		}
	}
	return s.assignments
}
