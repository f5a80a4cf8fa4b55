package scheduler

import "sort"

// ViolationType labels a constraint breach found in an assignment list.
type ViolationType string

const (
	ViolationShiftOverlap     ViolationType = "shiftOverlap"
	ViolationMaxShiftsExceeded ViolationType = "maxShiftsExceeded"
	ViolationInsufficientRest ViolationType = "insufficientRest"
	ViolationMinShiftsNotMet  ViolationType = "minShiftsNotMet"
)

// Violation describes one constraint breach for reporting.
type Violation struct {
	Type       ViolationType
	EmployeeID string
	Day        int
}

// detect lists every violation in the current assignment list, ordered by
// repair priority: overlaps, then maximum overruns, then rest breaches,
// then minimum shortfalls.
func (s *assignState) detect() []Violation {
	var out []Violation
	for i := 0; i < len(s.assignments); i++ {
		for j := i + 1; j < len(s.assignments); j++ {
			a, b := s.assignments[i], s.assignments[j]
			if a.EmployeeID == b.EmployeeID && a.Day == b.Day && Overlaps(a.Start, a.End, b.Start, b.End) {
				out = append(out, Violation{Type: ViolationShiftOverlap, EmployeeID: a.EmployeeID, Day: a.Day})
			}
		}
	}
	for _, e := range s.employees {
		if s.shiftCount[e.ID] > s.profile.MaxShiftsPerEmployee {
			out = append(out, Violation{Type: ViolationMaxShiftsExceeded, EmployeeID: e.ID})
		}
	}
	for _, e := range s.employees {
		ordered := s.assignmentsOf(e.ID)
		for k := 1; k < len(ordered); k++ {
			prev := s.assignments[ordered[k-1]]
			next := s.assignments[ordered[k]]
			if HoursBetween(prev.Day, prev.End, next.Day, next.Start) < s.profile.MinRestHours {
				out = append(out, Violation{Type: ViolationInsufficientRest, EmployeeID: e.ID, Day: next.Day})
			}
		}
	}
	for _, e := range s.employees {
		if s.shiftCount[e.ID] < s.profile.MinShiftsPerEmployee && s.idx.HasAny(e.ID) {
			out = append(out, Violation{Type: ViolationMinShiftsNotMet, EmployeeID: e.ID})
		}
	}
	return out
}

// assignmentsOf returns the indexes of an employee's assignments in
// chronological order.
func (s *assignState) assignmentsOf(employeeID string) []int {
	var idxs []int
	for i, a := range s.assignments {
		if a.EmployeeID == employeeID {
			idxs = append(idxs, i)
		}
	}
	sort.SliceStable(idxs, func(i, j int) bool {
		a, b := s.assignments[idxs[i]], s.assignments[idxs[j]]
		if a.Day != b.Day {
			return a.Day < b.Day
		}
		return a.Start < b.Start
	})
	return idxs
}

func (s *assignState) reassign(i int, newID string) {
	old := s.assignments[i]
	s.shiftCount[old.EmployeeID]--
	s.dayCount[old.EmployeeID][old.Day]--
	s.assignments[i].EmployeeID = newID
	s.record(s.assignments[i])
}

// resolveOverlaps moves or drops the later of each overlapping same-day
// pair. An overlap with no willing replacement is never left in place.
func (s *assignState) resolveOverlaps() bool {
	changed := false
	for {
		found := -1
		for i := 0; i < len(s.assignments) && found < 0; i++ {
			for j := i + 1; j < len(s.assignments); j++ {
				a, b := s.assignments[i], s.assignments[j]
				if a.EmployeeID == b.EmployeeID && a.Day == b.Day && Overlaps(a.Start, a.End, b.Start, b.End) {
					found = j
					break
				}
			}
		}
		if found < 0 {
			return changed
		}
		a := s.assignments[found]
		if id, ok := s.pickEmployee(a.Day, a.Start, a.End, a.EmployeeID, found); ok {
			s.reassign(found, id)
		} else {
			s.drop(found)
		}
		changed = true
	}
}

func (s *assignState) drop(i int) {
	a := s.assignments[i]
	s.shiftCount[a.EmployeeID]--
	s.dayCount[a.EmployeeID][a.Day]--
	s.assignments = append(s.assignments[:i], s.assignments[i+1:]...)
}

// resolveMaxShifts hands excess assignments of over-quota employees to a
// replacement. With nobody able to take them the overrun stands as a
// best-effort outcome.
func (s *assignState) resolveMaxShifts() bool {
	changed := false
	for _, e := range s.employees {
		idxs := s.assignmentsOf(e.ID)
		for k := len(idxs) - 1; k >= 0 && s.shiftCount[e.ID] > s.profile.MaxShiftsPerEmployee; k-- {
			a := s.assignments[idxs[k]]
			if id, ok := s.pickEmployee(a.Day, a.Start, a.End, e.ID, idxs[k]); ok {
				s.reassign(idxs[k], id)
				changed = true
			}
		}
	}
	return changed
}

// resolveRest reassigns the later shift of each pair spaced closer than the
// minimum rest.
func (s *assignState) resolveRest() bool {
	changed := false
	for _, e := range s.employees {
		idxs := s.assignmentsOf(e.ID)
		for k := 1; k < len(idxs); k++ {
			prev := s.assignments[idxs[k-1]]
			next := s.assignments[idxs[k]]
			if prev.EmployeeID != e.ID || next.EmployeeID != e.ID {
				continue
			}
			if HoursBetween(prev.Day, prev.End, next.Day, next.Start) >= s.profile.MinRestHours {
				continue
			}
			if id, ok := s.pickEmployee(next.Day, next.Start, next.End, e.ID, idxs[k]); ok {
				s.reassign(idxs[k], id)
				changed = true
			}
		}
	}
	return changed
}

// resolveMinShifts transfers shifts to under-quota employees from donors
// who stay at or above their own minimum after giving one up. The donor
// with the heaviest load gives first.
func (s *assignState) resolveMinShifts() bool {
	changed := false
	for _, e := range s.employees {
		for s.shiftCount[e.ID] < s.profile.MinShiftsPerEmployee {
			best := -1
			bestLoad := 0
			for i, a := range s.assignments {
				if a.EmployeeID == e.ID {
					continue
				}
				if s.shiftCount[a.EmployeeID]-1 < s.profile.MinShiftsPerEmployee {
					continue
				}
				if !s.eligible(e.ID, a.Day, a.Start, a.End, i) {
					continue
				}
				if load := s.shiftCount[a.EmployeeID]; best < 0 || load > bestLoad {
					best, bestLoad = i, load
				}
			}
			if best < 0 {
				break
			}
			s.reassign(best, e.ID)
			changed = true
		}
	}
	return changed
}

// runRepair applies bounded repair passes and returns the number of passes
// executed. Each pass resolves overlaps first, then maximum overruns, then
// rest breaches, then minimum shortfalls, and the loop stops as soon as a
// pass starts clean or nothing could be changed.
func (s *assignState) runRepair(maxPasses int) int {
	for pass := 0; pass < maxPasses; pass++ {
		if len(s.detect()) == 0 {
			return pass
		}
		changed := s.resolveOverlaps()
		if s.resolveMaxShifts() {
			changed = true
		}
		if s.resolveRest() {
			changed = true
		}
		if s.resolveMinShifts() {
			changed = true
		}
		if !changed {
			return pass + 1
		}
	}
	return maxPasses
}
