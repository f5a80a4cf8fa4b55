package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func repairFixture(t *testing.T, entries []AvailabilityEntry, employees []Employee, p Profile) *assignState {
	t.Helper()
	idx, err := BuildAvailabilityIndex(entries)
	require.NoError(t, err)
	return newAssignState(p, employees, idx)
}

func TestRepairReassignsOverlapToReplacement(t *testing.T) {
	p := NewProfile()
	p.MinShiftsPerEmployee = 0
	s := repairFixture(t, []AvailabilityEntry{
		{EmployeeID: "e1", Day: 0, Start: "07:00", End: "23:00"},
		{EmployeeID: "e2", Day: 0, Start: "07:00", End: "23:00"},
	}, []Employee{{ID: "e1"}, {ID: "e2"}}, p)

	s.rebuild([]Assignment{
		{EmployeeID: "e1", Day: 0, Start: 7, End: 15},
		{EmployeeID: "e1", Day: 0, Start: 11, End: 19},
	})
	require.Len(t, s.detect(), 2, "overlap also trips the rest check")

	s.runRepair(3)
	require.Len(t, s.assignments, 2, "a free replacement exists, nothing is dropped")
	assert.Empty(t, s.detect())
	assert.Equal(t, "e1", s.assignments[0].EmployeeID)
	assert.Equal(t, "e2", s.assignments[1].EmployeeID)
}

func TestRepairDropsUnresolvableOverlap(t *testing.T) {
	p := NewProfile()
	p.MinShiftsPerEmployee = 0
	s := repairFixture(t, []AvailabilityEntry{
		{EmployeeID: "e1", Day: 0, Start: "07:00", End: "23:00"},
	}, []Employee{{ID: "e1"}}, p)

	s.rebuild([]Assignment{
		{EmployeeID: "e1", Day: 0, Start: 7, End: 15},
		{EmployeeID: "e1", Day: 0, Start: 11, End: 19},
	})
	s.runRepair(3)

	require.Len(t, s.assignments, 1, "with nobody to take the shift the later one is dropped")
	assert.Equal(t, Assignment{EmployeeID: "e1", Day: 0, Start: 7, End: 15}, s.assignments[0])
	assert.Empty(t, s.detect())
}

func TestRepairShedsExcessShifts(t *testing.T) {
	p := NewProfile()
	p.MinShiftsPerEmployee = 0
	p.MaxShiftsPerEmployee = 2
	s := repairFixture(t, []AvailabilityEntry{
		{EmployeeID: "e1", Day: 0, Start: "07:00", End: "23:00"},
		{EmployeeID: "e1", Day: 1, Start: "07:00", End: "23:00"},
		{EmployeeID: "e1", Day: 2, Start: "07:00", End: "23:00"},
		{EmployeeID: "e2", Day: 2, Start: "07:00", End: "23:00"},
	}, []Employee{{ID: "e1"}, {ID: "e2"}}, p)

	s.rebuild([]Assignment{
		{EmployeeID: "e1", Day: 0, Start: 9, End: 17},
		{EmployeeID: "e1", Day: 1, Start: 9, End: 17},
		{EmployeeID: "e1", Day: 2, Start: 9, End: 17},
	})
	s.runRepair(3)

	assert.Equal(t, 2, s.shiftCount["e1"])
	assert.Equal(t, 1, s.shiftCount["e2"])
	assert.Equal(t, "e2", s.assignments[2].EmployeeID, "the latest excess shift moves to the free employee")
	assert.Empty(t, s.detect())
}

func TestRepairTransfersShiftToUnderQuotaEmployee(t *testing.T) {
	p := NewProfile()
	p.MinShiftsPerEmployee = 1
	p.MaxShiftsPerEmployee = 5
	s := repairFixture(t, []AvailabilityEntry{
		{EmployeeID: "e1", Day: 0, Start: "07:00", End: "23:00"},
		{EmployeeID: "e1", Day: 1, Start: "07:00", End: "23:00"},
		{EmployeeID: "e2", Day: 1, Start: "07:00", End: "23:00"},
	}, []Employee{{ID: "e1"}, {ID: "e2"}}, p)

	s.rebuild([]Assignment{
		{EmployeeID: "e1", Day: 0, Start: 9, End: 17},
		{EmployeeID: "e1", Day: 1, Start: 9, End: 17},
	})
	require.Len(t, s.detect(), 1)

	s.runRepair(3)
	assert.Equal(t, 1, s.shiftCount["e1"], "donor stays at its own minimum")
	assert.Equal(t, 1, s.shiftCount["e2"])
	assert.Empty(t, s.detect())
}

func TestRepairLeavesDeficitWhenNoDonorCanGive(t *testing.T) {
	p := NewProfile()
	p.MinShiftsPerEmployee = 1
	s := repairFixture(t, []AvailabilityEntry{
		{EmployeeID: "e1", Day: 0, Start: "07:00", End: "23:00"},
		{EmployeeID: "e2", Day: 0, Start: "07:00", End: "23:00"},
	}, []Employee{{ID: "e1"}, {ID: "e2"}}, p)

	s.rebuild([]Assignment{
		{EmployeeID: "e1", Day: 0, Start: 9, End: 17},
	})
	s.runRepair(3)

	violations := s.detect()
	require.Len(t, violations, 1, "shortfall persists as a reported best-effort outcome")
	assert.Equal(t, ViolationMinShiftsNotMet, violations[0].Type)
	assert.Equal(t, "e2", violations[0].EmployeeID)
}

func TestDetectOrdersViolationsByRepairPriority(t *testing.T) {
	p := NewProfile()
	p.MinShiftsPerEmployee = 1
	p.MaxShiftsPerEmployee = 1
	s := repairFixture(t, []AvailabilityEntry{
		{EmployeeID: "e1", Day: 0, Start: "07:00", End: "23:00"},
		{EmployeeID: "e2", Day: 3, Start: "07:00", End: "23:00"},
	}, []Employee{{ID: "e1"}, {ID: "e2"}}, p)

	s.rebuild([]Assignment{
		{EmployeeID: "e1", Day: 0, Start: 7, End: 15},
		{EmployeeID: "e1", Day: 0, Start: 11, End: 19},
	})

	violations := s.detect()
	require.NotEmpty(t, violations)
	assert.Equal(t, ViolationShiftOverlap, violations[0].Type)
	last := violations[len(violations)-1]
	assert.Equal(t, ViolationMinShiftsNotMet, last.Type)
	assert.Equal(t, "e2", last.EmployeeID)
}
