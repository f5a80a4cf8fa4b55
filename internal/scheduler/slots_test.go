package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mondayOf2026Week10() time.Time {
	return time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
}

func TestGenerateSlotsSingleDaySingleLength(t *testing.T) {
	p := NewProfile()
	p.ActiveDays = []int{0}
	p.StartHour = 9
	p.EndHour = 17
	p.MinShiftLength = 8
	p.MaxShiftLength = 8
	p.ShiftIncrement = 1

	slots := GenerateSlots(p, mondayOf2026Week10())
	require.Len(t, slots, 1)
	assert.Equal(t, 0, slots[0].Day)
	assert.Equal(t, 9, slots[0].Start)
	assert.Equal(t, 17, slots[0].End)
	assert.Equal(t, mondayOf2026Week10(), slots[0].Date)
	assert.Equal(t, p.MaxEmployeesPerShift, slots[0].MaxEmployees)
}

func TestGenerateSlotsRespectsWindowAndIncrement(t *testing.T) {
	p := NewProfile()
	p.ActiveDays = []int{2}
	p.StartHour = 7
	p.EndHour = 15
	p.MinShiftLength = 4
	p.MaxShiftLength = 8
	p.ShiftIncrement = 2

	slots := GenerateSlots(p, mondayOf2026Week10())
	require.NotEmpty(t, slots)
	for _, s := range slots {
		assert.GreaterOrEqual(t, s.Start, 7)
		assert.LessOrEqual(t, s.End, 15)
		assert.Contains(t, []int{4, 6, 8}, s.Length())
		assert.Equal(t, 2, s.Day)
		assert.Equal(t, mondayOf2026Week10().AddDate(0, 0, 2), s.Date)
	}
	// starts 7..11, lengths limited by the 15:00 close:
	// 7h: 4,6,8  8h: 4,6  9h: 4,6  10h: 4  11h: 4
	assert.Len(t, slots, 9)
}

func TestGenerateSlotsStableAcrossCalls(t *testing.T) {
	p := NewProfile()
	p.ActiveDays = []int{0, 3, 5}
	first := GenerateSlots(p, mondayOf2026Week10())
	second := GenerateSlots(p, mondayOf2026Week10())
	assert.Equal(t, first, second)
}

func TestGenerateSlotsCoversAllActiveDays(t *testing.T) {
	p := NewProfile()
	slots := GenerateSlots(p, mondayOf2026Week10())
	days := make(map[int]bool)
	for _, s := range slots {
		days[s.Day] = true
	}
	assert.Len(t, days, 7)
}
