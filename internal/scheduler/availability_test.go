package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoversUnionOfEntries(t *testing.T) {
	idx, err := BuildAvailabilityIndex([]AvailabilityEntry{
		{EmployeeID: "e1", Day: 0, Start: "07:00", End: "09:00"},
		{EmployeeID: "e1", Day: 0, Start: "09:00", End: "12:00"},
	})
	require.NoError(t, err)

	assert.True(t, idx.Covers("e1", 0, 7, 11), "two adjacent entries cover one span")
	assert.True(t, idx.Covers("e1", 0, 7, 12))
	assert.False(t, idx.Covers("e1", 0, 7, 13), "hour past the union is uncovered")
	assert.False(t, idx.Covers("e1", 1, 7, 11), "wrong day")
	assert.False(t, idx.Covers("e2", 0, 7, 11), "unknown employee short-circuits")
}

func TestCoversOverlappingEntries(t *testing.T) {
	idx, err := BuildAvailabilityIndex([]AvailabilityEntry{
		{EmployeeID: "e1", Day: 0, Start: "07:00", End: "12:00"},
		{EmployeeID: "e1", Day: 0, Start: "11:00", End: "18:00"},
	})
	require.NoError(t, err)

	assert.True(t, idx.Covers("e1", 0, 7, 15))
	assert.True(t, idx.Covers("e1", 0, 11, 15))
	assert.False(t, idx.Covers("e1", 0, 6, 10))
	assert.False(t, idx.Covers("e1", 0, 15, 19))
}

func TestBuildIndexClampsMinutesInward(t *testing.T) {
	idx, err := BuildAvailabilityIndex([]AvailabilityEntry{
		{EmployeeID: "e1", Day: 2, Start: "07:30", End: "11:45"},
	})
	require.NoError(t, err)

	assert.True(t, idx.Covers("e1", 2, 8, 11))
	assert.False(t, idx.Covers("e1", 2, 7, 11), "07:00 hour only partially available")
	assert.False(t, idx.Covers("e1", 2, 8, 12), "11:00-12:00 only partially available")
}

func TestBuildIndexDropsEmptyAfterClamp(t *testing.T) {
	idx, err := BuildAvailabilityIndex([]AvailabilityEntry{
		{EmployeeID: "e1", Day: 0, Start: "09:20", End: "09:40"},
	})
	require.NoError(t, err)
	assert.True(t, idx.Empty())
	assert.False(t, idx.HasAny("e1"))
}

func TestBuildIndexRejectsMalformedEntries(t *testing.T) {
	_, err := BuildAvailabilityIndex([]AvailabilityEntry{
		{EmployeeID: "e1", Day: 7, Start: "09:00", End: "12:00"},
	})
	assert.Error(t, err)

	_, err = BuildAvailabilityIndex([]AvailabilityEntry{
		{EmployeeID: "e1", Day: 0, Start: "9am", End: "12:00"},
	})
	assert.Error(t, err)
}
