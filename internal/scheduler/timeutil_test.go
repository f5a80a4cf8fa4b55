package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHoursBetween(t *testing.T) {
	assert.Equal(t, 19, HoursBetween(0, 12, 1, 7), "Mon 12:00 to Tue 07:00")
	assert.Equal(t, 0, HoursBetween(0, 11, 0, 11), "back to back on the same day")
	assert.Equal(t, 4, HoursBetween(2, 15, 2, 19))
	assert.Equal(t, -2, HoursBetween(3, 14, 3, 12), "overlapping pair yields a negative gap")
	assert.Equal(t, 8, HoursBetween(4, 23, 5, 7), "closing shift into opening shift")
}

func TestOverlaps(t *testing.T) {
	assert.True(t, Overlaps(7, 11, 10, 14))
	assert.True(t, Overlaps(10, 14, 7, 11))
	assert.True(t, Overlaps(7, 15, 9, 11), "containment counts as overlap")
	assert.False(t, Overlaps(7, 11, 11, 15), "contiguous intervals do not overlap")
	assert.False(t, Overlaps(7, 9, 12, 14))
}

func TestParseClock(t *testing.T) {
	h, m, err := parseClock("07:30")
	require.NoError(t, err)
	assert.Equal(t, 7, h)
	assert.Equal(t, 30, m)

	_, _, err = parseClock("25:00")
	assert.Error(t, err)
	_, _, err = parseClock("12:61")
	assert.Error(t, err)
	_, _, err = parseClock("noon")
	assert.Error(t, err)
	_, _, err = parseClock("24:30")
	assert.Error(t, err)

	_, _, err = parseClock("24:00")
	assert.NoError(t, err, "hour 24 denotes midnight at the end of the day")
}

func TestParseHourRounding(t *testing.T) {
	h, err := parseHourCeil("07:30")
	require.NoError(t, err)
	assert.Equal(t, 8, h, "partial leading hour rounds up")

	h, err = parseHourCeil("09:00")
	require.NoError(t, err)
	assert.Equal(t, 9, h)

	h, err = parseHourFloor("11:45")
	require.NoError(t, err)
	assert.Equal(t, 11, h, "partial trailing hour rounds down")

	h, err = parseHourFloor("17:00")
	require.NoError(t, err)
	assert.Equal(t, 17, h)
}
