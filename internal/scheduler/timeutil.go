package scheduler

import (
	"fmt"
	"strconv"
	"strings"
)

// HoursBetween returns the number of hours between (day1, hour1) and
// (day2, hour2), where days are canonical week indexes (0=Monday..6=Sunday).
// Callers must order the two points chronologically; a negative result means
// the intervals already overlap, which the rest check treats as a violation.
func HoursBetween(day1, hour1, day2, hour2 int) int {
	return (day2-day1)*24 + (hour2 - hour1)
}

// Overlaps reports whether two same-day hour intervals [aStart,aEnd) and
// [bStart,bEnd) intersect.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// ParseWindow parses an operating window's "HH:MM" bounds into whole hours,
// clamping inward when minutes are present. An end of "00:00" means midnight
// at the end of the day and maps to hour 24.
func ParseWindow(start, end string) (int, int, error) {
	s, err := parseHourCeil(start)
	if err != nil {
		return 0, 0, err
	}
	e, err := parseHourFloor(end)
	if err != nil {
		return 0, 0, err
	}
	if e == 0 {
		e = 24
	}
	return s, e, nil
}

// parseClock parses a "HH:MM" string into hour and minute components.
func parseClock(s string) (int, int, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid hour in %q: %w", s, err)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid minute in %q: %w", s, err)
	}
	if h < 0 || h > 24 || m < 0 || m > 59 || (h == 24 && m != 0) {
		return 0, 0, fmt.Errorf("time %q out of range", s)
	}
	return h, m, nil
}

// parseHourFloor parses "HH:MM" rounding down to the containing hour.
// Used for interval ends so partial trailing hours are not counted as covered.
func parseHourFloor(s string) (int, error) {
	h, _, err := parseClock(s)
	if err != nil {
		return 0, err
	}
	return h, nil
}

// parseHourCeil parses "HH:MM" rounding up to the next whole hour.
// Used for interval starts so partial leading hours are not counted as covered.
func parseHourCeil(s string) (int, error) {
	h, m, err := parseClock(s)
	if err != nil {
		return 0, err
	}
	if m > 0 {
		h++
	}
	return h, nil
}
