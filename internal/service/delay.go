package service

import (
	"strconv"
	"strings"
)

// ComputeMinutesLate returns the signed difference in minutes between the
// actual and scheduled departure times of day. Negative means the trip left
// early. ok is false when either input is absent or unparseable; callers must
// treat that as "unknown", never as on time.
//
// The subtraction works on minute-of-day values, so a trip scheduled before
// midnight that departs after midnight computes as a large negative value.
func ComputeMinutesLate(scheduled, actual string) (int, bool) {
	s, ok := parseMinuteOfDay(scheduled)
	if !ok {
		return 0, false
	}
	a, ok := parseMinuteOfDay(actual)
	if !ok {
		return 0, false
	}
	return a - s, true
}

// parseMinuteOfDay accepts H:MM, HH:MM and HH:MM:SS.
func parseMinuteOfDay(v string) (int, bool) {
	parts := strings.Split(strings.TrimSpace(v), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, false
	}
	if len(parts[0]) < 1 || len(parts[0]) > 2 || len(parts[1]) != 2 {
		return 0, false
	}
	hour, ok := parseDigits(parts[0])
	if !ok || hour > 23 {
		return 0, false
	}
	minute, ok := parseDigits(parts[1])
	if !ok || minute > 59 {
		return 0, false
	}
	if len(parts) == 3 {
		sec, ok := parseDigits(parts[2])
		if !ok || len(parts[2]) != 2 || sec > 59 {
			return 0, false
		}
	}
	return hour*60 + minute, true
}

func parseDigits(v string) (int, bool) {
	for _, c := range v {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}
