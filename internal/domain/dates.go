package domain

import "time"

// DateOf truncates an instant to its UTC calendar date (midnight UTC).
// All date arithmetic in the scheduling core operates on values produced
// by this function so that instants and dates never mix.
func DateOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of calendar days from a to b (b - a),
// negative when b precedes a. Both arguments are truncated to dates first.
func DaysBetween(a, b time.Time) int {
	return int(DateOf(b).Sub(DateOf(a)) / (24 * time.Hour))
}
