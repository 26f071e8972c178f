package leitner

import (
	"time"

	"github.com/repeatry/leitner-api/internal/domain"
)

// unixEpochOrdinal is the proleptic ordinal day number of 1970-01-01,
// counting 0001-01-01 as day 1.
const unixEpochOrdinal = 719163

// OrdinalDay returns the proleptic ordinal day number of the instant's UTC
// calendar date: a strictly increasing integer assigned to every date from
// the fixed epoch 0001-01-01 (= day 1). The modulo-based cadence rules below
// key off this number, which ties eligibility to the absolute calendar date
// rather than per-card review history.
func OrdinalDay(t time.Time) int {
	secs := domain.DateOf(t).Unix()
	days := secs / 86400
	if secs%86400 < 0 {
		days--
	}
	return unixEpochOrdinal + int(days)
}

// IsEligible reports whether a card in the given box is due for review on
// the given calendar date.
//
// Box 1 is reviewed every day. Box 2 is due on even ordinal days, box 3 on
// ordinal days divisible by three. Box levels outside [MinBox, MaxBox] are
// never eligible.
func IsEligible(box int, on time.Time) bool {
	switch box {
	case 1:
		return true
	case 2:
		return OrdinalDay(on)%2 == 0
	case 3:
		return OrdinalDay(on)%3 == 0
	default:
		return false
	}
}
