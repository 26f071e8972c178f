package leitner

import (
	"sort"
	"time"

	"github.com/repeatry/leitner-api/internal/domain"
)

// Streak returns the number of consecutive calendar days, ending at the most
// recent date in reviewedAt, on which at least one review occurred. Instants
// are collapsed to distinct UTC dates first; a gap of more than one day ends
// the streak. An empty history yields 0.
func Streak(reviewedAt []time.Time) int {
	if len(reviewedAt) == 0 {
		return 0
	}

	seen := make(map[time.Time]struct{}, len(reviewedAt))
	dates := make([]time.Time, 0, len(reviewedAt))
	for _, t := range reviewedAt {
		d := domain.DateOf(t)
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		dates = append(dates, d)
	}

	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	streak := 1
	for i := len(dates) - 1; i > 0; i-- {
		if domain.DaysBetween(dates[i-1], dates[i]) == 1 {
			streak++
		} else {
			break
		}
	}
	return streak
}
