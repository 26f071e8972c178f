// Package schedule decides which cards a user reviews on a given day.
//
// The daily selection applies the Leitner box cadence to today's date; the
// catch-up selection reconstructs what was due on the most recent missed day
// (yesterday) so that a skipped day is not silently lost.
package schedule

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/repeatry/leitner-api/internal/domain"
)

// DefaultLimit is the maximum number of cards returned by a selection when
// the caller does not specify a limit.
const DefaultLimit = 20

// Selection bundles the daily review set with the reconstructed catch-up set.
type Selection struct {
	Today      []*domain.Card
	Catchup    []*domain.Card
	MissedDays bool
}

// Service selects review sets for users. All operations are read-only
// computations over a snapshot fetched at call start; nothing is cached
// across calls. The current date is always passed explicitly.
type Service interface {
	// SelectDaily returns up to limit of the user's cards that are eligible
	// on today's date, uniformly shuffled. Order carries no meaning.
	SelectDaily(ctx context.Context, userID uuid.UUID, today time.Time, limit int) ([]*domain.Card, error)

	// SelectCatchup returns up to limit cards that were due yesterday when
	// the user has missed at least one day, shuffled like SelectDaily.
	// It returns an empty set for new users, for users who studied yesterday
	// or today, and for users currently on holiday. Only the single most
	// recent missed day is reconstructed, even when more days were missed.
	SelectCatchup(ctx context.Context, userID uuid.UUID, today time.Time, limit int) ([]*domain.Card, error)

	// SelectForDay combines SelectDaily and SelectCatchup into the payload
	// served by the daily endpoint. MissedDays is true iff the catch-up set
	// is non-empty.
	SelectForDay(ctx context.Context, userID uuid.UUID, today time.Time, limit int) (*Selection, error)
}
