// Package progress computes a user's study progress: the consecutive-day
// streak, the mastered-card count, and the dashboard aggregation served to
// clients.
package progress

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/repeatry/leitner-api/internal/domain"
)

// StreakStatus reports whether the streak is accruing or suspended.
type StreakStatus string

const (
	// StreakActive means the streak accrues normally.
	StreakActive StreakStatus = "active"

	// StreakFrozen means an active holiday suspends the streak. The numeric
	// streak is reported as 0 while frozen; the pre-holiday count is not
	// preserved.
	StreakFrozen StreakStatus = "frozen"
)

// Dashboard aggregates a user's progress for the dashboard endpoint.
type Dashboard struct {
	History      []*domain.Review
	Mastered     int
	Streak       int
	StreakStatus StreakStatus
	Holiday      *domain.Holiday // nil when no holiday is active today
}

// Service computes study progress. The current date is always passed
// explicitly, never read from the wall clock.
type Service interface {
	// ComputeStreak returns the user's consecutive-day study streak ending
	// at their most recent study date, along with its status. While a
	// holiday is active the streak is 0 and the status is StreakFrozen.
	ComputeStreak(ctx context.Context, userID uuid.UUID, today time.Time) (int, StreakStatus, error)

	// MasteredCount returns the number of the user's cards at the highest
	// box level.
	MasteredCount(ctx context.Context, userID uuid.UUID) (int, error)

	// GetDashboard aggregates history, mastered count, streak, and the
	// active holiday (if any) in one call.
	GetDashboard(ctx context.Context, userID uuid.UUID, today time.Time) (*Dashboard, error)
}
