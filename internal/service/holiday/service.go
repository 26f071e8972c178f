// Package holiday manages per-user holiday intervals: periods during which
// catch-up obligations and streak accrual are suspended.
package holiday

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/repeatry/leitner-api/internal/domain"
)

// Service errors
var (
	// ErrNoActiveHoliday is returned by mutation operations when the user has
	// no holiday covering the given date. Callers surface it as a not-found
	// condition, not a crash.
	ErrNoActiveHoliday = errors.New("no active holiday")
)

// Tracker manages holiday intervals for users.
//
// All operations take the current date explicitly so the service is a pure
// function of its inputs; callers pass the request's notion of "today".
type Tracker interface {
	// SetHoliday creates a new holiday record for the inclusive [start, end]
	// interval. The start <= end precondition is validated at the API
	// boundary before reaching this service.
	SetHoliday(ctx context.Context, userID uuid.UUID, start, end time.Time) (*domain.Holiday, error)

	// GetActiveHoliday returns the holiday whose interval contains today,
	// with the derived DaysLeft field populated.
	// Returns ErrNoActiveHoliday if no interval matches.
	GetActiveHoliday(ctx context.Context, userID uuid.UUID, today time.Time) (*domain.Holiday, error)

	// IsOnHoliday reports whether the user has a holiday covering today.
	IsOnHoliday(ctx context.Context, userID uuid.UUID, today time.Time) (bool, error)

	// ExtendHoliday pushes the active holiday's end date forward by
	// extraDays. Returns ErrNoActiveHoliday if none is active today.
	ExtendHoliday(ctx context.Context, userID uuid.UUID, today time.Time, extraDays int) (*domain.Holiday, error)

	// SetSkipCatchup toggles the active holiday's skip_catchup flag.
	// Returns ErrNoActiveHoliday if none is active today.
	SetSkipCatchup(ctx context.Context, userID uuid.UUID, today time.Time, skip bool) (*domain.Holiday, error)
}
