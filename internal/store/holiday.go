package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/repeatry/leitner-api/internal/domain"
)

// HolidayStore defines the interface for holiday record persistence.
type HolidayStore interface {
	// Insert saves a new holiday record. Overlapping intervals for the same
	// user are not rejected here; FindActive applies a first-match-wins
	// tie-break.
	Insert(ctx context.Context, holiday *domain.Holiday) error

	// FindActive retrieves the holiday whose inclusive [start, end] interval
	// contains the given date. When several records match, the earliest
	// created wins. Returns ErrHolidayNotFound if no interval matches.
	FindActive(ctx context.Context, userID uuid.UUID, on time.Time) (*domain.Holiday, error)

	// Update persists a holiday's mutable fields (end date, skip_catchup).
	// Returns ErrHolidayNotFound if the record does not exist.
	//
	// Extend and skip-toggle are read-modify-write sequences; callers must
	// serialize them per user by running FindActive and Update inside a
	// transaction via WithTx (the postgres implementation locks the row).
	Update(ctx context.Context, holiday *domain.Holiday) error

	// WithTx returns a HolidayStore bound to the provided transaction.
	WithTx(tx *sql.Tx) HolidayStore
}
