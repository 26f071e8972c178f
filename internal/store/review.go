package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/repeatry/leitner-api/internal/domain"
)

// ReviewStore defines the interface for review history persistence.
// Reviews are append-only; there are no update or delete operations.
type ReviewStore interface {
	// Insert appends a review to the user's history.
	Insert(ctx context.Context, review *domain.Review) error

	// ListByUser retrieves the user's full review history, most recent first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Review, error)

	// Latest retrieves the user's most recent review by timestamp.
	// Returns ErrNotFound if the user has no reviews.
	Latest(ctx context.Context, userID uuid.UUID) (*domain.Review, error)

	// WithTx returns a ReviewStore bound to the provided transaction.
	WithTx(tx *sql.Tx) ReviewStore
}
