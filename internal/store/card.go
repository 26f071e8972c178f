package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/repeatry/leitner-api/internal/domain"
)

// CardStore defines the interface for card data persistence.
type CardStore interface {
	// CreateMultiple saves multiple cards to the store.
	// This method should be run within a transaction for atomicity: use
	// WithTx together with store.RunInTransaction. All cards must be valid
	// according to domain validation rules.
	CreateMultiple(ctx context.Context, cards []*domain.Card) error

	// GetByID retrieves a card by its unique ID.
	// Returns ErrCardNotFound if the card does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error)

	// ListByUser retrieves all cards owned by the given user. The scheduling
	// services treat the result as a request-scoped snapshot.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Card, error)

	// Update persists a card's mutable fields (box, last reviewed date).
	// Returns ErrCardNotFound if the card does not exist.
	Update(ctx context.Context, card *domain.Card) error

	// CountByBox returns the number of the user's cards at the given box level.
	CountByBox(ctx context.Context, userID uuid.UUID, box int) (int, error)

	// WithTx returns a CardStore bound to the provided transaction, allowing
	// multiple operations to execute atomically. The transaction is created
	// and managed by the caller.
	WithTx(tx *sql.Tx) CardStore
}
