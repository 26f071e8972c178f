package generation

import (
	"context"

	"github.com/google/uuid"
	"github.com/repeatry/leitner-api/internal/domain"
)

// Generator creates flashcards from a piece of text.
//
// Implementations may legitimately return an empty slice: not every chunk of
// text yields usable question/answer pairs, and that is not an error.
type Generator interface {
	// GenerateCards creates box-1 cards owned by userID from the given text.
	GenerateCards(ctx context.Context, text string, userID uuid.UUID) ([]*domain.Card, error)
}
