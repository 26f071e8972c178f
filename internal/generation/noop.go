package generation

import (
	"context"

	"github.com/google/uuid"
	"github.com/repeatry/leitner-api/internal/domain"
)

// Noop is a Generator that produces no cards. It stands in when no LLM
// credentials are configured, so uploads still succeed and simply yield
// nothing.
type Noop struct{}

var _ Generator = Noop{}

// GenerateCards implements Generator.
func (Noop) GenerateCards(ctx context.Context, text string, userID uuid.UUID) ([]*domain.Card, error) {
	return nil, nil
}
