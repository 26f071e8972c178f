package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/repeatry/leitner-api/internal/domain"
	"github.com/repeatry/leitner-api/internal/store"
)

// CardStore is an in-memory store.CardStore for tests.
type CardStore struct {
	Cards []*domain.Card

	// Err, when set, is returned by every operation.
	Err error
}

var _ store.CardStore = (*CardStore)(nil)

// NewCardStore creates an empty in-memory card store.
func NewCardStore(cards ...*domain.Card) *CardStore {
	return &CardStore{Cards: cards}
}

// CreateMultiple implements store.CardStore.CreateMultiple.
func (s *CardStore) CreateMultiple(ctx context.Context, cards []*domain.Card) error {
	if s.Err != nil {
		return s.Err
	}
	s.Cards = append(s.Cards, cards...)
	return nil
}

// GetByID implements store.CardStore.GetByID.
func (s *CardStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for _, c := range s.Cards {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, store.ErrCardNotFound
}

// ListByUser implements store.CardStore.ListByUser.
func (s *CardStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Card, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var out []*domain.Card
	for _, c := range s.Cards {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

// Update implements store.CardStore.Update.
func (s *CardStore) Update(ctx context.Context, card *domain.Card) error {
	if s.Err != nil {
		return s.Err
	}
	for i, c := range s.Cards {
		if c.ID == card.ID {
			s.Cards[i] = card
			return nil
		}
	}
	return store.ErrCardNotFound
}

// CountByBox implements store.CardStore.CountByBox.
func (s *CardStore) CountByBox(ctx context.Context, userID uuid.UUID, box int) (int, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	count := 0
	for _, c := range s.Cards {
		if c.UserID == userID && c.Box == box {
			count++
		}
	}
	return count, nil
}

// WithTx implements store.CardStore.WithTx.
func (s *CardStore) WithTx(tx *sql.Tx) store.CardStore {
	return s
}
