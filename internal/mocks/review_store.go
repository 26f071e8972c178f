package mocks

import (
	"context"
	"database/sql"
	"sort"

	"github.com/google/uuid"
	"github.com/repeatry/leitner-api/internal/domain"
	"github.com/repeatry/leitner-api/internal/store"
)

// ReviewStore is an in-memory store.ReviewStore for tests.
type ReviewStore struct {
	Reviews []*domain.Review

	// Err, when set, is returned by every operation.
	Err error
}

var _ store.ReviewStore = (*ReviewStore)(nil)

// NewReviewStore creates an in-memory review store seeded with the given
// reviews.
func NewReviewStore(reviews ...*domain.Review) *ReviewStore {
	return &ReviewStore{Reviews: reviews}
}

// Insert implements store.ReviewStore.Insert.
func (s *ReviewStore) Insert(ctx context.Context, review *domain.Review) error {
	if s.Err != nil {
		return s.Err
	}
	s.Reviews = append(s.Reviews, review)
	return nil
}

// ListByUser implements store.ReviewStore.ListByUser.
func (s *ReviewStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Review, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var out []*domain.Review
	for _, r := range s.Reviews {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// Latest implements store.ReviewStore.Latest.
func (s *ReviewStore) Latest(ctx context.Context, userID uuid.UUID) (*domain.Review, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	reviews, err := s.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(reviews) == 0 {
		return nil, store.ErrNotFound
	}
	return reviews[0], nil
}

// WithTx implements store.ReviewStore.WithTx.
func (s *ReviewStore) WithTx(tx *sql.Tx) store.ReviewStore {
	return s
}
