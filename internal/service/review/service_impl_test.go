package review_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repeatry/leitner-api/internal/domain"
	"github.com/repeatry/leitner-api/internal/mocks"
	"github.com/repeatry/leitner-api/internal/service/review"
)

func newCardInBox(t *testing.T, userID uuid.UUID, box int) *domain.Card {
	t.Helper()
	card, err := domain.NewCard(userID, "question", "answer")
	require.NoError(t, err)
	card.Box = box
	return card
}

func TestSubmitReview_BoxTransitions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		box     int
		correct bool
		wantBox int
	}{
		{name: "correct promotes box 1 to 2", box: 1, correct: true, wantBox: 2},
		{name: "correct promotes box 2 to 3", box: 2, correct: true, wantBox: 3},
		{name: "correct at top box stays", box: 3, correct: true, wantBox: 3},
		{name: "incorrect resets box 3 to 1", box: 3, correct: false, wantBox: 1},
		{name: "incorrect at box 1 stays", box: 1, correct: false, wantBox: 1},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			userID := uuid.New()
			card := newCardInBox(t, userID, tc.box)
			cards := mocks.NewCardStore(card)
			reviews := mocks.NewReviewStore()

			svc := review.NewService(nil, cards, reviews, nil)

			at := time.Date(2024, time.March, 10, 9, 30, 0, 0, time.UTC)
			result, err := svc.SubmitReview(context.Background(), userID, card.ID, tc.correct, at)
			require.NoError(t, err)

			assert.Equal(t, tc.wantBox, result.Card.Box)
			require.NotNil(t, result.Card.LastReviewedAt)
			assert.Equal(t, tc.correct, result.Review.Correct)

			// History is append-only: the review is recorded either way.
			require.Len(t, reviews.Reviews, 1)
			assert.Equal(t, card.ID, reviews.Reviews[0].CardID)
		})
	}
}

func TestSubmitReview_CardNotFound(t *testing.T) {
	t.Parallel()

	svc := review.NewService(nil, mocks.NewCardStore(), mocks.NewReviewStore(), nil)

	_, err := svc.SubmitReview(context.Background(), uuid.New(), uuid.New(), true, time.Now())
	assert.ErrorIs(t, err, review.ErrCardNotFound)
}

func TestSubmitReview_CardNotOwned(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	card := newCardInBox(t, owner, 1)
	reviews := mocks.NewReviewStore()

	svc := review.NewService(nil, mocks.NewCardStore(card), reviews, nil)

	_, err := svc.SubmitReview(context.Background(), uuid.New(), card.ID, true, time.Now())
	assert.ErrorIs(t, err, review.ErrCardNotOwned)
	assert.Empty(t, reviews.Reviews, "no review is recorded for a rejected submission")
	assert.Equal(t, 1, card.Box, "the card's box is untouched")
}
