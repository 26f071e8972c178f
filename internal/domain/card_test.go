package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCard(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	t.Run("valid card starts in box 1", func(t *testing.T) {
		t.Parallel()
		card, err := NewCard(userID, "What is the capital of France?", "Paris")
		require.NoError(t, err)
		assert.Equal(t, MinBox, card.Box)
		assert.Equal(t, userID, card.UserID)
		assert.Nil(t, card.LastReviewedAt)
		assert.NotEqual(t, uuid.Nil, card.ID)
	})

	t.Run("empty question rejected", func(t *testing.T) {
		t.Parallel()
		_, err := NewCard(userID, "", "Paris")
		assert.ErrorIs(t, err, ErrCardQuestionEmpty)
	})

	t.Run("empty answer rejected", func(t *testing.T) {
		t.Parallel()
		_, err := NewCard(userID, "Question?", "")
		assert.ErrorIs(t, err, ErrCardAnswerEmpty)
	})

	t.Run("empty user rejected", func(t *testing.T) {
		t.Parallel()
		_, err := NewCard(uuid.Nil, "Question?", "Answer")
		assert.ErrorIs(t, err, ErrCardUserIDEmpty)
	})
}

func TestCardValidateBoxRange(t *testing.T) {
	t.Parallel()

	card, err := NewCard(uuid.New(), "Q", "A")
	require.NoError(t, err)

	for _, box := range []int{0, -1, 4, 10} {
		card.Box = box
		assert.ErrorIs(t, card.Validate(), ErrCardBoxOutOfRange, "box %d", box)
	}

	for box := MinBox; box <= MaxBox; box++ {
		card.Box = box
		assert.NoError(t, card.Validate())
	}
}

func TestCardRecordReview(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.March, 10, 15, 30, 0, 0, time.UTC)

	testCases := []struct {
		name     string
		startBox int
		correct  bool
		wantBox  int
	}{
		{name: "correct promotes from box 1", startBox: 1, correct: true, wantBox: 2},
		{name: "correct promotes from box 2", startBox: 2, correct: true, wantBox: 3},
		{name: "correct in box 3 stays capped", startBox: 3, correct: true, wantBox: 3},
		{name: "incorrect resets from box 3", startBox: 3, correct: false, wantBox: 1},
		{name: "incorrect resets from box 2", startBox: 2, correct: false, wantBox: 1},
		{name: "incorrect in box 1 stays", startBox: 1, correct: false, wantBox: 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			card, err := NewCard(uuid.New(), "Q", "A")
			require.NoError(t, err)
			card.Box = tc.startBox

			card.RecordReview(tc.correct, now)

			assert.Equal(t, tc.wantBox, card.Box)
			require.NotNil(t, card.LastReviewedAt)
			assert.Equal(t, now, *card.LastReviewedAt)
		})
	}
}
