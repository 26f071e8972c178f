package progress_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repeatry/leitner-api/internal/domain"
	"github.com/repeatry/leitner-api/internal/mocks"
	"github.com/repeatry/leitner-api/internal/service/holiday"
	"github.com/repeatry/leitner-api/internal/service/progress"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newReviewAt(t *testing.T, userID uuid.UUID, at time.Time) *domain.Review {
	t.Helper()
	review, err := domain.NewReview(userID, uuid.New(), true)
	require.NoError(t, err)
	review.CreatedAt = at
	return review
}

func newService(t *testing.T, cards *mocks.CardStore, reviews *mocks.ReviewStore, holidays ...*domain.Holiday) progress.Service {
	t.Helper()
	tracker := holiday.NewTracker(nil, mocks.NewHolidayStore(holidays...), nil)
	return progress.NewService(cards, reviews, tracker, nil)
}

func TestComputeStreak(t *testing.T) {
	t.Parallel()

	today := day(2024, time.March, 10)

	tests := []struct {
		name       string
		reviewDays []time.Time
		want       int
	}{
		{
			name: "no reviews",
			want: 0,
		},
		{
			name: "three consecutive days",
			reviewDays: []time.Time{
				day(2024, time.March, 8),
				day(2024, time.March, 9),
				day(2024, time.March, 10),
			},
			want: 3,
		},
		{
			name: "gap resets the count",
			reviewDays: []time.Time{
				day(2024, time.March, 5),
				day(2024, time.March, 6),
				day(2024, time.March, 9),
				day(2024, time.March, 10),
			},
			want: 2,
		},
		{
			name: "multiple reviews on one day count once",
			reviewDays: []time.Time{
				day(2024, time.March, 9),
				day(2024, time.March, 10),
				day(2024, time.March, 10),
			},
			want: 2,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			userID := uuid.New()
			reviews := mocks.NewReviewStore()
			for _, d := range tc.reviewDays {
				reviews.Reviews = append(reviews.Reviews, newReviewAt(t, userID, d))
			}

			svc := newService(t, mocks.NewCardStore(), reviews)

			streak, status, err := svc.ComputeStreak(context.Background(), userID, today)
			require.NoError(t, err)
			assert.Equal(t, tc.want, streak)
			assert.Equal(t, progress.StreakActive, status)
		})
	}
}

func TestComputeStreak_FrozenOnHoliday(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	today := day(2024, time.March, 10)

	h, err := domain.NewHoliday(userID, day(2024, time.March, 8), day(2024, time.March, 12))
	require.NoError(t, err)

	reviews := mocks.NewReviewStore(
		newReviewAt(t, userID, day(2024, time.March, 6)),
		newReviewAt(t, userID, day(2024, time.March, 7)),
	)

	svc := newService(t, mocks.NewCardStore(), reviews, h)

	streak, status, err := svc.ComputeStreak(context.Background(), userID, today)
	require.NoError(t, err)
	assert.Equal(t, 0, streak, "frozen streak reports 0, not the pre-holiday count")
	assert.Equal(t, progress.StreakFrozen, status)
}

func TestMasteredCount(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	cards := mocks.NewCardStore()
	for _, box := range []int{1, 2, 3, 3, 3} {
		card, err := domain.NewCard(userID, "question", "answer")
		require.NoError(t, err)
		card.Box = box
		cards.Cards = append(cards.Cards, card)
	}

	svc := newService(t, cards, mocks.NewReviewStore())

	count, err := svc.MasteredCount(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestGetDashboard(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	today := day(2024, time.March, 10)

	cards := mocks.NewCardStore()
	card, err := domain.NewCard(userID, "question", "answer")
	require.NoError(t, err)
	card.Box = domain.MaxBox
	cards.Cards = append(cards.Cards, card)

	reviews := mocks.NewReviewStore(
		newReviewAt(t, userID, day(2024, time.March, 9)),
		newReviewAt(t, userID, day(2024, time.March, 10)),
	)

	svc := newService(t, cards, reviews)

	dash, err := svc.GetDashboard(context.Background(), userID, today)
	require.NoError(t, err)
	assert.Len(t, dash.History, 2)
	assert.Equal(t, 1, dash.Mastered)
	assert.Equal(t, 2, dash.Streak)
	assert.Equal(t, progress.StreakActive, dash.StreakStatus)
	assert.Nil(t, dash.Holiday)
}

func TestGetDashboard_OnHoliday(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	today := day(2024, time.March, 10)

	h, err := domain.NewHoliday(userID, day(2024, time.March, 9), day(2024, time.March, 11))
	require.NoError(t, err)

	reviews := mocks.NewReviewStore(
		newReviewAt(t, userID, day(2024, time.March, 8)),
		newReviewAt(t, userID, day(2024, time.March, 9)),
	)

	svc := newService(t, mocks.NewCardStore(), reviews, h)

	dash, err := svc.GetDashboard(context.Background(), userID, today)
	require.NoError(t, err)
	assert.Equal(t, 0, dash.Streak)
	assert.Equal(t, progress.StreakFrozen, dash.StreakStatus)
	require.NotNil(t, dash.Holiday)
	assert.Equal(t, 2, dash.Holiday.DaysLeft)
}
