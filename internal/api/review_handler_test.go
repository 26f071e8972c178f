package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repeatry/leitner-api/internal/api"
	"github.com/repeatry/leitner-api/internal/domain"
	"github.com/repeatry/leitner-api/internal/mocks"
	"github.com/repeatry/leitner-api/internal/service/review"
)

func newReviewHandler(cards *mocks.CardStore, reviews *mocks.ReviewStore) *api.ReviewHandler {
	svc := review.NewService(nil, cards, reviews, nil)
	return api.NewReviewHandler(svc, reviews)
}

func boolPtr(b bool) *bool { return &b }

func TestSubmitReview(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	card, err := domain.NewCard(userID, "question", "answer")
	require.NoError(t, err)

	reviews := mocks.NewReviewStore()
	handler := newReviewHandler(mocks.NewCardStore(card), reviews)

	req := httptest.NewRequest(http.MethodPost, "/api/reviews", jsonBody(t, api.ReviewRequest{
		CardID:  card.ID,
		Correct: boolPtr(true),
	}))
	rec := httptest.NewRecorder()

	handler.SubmitReview(rec, authedRequest(req, userID))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp api.ReviewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, card.ID, resp.CardID)
	assert.True(t, resp.Correct)
	assert.Equal(t, 2, resp.Card.Box, "correct answer promotes the card")
	require.Len(t, reviews.Reviews, 1)
}

func TestSubmitReview_IncorrectResetsToBoxOne(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	card, err := domain.NewCard(userID, "question", "answer")
	require.NoError(t, err)
	card.Box = 3

	handler := newReviewHandler(mocks.NewCardStore(card), mocks.NewReviewStore())

	req := httptest.NewRequest(http.MethodPost, "/api/reviews", jsonBody(t, api.ReviewRequest{
		CardID:  card.ID,
		Correct: boolPtr(false),
	}))
	rec := httptest.NewRecorder()

	handler.SubmitReview(rec, authedRequest(req, userID))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp api.ReviewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Card.Box)
}

func TestSubmitReview_UnknownCardIs404(t *testing.T) {
	t.Parallel()

	handler := newReviewHandler(mocks.NewCardStore(), mocks.NewReviewStore())

	req := httptest.NewRequest(http.MethodPost, "/api/reviews", jsonBody(t, api.ReviewRequest{
		CardID:  uuid.New(),
		Correct: boolPtr(true),
	}))
	rec := httptest.NewRecorder()

	handler.SubmitReview(rec, authedRequest(req, uuid.New()))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSubmitReview_ForeignCardIs403(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	card, err := domain.NewCard(owner, "question", "answer")
	require.NoError(t, err)

	handler := newReviewHandler(mocks.NewCardStore(card), mocks.NewReviewStore())

	req := httptest.NewRequest(http.MethodPost, "/api/reviews", jsonBody(t, api.ReviewRequest{
		CardID:  card.ID,
		Correct: boolPtr(true),
	}))
	rec := httptest.NewRecorder()

	handler.SubmitReview(rec, authedRequest(req, uuid.New()))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGetHistory(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	r1, err := domain.NewReview(userID, uuid.New(), true)
	require.NoError(t, err)
	r2, err := domain.NewReview(uuid.New(), uuid.New(), false) // another user's review
	require.NoError(t, err)

	reviews := mocks.NewReviewStore(r1, r2)
	handler := newReviewHandler(mocks.NewCardStore(), reviews)

	req := httptest.NewRequest(http.MethodGet, "/api/history", nil)
	rec := httptest.NewRecorder()

	handler.GetHistory(rec, authedRequest(req, userID))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp []api.HistoryEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, r1.ID, resp[0].ID)
}
