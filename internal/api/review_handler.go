package api

import (
	"net/http"
	"time"

	"github.com/repeatry/leitner-api/internal/api/middleware"
	"github.com/repeatry/leitner-api/internal/api/shared"
	"github.com/repeatry/leitner-api/internal/service/review"
	"github.com/repeatry/leitner-api/internal/store"
)

// ReviewHandler handles review submission and history.
type ReviewHandler struct {
	reviewService review.Service
	reviewStore   store.ReviewStore
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviewService review.Service, reviewStore store.ReviewStore) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		reviewStore:   reviewStore,
	}
}

// SubmitReview handles POST /api/reviews.
func (h *ReviewHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req ReviewRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	result, err := h.reviewService.SubmitReview(r.Context(), userID, req.CardID, *req.Correct, time.Now().UTC())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, ReviewResponse{
		ID:        result.Review.ID,
		CardID:    result.Review.CardID,
		Correct:   result.Review.Correct,
		CreatedAt: result.Review.CreatedAt,
		Card:      NewCardResponse(result.Card),
	})
}

// GetHistory handles GET /api/history.
func (h *ReviewHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	reviews, err := h.reviewStore.ListByUser(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewHistoryEntries(reviews))
}
