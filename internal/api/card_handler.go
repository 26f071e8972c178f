package api

import (
	"net/http"

	"github.com/repeatry/leitner-api/internal/api/middleware"
	"github.com/repeatry/leitner-api/internal/api/shared"
	"github.com/repeatry/leitner-api/internal/store"
)

// CardHandler serves the card listing.
type CardHandler struct {
	cardStore store.CardStore
}

// NewCardHandler creates a new CardHandler.
func NewCardHandler(cardStore store.CardStore) *CardHandler {
	return &CardHandler{cardStore: cardStore}
}

// ListCards handles GET /api/cards.
func (h *CardHandler) ListCards(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	cards, err := h.cardStore.ListByUser(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewCardResponses(cards))
}
