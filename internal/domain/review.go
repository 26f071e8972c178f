package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Review-specific validation errors
var (
	ErrReviewIDEmpty     = errors.New("review ID cannot be empty")
	ErrReviewUserIDEmpty = errors.New("review user ID cannot be empty")
	ErrReviewCardIDEmpty = errors.New("review card ID cannot be empty")
)

// Review records a single answer a user gave for a card. Reviews are
// append-only: they are never mutated or deleted and serve as the source of
// truth for the last study date and streak reconstruction.
type Review struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	CardID    uuid.UUID `json:"card_id"`
	Correct   bool      `json:"correct"`
	CreatedAt time.Time `json:"created_at"`
}

// NewReview creates a new Review stamped with the current UTC time.
// Returns an error if validation fails.
func NewReview(userID, cardID uuid.UUID, correct bool) (*Review, error) {
	review := &Review{
		ID:        uuid.New(),
		UserID:    userID,
		CardID:    cardID,
		Correct:   correct,
		CreatedAt: time.Now().UTC(),
	}

	if err := review.Validate(); err != nil {
		return nil, err
	}

	return review, nil
}

// Validate checks if the Review has valid data.
func (r *Review) Validate() error {
	if r.ID == uuid.Nil {
		return ErrReviewIDEmpty
	}

	if r.UserID == uuid.Nil {
		return ErrReviewUserIDEmpty
	}

	if r.CardID == uuid.Nil {
		return ErrReviewCardIDEmpty
	}

	return nil
}
