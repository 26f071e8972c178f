// Package review handles review submission: appending to the append-only
// review history and applying the Leitner box transition to the reviewed
// card. The scheduling services only ever read the resulting box level.
package review

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/repeatry/leitner-api/internal/domain"
)

// Service errors
var (
	// ErrCardNotFound is returned when the reviewed card does not exist.
	ErrCardNotFound = errors.New("card not found")

	// ErrCardNotOwned is returned when the card belongs to another user.
	ErrCardNotOwned = errors.New("card does not belong to user")
)

// Result carries the outcome of a submitted review.
type Result struct {
	Review *domain.Review
	Card   *domain.Card
}

// Service processes review submissions.
type Service interface {
	// SubmitReview records that the user answered the card correctly or
	// incorrectly at the given instant. The review insert and the card's box
	// transition are applied atomically: a correct answer promotes the card
	// one box (capped at the top box), an incorrect answer resets it to
	// box 1.
	SubmitReview(ctx context.Context, userID, cardID uuid.UUID, correct bool, at time.Time) (*Result, error)
}
