package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Leitner box bounds. Box 1 is reviewed most frequently, box 3 least.
const (
	MinBox = 1
	MaxBox = 3
)

// Card-specific validation errors
var (
	ErrCardIDEmpty       = errors.New("card ID cannot be empty")
	ErrCardUserIDEmpty   = errors.New("card user ID cannot be empty")
	ErrCardQuestionEmpty = errors.New("card question cannot be empty")
	ErrCardAnswerEmpty   = errors.New("card answer cannot be empty")
	ErrCardBoxOutOfRange = errors.New("card box must be between 1 and 3")
)

// Card represents a flashcard owned by a user. Its box level drives the
// Leitner review cadence: level 1 every day, level 2 every other day,
// level 3 every third day.
type Card struct {
	ID             uuid.UUID  `json:"id"`
	UserID         uuid.UUID  `json:"user_id"`
	Question       string     `json:"question"`
	Answer         string     `json:"answer"`
	Box            int        `json:"box"`
	CreatedAt      time.Time  `json:"created_at"`
	LastReviewedAt *time.Time `json:"last_reviewed_at,omitempty"`
}

// NewCard creates a new Card in box 1 with the given owner and content.
// Returns an error if validation fails.
func NewCard(userID uuid.UUID, question, answer string) (*Card, error) {
	card := &Card{
		ID:        uuid.New(),
		UserID:    userID,
		Question:  question,
		Answer:    answer,
		Box:       MinBox,
		CreatedAt: time.Now().UTC(),
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Card has valid data.
// Returns an error if any field fails validation.
func (c *Card) Validate() error {
	if c.ID == uuid.Nil {
		return ErrCardIDEmpty
	}

	if c.UserID == uuid.Nil {
		return ErrCardUserIDEmpty
	}

	if c.Question == "" {
		return ErrCardQuestionEmpty
	}

	if c.Answer == "" {
		return ErrCardAnswerEmpty
	}

	if c.Box < MinBox || c.Box > MaxBox {
		return ErrCardBoxOutOfRange
	}

	return nil
}

// RecordReview applies the box transition for a review outcome: a correct
// answer promotes the card one box (capped at MaxBox), an incorrect answer
// sends it back to box 1. The review date is stamped on the card.
func (c *Card) RecordReview(correct bool, reviewedAt time.Time) {
	if correct {
		if c.Box < MaxBox {
			c.Box++
		}
	} else {
		c.Box = MinBox
	}

	at := reviewedAt.UTC()
	c.LastReviewedAt = &at
}
