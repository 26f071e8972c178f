package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/repeatry/leitner-api/internal/domain"
	"github.com/repeatry/leitner-api/internal/platform/logger"
	"github.com/repeatry/leitner-api/internal/store"
)

// Verify interface compliance at compile time
var _ Service = (*serviceImpl)(nil)

// serviceImpl implements the Service interface.
type serviceImpl struct {
	db          *sql.DB
	cardStore   store.CardStore
	reviewStore store.ReviewStore
	logger      *slog.Logger
}

// NewService creates a new review Service.
//
// db may be nil in tests that inject fake stores; the submission then runs
// without a transaction.
func NewService(
	db *sql.DB,
	cardStore store.CardStore,
	reviewStore store.ReviewStore,
	logger *slog.Logger,
) Service {
	if cardStore == nil {
		panic("cardStore cannot be nil")
	}
	if reviewStore == nil {
		panic("reviewStore cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &serviceImpl{
		db:          db,
		cardStore:   cardStore,
		reviewStore: reviewStore,
		logger:      logger.With(slog.String("component", "review_service")),
	}
}

// SubmitReview implements Service.SubmitReview.
func (s *serviceImpl) SubmitReview(
	ctx context.Context,
	userID, cardID uuid.UUID,
	correct bool,
	at time.Time,
) (*Result, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var result *Result
	submit := func(ctx context.Context, cards store.CardStore, reviews store.ReviewStore) error {
		card, err := cards.GetByID(ctx, cardID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrCardNotFound
			}
			return fmt.Errorf("failed to get card: %w", err)
		}

		if card.UserID != userID {
			log.Warn("review submitted for card owned by another user",
				slog.String("user_id", userID.String()),
				slog.String("card_id", cardID.String()))
			return ErrCardNotOwned
		}

		review, err := domain.NewReview(userID, cardID, correct)
		if err != nil {
			return err
		}
		review.CreatedAt = at.UTC()

		card.RecordReview(correct, at)

		if err := cards.Update(ctx, card); err != nil {
			return fmt.Errorf("failed to update card: %w", err)
		}
		if err := reviews.Insert(ctx, review); err != nil {
			return fmt.Errorf("failed to insert review: %w", err)
		}

		result = &Result{Review: review, Card: card}
		return nil
	}

	var err error
	if s.db == nil {
		err = submit(ctx, s.cardStore, s.reviewStore)
	} else {
		err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
			return submit(ctx, s.cardStore.WithTx(tx), s.reviewStore.WithTx(tx))
		})
	}
	if err != nil {
		return nil, err
	}

	log.Info("review recorded",
		slog.String("user_id", userID.String()),
		slog.String("card_id", cardID.String()),
		slog.Bool("correct", correct),
		slog.Int("box", result.Card.Box))
	return result, nil
}
