package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/repeatry/leitner-api/internal/domain"
	"github.com/repeatry/leitner-api/internal/platform/logger"
	"github.com/repeatry/leitner-api/internal/store"
)

// PostgresReviewStore implements the store.ReviewStore interface
// using a PostgreSQL database as the storage backend.
type PostgresReviewStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresReviewStore creates a new PostgreSQL implementation of the
// ReviewStore interface. If logger is nil, a default logger will be used.
func NewPostgresReviewStore(db store.DBTX, logger *slog.Logger) *PostgresReviewStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresReviewStore{
		db:     db,
		logger: logger.With(slog.String("component", "review_store")),
	}
}

// Ensure PostgresReviewStore implements store.ReviewStore interface
var _ store.ReviewStore = (*PostgresReviewStore)(nil)

// WithTx implements store.ReviewStore.WithTx
func (s *PostgresReviewStore) WithTx(tx *sql.Tx) store.ReviewStore {
	return &PostgresReviewStore{
		db:     tx,
		logger: s.logger,
	}
}

// Insert implements store.ReviewStore.Insert
// It appends a review to the user's history. Reviews are never updated
// or deleted afterwards.
func (s *PostgresReviewStore) Insert(ctx context.Context, review *domain.Review) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := review.Validate(); err != nil {
		log.Warn("review validation failed during insert",
			slog.String("error", err.Error()),
			slog.String("review_id", review.ID.String()))
		return err
	}

	query := `
		INSERT INTO reviews (id, user_id, card_id, correct, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := s.db.ExecContext(
		ctx,
		query,
		review.ID,
		review.UserID,
		review.CardID,
		review.Correct,
		review.CreatedAt,
	)
	if err != nil {
		log.Error("failed to insert review",
			slog.String("error", err.Error()),
			slog.String("review_id", review.ID.String()),
			slog.String("user_id", review.UserID.String()))
		return MapError(err)
	}

	log.Debug("review inserted",
		slog.String("review_id", review.ID.String()),
		slog.String("card_id", review.CardID.String()))
	return nil
}

// ListByUser implements store.ReviewStore.ListByUser
func (s *PostgresReviewStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.Review, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, card_id, correct, created_at
		FROM reviews
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to list reviews",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var reviews []*domain.Review
	for rows.Next() {
		var review domain.Review
		err := rows.Scan(
			&review.ID,
			&review.UserID,
			&review.CardID,
			&review.Correct,
			&review.CreatedAt,
		)
		if err != nil {
			return nil, MapError(err)
		}
		review.CreatedAt = review.CreatedAt.UTC()
		reviews = append(reviews, &review)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return reviews, nil
}

// Latest implements store.ReviewStore.Latest
// Returns store.ErrNotFound if the user has no reviews.
func (s *PostgresReviewStore) Latest(
	ctx context.Context,
	userID uuid.UUID,
) (*domain.Review, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, card_id, correct, created_at
		FROM reviews
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	var review domain.Review
	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&review.ID,
		&review.UserID,
		&review.CardID,
		&review.Correct,
		&review.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		log.Error("failed to get latest review",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	review.CreatedAt = review.CreatedAt.UTC()

	return &review, nil
}
