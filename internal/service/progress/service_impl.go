package progress

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/repeatry/leitner-api/internal/domain"
	"github.com/repeatry/leitner-api/internal/domain/leitner"
	"github.com/repeatry/leitner-api/internal/platform/logger"
	"github.com/repeatry/leitner-api/internal/service/holiday"
	"github.com/repeatry/leitner-api/internal/store"
)

// Verify interface compliance at compile time
var _ Service = (*serviceImpl)(nil)

// serviceImpl implements the Service interface.
type serviceImpl struct {
	cardStore   store.CardStore
	reviewStore store.ReviewStore
	holidays    holiday.Tracker
	logger      *slog.Logger
}

// NewService creates a new progress Service.
func NewService(
	cardStore store.CardStore,
	reviewStore store.ReviewStore,
	holidays holiday.Tracker,
	logger *slog.Logger,
) Service {
	if cardStore == nil {
		panic("cardStore cannot be nil")
	}
	if reviewStore == nil {
		panic("reviewStore cannot be nil")
	}
	if holidays == nil {
		panic("holidays cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &serviceImpl{
		cardStore:   cardStore,
		reviewStore: reviewStore,
		holidays:    holidays,
		logger:      logger.With(slog.String("component", "progress_service")),
	}
}

// ComputeStreak implements Service.ComputeStreak.
func (s *serviceImpl) ComputeStreak(
	ctx context.Context,
	userID uuid.UUID,
	today time.Time,
) (int, StreakStatus, error) {
	reviews, err := s.reviewStore.ListByUser(ctx, userID)
	if err != nil {
		return 0, StreakActive, fmt.Errorf("failed to list reviews: %w", err)
	}

	onHoliday, err := s.holidays.IsOnHoliday(ctx, userID, today)
	if err != nil {
		return 0, StreakActive, err
	}
	if onHoliday {
		// The holiday suspends the streak; the numeric value is reported
		// as 0 rather than the pre-holiday count.
		return 0, StreakFrozen, nil
	}

	reviewedAt := make([]time.Time, len(reviews))
	for i, r := range reviews {
		reviewedAt[i] = r.CreatedAt
	}

	return leitner.Streak(reviewedAt), StreakActive, nil
}

// MasteredCount implements Service.MasteredCount.
func (s *serviceImpl) MasteredCount(ctx context.Context, userID uuid.UUID) (int, error) {
	count, err := s.cardStore.CountByBox(ctx, userID, domain.MaxBox)
	if err != nil {
		return 0, fmt.Errorf("failed to count mastered cards: %w", err)
	}
	return count, nil
}

// GetDashboard implements Service.GetDashboard.
func (s *serviceImpl) GetDashboard(
	ctx context.Context,
	userID uuid.UUID,
	today time.Time,
) (*Dashboard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	reviews, err := s.reviewStore.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	mastered, err := s.MasteredCount(ctx, userID)
	if err != nil {
		return nil, err
	}

	active, err := s.holidays.GetActiveHoliday(ctx, userID, today)
	if err != nil && !errors.Is(err, holiday.ErrNoActiveHoliday) {
		return nil, err
	}

	streak := 0
	status := StreakActive
	if active != nil {
		status = StreakFrozen
	} else {
		reviewedAt := make([]time.Time, len(reviews))
		for i, r := range reviews {
			reviewedAt[i] = r.CreatedAt
		}
		streak = leitner.Streak(reviewedAt)
	}

	log.Debug("dashboard computed",
		slog.String("user_id", userID.String()),
		slog.Int("streak", streak),
		slog.String("streak_status", string(status)),
		slog.Int("mastered", mastered))

	return &Dashboard{
		History:      reviews,
		Mastered:     mastered,
		Streak:       streak,
		StreakStatus: status,
		Holiday:      active,
	}, nil
}
