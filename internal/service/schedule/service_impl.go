package schedule

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
	shuffler    Shuffler
	logger      *slog.Logger
}

// NewService creates a new schedule Service.
func NewService(
	cardStore store.CardStore,
	reviewStore store.ReviewStore,
	holidays holiday.Tracker,
	shuffler Shuffler,
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
	if shuffler == nil {
		shuffler = NewShuffler()
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &serviceImpl{
		cardStore:   cardStore,
		reviewStore: reviewStore,
		holidays:    holidays,
		shuffler:    shuffler,
		logger:      logger.With(slog.String("component", "schedule_service")),
	}
}

// SelectDaily implements Service.SelectDaily.
func (s *serviceImpl) SelectDaily(
	ctx context.Context,
	userID uuid.UUID,
	today time.Time,
	limit int,
) ([]*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	cards, err := s.cardStore.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}

	selected := s.pick(cards, today, limit)

	log.Debug("daily cards selected",
		slog.String("user_id", userID.String()),
		slog.Int("eligible", len(selected)),
		slog.Int("total", len(cards)))
	return selected, nil
}

// SelectCatchup implements Service.SelectCatchup.
//
// The checks run in order and short-circuit to an empty result at the first
// match: no review history, no missed day, active holiday. The holiday
// condition is intentionally evaluated twice, once qualified by the
// skip_catchup flag and once unconditionally; the observed behavior is that
// a holiday always suppresses catch-up and the flag does not discriminate.
func (s *serviceImpl) SelectCatchup(
	ctx context.Context,
	userID uuid.UUID,
	today time.Time,
	limit int,
) ([]*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	latest, err := s.reviewStore.Latest(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// New user: no catch-up owed.
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up latest review: %w", err)
	}

	lastStudyDate := domain.DateOf(latest.CreatedAt)
	missedDays := domain.DaysBetween(lastStudyDate, today) - 1
	if missedDays <= 0 {
		return nil, nil
	}

	active, err := s.holidays.GetActiveHoliday(ctx, userID, today)
	if err != nil && !errors.Is(err, holiday.ErrNoActiveHoliday) {
		return nil, fmt.Errorf("failed to look up holiday: %w", err)
	}
	if active != nil && active.SkipCatchup {
		return nil, nil
	}
	if active != nil {
		return nil, nil
	}

	// Reconstruct eligibility for yesterday only; a longer backlog is not
	// compounded across multiple missed days.
	yesterday := domain.DateOf(today).AddDate(0, 0, -1)

	cards, err := s.cardStore.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}

	selected := s.pick(cards, yesterday, limit)

	log.Debug("catch-up cards selected",
		slog.String("user_id", userID.String()),
		slog.Int("missed_days", missedDays),
		slog.Int("selected", len(selected)))
	return selected, nil
}

// SelectForDay implements Service.SelectForDay.
func (s *serviceImpl) SelectForDay(
	ctx context.Context,
	userID uuid.UUID,
	today time.Time,
	limit int,
) (*Selection, error) {
	todayCards, err := s.SelectDaily(ctx, userID, today, limit)
	if err != nil {
		return nil, err
	}

	catchupCards, err := s.SelectCatchup(ctx, userID, today, limit)
	if err != nil {
		return nil, err
	}

	return &Selection{
		Today:      todayCards,
		Catchup:    catchupCards,
		MissedDays: len(catchupCards) > 0,
	}, nil
}

// pick filters cards eligible on the given date, shuffles them uniformly,
// and truncates to limit.
func (s *serviceImpl) pick(cards []*domain.Card, on time.Time, limit int) []*domain.Card {
	if limit <= 0 {
		limit = DefaultLimit
	}

	var eligible []*domain.Card
	for _, card := range cards {
		if leitner.IsEligible(card.Box, on) {
			eligible = append(eligible, card)
		}
	}

	s.shuffler.Shuffle(len(eligible), func(i, j int) {
		eligible[i], eligible[j] = eligible[j], eligible[i]
	})

	if len(eligible) > limit {
		eligible = eligible[:limit]
	}
	return eligible
}
