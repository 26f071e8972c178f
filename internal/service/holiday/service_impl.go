package holiday

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
var _ Tracker = (*trackerImpl)(nil)

// trackerImpl implements the Tracker interface on top of a HolidayStore.
type trackerImpl struct {
	db           *sql.DB
	holidayStore store.HolidayStore
	logger       *slog.Logger
}

// NewTracker creates a new holiday Tracker.
//
// db may be nil in tests that inject a fake store; mutation operations then
// run without a transaction. In production db must be the connection the
// store operates on, so that extend and skip-toggle lock the holiday row
// while they read-modify-write it.
func NewTracker(db *sql.DB, holidayStore store.HolidayStore, logger *slog.Logger) Tracker {
	if holidayStore == nil {
		panic("holidayStore cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &trackerImpl{
		db:           db,
		holidayStore: holidayStore,
		logger:       logger.With(slog.String("component", "holiday_tracker")),
	}
}

// SetHoliday implements Tracker.SetHoliday.
func (s *trackerImpl) SetHoliday(
	ctx context.Context,
	userID uuid.UUID,
	start, end time.Time,
) (*domain.Holiday, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	holiday, err := domain.NewHoliday(userID, start, end)
	if err != nil {
		return nil, err
	}

	if err := s.holidayStore.Insert(ctx, holiday); err != nil {
		log.Error("failed to create holiday",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to create holiday: %w", err)
	}

	log.Info("holiday set",
		slog.String("user_id", userID.String()),
		slog.Time("start", holiday.StartDate),
		slog.Time("end", holiday.EndDate))
	return holiday, nil
}

// GetActiveHoliday implements Tracker.GetActiveHoliday.
func (s *trackerImpl) GetActiveHoliday(
	ctx context.Context,
	userID uuid.UUID,
	today time.Time,
) (*domain.Holiday, error) {
	holiday, err := s.holidayStore.FindActive(ctx, userID, today)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNoActiveHoliday
		}
		return nil, fmt.Errorf("failed to look up active holiday: %w", err)
	}

	holiday.ComputeDaysLeft(today)
	return holiday, nil
}

// IsOnHoliday implements Tracker.IsOnHoliday.
func (s *trackerImpl) IsOnHoliday(
	ctx context.Context,
	userID uuid.UUID,
	today time.Time,
) (bool, error) {
	_, err := s.GetActiveHoliday(ctx, userID, today)
	if err != nil {
		if errors.Is(err, ErrNoActiveHoliday) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ExtendHoliday implements Tracker.ExtendHoliday.
func (s *trackerImpl) ExtendHoliday(
	ctx context.Context,
	userID uuid.UUID,
	today time.Time,
	extraDays int,
) (*domain.Holiday, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var extended *domain.Holiday
	err := s.mutateActive(ctx, userID, today, func(h *domain.Holiday) {
		h.Extend(extraDays)
		extended = h
	})
	if err != nil {
		return nil, err
	}

	extended.ComputeDaysLeft(today)
	log.Info("holiday extended",
		slog.String("user_id", userID.String()),
		slog.Int("extra_days", extraDays),
		slog.Time("new_end", extended.EndDate))
	return extended, nil
}

// SetSkipCatchup implements Tracker.SetSkipCatchup.
func (s *trackerImpl) SetSkipCatchup(
	ctx context.Context,
	userID uuid.UUID,
	today time.Time,
	skip bool,
) (*domain.Holiday, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var updated *domain.Holiday
	err := s.mutateActive(ctx, userID, today, func(h *domain.Holiday) {
		h.SkipCatchup = skip
		updated = h
	})
	if err != nil {
		return nil, err
	}

	updated.ComputeDaysLeft(today)
	log.Info("holiday skip_catchup toggled",
		slog.String("user_id", userID.String()),
		slog.Bool("skip", skip))
	return updated, nil
}

// mutateActive finds the holiday active today, applies mutate, and persists
// the result. The lookup and write run in a single transaction so concurrent
// mutations for the same user are serialized by the row lock taken in
// FindActive.
func (s *trackerImpl) mutateActive(
	ctx context.Context,
	userID uuid.UUID,
	today time.Time,
	mutate func(*domain.Holiday),
) error {
	apply := func(ctx context.Context, holidays store.HolidayStore) error {
		holiday, err := holidays.FindActive(ctx, userID, today)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrNoActiveHoliday
			}
			return fmt.Errorf("failed to look up active holiday: %w", err)
		}

		mutate(holiday)

		if err := holidays.Update(ctx, holiday); err != nil {
			return fmt.Errorf("failed to update holiday: %w", err)
		}
		return nil
	}

	if s.db == nil {
		return apply(ctx, s.holidayStore)
	}

	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return apply(ctx, s.holidayStore.WithTx(tx))
	})
}
