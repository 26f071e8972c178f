package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/repeatry/leitner-api/internal/domain"
	"github.com/repeatry/leitner-api/internal/platform/logger"
	"github.com/repeatry/leitner-api/internal/store"
)

// PostgresHolidayStore implements the store.HolidayStore interface
// using a PostgreSQL database as the storage backend.
type PostgresHolidayStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresHolidayStore creates a new PostgreSQL implementation of the
// HolidayStore interface. If logger is nil, a default logger will be used.
func NewPostgresHolidayStore(db store.DBTX, logger *slog.Logger) *PostgresHolidayStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresHolidayStore{
		db:     db,
		logger: logger.With(slog.String("component", "holiday_store")),
	}
}

// Ensure PostgresHolidayStore implements store.HolidayStore interface
var _ store.HolidayStore = (*PostgresHolidayStore)(nil)

// WithTx implements store.HolidayStore.WithTx
func (s *PostgresHolidayStore) WithTx(tx *sql.Tx) store.HolidayStore {
	return &PostgresHolidayStore{
		db:     tx,
		logger: s.logger,
	}
}

// Insert implements store.HolidayStore.Insert
func (s *PostgresHolidayStore) Insert(ctx context.Context, holiday *domain.Holiday) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := holiday.Validate(); err != nil {
		log.Warn("holiday validation failed during insert",
			slog.String("error", err.Error()),
			slog.String("holiday_id", holiday.ID.String()))
		return err
	}

	query := `
		INSERT INTO holidays (id, user_id, start_date, end_date, skip_catchup, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := s.db.ExecContext(
		ctx,
		query,
		holiday.ID,
		holiday.UserID,
		holiday.StartDate,
		holiday.EndDate,
		holiday.SkipCatchup,
		holiday.CreatedAt,
	)
	if err != nil {
		log.Error("failed to insert holiday",
			slog.String("error", err.Error()),
			slog.String("holiday_id", holiday.ID.String()),
			slog.String("user_id", holiday.UserID.String()))
		return MapError(err)
	}

	log.Info("holiday created",
		slog.String("holiday_id", holiday.ID.String()),
		slog.String("user_id", holiday.UserID.String()))
	return nil
}

// FindActive implements store.HolidayStore.FindActive
// Overlapping records are not prevented at insert time; ordering by creation
// time makes the earliest created record win consistently. When the store is
// bound to a transaction the matched row is locked, serializing the
// read-modify-write sequences of extend and skip-toggle per user.
func (s *PostgresHolidayStore) FindActive(
	ctx context.Context,
	userID uuid.UUID,
	on time.Time,
) (*domain.Holiday, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	date := domain.DateOf(on)

	query := `
		SELECT id, user_id, start_date, end_date, skip_catchup, created_at
		FROM holidays
		WHERE user_id = $1 AND start_date <= $2 AND end_date >= $2
		ORDER BY created_at
		LIMIT 1
	`
	if _, inTx := s.db.(*sql.Tx); inTx {
		query += ` FOR UPDATE`
	}

	var holiday domain.Holiday
	err := s.db.QueryRowContext(ctx, query, userID, date).Scan(
		&holiday.ID,
		&holiday.UserID,
		&holiday.StartDate,
		&holiday.EndDate,
		&holiday.SkipCatchup,
		&holiday.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrHolidayNotFound
		}
		log.Error("failed to find active holiday",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}

	holiday.StartDate = domain.DateOf(holiday.StartDate)
	holiday.EndDate = domain.DateOf(holiday.EndDate)
	holiday.CreatedAt = holiday.CreatedAt.UTC()

	return &holiday, nil
}

// Update implements store.HolidayStore.Update
// Returns store.ErrHolidayNotFound if the record does not exist.
func (s *PostgresHolidayStore) Update(ctx context.Context, holiday *domain.Holiday) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE holidays
		SET end_date = $1, skip_catchup = $2
		WHERE id = $3
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		holiday.EndDate,
		holiday.SkipCatchup,
		holiday.ID,
	)
	if err != nil {
		log.Error("failed to update holiday",
			slog.String("error", err.Error()),
			slog.String("holiday_id", holiday.ID.String()))
		return MapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if affected == 0 {
		return store.ErrHolidayNotFound
	}

	return nil
}
