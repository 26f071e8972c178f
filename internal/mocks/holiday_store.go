package mocks

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/repeatry/leitner-api/internal/domain"
	"github.com/repeatry/leitner-api/internal/store"
)

// HolidayStore is an in-memory store.HolidayStore for tests.
type HolidayStore struct {
	Holidays []*domain.Holiday

	// Err, when set, is returned by every operation.
	Err error
}

var _ store.HolidayStore = (*HolidayStore)(nil)

// NewHolidayStore creates an in-memory holiday store seeded with the given
// holidays.
func NewHolidayStore(holidays ...*domain.Holiday) *HolidayStore {
	return &HolidayStore{Holidays: holidays}
}

// Insert implements store.HolidayStore.Insert.
func (s *HolidayStore) Insert(ctx context.Context, holiday *domain.Holiday) error {
	if s.Err != nil {
		return s.Err
	}
	s.Holidays = append(s.Holidays, holiday)
	return nil
}

// FindActive implements store.HolidayStore.FindActive. Matches are ordered by
// creation time so the earliest-created overlapping holiday wins.
func (s *HolidayStore) FindActive(ctx context.Context, userID uuid.UUID, on time.Time) (*domain.Holiday, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var matches []*domain.Holiday
	for _, h := range s.Holidays {
		if h.UserID == userID && h.Contains(on) {
			matches = append(matches, h)
		}
	}
	if len(matches) == 0 {
		return nil, store.ErrHolidayNotFound
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].CreatedAt.Before(matches[j].CreatedAt) })
	return matches[0], nil
}

// Update implements store.HolidayStore.Update.
func (s *HolidayStore) Update(ctx context.Context, holiday *domain.Holiday) error {
	if s.Err != nil {
		return s.Err
	}
	for i, h := range s.Holidays {
		if h.ID == holiday.ID {
			s.Holidays[i] = holiday
			return nil
		}
	}
	return store.ErrHolidayNotFound
}

// WithTx implements store.HolidayStore.WithTx.
func (s *HolidayStore) WithTx(tx *sql.Tx) store.HolidayStore {
	return s
}
