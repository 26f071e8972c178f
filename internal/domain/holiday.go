package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Holiday-specific validation errors
var (
	ErrHolidayIDEmpty        = errors.New("holiday ID cannot be empty")
	ErrHolidayUserIDEmpty    = errors.New("holiday user ID cannot be empty")
	ErrHolidayStartDateEmpty = errors.New("holiday start date cannot be empty")
	ErrHolidayEndDateEmpty   = errors.New("holiday end date cannot be empty")
)

// Holiday is a per-user inclusive date interval during which catch-up
// obligations and streak accrual are suspended. Records are created once per
// request and never auto-closed; overlapping intervals per user are not
// prevented (the active lookup applies a first-match-wins tie-break).
//
// The start <= end precondition is enforced at the API boundary, not here.
type Holiday struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	SkipCatchup bool      `json:"skip_catchup"`
	CreatedAt   time.Time `json:"created_at"`

	// DaysLeft is derived at read time relative to the query date and is
	// never stored.
	DaysLeft int `json:"days_left,omitempty"`
}

// NewHoliday creates a new Holiday for the given user and inclusive interval.
// Dates are normalized to UTC midnight. Returns an error if validation fails.
func NewHoliday(userID uuid.UUID, start, end time.Time) (*Holiday, error) {
	holiday := &Holiday{
		ID:        uuid.New(),
		UserID:    userID,
		StartDate: DateOf(start),
		EndDate:   DateOf(end),
		CreatedAt: time.Now().UTC(),
	}

	if err := holiday.Validate(); err != nil {
		return nil, err
	}

	return holiday, nil
}

// Validate checks if the Holiday has valid data.
func (h *Holiday) Validate() error {
	if h.ID == uuid.Nil {
		return ErrHolidayIDEmpty
	}

	if h.UserID == uuid.Nil {
		return ErrHolidayUserIDEmpty
	}

	if h.StartDate.IsZero() {
		return ErrHolidayStartDateEmpty
	}

	if h.EndDate.IsZero() {
		return ErrHolidayEndDateEmpty
	}

	return nil
}

// Contains reports whether the given date falls within the holiday's
// inclusive [StartDate, EndDate] interval.
func (h *Holiday) Contains(date time.Time) bool {
	d := DateOf(date)
	return !d.Before(h.StartDate) && !d.After(h.EndDate)
}

// ComputeDaysLeft sets the derived DaysLeft field relative to today,
// counting today itself: (end - today).days + 1.
func (h *Holiday) ComputeDaysLeft(today time.Time) {
	h.DaysLeft = DaysBetween(DateOf(today), h.EndDate) + 1
}

// Extend pushes the end date forward by extraDays.
func (h *Holiday) Extend(extraDays int) {
	h.EndDate = h.EndDate.AddDate(0, 0, extraDays)
}
