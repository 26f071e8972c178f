package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/repeatry/leitner-api/internal/domain"
	"github.com/repeatry/leitner-api/internal/service/progress"
	"github.com/repeatry/leitner-api/internal/service/schedule"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// RegisterRequest defines the payload for the registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// LoginRequest defines the payload for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	UserID uuid.UUID `json:"user_id"`
	Token  string    `json:"token"`
}

// ReviewRequest defines the payload for submitting a review.
type ReviewRequest struct {
	CardID  uuid.UUID `json:"card_id" validate:"required"`
	Correct *bool     `json:"correct" validate:"required"`
}

// HolidayRequest defines the payload for creating a holiday.
type HolidayRequest struct {
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date"   validate:"required"`
}

// ExtendHolidayRequest defines the payload for extending the active holiday.
type ExtendHolidayRequest struct {
	ExtraDays int `json:"extra_days" validate:"required,gt=0"`
}

// SkipCatchupRequest defines the payload for toggling catch-up skipping.
type SkipCatchupRequest struct {
	Skip *bool `json:"skip" validate:"required"`
}

// MemoRequest defines the payload for uploading text for card generation.
type MemoRequest struct {
	Text string `json:"text" validate:"required,min=1"`
}

// CardResponse is the wire form of a card.
type CardResponse struct {
	ID             uuid.UUID `json:"id"`
	Question       string    `json:"question"`
	Answer         string    `json:"answer"`
	Box            int       `json:"box"`
	CreatedAt      time.Time `json:"created_at"`
	LastReviewedAt *string   `json:"last_reviewed_at,omitempty"`
}

// NewCardResponse converts a domain card to its wire form.
func NewCardResponse(card *domain.Card) CardResponse {
	resp := CardResponse{
		ID:        card.ID,
		Question:  card.Question,
		Answer:    card.Answer,
		Box:       card.Box,
		CreatedAt: card.CreatedAt,
	}
	if card.LastReviewedAt != nil {
		formatted := card.LastReviewedAt.UTC().Format(DateLayout)
		resp.LastReviewedAt = &formatted
	}
	return resp
}

// NewCardResponses converts a card slice, returning an empty (non-nil) slice
// for zero cards so the JSON is [] instead of null.
func NewCardResponses(cards []*domain.Card) []CardResponse {
	out := make([]CardResponse, 0, len(cards))
	for _, card := range cards {
		out = append(out, NewCardResponse(card))
	}
	return out
}

// ReviewResponse is the wire form of a recorded review with the card's
// resulting state.
type ReviewResponse struct {
	ID        uuid.UUID    `json:"id"`
	CardID    uuid.UUID    `json:"card_id"`
	Correct   bool         `json:"correct"`
	CreatedAt time.Time    `json:"created_at"`
	Card      CardResponse `json:"card"`
}

// HistoryEntry is one review in the history listing.
type HistoryEntry struct {
	ID        uuid.UUID `json:"id"`
	CardID    uuid.UUID `json:"card_id"`
	Correct   bool      `json:"correct"`
	CreatedAt time.Time `json:"created_at"`
}

// NewHistoryEntries converts a review slice to wire form.
func NewHistoryEntries(reviews []*domain.Review) []HistoryEntry {
	out := make([]HistoryEntry, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, HistoryEntry{
			ID:        r.ID,
			CardID:    r.CardID,
			Correct:   r.Correct,
			CreatedAt: r.CreatedAt,
		})
	}
	return out
}

// DailyResponse is the payload of the daily selection endpoint.
type DailyResponse struct {
	Today      []CardResponse `json:"today"`
	Catchup    []CardResponse `json:"catchup"`
	MissedDays bool           `json:"missed_days"`
}

// NewDailyResponse converts a schedule selection to wire form.
func NewDailyResponse(sel *schedule.Selection) DailyResponse {
	return DailyResponse{
		Today:      NewCardResponses(sel.Today),
		Catchup:    NewCardResponses(sel.Catchup),
		MissedDays: sel.MissedDays,
	}
}

// HolidayResponse is the wire form of a holiday.
type HolidayResponse struct {
	ID          uuid.UUID `json:"id"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	SkipCatchup bool      `json:"skip_catchup"`
	DaysLeft    int       `json:"days_left"`
}

// NewHolidayResponse converts a domain holiday to wire form.
func NewHolidayResponse(h *domain.Holiday) HolidayResponse {
	return HolidayResponse{
		ID:          h.ID,
		StartDate:   h.StartDate.Format(DateLayout),
		EndDate:     h.EndDate.Format(DateLayout),
		SkipCatchup: h.SkipCatchup,
		DaysLeft:    h.DaysLeft,
	}
}

// HolidayStatusResponse is the payload of the holiday status endpoint.
type HolidayStatusResponse struct {
	OnHoliday bool             `json:"on_holiday"`
	Holiday   *HolidayResponse `json:"holiday,omitempty"`
}

// DashboardResponse is the payload of the dashboard endpoint.
type DashboardResponse struct {
	History      []HistoryEntry   `json:"history"`
	Mastered     int              `json:"mastered"`
	Streak       int              `json:"streak"`
	StreakStatus string           `json:"streak_status"`
	Holiday      *HolidayResponse `json:"holiday,omitempty"`
}

// NewDashboardResponse converts a progress dashboard to wire form.
func NewDashboardResponse(dash *progress.Dashboard) DashboardResponse {
	resp := DashboardResponse{
		History:      NewHistoryEntries(dash.History),
		Mastered:     dash.Mastered,
		Streak:       dash.Streak,
		StreakStatus: string(dash.StreakStatus),
	}
	if dash.Holiday != nil {
		holiday := NewHolidayResponse(dash.Holiday)
		resp.Holiday = &holiday
	}
	return resp
}

// MemoResponse is the payload of the memo upload endpoint.
type MemoResponse struct {
	TaskID uuid.UUID `json:"task_id"`
	Status string    `json:"status"`
}

// ParseDate parses a YYYY-MM-DD date into a UTC midnight instant.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return t.UTC(), nil
}

// TodayParam reads the optional "today" query parameter, defaulting to the
// current UTC date. The explicit parameter keeps scheduling deterministic for
// clients and tests.
func TodayParam(r *http.Request) (time.Time, error) {
	value := r.URL.Query().Get("today")
	if value == "" {
		return domain.DateOf(time.Now()), nil
	}
	return ParseDate(value)
}
