package api

import (
	"errors"
	"net/http"

	"github.com/repeatry/leitner-api/internal/api/middleware"
	"github.com/repeatry/leitner-api/internal/api/shared"
	"github.com/repeatry/leitner-api/internal/service/holiday"
)

// HolidayHandler handles holiday creation, status, extension, and the
// catch-up skip toggle.
type HolidayHandler struct {
	tracker holiday.Tracker
}

// NewHolidayHandler creates a new HolidayHandler.
func NewHolidayHandler(tracker holiday.Tracker) *HolidayHandler {
	return &HolidayHandler{tracker: tracker}
}

// CreateHoliday handles POST /api/holidays. The start <= end precondition is
// enforced here, before the interval reaches the tracker.
func (h *HolidayHandler) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req HolidayRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	start, err := ParseDate(req.StartDate)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	end, err := ParseDate(req.EndDate)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if end.Before(start) {
		shared.RespondWithError(w, r, http.StatusBadRequest, "start_date must not be after end_date")
		return
	}

	created, err := h.tracker.SetHoliday(r.Context(), userID, start, end)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	created.ComputeDaysLeft(start)
	shared.RespondWithJSON(w, r, http.StatusCreated, NewHolidayResponse(created))
}

// GetStatus handles GET /api/holidays/status.
func (h *HolidayHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	today, err := TodayParam(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	active, err := h.tracker.GetActiveHoliday(r.Context(), userID, today)
	if err != nil {
		if errors.Is(err, holiday.ErrNoActiveHoliday) {
			shared.RespondWithJSON(w, r, http.StatusOK, HolidayStatusResponse{OnHoliday: false})
			return
		}
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	resp := NewHolidayResponse(active)
	shared.RespondWithJSON(w, r, http.StatusOK, HolidayStatusResponse{
		OnHoliday: true,
		Holiday:   &resp,
	})
}

// ExtendHoliday handles POST /api/holidays/extend.
func (h *HolidayHandler) ExtendHoliday(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req ExtendHolidayRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	today, err := TodayParam(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	extended, err := h.tracker.ExtendHoliday(r.Context(), userID, today, req.ExtraDays)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewHolidayResponse(extended))
}

// SetSkipCatchup handles POST /api/holidays/skip-catchup.
func (h *HolidayHandler) SetSkipCatchup(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req SkipCatchupRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	today, err := TodayParam(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.tracker.SetSkipCatchup(r.Context(), userID, today, *req.Skip)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewHolidayResponse(updated))
}
