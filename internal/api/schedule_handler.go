package api

import (
	"net/http"
	"strconv"

	"github.com/repeatry/leitner-api/internal/api/middleware"
	"github.com/repeatry/leitner-api/internal/api/shared"
	"github.com/repeatry/leitner-api/internal/service/schedule"
)

// ScheduleHandler serves the daily review selection.
type ScheduleHandler struct {
	scheduleService schedule.Service
}

// NewScheduleHandler creates a new ScheduleHandler.
func NewScheduleHandler(scheduleService schedule.Service) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: scheduleService}
}

// GetDaily handles GET /api/daily. The optional "today" query parameter pins
// the selection date; "limit" caps the number of cards per set.
func (h *ScheduleHandler) GetDaily(w http.ResponseWriter, r *http.Request) {
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

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid limit")
			return
		}
	}

	selection, err := h.scheduleService.SelectForDay(r.Context(), userID, today, limit)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewDailyResponse(selection))
}
