package api

import (
	"net/http"

	"github.com/repeatry/leitner-api/internal/api/middleware"
	"github.com/repeatry/leitner-api/internal/api/shared"
	"github.com/repeatry/leitner-api/internal/service/progress"
)

// ProgressHandler serves the dashboard aggregation.
type ProgressHandler struct {
	progressService progress.Service
}

// NewProgressHandler creates a new ProgressHandler.
func NewProgressHandler(progressService progress.Service) *ProgressHandler {
	return &ProgressHandler{progressService: progressService}
}

// GetDashboard handles GET /api/dashboard.
func (h *ProgressHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
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

	dashboard, err := h.progressService.GetDashboard(r.Context(), userID, today)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewDashboardResponse(dashboard))
}
