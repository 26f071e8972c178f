package api

import (
	"errors"
	"net/http"

	"github.com/repeatry/leitner-api/internal/api/middleware"
	"github.com/repeatry/leitner-api/internal/api/shared"
	"github.com/repeatry/leitner-api/internal/task"
)

// MemoHandler accepts uploaded text and queues background card generation.
type MemoHandler struct {
	factory *task.CardGenerationTaskFactory
	runner  *task.Runner
}

// NewMemoHandler creates a new MemoHandler.
func NewMemoHandler(factory *task.CardGenerationTaskFactory, runner *task.Runner) *MemoHandler {
	return &MemoHandler{factory: factory, runner: runner}
}

// CreateMemo handles POST /api/memos. Generation runs in the background;
// the response only acknowledges the queued task.
func (h *MemoHandler) CreateMemo(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req MemoRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	generationTask, err := h.factory.NewTask(userID, req.Text)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid memo: "+err.Error())
		return
	}

	if err := h.runner.Submit(r.Context(), generationTask); err != nil {
		if errors.Is(err, task.ErrQueueFull) {
			shared.RespondWithError(w, r, http.StatusServiceUnavailable,
				"Too many pending tasks, try again later")
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to queue card generation", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusAccepted, MemoResponse{
		TaskID: generationTask.ID(),
		Status: string(task.TaskStatusPending),
	})
}
