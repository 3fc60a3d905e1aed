package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/frameworkhub/backend/internal/models"
	"github.com/frameworkhub/backend/pkg/logger"
)

// JobTrigger invokes the external job runner.
type JobTrigger interface {
	Trigger(ctx context.Context, req *models.JenkinsJobRequest) (map[string]any, error)
}

// TriggerHandler handles Jenkins job trigger requests.
type TriggerHandler struct {
	runner JobTrigger
	logger *logger.Logger
}

// NewTriggerHandler creates a new trigger handler.
func NewTriggerHandler(runner JobTrigger, log *logger.Logger) *TriggerHandler {
	return &TriggerHandler{
		runner: runner,
		logger: log,
	}
}

// Trigger handles POST /api/jenkins/trigger. The call is synchronous from
// the caller's perspective: the response carries the script's parsed output.
func (h *TriggerHandler) Trigger(w http.ResponseWriter, r *http.Request) {
	var req models.JenkinsJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid request body: "+err.Error())
		return
	}

	switch {
	case req.BuildID == "":
		WriteBadRequest(w, "build_id is required")
		return
	case req.JobType == "":
		WriteBadRequest(w, "job_type is required")
		return
	case req.Config == nil:
		WriteBadRequest(w, "config is required")
		return
	case req.Command == "":
		WriteBadRequest(w, "command is required")
		return
	}

	result, err := h.runner.Trigger(r.Context(), &req)
	if err != nil {
		h.logger.WithContext(r.Context()).WithError(err).Error("failed to trigger jenkins job", "build_id", req.BuildID)
		WriteInternalError(w, "Failed to trigger Jenkins job: "+err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"success":        true,
		"message":        "Jenkins job triggered successfully",
		"jenkins_result": result,
		"build_id":       req.BuildID,
	})
}
