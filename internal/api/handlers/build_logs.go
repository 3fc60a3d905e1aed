// Package handlers provides HTTP request handlers for the API.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/frameworkhub/backend/internal/models"
	"github.com/frameworkhub/backend/internal/store"
	"github.com/frameworkhub/backend/pkg/logger"
	"github.com/go-chi/chi/v5"
)

// defaultBuildLogLimit bounds build log listings when no limit is given.
const defaultBuildLogLimit = 100

// BuildLogHandler handles build log CRUD requests.
type BuildLogHandler struct {
	store  store.Store
	logger *logger.Logger
}

// NewBuildLogHandler creates a new build log handler.
func NewBuildLogHandler(st store.Store, log *logger.Logger) *BuildLogHandler {
	return &BuildLogHandler{
		store:  st,
		logger: log,
	}
}

// Create handles POST /api/build-logs.
func (h *BuildLogHandler) Create(w http.ResponseWriter, r *http.Request) {
	var log models.BuildLog
	if err := json.NewDecoder(r.Body).Decode(&log); err != nil {
		WriteBadRequest(w, "Invalid request body: "+err.Error())
		return
	}

	if log.BuildID == "" {
		WriteBadRequest(w, "build_id is required")
		return
	}
	if log.Config == nil {
		log.Config = map[string]any{}
	}

	id, err := h.store.BuildLogs().Create(r.Context(), &log)
	if err != nil {
		// Duplicate build_id is deliberately not mapped to a conflict
		// status; callers see the same 500 the original contract promised.
		h.logger.WithContext(r.Context()).WithError(err).Error("failed to create build log", "build_id", log.BuildID)
		WriteInternalError(w, "Failed to create build log: "+err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"id":      id,
		"message": "Build log created successfully",
	})
}

// List handles GET /api/build-logs with optional status/type filters.
func (h *BuildLogHandler) List(w http.ResponseWriter, r *http.Request) {
	skip, err := pageParam(r, "skip", 0)
	if err != nil {
		WriteBadRequest(w, err.Error())
		return
	}
	limit, err := pageParam(r, "limit", defaultBuildLogLimit)
	if err != nil {
		WriteBadRequest(w, err.Error())
		return
	}

	filter := store.BuildLogFilter{
		Status: r.URL.Query().Get("status"),
		Type:   r.URL.Query().Get("type"),
	}

	logs, err := h.store.BuildLogs().List(r.Context(), filter, store.Page{Skip: skip, Limit: limit})
	if err != nil {
		h.logger.WithContext(r.Context()).WithError(err).Error("failed to list build logs")
		WriteInternalError(w, "Failed to fetch build logs: "+err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, logs)
}

// Get handles GET /api/build-logs/{buildID}.
func (h *BuildLogHandler) Get(w http.ResponseWriter, r *http.Request) {
	buildID := chi.URLParam(r, "buildID")

	log, err := h.store.BuildLogs().Get(r.Context(), buildID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			WriteNotFound(w, "Build log not found")
			return
		}
		h.logger.WithContext(r.Context()).WithError(err).Error("failed to get build log", "build_id", buildID)
		WriteInternalError(w, "Failed to fetch build log: "+err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, log)
}

// Update handles PUT /api/build-logs/{buildID}. Only non-null body fields
// are applied.
func (h *BuildLogHandler) Update(w http.ResponseWriter, r *http.Request) {
	buildID := chi.URLParam(r, "buildID")

	var upd models.BuildLogUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		WriteBadRequest(w, "Invalid request body: "+err.Error())
		return
	}

	if err := h.store.BuildLogs().Update(r.Context(), buildID, &upd); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			WriteNotFound(w, "Build log not found")
			return
		}
		h.logger.WithContext(r.Context()).WithError(err).Error("failed to update build log", "build_id", buildID)
		WriteInternalError(w, "Failed to update build log: "+err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Build log updated successfully",
	})
}

// Delete handles DELETE /api/build-logs/{buildID}.
func (h *BuildLogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	buildID := chi.URLParam(r, "buildID")

	if err := h.store.BuildLogs().Delete(r.Context(), buildID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			WriteNotFound(w, "Build log not found")
			return
		}
		h.logger.WithContext(r.Context()).WithError(err).Error("failed to delete build log", "build_id", buildID)
		WriteInternalError(w, "Failed to delete build log: "+err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Build log deleted successfully",
	})
}

// Clear handles DELETE /api/build-logs. Always succeeds, even when the
// collection is already empty.
func (h *BuildLogHandler) Clear(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.store.BuildLogs().DeleteAll(r.Context())
	if err != nil {
		h.logger.WithContext(r.Context()).WithError(err).Error("failed to clear build logs")
		WriteInternalError(w, "Failed to clear build logs: "+err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"deleted_count": deleted,
		"message":       fmt.Sprintf("Deleted %d build logs", deleted),
	})
}
