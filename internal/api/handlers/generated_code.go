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

// GeneratedCodeHandler handles generated code requests.
type GeneratedCodeHandler struct {
	store  store.Store
	logger *logger.Logger
}

// NewGeneratedCodeHandler creates a new generated code handler.
func NewGeneratedCodeHandler(st store.Store, log *logger.Logger) *GeneratedCodeHandler {
	return &GeneratedCodeHandler{
		store:  st,
		logger: log,
	}
}

// Create handles POST /api/generated-code. The store evicts the oldest
// entries before the insert so the collection never holds more than
// store.GeneratedCodeCap entries afterward.
func (h *GeneratedCodeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var code models.GeneratedCode
	if err := json.NewDecoder(r.Body).Decode(&code); err != nil {
		WriteBadRequest(w, "Invalid request body: "+err.Error())
		return
	}

	for field, value := range map[string]string{
		"language":    code.Language,
		"type":        code.Type,
		"code":        code.Code,
		"description": code.Description,
	} {
		if value == "" {
			WriteBadRequest(w, field+" is required")
			return
		}
	}

	id, err := h.store.GeneratedCode().Create(r.Context(), &code)
	if err != nil {
		h.logger.WithContext(r.Context()).WithError(err).Error("failed to save generated code")
		WriteInternalError(w, "Failed to save generated code: "+err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"id":      id,
		"message": "Generated code saved successfully",
	})
}

// List handles GET /api/generated-code.
func (h *GeneratedCodeHandler) List(w http.ResponseWriter, r *http.Request) {
	skip, err := pageParam(r, "skip", 0)
	if err != nil {
		WriteBadRequest(w, err.Error())
		return
	}
	limit, err := pageParam(r, "limit", store.GeneratedCodeCap)
	if err != nil {
		WriteBadRequest(w, err.Error())
		return
	}

	entries, err := h.store.GeneratedCode().List(r.Context(), store.Page{Skip: skip, Limit: limit})
	if err != nil {
		h.logger.WithContext(r.Context()).WithError(err).Error("failed to list generated code")
		WriteInternalError(w, "Failed to fetch generated code: "+err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, entries)
}

// Get handles GET /api/generated-code/{codeID}.
func (h *GeneratedCodeHandler) Get(w http.ResponseWriter, r *http.Request) {
	codeID := chi.URLParam(r, "codeID")

	entry, err := h.store.GeneratedCode().Get(r.Context(), codeID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrInvalidID):
			WriteBadRequest(w, "Invalid code ID format")
		case errors.Is(err, store.ErrNotFound):
			WriteNotFound(w, "Generated code not found")
		default:
			h.logger.WithContext(r.Context()).WithError(err).Error("failed to get generated code", "code_id", codeID)
			WriteInternalError(w, "Failed to fetch generated code: "+err.Error())
		}
		return
	}

	WriteJSON(w, http.StatusOK, entry)
}

// Delete handles DELETE /api/generated-code/{codeID}.
func (h *GeneratedCodeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	codeID := chi.URLParam(r, "codeID")

	if err := h.store.GeneratedCode().Delete(r.Context(), codeID); err != nil {
		switch {
		case errors.Is(err, store.ErrInvalidID):
			WriteBadRequest(w, "Invalid code ID format")
		case errors.Is(err, store.ErrNotFound):
			WriteNotFound(w, "Generated code not found")
		default:
			h.logger.WithContext(r.Context()).WithError(err).Error("failed to delete generated code", "code_id", codeID)
			WriteInternalError(w, "Failed to delete generated code: "+err.Error())
		}
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Generated code deleted successfully",
	})
}

// Clear handles DELETE /api/generated-code.
func (h *GeneratedCodeHandler) Clear(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.store.GeneratedCode().DeleteAll(r.Context())
	if err != nil {
		h.logger.WithContext(r.Context()).WithError(err).Error("failed to clear generated code")
		WriteInternalError(w, "Failed to clear generated code: "+err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"deleted_count": deleted,
		"message":       fmt.Sprintf("Deleted %d generated code entries", deleted),
	})
}
