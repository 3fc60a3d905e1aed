package handlers

import (
	"context"
	"net/http"

	"github.com/frameworkhub/backend/internal/models"
	"github.com/frameworkhub/backend/internal/store"
	"github.com/frameworkhub/backend/pkg/logger"
)

// StatsHandler handles the aggregate statistics endpoint.
type StatsHandler struct {
	store  store.Store
	logger *logger.Logger
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(st store.Store, log *logger.Logger) *StatsHandler {
	return &StatsHandler{
		store:  st,
		logger: log,
	}
}

// Stats represents the platform statistics response.
type Stats struct {
	BuildLogs     BuildLogStats      `json:"build_logs"`
	GeneratedCode GeneratedCodeStats `json:"generated_code"`
}

// BuildLogStats summarizes build log counts by status and type.
type BuildLogStats struct {
	Total     int64          `json:"total"`
	Running   int64          `json:"running"`
	Completed int64          `json:"completed"`
	Failed    int64          `json:"failed"`
	ByType    BuildTypeStats `json:"by_type"`
}

// BuildTypeStats breaks build counts down by framework type.
type BuildTypeStats struct {
	JTAF     int64 `json:"jtaf"`
	Floating int64 `json:"floating"`
	OSMaking int64 `json:"os_making"`
}

// GeneratedCodeStats summarizes the generated code collection.
type GeneratedCodeStats struct {
	Total int64 `json:"total"`
	Limit int64 `json:"limit"`
}

// Get handles GET /api/stats.
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	stats, err := h.calculateStats(r.Context())
	if err != nil {
		h.logger.WithContext(r.Context()).WithError(err).Error("failed to calculate stats")
		WriteInternalError(w, "Failed to fetch stats: "+err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, stats)
}

// calculateStats aggregates counts from both collections.
func (h *StatsHandler) calculateStats(ctx context.Context) (*Stats, error) {
	buildLogs := h.store.BuildLogs()

	statusCounts := map[string]*int64{}
	stats := &Stats{}

	total, err := buildLogs.Count(ctx, store.BuildLogFilter{})
	if err != nil {
		return nil, err
	}
	stats.BuildLogs.Total = total

	statusCounts[models.BuildStatusRunning] = &stats.BuildLogs.Running
	statusCounts[models.BuildStatusCompleted] = &stats.BuildLogs.Completed
	statusCounts[models.BuildStatusFailed] = &stats.BuildLogs.Failed
	for status, dst := range statusCounts {
		n, err := buildLogs.Count(ctx, store.BuildLogFilter{Status: status})
		if err != nil {
			return nil, err
		}
		*dst = n
	}

	typeCounts := map[string]*int64{
		models.BuildTypeJTAF:     &stats.BuildLogs.ByType.JTAF,
		models.BuildTypeFloating: &stats.BuildLogs.ByType.Floating,
		models.BuildTypeOSMaking: &stats.BuildLogs.ByType.OSMaking,
	}
	for typ, dst := range typeCounts {
		n, err := buildLogs.Count(ctx, store.BuildLogFilter{Type: typ})
		if err != nil {
			return nil, err
		}
		*dst = n
	}

	codeTotal, err := h.store.GeneratedCode().Count(ctx)
	if err != nil {
		return nil, err
	}
	stats.GeneratedCode = GeneratedCodeStats{
		Total: codeTotal,
		Limit: store.GeneratedCodeCap,
	}

	return stats, nil
}
