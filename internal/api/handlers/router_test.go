package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/frameworkhub/backend/internal/store"
	"github.com/frameworkhub/backend/pkg/logger"
	"github.com/go-chi/chi/v5"
)

// newTestRouter mounts the handlers under /api the way the server does,
// against the given store and trigger runner.
func newTestRouter(st store.Store, runner JobTrigger) chi.Router {
	log := &logger.Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		if runner != nil {
			triggerHandler := NewTriggerHandler(runner, log)
			r.Post("/jenkins/trigger", triggerHandler.Trigger)
		}

		buildLogHandler := NewBuildLogHandler(st, log)
		r.Route("/build-logs", func(r chi.Router) {
			r.Post("/", buildLogHandler.Create)
			r.Get("/", buildLogHandler.List)
			r.Delete("/", buildLogHandler.Clear)
			r.Route("/{buildID}", func(r chi.Router) {
				r.Get("/", buildLogHandler.Get)
				r.Put("/", buildLogHandler.Update)
				r.Delete("/", buildLogHandler.Delete)
			})
		})

		codeHandler := NewGeneratedCodeHandler(st, log)
		r.Route("/generated-code", func(r chi.Router) {
			r.Post("/", codeHandler.Create)
			r.Get("/", codeHandler.List)
			r.Delete("/", codeHandler.Clear)
			r.Route("/{codeID}", func(r chi.Router) {
				r.Get("/", codeHandler.Get)
				r.Delete("/", codeHandler.Delete)
			})
		})

		statsHandler := NewStatsHandler(st, log)
		r.Get("/stats", statsHandler.Get)
	})
	return r
}

// doJSON performs a request with an optional JSON body and decodes the JSON
// response into out when it is non-nil.
func doJSON(t *testing.T, router chi.Router, method, path string, body any, out any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshaling request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if out != nil && rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			t.Fatalf("decoding response %q: %v", rec.Body.String(), err)
		}
	}
	return rec
}

func wantStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, want, rec.Body.String())
	}
}
