package trigger

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/frameworkhub/backend/internal/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "jenkins.sh")
	if err := os.WriteFile(path, []byte(body), 0o755); err != nil {
		t.Fatalf("writing script: %v", err)
	}
	return path
}

func testRequest() *models.JenkinsJobRequest {
	return &models.JenkinsJobRequest{
		BuildID: "b1",
		JobType: "OS Making",
		Config:  map[string]any{"arch": "x86_64"},
		Command: "make all",
	}
}

func skipWithoutSh(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
}

func TestTriggerParsesScriptOutput(t *testing.T) {
	skipWithoutSh(t)
	script := writeScript(t, "#!/bin/sh\necho '{\"queued\": true, \"job_number\": 42}'\n")

	runner := NewRunner("sh", script, "", testLogger())
	result, err := runner.Trigger(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("Trigger() error: %v", err)
	}

	if result["queued"] != true {
		t.Errorf("queued = %v, want true", result["queued"])
	}
	if result["job_number"] != float64(42) {
		t.Errorf("job_number = %v, want 42", result["job_number"])
	}
}

func TestTriggerPassesPayloadAsSingleArgument(t *testing.T) {
	skipWithoutSh(t)
	captured := filepath.Join(t.TempDir(), "payload.json")
	script := writeScript(t, "#!/bin/sh\nprintf '%s' \"$1\" > "+captured+"\necho '{}'\n")

	runner := NewRunner("sh", script, "", testLogger())
	if _, err := runner.Trigger(context.Background(), testRequest()); err != nil {
		t.Fatalf("Trigger() error: %v", err)
	}

	raw, err := os.ReadFile(captured)
	if err != nil {
		t.Fatalf("reading captured payload: %v", err)
	}

	var got models.JenkinsJobRequest
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	if got.BuildID != "b1" || got.JobType != "OS Making" || got.Command != "make all" {
		t.Fatalf("payload = %+v", got)
	}
	if got.Config["arch"] != "x86_64" {
		t.Fatalf("config not passed through: %v", got.Config)
	}
}

func TestTriggerNonzeroExit(t *testing.T) {
	skipWithoutSh(t)
	script := writeScript(t, "#!/bin/sh\necho 'jenkins unreachable' >&2\nexit 3\n")

	runner := NewRunner("sh", script, "", testLogger())
	_, err := runner.Trigger(context.Background(), testRequest())

	var execErr *ExecutionError
	if !errors.As(err, &execErr) {
		t.Fatalf("error = %v, want *ExecutionError", err)
	}
	if execErr.ExitCode != 3 {
		t.Errorf("exit code = %d, want 3", execErr.ExitCode)
	}
	if !strings.Contains(err.Error(), "jenkins unreachable") {
		t.Errorf("error %q does not embed stderr", err)
	}
}

func TestTriggerNonzeroExitEmptyStderr(t *testing.T) {
	skipWithoutSh(t)
	script := writeScript(t, "#!/bin/sh\nexit 1\n")

	runner := NewRunner("sh", script, "", testLogger())
	_, err := runner.Trigger(context.Background(), testRequest())

	var execErr *ExecutionError
	if !errors.As(err, &execErr) {
		t.Fatalf("error = %v, want *ExecutionError", err)
	}
	if execErr.Stderr != "unknown error" {
		t.Errorf("stderr marker = %q, want %q", execErr.Stderr, "unknown error")
	}
}

func TestTriggerUnparseableStdout(t *testing.T) {
	skipWithoutSh(t)
	script := writeScript(t, "#!/bin/sh\necho 'ready to serve'\n")

	runner := NewRunner("sh", script, "", testLogger())
	_, err := runner.Trigger(context.Background(), testRequest())

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("error = %v, want *ParseError", err)
	}
	if !strings.Contains(err.Error(), "failed to parse jenkins script output") {
		t.Errorf("error %q does not name the parse failure", err)
	}

	// A parse failure must not read as an execution failure.
	var execErr *ExecutionError
	if errors.As(err, &execErr) {
		t.Error("parse failure also matches *ExecutionError")
	}
}

func TestTriggerSpawnFailure(t *testing.T) {
	runner := NewRunner("/nonexistent/interpreter", "jenkins.py", "", testLogger())
	_, err := runner.Trigger(context.Background(), testRequest())

	var spawnErr *SpawnError
	if !errors.As(err, &spawnErr) {
		t.Fatalf("error = %v, want *SpawnError", err)
	}
	if !strings.Contains(err.Error(), "failed to execute jenkins script") {
		t.Errorf("error %q does not name the spawn failure", err)
	}
}
