// Package trigger bridges the API to the external Jenkins wrapper script. It
// spawns the script with a single JSON argument, captures both output
// streams, and maps exit status plus stdout to a structured result.
package trigger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/frameworkhub/backend/internal/models"
	"github.com/google/uuid"
)

// Runner invokes the Jenkins wrapper script. Config and Command in the
// request are opaque pass-through values; Runner never inspects them.
type Runner struct {
	interpreter string
	script      string
	workDir     string
	logger      *slog.Logger
}

// NewRunner creates a Runner for the given interpreter and script path.
// An empty workDir runs the script in the process working directory.
func NewRunner(interpreter, script, workDir string, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		interpreter: interpreter,
		script:      script,
		workDir:     workDir,
		logger:      logger,
	}
}

// Trigger serializes the request to JSON, runs the script with it as the
// sole argument and waits for exit. No timeout is applied beyond the caller's
// context; a hung script hangs the call.
//
// Failure modes are distinguishable via errors.As: ExecutionError for a
// nonzero exit, ParseError for unparseable stdout, SpawnError when the
// process could not start.
func (r *Runner) Trigger(ctx context.Context, req *models.JenkinsJobRequest) (map[string]any, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("serializing job request: %w", err)
	}

	log := r.logger.With(
		"invocation_id", uuid.NewString(),
		"build_id", req.BuildID,
		"job_type", req.JobType,
	)

	cmd := exec.CommandContext(ctx, r.interpreter, r.script, string(payload))
	cmd.Dir = r.workDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			msg := strings.TrimSpace(stderr.String())
			if msg == "" {
				msg = "unknown error"
			}
			log.Error("jenkins script exited nonzero",
				"exit_code", exitErr.ExitCode(),
				"stderr", msg,
			)
			return nil, &ExecutionError{ExitCode: exitErr.ExitCode(), Stderr: msg}
		}
		log.Error("jenkins script could not be started", "error", err)
		return nil, &SpawnError{Err: err}
	}

	var result map[string]any
	if err := json.Unmarshal(stdout.Bytes(), &result); err != nil {
		log.Error("jenkins script produced unparseable output", "error", err)
		return nil, &ParseError{Err: err}
	}

	log.Info("jenkins job triggered", "duration", time.Since(start).String())
	return result, nil
}
