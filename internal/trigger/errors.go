package trigger

import "fmt"

// ExecutionError reports that the Jenkins script ran and exited nonzero.
type ExecutionError struct {
	ExitCode int
	Stderr   string
}

// Error implements the error interface.
func (e *ExecutionError) Error() string {
	return fmt.Sprintf("jenkins script failed: %s", e.Stderr)
}

// ParseError reports that the script exited zero but its stdout was not a
// valid JSON object.
type ParseError struct {
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse jenkins script output: %s", e.Err)
}

// Unwrap returns the underlying JSON error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// SpawnError reports that the script process could not be started at all.
type SpawnError struct {
	Err error
}

// Error implements the error interface.
func (e *SpawnError) Error() string {
	return fmt.Sprintf("failed to execute jenkins script: %s", e.Err)
}

// Unwrap returns the underlying exec error.
func (e *SpawnError) Unwrap() error {
	return e.Err
}
