// Package store provides database access interfaces and implementations.
package store

import (
	"context"
	"errors"

	"github.com/frameworkhub/backend/internal/models"
)

// Common store errors.
var (
	// ErrNotFound is returned when a requested resource does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidID is returned when an identifier fails format validation
	// before any query is issued.
	ErrInvalidID = errors.New("invalid identifier")

	// ErrDuplicateKey is returned when an insert violates a unique index.
	ErrDuplicateKey = errors.New("duplicate key")
)

// GeneratedCodeCap is the maximum number of live generated-code entries the
// store holds immediately after any successful create. Older entries are
// evicted to make room.
const GeneratedCodeCap = 10

// EvictionCount returns how many entries must be removed before inserting one
// more, given the current live count. Zero when the insert fits under the cap.
func EvictionCount(live int64) int64 {
	if live < GeneratedCodeCap {
		return 0
	}
	return live - (GeneratedCodeCap - 1)
}

// BuildLogFilter narrows build log listings and counts. Empty fields match
// everything; matching is exact, never partial.
type BuildLogFilter struct {
	Status string
	Type   string
}

// Page holds skip/limit pagination bounds.
type Page struct {
	Skip  int64
	Limit int64
}

// BuildLogStore defines operations over build log records.
type BuildLogStore interface {
	// Create inserts a new build log and returns the store-assigned ID.
	// Returns ErrDuplicateKey when the build_id is already taken.
	Create(ctx context.Context, log *models.BuildLog) (string, error)
	// List retrieves build logs matching the filter, newest start_time first.
	List(ctx context.Context, filter BuildLogFilter, page Page) ([]*models.BuildLog, error)
	// Get retrieves a build log by its caller-assigned build_id.
	Get(ctx context.Context, buildID string) (*models.BuildLog, error)
	// Update applies the non-nil fields of upd to the build log with the
	// given build_id. Returns ErrNotFound when no record matches.
	Update(ctx context.Context, buildID string, upd *models.BuildLogUpdate) error
	// Delete removes a build log by build_id. Returns ErrNotFound when absent.
	Delete(ctx context.Context, buildID string) error
	// DeleteAll removes every build log and returns the deleted count.
	DeleteAll(ctx context.Context) (int64, error)
	// Count returns the number of build logs matching the filter.
	Count(ctx context.Context, filter BuildLogFilter) (int64, error)
}

// GeneratedCodeStore defines operations over generated code entries.
type GeneratedCodeStore interface {
	// Create inserts a new entry and returns the store-assigned ID. When the
	// collection already holds GeneratedCodeCap or more entries, the oldest
	// are evicted first so the post-insert count never exceeds the cap. The
	// count-evict-insert sequence is not transactional.
	Create(ctx context.Context, code *models.GeneratedCode) (string, error)
	// List retrieves entries, newest created_at first.
	List(ctx context.Context, page Page) ([]*models.GeneratedCode, error)
	// Get retrieves an entry by its store-assigned ID. Returns ErrInvalidID
	// for a malformed identifier and ErrNotFound when absent.
	Get(ctx context.Context, id string) (*models.GeneratedCode, error)
	// Delete removes an entry by ID. Same error contract as Get.
	Delete(ctx context.Context, id string) error
	// DeleteAll removes every entry and returns the deleted count.
	DeleteAll(ctx context.Context) (int64, error)
	// Count returns the number of live entries.
	Count(ctx context.Context) (int64, error)
}

// Store is the main interface for database operations. The connection behind
// it is acquired once at process startup and shared across all requests.
type Store interface {
	// BuildLogs returns the BuildLogStore for build log operations.
	BuildLogs() BuildLogStore
	// GeneratedCode returns the GeneratedCodeStore for snippet operations.
	GeneratedCode() GeneratedCodeStore
	// Ping verifies connectivity to the backing database.
	Ping(ctx context.Context) error
	// Close releases the database connection.
	Close(ctx context.Context) error
}
