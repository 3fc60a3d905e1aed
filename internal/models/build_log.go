// Package models defines the core data types shared across the API and store.
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Observed build log status values. Statuses are caller-driven free-form
// strings; these constants exist for filtering and statistics, not as an
// enforced enum.
const (
	BuildStatusRunning   = "running"
	BuildStatusCompleted = "completed"
	BuildStatusFailed    = "failed"
)

// Observed build type labels.
const (
	BuildTypeJTAF     = "JTAF Framework"
	BuildTypeFloating = "Floating Framework"
	BuildTypeOSMaking = "OS Making"
)

// BuildLog records one invocation of an external framework build job and its
// outcome. BuildID is assigned by the caller and must be unique across live
// records; the store enforces this with a unique index.
type BuildLog struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	BuildID    string             `json:"build_id" bson:"build_id"`
	Type       string             `json:"type" bson:"type"`
	Status     string             `json:"status" bson:"status"`
	StartTime  time.Time          `json:"start_time" bson:"start_time"`
	EndTime    *time.Time         `json:"end_time,omitempty" bson:"end_time,omitempty"`
	Config     map[string]any     `json:"config" bson:"config"`
	Command    *string            `json:"command,omitempty" bson:"command,omitempty"`
	JenkinsJob string             `json:"jenkins_job" bson:"jenkins_job"`
	OutputLog  *string            `json:"output_log,omitempty" bson:"output_log,omitempty"`
}

// BuildLogUpdate carries the mutable fields of a build log. Nil fields are
// left untouched by the update.
type BuildLogUpdate struct {
	Status    *string    `json:"status"`
	EndTime   *time.Time `json:"end_time"`
	OutputLog *string    `json:"output_log"`
}

// IsEmpty reports whether the update would change nothing.
func (u *BuildLogUpdate) IsEmpty() bool {
	return u.Status == nil && u.EndTime == nil && u.OutputLog == nil
}
