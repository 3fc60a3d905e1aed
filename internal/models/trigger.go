package models

// JenkinsJobRequest is the payload handed to the external Jenkins wrapper
// script. Config and Command are opaque pass-through values; the service
// never inspects their contents.
type JenkinsJobRequest struct {
	BuildID string         `json:"build_id"`
	JobType string         `json:"job_type"`
	Config  map[string]any `json:"config"`
	Command string         `json:"command"`
}
