package domain

import "time"

// BuildInfo records the outcome of a successful build for a job.
// A job whose input hash matches the recorded one and whose artifact is
// still on disk is skipped on the next run.
type BuildInfo struct {
	JobName   string    `json:"job_name,omitzero"`
	InputHash string    `json:"input_hash,omitzero"`
	Artifact  string    `json:"artifact,omitzero"`
	Timestamp time.Time `json:"timestamp,omitzero"`
}
