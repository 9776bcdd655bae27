package model

import "time"

// JobStatus represents the lifecycle state of a lead-generation job.
type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
	JobStatusCancelled JobStatus = "cancelled"
)

// IsTerminal reports whether the status admits no further transitions.
func (s JobStatus) IsTerminal() bool {
	switch s {
	case JobStatusCompleted, JobStatusFailed, JobStatusCancelled:
		return true
	}
	return false
}

// Cancellable reports whether a job in this status may be cancelled.
func (s JobStatus) Cancellable() bool {
	return s == JobStatusPending || s == JobStatusRunning
}

// TargetingCriteria is the normalized, structured representation of a
// free-text lead-generation brief. Immutable once attached to a Job.
type TargetingCriteria struct {
	Keywords          []string `json:"keywords"`
	Industry          string   `json:"industry,omitempty"`
	Location          string   `json:"location,omitempty"`
	CompanySize       string   `json:"company_size,omitempty"`
	TargetRoles       []string `json:"target_roles,omitempty"`
	ExclusionKeywords []string `json:"exclusion_keywords,omitempty"`
	CustomQueries     []string `json:"custom_queries,omitempty"`
}

// Job is a single lead-generation run. Owned by the orchestrator; mutated
// only through state transitions.
type Job struct {
	ID               string            `json:"id" db:"id"`
	Prompt           string            `json:"prompt" db:"prompt"`
	Criteria         TargetingCriteria `json:"criteria" db:"criteria"`
	Status           JobStatus         `json:"status" db:"status"`
	TargetCount      int               `json:"target_count" db:"target_count"`
	QualityThreshold float64           `json:"quality_threshold" db:"quality_threshold"`
	Error            string            `json:"error,omitempty" db:"error"`
	CreatedAt        time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at" db:"updated_at"`
	CompletedAt      *time.Time        `json:"completed_at,omitempty" db:"completed_at"`
}
