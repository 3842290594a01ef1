package model

import (
	"time"
)

// JobStatus of a practice-frame critique job.
type JobStatus string

const (
	JobPending JobStatus = "pending"
	JobDone    JobStatus = "done"
)

// CritiqueJob is one submitted practice frame and, once done, its critique.
// The image is dropped when the job completes.
type CritiqueJob struct {
	ID          string     `json:"id"`
	Status      JobStatus  `json:"status"`
	Critique    string     `json:"critique,omitempty"`
	SubmittedAt time.Time  `json:"submittedAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	Image       string     `json:"-"`
}
