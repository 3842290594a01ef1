// Package repository keeps practice-frame critique jobs and their results.
package repository

import (
	"context"

	"github.com/okian/stride/internal/domain/model"
)

// Store provides read/write access to critique jobs.
type Store interface {
	// Put records a new pending job. Returns ErrDuplicateID if the id is taken.
	Put(ctx context.Context, job model.CritiqueJob) error

	// Complete stores the critique and marks the job done.
	// Returns ErrNotFound if the job is unknown or was evicted.
	Complete(ctx context.Context, id, critique string) error

	// Get returns a job by id. Returns ErrNotFound if the job is unknown.
	Get(ctx context.Context, id string) (model.CritiqueJob, error)

	// Delete drops a job. Deleting an unknown id is a no-op.
	Delete(ctx context.Context, id string) error

	// Count returns the number of jobs held.
	Count(ctx context.Context) int
}
