package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okian/stride/internal/domain/model"
	"github.com/okian/stride/pkg/metrics"
)

const defaultMaxJobs = 1024

// MemoryStore implements Store in memory with FIFO eviction.
type MemoryStore struct {
	mu      sync.RWMutex
	jobs    map[string]model.CritiqueJob
	order   []string // insertion order, oldest first
	maxJobs int
	now     func() time.Time
}

// NewMemoryStore creates an empty store.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		jobs:    make(map[string]model.CritiqueJob),
		maxJobs: defaultMaxJobs,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryStore) Put(_ context.Context, job model.CritiqueJob) error { //nolint:gocritic // hugeParam: stored by value
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.jobs[job.ID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateID, job.ID)
	}
	if job.SubmittedAt.IsZero() {
		job.SubmittedAt = s.now()
	}
	job.Status = model.JobPending
	s.jobs[job.ID] = job
	s.order = append(s.order, job.ID)

	for len(s.order) > s.maxJobs {
		delete(s.jobs, s.order[0])
		s.order = s.order[1:]
	}
	metrics.UpdateCritiqueStored(len(s.jobs))
	return nil
}

func (s *MemoryStore) Complete(_ context.Context, id, critique string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	done := s.now()
	job.Status = model.JobDone
	job.Critique = critique
	job.CompletedAt = &done
	job.Image = ""
	s.jobs[id] = job
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (model.CritiqueJob, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, ok := s.jobs[id]
	if !ok {
		return model.CritiqueJob{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if job.CompletedAt != nil {
		at := *job.CompletedAt
		job.CompletedAt = &at
	}
	return job, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.jobs[id]; !ok {
		return nil
	}
	delete(s.jobs, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	metrics.UpdateCritiqueStored(len(s.jobs))
	return nil
}

func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.jobs)
}
