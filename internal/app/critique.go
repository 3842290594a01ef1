package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/okian/stride/internal/adapters/narrative"
	"github.com/okian/stride/internal/adapters/repository"
	"github.com/okian/stride/internal/domain/model"
	"github.com/okian/stride/pkg/logger"
	"github.com/okian/stride/pkg/metrics"
)

// SubmitFrame validates the frame and queues it for critique. The returned
// job is pending; poll Job for the result. A non-empty key makes retries
// idempotent: a key seen before returns the job it first created.
func (s *Service) SubmitFrame(ctx context.Context, image, key string) (model.CritiqueJob, error) {
	if _, _, err := narrative.DecodeImage(image); err != nil {
		metrics.RecordCritiqueJob("invalid")
		return model.CritiqueJob{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return model.CritiqueJob{}, ErrNotStarted
	}

	job := model.CritiqueJob{
		ID:          s.newID(),
		Status:      model.JobPending,
		SubmittedAt: time.Now().UTC(),
		Image:       image,
	}
	if key != "" {
		s.keyMu.Lock()
		defer s.keyMu.Unlock()
		if existing, ok := s.replay(ctx, key, job.ID); ok {
			return existing, nil
		}
	}

	if err := s.store.Put(ctx, job); err != nil {
		s.release(ctx, key)
		return model.CritiqueJob{}, fmt.Errorf("store critique job: %w", err)
	}
	if !s.queue.Enqueue(ctx, job) {
		if err := s.store.Delete(ctx, job.ID); err != nil {
			s.logger.Warn(ctx, "drop rejected critique job", logger.String("id", job.ID), logger.Error(err))
		}
		s.release(ctx, key)
		metrics.RecordCritiqueJob("rejected")
		return model.CritiqueJob{}, ErrBackpressure
	}

	metrics.RecordCritiqueJob("submitted")
	s.logger.Debug(ctx, "critique job queued", logger.String("id", job.ID))
	job.Image = ""
	return job, nil
}

// replay returns the job already bound to key. A key whose job was evicted
// from the store is rebound to id. Callers hold keyMu.
func (s *Service) replay(ctx context.Context, key, id string) (model.CritiqueJob, bool) {
	bound, seen := s.keys.Claim(ctx, key, id)
	if !seen {
		return model.CritiqueJob{}, false
	}
	if existing, ok := s.lookup(ctx, bound); ok {
		return existing, true
	}
	s.keys.Release(ctx, key)
	if bound, seen = s.keys.Claim(ctx, key, id); seen {
		return s.lookup(ctx, bound)
	}
	return model.CritiqueJob{}, false
}

func (s *Service) lookup(ctx context.Context, id string) (model.CritiqueJob, bool) {
	job, err := s.store.Get(ctx, id)
	if err == nil {
		metrics.RecordCritiqueJob("replayed")
		job.Image = ""
		return job, true
	}
	if !errors.Is(err, repository.ErrNotFound) {
		s.logger.Warn(ctx, "idempotency lookup failed", logger.String("id", id), logger.Error(err))
	}
	return model.CritiqueJob{}, false
}

func (s *Service) release(ctx context.Context, key string) {
	if key != "" {
		s.keys.Release(ctx, key)
	}
}

// Job returns a critique job by id. Unknown ids wrap repository.ErrNotFound.
func (s *Service) Job(ctx context.Context, id string) (model.CritiqueJob, error) {
	return s.store.Get(ctx, id)
}
