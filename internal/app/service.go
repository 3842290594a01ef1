// Package service composes the data provider, the pure risk and insight
// stages and the narrative gateway into the dashboard views, and runs the
// practice-frame critique jobs.
package service

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/stride/internal/adapters/mq/queue"
	"github.com/okian/stride/internal/adapters/mq/worker"
	"github.com/okian/stride/internal/adapters/narrative"
	"github.com/okian/stride/internal/adapters/provider"
	"github.com/okian/stride/internal/adapters/repository"
	"github.com/okian/stride/internal/domain/dedupe"
	"github.com/okian/stride/pkg/logger"
	"github.com/okian/stride/pkg/metrics"
)

const drainTimeout = 20 * time.Second

// Service implements the API dependencies for the dashboard.
type Service struct {
	mu sync.RWMutex

	// Core components
	provider provider.Provider
	gateway  *narrative.Gateway
	store    repository.Store
	keys     dedupe.Deduper
	keyMu    sync.Mutex // serializes keyed submissions from Claim to enqueue
	queue    *queue.InMemoryQueue
	pool     *worker.Pool

	// Configuration
	workerCount int
	queueSize   int
	newID       func() string

	// State
	started bool

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithProvider sets the data provider. Defaults to the demo fixtures.
func WithProvider(p provider.Provider) Option {
	return func(s *Service) {
		if p != nil {
			s.provider = p
		}
	}
}

// WithGateway sets the narrative gateway. Defaults to an offline gateway.
func WithGateway(g *narrative.Gateway) Option {
	return func(s *Service) {
		if g != nil {
			s.gateway = g
		}
	}
}

// WithStore sets the critique job store.
func WithStore(st repository.Store) Option {
	return func(s *Service) {
		if st != nil {
			s.store = st
		}
	}
}

// WithDeduper sets the idempotency key index for frame submissions.
func WithDeduper(d dedupe.Deduper) Option {
	return func(s *Service) {
		if d != nil {
			s.keys = d
		}
	}
}

// WithWorkerCount sets the number of critique workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum number of pending critique jobs.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithIDGenerator replaces uuid job ids, mostly useful in tests.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount: runtime.NumCPU(),
		queueSize:   64,
		newID:       uuid.NewString,
		logger:      logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.provider == nil {
		s.provider = provider.NewFixtureProvider()
	}
	if s.gateway == nil {
		s.gateway = narrative.Offline(narrative.WithLogger(s.logger))
	}
	if s.store == nil {
		s.store = repository.NewMemoryStore()
	}
	if s.keys == nil {
		s.keys = dedupe.NewInMemoryDeduper()
	}
	return s
}

// Start starts the critique worker pool.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	s.queue = queue.NewInMemoryQueue(queue.WithCapacity(s.queueSize))
	s.pool = worker.NewPool(s.workerCount, s.queue, s.gateway, s.store,
		worker.WithLogger(s.logger))
	s.pool.Start(context.WithoutCancel(ctx))

	s.started = true
	s.logger.Info(ctx, "dashboard service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Bool("narrativeOnline", s.gateway.Online()),
	)
	return nil
}

// Stop drains pending critique jobs and stops the workers.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()
	s.logger.Info(ctx, "stopping dashboard service...")
	if err := s.pool.Shutdown(ctx); err != nil {
		s.logger.Warn(ctx, "critique queue not drained", logger.Error(err))
	}

	s.started = false
	s.logger.Info(ctx, "dashboard service stopped")
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]any{
		"started":         s.started,
		"workerCount":     s.workerCount,
		"queueSize":       s.queueSize,
		"narrativeOnline": s.gateway.Online(),
		"critiqueJobs":    s.store.Count(ctx),
		"idempotencyKeys": s.keys.Size(),
	}
	if s.started {
		stats["queueLength"] = s.queue.Len()
		stats["queueCapacity"] = s.queue.Capacity()
		metrics.UpdateWorkerCount(s.workerCount)
	}
	return stats
}
