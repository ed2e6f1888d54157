// Package app provides the core business service that implements the
// dependencies required by the HTTP API.
package app

import (
	"context"
	"sync"
	"time"

	"github.com/edruela/volleyball-simulator/internal/adapters/mq/queue"
	"github.com/edruela/volleyball-simulator/internal/adapters/mq/worker"
	"github.com/edruela/volleyball-simulator/internal/adapters/repository"
	"github.com/edruela/volleyball-simulator/internal/domain/dedupe"
	"github.com/edruela/volleyball-simulator/internal/domain/engine"
	"github.com/edruela/volleyball-simulator/internal/domain/model"
	"github.com/edruela/volleyball-simulator/pkg/logger"
	"github.com/edruela/volleyball-simulator/pkg/metrics"
)

// Default service configuration constants.
const (
	defaultQueueSize   = 10_000
	defaultDedupeSize  = 100_000
	defaultStoreSize   = 10_000
	defaultWorkerCount = 0 // pool picks a CPU-derived default
)

// Service wires the simulation engine to its queue, workers, idempotency
// cache, and result store.
type Service struct {
	mu sync.RWMutex

	engine   *engine.Engine
	store    repository.Store
	deduper  dedupe.Deduper
	jobQueue queue.Queue
	pool     *worker.Pool

	// Configuration.
	tuning      engine.Tuning
	workerCount int
	queueSize   int
	dedupeSize  int
	storeSize   int

	started bool

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithTuning sets the gameplay tuning used by the engine.
func WithTuning(t engine.Tuning) Option {
	return func(s *Service) {
		s.tuning = t
	}
}

// WithWorkerCount sets the number of simulation worker goroutines.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the job queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets the size of the idempotency cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithStoreSize bounds the in-memory result store.
func WithStoreSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.storeSize = size
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

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		tuning:      engine.DefaultTuning(),
		workerCount: defaultWorkerCount,
		queueSize:   defaultQueueSize,
		dedupeSize:  defaultDedupeSize,
		storeSize:   defaultStoreSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting simulation service...")

	eng, err := engine.New(engine.WithTuning(s.tuning))
	if err != nil {
		return err
	}
	s.engine = eng
	s.store = repository.NewMemoryStore(repository.WithMaxSize(s.storeSize))
	s.deduper = dedupe.NewMemoryDeduper(dedupe.WithMaxSize(s.dedupeSize))
	s.jobQueue = queue.NewInMemoryQueue(queue.WithCapacity(s.queueSize))

	s.pool = worker.NewPool(s.workerCount, s.jobQueue, s.engine, s.store)
	s.pool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "simulation service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("storeSize", s.storeSize),
	)
	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping simulation service...")

	if s.jobQueue != nil {
		_ = s.jobQueue.Close()
	}
	if s.pool != nil {
		s.pool.Stop()
	}

	s.started = false
	s.logger.Info(ctx, "simulation service stopped")
}

// Simulate runs one match synchronously, stores the result, and returns it.
func (s *Service) Simulate(ctx context.Context, req model.MatchRequest) (model.MatchResult, error) {
	start := time.Now()
	result, err := s.engine.Simulate(ctx, req)
	metrics.RecordSimulationLatency(float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.RecordSimulationError()
		return model.MatchResult{}, err
	}

	if err := s.store.Put(ctx, result); err != nil {
		return model.MatchResult{}, err
	}

	metrics.RecordMatchSimulated()
	metrics.RecordSetsPerMatch(len(result.Sets))
	for _, set := range result.Sets {
		metrics.RecordRalliesPerSet(set.HomePoints + set.AwayPoints)
	}

	s.logger.Debug(ctx, "match simulated",
		logger.String("matchID", result.MatchID),
		logger.Int("homeSets", result.HomeSets),
		logger.Int("awaySets", result.AwaySets),
		logger.Int64("seed", result.Seed),
	)
	return result, nil
}

// Enqueue submits a match request for asynchronous simulation. Returns
// false on backpressure.
func (s *Service) Enqueue(ctx context.Context, req model.MatchRequest) bool {
	ok := s.jobQueue.Enqueue(ctx, req)
	if ok {
		metrics.UpdateQueueSize(s.jobQueue.Len(ctx))
	}
	return ok
}

// SeenAndRecord atomically checks if a request id was seen and records it
// if not. Returns true if the request was already seen.
func (s *Service) SeenAndRecord(ctx context.Context, id string) bool {
	seen := s.deduper.SeenAndRecord(ctx, id)
	if seen {
		metrics.RecordRequestDuplicate()
	}
	return seen
}

// Unrecord removes a request ID from the seen list, allowing a retry.
func (s *Service) Unrecord(ctx context.Context, id string) {
	s.deduper.Unrecord(ctx, id)
}

// Size reports how many request IDs the idempotency cache is tracking.
func (s *Service) Size() int64 {
	return s.deduper.Size()
}

// GetMatch returns the stored result for a match id.
func (s *Service) GetMatch(ctx context.Context, matchID string) (model.MatchResult, error) {
	return s.store.Get(ctx, matchID)
}

// RecentMatches returns up to n stored results, most recent first.
func (s *Service) RecentMatches(ctx context.Context, n int) ([]model.MatchResult, error) {
	return s.store.Recent(ctx, n)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"storeSize":   s.storeSize,
	}
	if s.started {
		queueLen := s.jobQueue.Len(ctx)
		stored := s.store.Count(ctx)
		stats["queueLength"] = queueLen
		stats["storedMatches"] = stored
		stats["pendingDedupe"] = s.deduper.Size()

		metrics.UpdateQueueSize(queueLen)
		metrics.UpdateStoredMatches(stored)
	}
	return stats
}
