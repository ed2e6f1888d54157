// Package worker runs queued match simulations concurrently. Each job
// carries its own seed, so workers share nothing beyond the queue and the
// result store.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"github.com/edruela/volleyball-simulator/internal/adapters/mq/queue"
	"github.com/edruela/volleyball-simulator/internal/domain/model"
	"github.com/edruela/volleyball-simulator/pkg/logger"
	"github.com/edruela/volleyball-simulator/pkg/metrics"
)

// Default worker configuration constants.
const (
	defaultWorkerMultiplier = 2 // multiplier for runtime.NumCPU()
	workerShutdownTimeout   = 5 * time.Second
)

// Job is what workers read off the queue.
type Job = model.MatchRequest

// Simulator runs one match to completion.
type Simulator interface {
	Simulate(ctx context.Context, req model.MatchRequest) (model.MatchResult, error)
}

// Sink receives finished match results.
type Sink interface {
	Put(ctx context.Context, result model.MatchResult) error
}

// Queue defines how workers receive jobs.
type Queue interface {
	Dequeue(ctx context.Context) <-chan queue.Job
}

// Worker processes simulation jobs until stopped.
type Worker struct {
	queue Queue
	sim   Simulator
	sink  Sink
	name  string

	shutdown chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// NewWorker creates a new worker with configuration options.
func NewWorker(q Queue, sim Simulator, sink Sink, opts ...Option) *Worker {
	w := &Worker{
		queue:    q,
		sim:      sim,
		sink:     sink,
		name:     "worker",
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		w.logger = logger.Get().Named(w.name)
	}
	return w
}

// Run starts the worker loop until ctx is canceled, the queue closes, or
// Shutdown is called.
func (w *Worker) Run(ctx context.Context) {
	defer close(w.done)

	jobs := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case job, ok := <-jobs:
			if !ok {
				return
			}
			if err := w.process(ctx, job); err != nil {
				w.logger.Error(ctx, "simulation job failed",
					logger.String("requestID", job.RequestID),
					logger.Error(err),
				)
			}
		}
	}
}

// Shutdown gracefully stops the worker.
func (w *Worker) Shutdown(ctx context.Context) error {
	close(w.shutdown)
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// process runs one match and stores its result.
func (w *Worker) process(ctx context.Context, job Job) error {
	start := time.Now()

	result, err := w.sim.Simulate(ctx, job)
	metrics.RecordSimulationLatency(float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.RecordSimulationError()
		return fmt.Errorf("simulate match %s: %w", job.RequestID, err)
	}

	if err := w.sink.Put(ctx, result); err != nil {
		metrics.RecordErrorByComponent("worker", "store_error")
		return fmt.Errorf("store match %s: %w", result.MatchID, err)
	}

	metrics.RecordMatchSimulated()
	metrics.RecordSetsPerMatch(len(result.Sets))
	for _, set := range result.Sets {
		metrics.RecordRalliesPerSet(set.HomePoints + set.AwayPoints)
	}
	return nil
}

// Pool manages a fixed set of workers.
type Pool struct {
	workers []*Worker
	logger  logger.Logger
}

// NewPool creates a worker pool of the given size; a non-positive count
// falls back to a CPU-derived default.
func NewPool(workerCount int, q Queue, sim Simulator, sink Sink) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU() * defaultWorkerMultiplier
	}

	p := &Pool{
		workers: make([]*Worker, workerCount),
		logger:  logger.Get().Named("worker-pool"),
	}
	for i := 0; i < workerCount; i++ {
		p.workers[i] = NewWorker(q, sim, sink, WithName("worker-"+strconv.Itoa(i)))
	}

	metrics.UpdateWorkerCount(workerCount)
	return p
}

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
}

// Stop gracefully stops all workers.
func (p *Pool) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), workerShutdownTimeout)
	defer cancel()
	for _, w := range p.workers {
		if err := w.Shutdown(ctx); err != nil {
			p.logger.Warn(ctx, "worker stop timed out", logger.String("worker", w.name))
		}
	}
}
