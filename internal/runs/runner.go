// Package runs provides an asynchronous front for the solve pipeline: callers
// submit a request, get a run id back immediately and poll for the outcome.
// Hosts that want synchronous solves call the solve service directly.
package runs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yossefc/emploi-du-temp-sub000/internal/dto"
	"github.com/yossefc/emploi-du-temp-sub000/internal/models"
)

// Run states. A failed run carries the error text; an infeasible or unknown
// solve is still a completed run, its verdict lives in the result status.
const (
	StatePending   = "pending"
	StateRunning   = "running"
	StateCompleted = "completed"
	StateFailed    = "failed"
)

type scheduler interface {
	Solve(ctx context.Context, req dto.SolveRequest) (*models.SolveResult, error)
}

// Run tracks one submitted solve from enqueue to completion.
type Run struct {
	ID        string              `json:"id"`
	State     string              `json:"state"`
	Request   dto.SolveRequest    `json:"request"`
	Result    *models.SolveResult `json:"result,omitempty"`
	Error     string              `json:"error,omitempty"`
	Submitted time.Time           `json:"submitted"`
	Finished  time.Time           `json:"finished,omitempty"`
}

// RunnerConfig sizes the worker pool.
type RunnerConfig struct {
	Workers    int
	BufferSize int
	Logger     *zap.Logger
}

// Runner owns a worker pool draining submitted solve runs. Each worker runs
// one solve at a time; the run registry is retained until the runner stops.
type Runner struct {
	svc    scheduler
	logger *zap.Logger

	workers int
	queue   chan string

	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	mu      sync.Mutex
	runs    map[string]*Run
	started bool
}

// NewRunner builds a runner over the given solve service.
func NewRunner(svc scheduler, cfg RunnerConfig) *Runner {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = cfg.Workers * 4
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Runner{
		svc:     svc,
		logger:  cfg.Logger,
		workers: cfg.Workers,
		queue:   make(chan string, cfg.BufferSize),
		runs:    make(map[string]*Run),
	}
}

// Start launches the workers. Safe to call once.
func (r *Runner) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.started {
		return
	}
	r.ctx, r.cancel = context.WithCancel(ctx)
	for i := 0; i < r.workers; i++ {
		r.wg.Add(1)
		go r.worker()
	}
	r.started = true
	r.logger.Info("run_queue_started", zap.Int("workers", r.workers))
}

// Stop cancels in-flight solves and waits for the workers to exit.
func (r *Runner) Stop() {
	r.mu.Lock()
	if !r.started {
		r.mu.Unlock()
		return
	}
	r.cancel()
	r.mu.Unlock()
	r.wg.Wait()
	r.logger.Info("run_queue_stopped")
}

// Submit registers a run and queues it. The returned id is valid immediately.
func (r *Runner) Submit(req dto.SolveRequest) (string, error) {
	r.mu.Lock()
	if !r.started {
		r.mu.Unlock()
		return "", fmt.Errorf("run queue not started")
	}
	run := &Run{
		ID:        uuid.NewString(),
		State:     StatePending,
		Request:   req,
		Submitted: time.Now().UTC(),
	}
	r.runs[run.ID] = run
	ctx := r.ctx
	r.mu.Unlock()

	select {
	case <-ctx.Done():
		return "", fmt.Errorf("run queue stopped: %w", ctx.Err())
	case r.queue <- run.ID:
		return run.ID, nil
	}
}

// Get returns a snapshot of the run. The snapshot never mutates under the
// caller.
func (r *Runner) Get(id string) (Run, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	run, ok := r.runs[id]
	if !ok {
		return Run{}, false
	}
	return *run, true
}

func (r *Runner) worker() {
	defer r.wg.Done()
	for {
		select {
		case <-r.ctx.Done():
			return
		case id := <-r.queue:
			r.execute(id)
		}
	}
}

func (r *Runner) execute(id string) {
	r.mu.Lock()
	run, ok := r.runs[id]
	if !ok {
		r.mu.Unlock()
		return
	}
	run.State = StateRunning
	req := run.Request
	r.mu.Unlock()

	result, err := r.svc.Solve(r.ctx, req)

	r.mu.Lock()
	defer r.mu.Unlock()
	run.Finished = time.Now().UTC()
	if err != nil {
		// Solve errors are final verdicts on the request, not transient
		// faults, so there is no retry.
		run.State = StateFailed
		run.Error = err.Error()
		r.logger.Warn("run_failed", zap.String("run_id", id), zap.Error(err))
		return
	}
	run.State = StateCompleted
	run.Result = result
	r.logger.Info("run_completed",
		zap.String("run_id", id),
		zap.String("status", result.Status),
		zap.Int("assignments", len(result.Assignments)))
}
