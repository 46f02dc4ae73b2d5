package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ExportJob is one artifact to render and persist: the target file name and
// the render function producing its bytes.
type ExportJob struct {
	Name     string
	Render   func() ([]byte, error)
	Attempt  int
	Enqueued time.Time
}

// Sink receives rendered artifact bytes. pkg/storage.ExportDir satisfies it.
type Sink interface {
	Save(filename string, data []byte) (string, error)
}

// RunnerConfig configures worker pool behaviour.
type RunnerConfig struct {
	Workers    int
	BufferSize int
	MaxRetries int
	RetryDelay time.Duration
	Logger     *zap.Logger
}

// Runner renders export jobs on a small worker pool and hands the results to
// a sink. Rendering is CPU-bound and independent per artifact, so jobs fan
// out freely.
type Runner struct {
	sink Sink

	workers    int
	maxRetries int
	retryDelay time.Duration
	logger     *zap.Logger

	jobs    chan ExportJob
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	pending sync.WaitGroup
	mu      sync.Mutex
	started bool
}

// NewRunner builds a runner writing into the given sink.
func NewRunner(sink Sink, cfg RunnerConfig) *Runner {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = cfg.Workers * 4
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 2
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return &Runner{
		sink:       sink,
		workers:    cfg.Workers,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		logger:     cfg.Logger,
		jobs:       make(chan ExportJob, cfg.BufferSize),
	}
}

// Start begins worker consumption. Safe to call once.
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
	r.logger.Info("export runner started", zap.Int("workers", r.workers))
}

// Stop cancels workers and waits for them to exit. Jobs still in the buffer
// are dropped.
func (r *Runner) Stop() {
	r.mu.Lock()
	if !r.started {
		r.mu.Unlock()
		return
	}
	r.cancel()
	r.mu.Unlock()
	r.wg.Wait()
	r.logger.Info("export runner stopped")
}

// Enqueue pushes a job onto the queue.
func (r *Runner) Enqueue(job ExportJob) error {
	r.mu.Lock()
	ctx := r.ctx
	started := r.started
	r.mu.Unlock()

	if !started {
		return fmt.Errorf("export runner not started")
	}
	if job.Enqueued.IsZero() {
		job.Enqueued = time.Now().UTC()
	}

	r.pending.Add(1)
	select {
	case <-ctx.Done():
		r.pending.Done()
		return fmt.Errorf("export runner stopped: %w", ctx.Err())
	case r.jobs <- job:
		return nil
	}
}

// Drain blocks until every enqueued job has been processed. Retries still in
// their backoff window are not counted.
func (r *Runner) Drain() {
	r.pending.Wait()
}

func (r *Runner) worker() {
	defer r.wg.Done()
	for {
		select {
		case <-r.ctx.Done():
			return
		case job := <-r.jobs:
			if err := r.process(job); err != nil {
				r.handleFailure(job, err)
			}
			r.pending.Done()
		}
	}
}

func (r *Runner) process(job ExportJob) error {
	data, err := job.Render()
	if err != nil {
		return fmt.Errorf("render %s: %w", job.Name, err)
	}
	path, err := r.sink.Save(job.Name, data)
	if err != nil {
		return fmt.Errorf("save %s: %w", job.Name, err)
	}
	r.logger.Info("export written",
		zap.String("file", path),
		zap.Int("bytes", len(data)),
	)
	return nil
}

func (r *Runner) handleFailure(job ExportJob, err error) {
	job.Attempt++
	if job.Attempt > r.maxRetries {
		r.logger.Error("export job exceeded retries", zap.String("file", job.Name), zap.Error(err))
		return
	}
	r.logger.Warn("export job failed, retrying",
		zap.String("file", job.Name),
		zap.Int("attempt", job.Attempt),
		zap.Error(err),
	)

	go func(j ExportJob) {
		timer := time.NewTimer(r.retryDelay)
		defer timer.Stop()
		select {
		case <-r.ctx.Done():
			return
		case <-timer.C:
			if err := r.Enqueue(j); err != nil {
				r.logger.Error("failed to requeue export job", zap.String("file", j.Name), zap.Error(err))
			}
		}
	}(job)
}
