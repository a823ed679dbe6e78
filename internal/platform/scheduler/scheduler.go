// Package scheduler runs background jobs on cron schedules.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// jobTimeout bounds a single job run.
const jobTimeout = 30 * time.Minute

// Job is a unit of background work.
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

// JobFunc adapts a function to Job.
type JobFunc struct {
	JobName string
	Fn      func(ctx context.Context) error
}

func (f JobFunc) Name() string                  { return f.JobName }
func (f JobFunc) Run(ctx context.Context) error { return f.Fn(ctx) }

// Scheduler manages scheduled jobs
type Scheduler struct {
	cron       *cron.Cron
	logger     *slog.Logger
	jobs       map[string]Job
	entryIDs   map[string]cron.EntryID
	mu         sync.Mutex
	isRunning  bool
	ctx        context.Context
	cancelFunc context.CancelFunc
}

// New creates a scheduler evaluating schedules in timezone. An empty or unknown
// timezone means UTC.
func New(timezone string, logger *slog.Logger) *Scheduler {
	loc := time.UTC
	if timezone != "" {
		l, err := time.LoadLocation(timezone)
		if err == nil {
			loc = l
		} else {
			logger.Warn("Unknown scheduler timezone, using UTC", slog.String("timezone", timezone), slog.String("error", err.Error()))
		}
	}
	opts := []cron.Option{cron.WithLocation(loc)}
	// a job still running when its next tick comes is not started twice
	opts = append(opts, cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))

	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron:       cron.New(opts...),
		logger:     logger,
		jobs:       make(map[string]Job),
		entryIDs:   make(map[string]cron.EntryID),
		ctx:        ctx,
		cancelFunc: cancel,
	}
}

// Register schedules job with a standard five field cron expression.
func (s *Scheduler) Register(spec string, job Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := job.Name()
	if _, exists := s.jobs[name]; exists {
		return fmt.Errorf("job with name '%s' already registered", name)
	}
	entryID, err := s.cron.AddFunc(spec, func() { _ = s.execute(job) })
	if err != nil {
		return fmt.Errorf("failed to schedule job '%s': %w", name, err)
	}
	s.jobs[name] = job
	s.entryIDs[name] = entryID
	s.logger.Info("Scheduled job", slog.String("job", name), slog.String("cron", spec))
	return nil
}

// RunNow runs a registered job synchronously.
func (s *Scheduler) RunNow(name string) error {
	s.mu.Lock()
	job, ok := s.jobs[name]
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("job '%s' not registered", name)
	}
	return s.execute(job)
}

func (s *Scheduler) execute(job Job) error {
	ctx, cancel := context.WithTimeout(s.ctx, jobTimeout)
	defer cancel()

	logger := s.logger.With(slog.String("job", job.Name()))
	logger.Info("Starting job")
	start := time.Now()
	err := job.Run(ctx)
	elapsed := time.Since(start)
	if err != nil {
		logger.Error("Job failed", slog.Duration("elapsed", elapsed), slog.String("error", err.Error()))
		return err
	}
	logger.Info("Job completed", slog.Duration("elapsed", elapsed))
	return nil
}

// Next returns the next activation of a registered job.
func (s *Scheduler) Next(name string) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.entryIDs[name]
	if !ok {
		return time.Time{}, false
	}
	return s.cron.Entry(id).Next, true
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("scheduler is already running")
	}
	s.cron.Start()
	s.isRunning = true
	s.logger.Info("Scheduler started", slog.Int("jobs", len(s.jobs)))
	return nil
}

// Stop cancels running jobs and waits for them to return.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}
	s.cancelFunc()
	<-s.cron.Stop().Done()
	s.isRunning = false
	s.logger.Info("Scheduler stopped")
}
