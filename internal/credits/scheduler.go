// Package credits keeps account balances topped up on a fixed interval.
package credits

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Job is a unit of recurring work.
type Job func(ctx context.Context)

// Scheduler runs registered jobs on an interval. Tests substitute an implementation
// that fires jobs on demand.
type Scheduler interface {
	Every(interval time.Duration, name string, job Job) error
	Start(ctx context.Context) error
	Stop() error
}

// CronScheduler runs jobs on a robfig/cron runner.
type CronScheduler struct {
	cron *cron.Cron

	mu      sync.Mutex
	ctx     context.Context
	running bool
}

// NewCronScheduler creates a scheduler with no jobs.
func NewCronScheduler() *CronScheduler {
	return &CronScheduler{
		cron: cron.New(),
		ctx:  context.Background(),
	}
}

// Every registers a job that runs once per interval. Intervals below one second
// are rounded up to one second.
func (s *CronScheduler) Every(interval time.Duration, name string, job Job) error {
	if interval <= 0 {
		return fmt.Errorf("invalid interval %v for job %s", interval, name)
	}

	s.cron.Schedule(cron.Every(interval), cron.FuncJob(func() {
		s.mu.Lock()
		ctx := s.ctx
		s.mu.Unlock()

		slog.Debug("scheduler: running job", "job", name)
		job(ctx)
	}))
	slog.Debug("scheduler: job registered", "job", name, "interval", interval)
	return nil
}

// Start begins running jobs in the background and returns immediately. Jobs
// receive ctx.
func (s *CronScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return nil
	}
	s.running = true
	s.ctx = ctx
	s.cron.Start()
	return nil
}

// Stop halts the scheduler and waits for any in-flight job to finish.
func (s *CronScheduler) Stop() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	s.mu.Unlock()

	<-s.cron.Stop().Done()
	return nil
}
