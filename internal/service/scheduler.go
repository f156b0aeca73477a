// internal/service/scheduler.go
package service

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Scheduler drives a task at a fixed period for the lifetime of one
// consumer. Ticks are independent: each runs the task on its own goroutine,
// so a slow or failed run never blocks or skips the next tick. Overlapping
// runs are permitted because every task replaces cache state wholesale.
type Scheduler struct {
	name     string
	interval time.Duration
	task     func(context.Context)
	logger   *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewScheduler creates a scheduler for task. Start must be called to arm it.
func NewScheduler(name string, interval time.Duration, task func(context.Context), logger *slog.Logger) *Scheduler {
	return &Scheduler{
		name:     name,
		interval: interval,
		task:     task,
		logger:   logger,
	}
}

// Start arms the scheduler. The task runs once immediately and then on
// every period until Stop is called or ctx is cancelled. Starting an
// already-running scheduler is a no-op.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.logger.Info("scheduler started", "name", s.name, "interval", s.interval)
	go s.run(ctx)
}

// Stop tears the scheduler down. It is idempotent: a second Stop is a
// no-op, never an error.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel == nil {
		return
	}
	s.cancel()
	s.cancel = nil
	s.logger.Info("scheduler stopped", "name", s.name)
}

func (s *Scheduler) run(ctx context.Context) {
	go s.task(ctx)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			go s.task(ctx)
		}
	}
}
