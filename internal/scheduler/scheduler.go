package scheduler

import (
	"context"
	"fmt"
	"time"

	"PriceBoard/pkg/logger"

	"github.com/robfig/cron/v3"
)

// Refresher reloads every resource from upstream.
type Refresher interface {
	RefreshAll(ctx context.Context) error
}

// Scheduler keeps the history cache warm on a cron schedule.
type Scheduler struct {
	Cron      *cron.Cron
	Refresher Refresher
	Ctx       context.Context
}

// NewScheduler creates a scheduler using six-field (seconds) cron specs.
func NewScheduler(ctx context.Context, r Refresher) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Refresher: r,
		Ctx:       ctx,
	}
}

// Register adds the refresh task.
func (s *Scheduler) Register(refreshCron string) error {
	if _, err := s.Cron.AddFunc(refreshCron, s.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	logger.Info("scheduler started", logger.Int("entries", len(s.Cron.Entries())))
}

// Stop stops the scheduler and waits for a running refresh to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	logger.Info("scheduler stopped")
}

// RunNow refreshes immediately (RUN_ON_START).
func (s *Scheduler) RunNow() {
	s.refreshTask()
}

func (s *Scheduler) refreshTask() {
	if s.Ctx.Err() != nil {
		return
	}
	start := time.Now()
	logger.Info("running refresh task")
	if err := s.Refresher.RefreshAll(s.Ctx); err != nil {
		logger.Warn("refresh task finished with errors", logger.ErrorField(err), logger.Duration("took", time.Since(start)))
		return
	}
	logger.Info("refresh task done", logger.Duration("took", time.Since(start)))
}
