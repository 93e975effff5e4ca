package usecase

import (
	"context"
	"time"

	"NewsRadar/internal/ports"
)

// Scheduler wires the cron driver with the digest flow.
type Scheduler struct {
	driver   ports.Scheduler
	pipeline *Pipeline
	subjects []string
}

// NewScheduler returns a helper to start/stop recurring digest runs.
func NewScheduler(driver ports.Scheduler, pipeline *Pipeline, subjects []string) *Scheduler {
	return &Scheduler{driver: driver, pipeline: pipeline, subjects: subjects}
}

// Start registers the digest flow with the provided scheduler.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.driver == nil || s.pipeline == nil {
		return nil
	}

	job := func(time.Time) {
		s.pipeline.ProcessAll(ctx, s.subjects)
	}

	return s.driver.Start(ctx, job)
}

// Stop gracefully tears down the underlying scheduler.
func (s *Scheduler) Stop(ctx context.Context) error {
	if s.driver == nil {
		return nil
	}

	return s.driver.Stop(ctx)
}
