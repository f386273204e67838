// Package jobs corre las tareas periódicas del servicio: el reset diario de
// status de las tomas y la limpieza de buckets del rate limiter.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"

	"medicine-reminder/internal/platform/logger"
)

// StatusResetter vuelve todas las tomas a pending. medicines.Service lo cumple.
type StatusResetter interface {
	ResetDailyStatus(ctx context.Context) (int, error)
}

// Cleaner libera estado ocioso. ratelimit.Limiter lo cumple.
type Cleaner interface {
	Cleanup() int
}

type Options struct {
	Resetter StatusResetter // nil => sin reset diario
	ResetAt  string         // "HH:MM" hora local

	Cleaner         Cleaner // nil => sin limpieza
	CleanupInterval time.Duration

	Logger   logger.Logger
	Location *time.Location
}

type Scheduler struct {
	opts      Options
	log       logger.Logger
	scheduler *gocron.Scheduler
}

func NewScheduler(opts Options) *Scheduler {
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.ResetAt == "" {
		opts.ResetAt = "00:00"
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = 10 * time.Minute
	}
	return &Scheduler{
		opts:      opts,
		log:       opts.Logger.With(map[string]any{"component": "jobs"}),
		scheduler: gocron.NewScheduler(opts.Location),
	}
}

// Start registra los jobs y arranca el scheduler en background.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.opts.Resetter != nil {
		_, err := s.scheduler.Every(1).Day().At(s.opts.ResetAt).Do(func() {
			s.RunStatusReset(ctx)
		})
		if err != nil {
			return fmt.Errorf("schedule status reset: %w", err)
		}
	}

	if s.opts.Cleaner != nil {
		_, err := s.scheduler.Every(s.opts.CleanupInterval).WaitForSchedule().Do(func() {
			n := s.opts.Cleaner.Cleanup()
			s.log.Debug("rate limit cleanup", map[string]any{"active_buckets": n})
		})
		if err != nil {
			return fmt.Errorf("schedule limiter cleanup: %w", err)
		}
	}

	s.scheduler.StartAsync()
	s.log.Info("jobs started", map[string]any{"jobs": s.scheduler.Len(), "reset_at": s.opts.ResetAt})
	return nil
}

// RunStatusReset corre el reset una vez. Los errores se loguean; el job sigue agendado.
func (s *Scheduler) RunStatusReset(ctx context.Context) {
	if s.opts.Resetter == nil {
		return
	}
	start := time.Now()
	n, err := s.opts.Resetter.ResetDailyStatus(ctx)
	if err != nil {
		s.log.Error("daily status reset failed", map[string]any{"error": err})
		return
	}
	s.log.Info("daily status reset", map[string]any{"updated": n, "duration_ms": time.Since(start).Milliseconds()})
}

func (s *Scheduler) Len() int {
	return s.scheduler.Len()
}

func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}
