// Package jobs runs periodic maintenance on a cron schedule.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/repositories"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/pkg/metrics"
)

// cronLogger adapts zerolog to cron.Logger
type cronLogger struct {
	logger zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error().Err(err).Fields(keysAndValues).Msg(msg)
}

// Scheduler owns the cron runner
type Scheduler struct {
	cron   *cron.Cron
	logger zerolog.Logger
}

// NewScheduler creates a scheduler. Runs of the same job never overlap.
func NewScheduler(logger zerolog.Logger) *Scheduler {
	cl := cronLogger{logger: logger}
	return &Scheduler{
		cron:   cron.New(cron.WithLogger(cl), cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl))),
		logger: logger,
	}
}

// Add registers fn under name with a cron spec such as "@every 5m"
func (s *Scheduler) Add(name, spec string, timeout time.Duration, fn func(ctx context.Context) error) error {
	_, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		start := time.Now()
		if err := fn(ctx); err != nil {
			s.logger.Error().Err(err).Str("job", name).Msg("Job failed")
			return
		}
		s.logger.Debug().Str("job", name).Dur("elapsed", time.Since(start)).Msg("Job finished")
	})
	if err != nil {
		return fmt.Errorf("invalid schedule %q for job %s: %w", spec, name, err)
	}
	s.logger.Info().Str("job", name).Str("schedule", spec).Msg("Job scheduled")
	return nil
}

// Start runs the scheduler in the background
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops scheduling and waits for running jobs until ctx is done
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.logger.Warn().Msg("Timed out waiting for running jobs")
	}
}

// PurgeExpiredCodes returns a job deleting verification codes past their expiry
func PurgeExpiredCodes(codes repositories.VerificationCodeRepository, m *metrics.Metrics, logger zerolog.Logger, now func() time.Time) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		removed, err := codes.DeleteExpired(ctx, now())
		if err != nil {
			return err
		}
		m.AddPurgedCodes(removed)
		if removed > 0 {
			logger.Info().Int64("removed", removed).Msg("Expired verification codes purged")
		}
		return nil
	}
}
