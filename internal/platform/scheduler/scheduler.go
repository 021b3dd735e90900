// Package scheduler runs periodic maintenance jobs on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultSessionCleanupSpec runs the session cleanup every 15 minutes.
const DefaultSessionCleanupSpec = "@every 15m"

// jobTimeout bounds a single job run.
const jobTimeout = time.Minute

// SessionCleaner deletes expired sessions.
type SessionCleaner interface {
	CleanupExpiredSessions(ctx context.Context) (int64, error)
}

// SessionCleanupSpec returns SESSION_CLEANUP_SCHEDULE or the default.
func SessionCleanupSpec() string {
	if v := os.Getenv("SESSION_CLEANUP_SCHEDULE"); v != "" {
		return v
	}
	return DefaultSessionCleanupSpec
}

// Scheduler wraps a cron runner whose jobs never overlap themselves.
type Scheduler struct {
	cron *cron.Cron
}

// New creates an empty scheduler logging through the default slog logger.
func New() *Scheduler {
	logger := cronLogger{log: slog.Default().With("component", "scheduler")}
	return &Scheduler{
		cron: cron.New(
			cron.WithLogger(logger),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		),
	}
}

// cronLogger adapts slog to cron.Logger. cron's Info messages are debug noise
// (wake, run, skip), so they go out at debug level.
type cronLogger struct {
	log *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error(msg, append(keysAndValues, "error", err)...)
}

// AddJob registers fn under name on spec.
func (s *Scheduler) AddJob(name, spec string, fn func(ctx context.Context) error) error {
	_, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		start := time.Now()
		if err := fn(ctx); err != nil {
			slog.Error("scheduled job failed", "job", name, "error", err)
			return
		}
		slog.Debug("scheduled job finished", "job", name, "elapsed", time.Since(start))
	})
	if err != nil {
		return fmt.Errorf("failed to schedule %s: %w", name, err)
	}
	slog.Info("job scheduled", "job", name, "spec", spec)
	return nil
}

// AddSessionCleanup schedules expired-session deletion.
func (s *Scheduler) AddSessionCleanup(spec string, cleaner SessionCleaner) error {
	return s.AddJob("session-cleanup", spec, func(ctx context.Context) error {
		_, err := cleaner.CleanupExpiredSessions(ctx)
		return err
	})
}

// Len returns the number of registered jobs.
func (s *Scheduler) Len() int {
	return len(s.cron.Entries())
}

// Start runs the scheduler in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops scheduling and waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		slog.Warn("scheduler stop timed out with jobs still running")
	}
}
