package cron

import (
	"context"
	"log/slog"
)

const (
	SessionSweepJob      = "sessionsweep"
	SessionSweepSchedule = "@every 1m"
)

// Sweeper drops expired sessions and returns how many were removed.
type Sweeper interface {
	Sweep() int
}

// RegisterSessionSweep schedules periodic eviction of idle in-process sessions.
// Call before StartCron.
func RegisterSessionSweep(s Sweeper, logger *slog.Logger) {
	Register(SessionSweepJob, SessionSweepSchedule, func(ctx context.Context) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if n := s.Sweep(); n > 0 {
			logger.Info("expired sessions removed", "job", SessionSweepJob, "count", n)
		}
		return nil
	})
}
