package cron

import (
	"context"
	"log/slog"
	"time"

	robfig "github.com/robfig/cron/v3"

	"chatshop.GO/config"
)

// slogAdapter lets robfig's chain wrappers report through slog.
type slogAdapter struct{ logger *slog.Logger }

func (a slogAdapter) Info(msg string, keysAndValues ...interface{}) {
	a.logger.Debug(msg, keysAndValues...)
}

func (a slogAdapter) Error(err error, msg string, keysAndValues ...interface{}) {
	a.logger.Error(msg, append(keysAndValues, "err", err)...)
}

// StartCron schedules config.CronJobs and registered jobs and starts the
// scheduler. Jobs receive ctx; a panicking job is recovered and a run still in
// progress skips the next tick.
func StartCron(ctx context.Context, logger *slog.Logger) (*robfig.Cron, error) {
	adapter := slogAdapter{logger: logger}
	c := robfig.New(robfig.WithChain(robfig.Recover(adapter), robfig.SkipIfStillRunning(adapter)))

	jobs := Jobs()
	for name, builtin := range config.CronJobs {
		spec, err := ParseSchedule(builtin.Schedule)
		if err != nil {
			return nil, err
		}
		fn := builtin.Job
		jobs = append(jobs, Job{Name: name, Schedule: builtin.Schedule, spec: spec, Run: func(context.Context) error {
			fn()
			return nil
		}})
	}

	for _, j := range jobs {
		c.Schedule(j.spec, robfig.FuncJob(runner(ctx, logger, j)))
		logger.Info("cron job scheduled", "job", j.Name, "schedule", j.Schedule, "next", j.Next(time.Now()))
	}
	c.Start()
	return c, nil
}

// RunOnce executes a single job by name outside the scheduler.
func RunOnce(ctx context.Context, name string) (bool, error) {
	if builtin, ok := config.CronJobs[name]; ok {
		builtin.Job()
		return true, nil
	}
	j, ok := Lookup(name)
	if !ok {
		return false, nil
	}
	return true, j.Run(ctx)
}

func runner(ctx context.Context, logger *slog.Logger, j Job) func() {
	return func() {
		start := time.Now()
		if err := j.Run(ctx); err != nil {
			logger.Error("cron job failed", "job", j.Name, "err", err)
			return
		}
		logger.Debug("cron job finished", "job", j.Name, "duration_ms", time.Since(start).Milliseconds())
	}
}
