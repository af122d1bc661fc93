package cron

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"eyewear.GO/core/logger"
)

// StartCron schedules every registered job and starts the scheduler.
// Overlapping runs of the same job are skipped; panics are recovered.
func StartCron(ctx context.Context, deps *Deps) (*cron.Cron, error) {
	l := cron.PrintfLogger(logger.GetAppLogger())
	c := cron.New(cron.WithLogger(l), cron.WithChain(cron.Recover(l), cron.SkipIfStillRunning(l)))
	for name, j := range Jobs() {
		if _, err := c.AddFunc(j.Schedule, func() { runJob(ctx, name, j, deps) }); err != nil {
			return nil, fmt.Errorf("register job %s: %w", name, err)
		}
	}
	c.Start()
	return c, nil
}

// RunOnce runs a single registered job by name (case-insensitive).
func RunOnce(ctx context.Context, name string, deps *Deps) error {
	name = strings.ToLower(name)
	j, ok := Jobs()[name]
	if !ok {
		return fmt.Errorf("unknown job: %s", name)
	}
	return runJob(ctx, name, j, deps)
}

func runJob(ctx context.Context, name string, j Job, deps *Deps) error {
	start := time.Now()
	log := logger.WithContext(ctx).WithField("job", name)
	err := j.Run(ctx, deps)
	fields := logrus.Fields{"duration_ms": time.Since(start).Milliseconds()}
	if err != nil {
		log.WithFields(fields).WithError(err).Error("cron job failed")
		return err
	}
	log.WithFields(fields).Info("cron job done")
	return nil
}
