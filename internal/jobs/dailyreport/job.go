// Package dailyreport schedules the end-of-day fleet usage summary.
package dailyreport

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/siamfleet/fleet-usage-api/internal/app/report"
	"github.com/siamfleet/fleet-usage-api/internal/ports/out/clock"
	"github.com/siamfleet/fleet-usage-api/internal/ports/out/notifier"
)

// Schedule fires at 18:00 every day in the configured location.
const Schedule = "0 18 * * *"

const runTimeout = time.Minute

// Job builds the daily usage summary and delivers it to the notifier.
// A Job constructed without a notifier stays disabled for the process
// lifetime and every scheduled run becomes a no-op.
type Job struct {
	reports  *report.Service
	notifier notifier.Notifier
	clk      clock.Clock
	log      *zap.Logger
	disabled bool
}

func New(reports *report.Service, n notifier.Notifier, clk clock.Clock, log *zap.Logger) *Job {
	j := &Job{
		reports:  reports,
		notifier: n,
		clk:      clk,
		log:      log,
	}
	if n == nil {
		j.disabled = true
		log.Warn("daily report disabled: telegram credentials not configured")
	}
	return j
}

// Disabled reports whether the job will ever send.
func (j *Job) Disabled() bool {
	return j.disabled
}

// Start registers the cron entry and returns a function that stops the
// scheduler and waits for any in-flight run to finish.
func (j *Job) Start(loc *time.Location) (stop func(), err error) {
	c := cron.New(cron.WithLocation(loc))
	if _, err := c.AddFunc(Schedule, j.Run); err != nil {
		return nil, err
	}
	c.Start()
	return func() {
		<-c.Stop().Done()
	}, nil
}

// Run executes one report cycle. Errors are logged, never propagated,
// so a failed delivery cannot take the scheduler down.
func (j *Job) Run() {
	if j.disabled {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			j.log.Error("daily report panicked", zap.Any("panic", r))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	text, err := j.reports.BuildDailySummary(ctx, j.clk.Now())
	if err != nil {
		j.log.Error("build daily summary", zap.Error(err))
		return
	}
	if err := j.notifier.Send(ctx, text); err != nil {
		j.log.Error("send daily summary", zap.Error(err))
		return
	}
	j.log.Info("daily summary sent")
}
