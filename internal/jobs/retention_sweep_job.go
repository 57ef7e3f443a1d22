package jobs

import (
	"context"
	"log/slog"

	"hawkerflow/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultSweepSchedule runs the sweep daily at 03:00 server local time.
// The expression has a leading seconds field.
const DefaultSweepSchedule = "0 0 3 * * *"

type stallSweeper interface {
	Handle(ctx context.Context, cmd commands.SweepStallsCommand) (commands.SweepResult, error)
}

// RetentionSweepJob purges leftover sub-orders and resets stall totals on a
// cron schedule. A run that is still going when the next one is due causes
// the next one to be skipped.
type RetentionSweepJob struct {
	handler   stallSweeper
	schedule  string
	batchSize int
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewRetentionSweepJob uses DefaultSweepSchedule when schedule is empty and
// commands.DefaultSweepBatchSize when batchSize is not positive.
func NewRetentionSweepJob(handler stallSweeper, schedule string, batchSize int, logger *slog.Logger) *RetentionSweepJob {
	if schedule == "" {
		schedule = DefaultSweepSchedule
	}
	logger = logger.With("component", "retention_sweep_job")
	cronLog := cronLogger{logger: logger}

	return &RetentionSweepJob{
		handler:   handler,
		schedule:  schedule,
		batchSize: batchSize,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithLogger(cronLog),
			cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)),
		),
		logger: logger,
	}
}

// Start registers the sweep and starts the scheduler. An invalid schedule is
// reported here rather than at the first tick.
func (j *RetentionSweepJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Retention sweep job started", "schedule", j.schedule)
	return nil
}

// Run performs one sweep.
func (j *RetentionSweepJob) Run(ctx context.Context) {
	result, err := j.handler.Handle(ctx, commands.NewSweepStallsCommand(j.batchSize))
	if err != nil {
		j.logger.ErrorContext(ctx, "Retention sweep failed",
			"stalls_scanned", result.StallsScanned,
			"stalls_reset", result.StallsReset,
			"error", err,
		)
		return
	}

	j.logger.InfoContext(ctx, "Retention sweep finished",
		"stalls_scanned", result.StallsScanned,
		"stalls_reset", result.StallsReset,
		"sub_orders_purged", result.SubOrdersPurged,
	)
}

// Stop stops the scheduler and waits for a running sweep to return.
func (j *RetentionSweepJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Retention sweep job stopped")
}

// cronLogger routes the scheduler's own messages to slog.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error(msg, append(keysAndValues, "error", err)...)
}
