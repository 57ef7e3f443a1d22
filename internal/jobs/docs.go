// Package jobs provides scheduled background tasks for the fulfillment service.
//
// Jobs are built on github.com/robfig/cron/v3 with the seconds field enabled,
// so every schedule has six fields.
//
// # Available Jobs
//
// RetentionSweepJob runs once a day (DefaultSweepSchedule, 03:00 local time).
// It deletes the sub-orders still open at that time and resets the wait time
// and earnings of the stalls that had any. Stalls without open sub-orders are
// not touched.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(sweepHandler, cfg.SweepSchedule, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed sweep is logged and retried at the next scheduled time. Panics are
// recovered by the scheduler and overlapping runs are skipped.
package jobs
