// Package jobs runs the ordering policies that depend on the passage of time.
//
// The order lifecycle core has no timers. Jobs here act through the same
// command and query handlers as any other surface, scheduled with
// github.com/robfig/cron/v3 (six-field expressions, seconds first).
//
// # Available Jobs
//
// 1. AutoCancelJob - cancels PLACED orders not accepted within a timeout,
// acting as the system super-admin. A kitchen that accepts first wins the
// version race and the order is skipped.
// 2. PaymentReconciliationJob - reports finished orders whose payment is
// still open and publishes the count as a gauge.
//
// # Usage
//
//	autoCancel := jobs.NewAutoCancelJob(cancelHandler, 15*time.Minute, 100, "*/30 * * * * *", logger)
//	reconcile := jobs.NewPaymentReconciliationJob(reportHandler, metrics, "0 */5 * * * *", logger)
//	jobManager := jobs.NewJobManager(autoCancel, reconcile)
//
//	// Blocks until ctx is cancelled, then waits for running jobs.
//	err := jobManager.Run(ctx)
//
// # Error Handling
//
// Job failures are logged and retried on the next tick. A failed start
// stops the jobs already started.
package jobs
