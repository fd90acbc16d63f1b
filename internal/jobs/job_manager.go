package jobs

import (
	"context"
	"fmt"
)

// JobManager coordinates the scheduled policy jobs.
type JobManager struct {
	autoCancelJob     *AutoCancelJob
	reconciliationJob *PaymentReconciliationJob
}

func NewJobManager(autoCancel *AutoCancelJob, reconciliation *PaymentReconciliationJob) *JobManager {
	return &JobManager{
		autoCancelJob:     autoCancel,
		reconciliationJob: reconciliation,
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.autoCancelJob.Start(); err != nil {
		return fmt.Errorf("failed to start auto-cancel job: %w", err)
	}

	if err := jm.reconciliationJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.autoCancelJob.Stop()
		return fmt.Errorf("failed to start payment reconciliation job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.reconciliationJob.Stop()
	jm.autoCancelJob.Stop()
}

// Run starts the jobs and stops them once ctx is done.
func (jm *JobManager) Run(ctx context.Context) error {
	if err := jm.StartAll(); err != nil {
		return err
	}
	<-ctx.Done()
	jm.StopAll()
	return nil
}
