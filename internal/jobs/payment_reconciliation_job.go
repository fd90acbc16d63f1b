package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"ordering/internal/core/application/usecases/queries"
)

// PendingPaymentsReportHandler builds the unsettled-orders report.
type PendingPaymentsReportHandler interface {
	Handle(ctx context.Context, query queries.PendingPaymentsReportQuery) (queries.PendingPaymentsReport, error)
}

// PendingPaymentsGauge exposes the report size.
type PendingPaymentsGauge interface {
	PendingPayments(n int)
}

// PaymentReconciliationJob reports finished orders whose payment is still
// PENDING or FAILED across all tenants.
type PaymentReconciliationJob struct {
	handler  PendingPaymentsReportHandler
	gauge    PendingPaymentsGauge
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewPaymentReconciliationJob(
	handler PendingPaymentsReportHandler,
	gauge PendingPaymentsGauge,
	schedule string,
	logger *slog.Logger,
) *PaymentReconciliationJob {
	return &PaymentReconciliationJob{
		handler:  handler,
		gauge:    gauge,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "payment_reconciliation_job"),
	}
}

func (j *PaymentReconciliationJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.RunOnce(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Payment reconciliation job started", "schedule", j.schedule)
	return nil
}

// RunOnce builds the platform-wide report, updates the gauge and logs
// every unsettled order.
func (j *PaymentReconciliationJob) RunOnce(ctx context.Context) {
	report, err := j.handler.Handle(ctx, queries.NewPlatformPendingPaymentsReportQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Payment reconciliation failed", "error", err)
		return
	}

	j.gauge.PendingPayments(len(report.Orders))
	if len(report.Orders) == 0 {
		return
	}

	j.logger.WarnContext(ctx, "Orders awaiting payment",
		"count", len(report.Orders),
		"outstanding", report.Outstanding.Minor(),
	)
	for _, p := range report.Orders {
		j.logger.InfoContext(ctx, "Unsettled order",
			"order_id", p.OrderID.String(),
			"tenant_id", p.TenantID.String(),
			"state", p.State.String(),
			"total", p.Total.Minor(),
			"finished_at", p.FinishedAt,
		)
	}
}

func (j *PaymentReconciliationJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Payment reconciliation job stopped")
}
