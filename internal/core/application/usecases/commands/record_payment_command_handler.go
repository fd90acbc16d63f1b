package commands

import (
	"context"
	"log/slog"

	"ordering/internal/core/application/concurrency"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/payment"
	"ordering/internal/core/domain/services"
	"ordering/internal/core/ports"
)

// RecordPaymentCommandHandler writes payment outcomes to the ledger and the
// order's payment status in one unit of work. Recording an outcome the order
// already has changes nothing.
type RecordPaymentCommandHandler struct {
	uowFactory LedgerUoWFactory
	resolver   concurrency.Resolver
	ledger     services.PaymentLedger
	metrics    ports.LifecycleMetrics
	logger     *slog.Logger
	now        Clock
}

func NewRecordPaymentCommandHandler(
	uowFactory LedgerUoWFactory,
	metrics ports.LifecycleMetrics,
	logger *slog.Logger,
) RecordPaymentCommandHandler {
	return RecordPaymentCommandHandler{
		uowFactory: uowFactory,
		resolver:   concurrency.NewResolver(),
		ledger:     services.NewPaymentLedger(),
		metrics:    metrics,
		logger:     logger.With("component", "record-payment"),
		now:        SystemClock,
	}
}

// Handle applies the outcome against the latest version of the order,
// retrying when a concurrent transition wins the race.
func (h RecordPaymentCommandHandler) Handle(ctx context.Context, cmd RecordPaymentCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return retryOnStale(ctx,
		func() { h.metrics.StaleConflict("payment") },
		func(ctx context.Context) (*order.Order, error) {
			return h.attempt(ctx, cmd)
		},
	)
}

func (h RecordPaymentCommandHandler) attempt(ctx context.Context, cmd RecordPaymentCommand) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	var (
		entry *payment.Entry
		at    = h.now()
	)
	outcome, err := h.resolver.ApplyLatest(ctx, uow.OrderRepository(), cmd.OrderID(),
		func(current *order.Order) (*order.Order, error) {
			var (
				res services.LedgerResult
				err error
			)
			if cmd.Outcome() == order.PaymentPaid {
				res, err = h.ledger.MarkPaid(current, cmd.Method(), at)
			} else {
				res, err = h.ledger.MarkFailed(current, cmd.Reason(), at)
			}
			entry = res.Entry
			return res.Order, err
		})
	if err != nil {
		return nil, err
	}
	if !outcome.Changed {
		return outcome.Order, nil
	}

	if err = uow.PaymentRepository().Add(ctx, *entry); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.metrics.PaymentRecorded(entry.Kind().String())
	h.logger.InfoContext(ctx, "payment recorded",
		"order_id", cmd.OrderID().String(),
		"kind", entry.Kind().String(),
		"amount", entry.Amount().String(),
	)
	return outcome.Order, nil
}
