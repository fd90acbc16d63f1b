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

// RequestRefundCommandHandler writes a REFUND entry linked to the order's
// latest PAYMENT entry and moves the payment status to REFUNDED. A refund of
// an order that is not PAID fails with payment.RefundNotAllowedError.
type RequestRefundCommandHandler struct {
	uowFactory LedgerUoWFactory
	resolver   concurrency.Resolver
	ledger     services.PaymentLedger
	metrics    ports.LifecycleMetrics
	logger     *slog.Logger
	now        Clock
}

func NewRequestRefundCommandHandler(
	uowFactory LedgerUoWFactory,
	metrics ports.LifecycleMetrics,
	logger *slog.Logger,
) RequestRefundCommandHandler {
	return RequestRefundCommandHandler{
		uowFactory: uowFactory,
		resolver:   concurrency.NewResolver(),
		ledger:     services.NewPaymentLedger(),
		metrics:    metrics,
		logger:     logger.With("component", "request-refund"),
		now:        SystemClock,
	}
}

func (h RequestRefundCommandHandler) Handle(ctx context.Context, cmd RequestRefundCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return retryOnStale(ctx,
		func() { h.metrics.StaleConflict("refund") },
		func(ctx context.Context) (*order.Order, error) {
			return h.attempt(ctx, cmd)
		},
	)
}

func (h RequestRefundCommandHandler) attempt(ctx context.Context, cmd RequestRefundCommand) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	payments := uow.PaymentRepository()
	entries, err := payments.ListByOrder(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	var (
		entry *payment.Entry
		at    = h.now()
	)
	outcome, err := h.resolver.ApplyLatest(ctx, uow.OrderRepository(), cmd.OrderID(),
		func(current *order.Order) (*order.Order, error) {
			res, err := h.ledger.Refund(current, entries, cmd.Reason(), at)
			entry = res.Entry
			return res.Order, err
		})
	if err != nil {
		return nil, err
	}
	if !outcome.Changed {
		return outcome.Order, nil
	}

	if err = payments.Add(ctx, *entry); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.metrics.PaymentRecorded(entry.Kind().String())
	h.logger.InfoContext(ctx, "refund recorded",
		"order_id", cmd.OrderID().String(),
		"amount", entry.Amount().String(),
	)
	return outcome.Order, nil
}
