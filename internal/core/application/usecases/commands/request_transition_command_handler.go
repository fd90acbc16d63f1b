package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"ordering/internal/core/application/concurrency"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/services"
	"ordering/internal/core/ports"
)

const cancellationRefundReason = "order cancelled"

// RequestTransitionCommandHandler applies lifecycle transitions under the
// version check. Cancelling a PAID order writes the compensating refund in
// the same unit of work.
//
// Example:
//
//	o, err := handler.Handle(ctx, cmd)
//	var stale *order.StaleOrderError
//	if errors.As(err, &stale) {
//	    // re-read and show the user what changed
//	}
type RequestTransitionCommandHandler struct {
	uowFactory LedgerUoWFactory
	resolver   concurrency.Resolver
	machine    services.OrderStateMachine
	ledger     services.PaymentLedger
	metrics    ports.LifecycleMetrics
	logger     *slog.Logger
	now        Clock
}

func NewRequestTransitionCommandHandler(
	uowFactory LedgerUoWFactory,
	metrics ports.LifecycleMetrics,
	logger *slog.Logger,
) RequestTransitionCommandHandler {
	return RequestTransitionCommandHandler{
		uowFactory: uowFactory,
		resolver:   concurrency.NewResolver(),
		machine:    services.NewOrderStateMachine(services.NewRoleGateway()),
		ledger:     services.NewPaymentLedger(),
		metrics:    metrics,
		logger:     logger.With("component", "request-transition"),
		now:        SystemClock,
	}
}

// Handle returns the order after the request. A re-request of the current
// state returns the stored order without a write. A rejection is recorded
// once, for the final attempt.
func (h RequestTransitionCommandHandler) Handle(
	ctx context.Context,
	cmd RequestTransitionCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var from order.State
	attempt := func(ctx context.Context, version int64) (*order.Order, error) {
		o, seen, err := h.attempt(ctx, cmd, version)
		from = seen
		return o, err
	}

	var (
		result *order.Order
		err    error
	)
	if cmd.SilentRetry() {
		result, err = concurrency.RetryOnce(ctx, cmd.Version(), attempt,
			func(ctx context.Context) (int64, error) {
				return h.currentVersion(ctx, cmd.OrderID())
			},
		)
	} else {
		result, err = attempt(ctx, cmd.Version())
	}
	if err != nil {
		h.observeRejection(ctx, cmd, from, err)
		return nil, err
	}
	return result, nil
}

// attempt runs one unit of work and also returns the state it found.
func (h RequestTransitionCommandHandler) attempt(
	ctx context.Context,
	cmd RequestTransitionCommand,
	version int64,
) (*order.Order, order.State, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, order.StateUnknown, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	var (
		from      order.State
		refundDue bool
		at        = h.now()
	)
	orders := uow.OrderRepository()
	outcome, err := h.resolver.Apply(ctx, orders, cmd.OrderID(), version,
		func(current *order.Order) (*order.Order, error) {
			from = current.State()
			res, err := h.machine.Transition(current, cmd.To(), cmd.Actor(), at)
			refundDue = res.RefundDue
			return res.Order, err
		})
	if err != nil {
		return nil, from, err
	}
	if !outcome.Changed {
		return outcome.Order, from, nil
	}

	result := outcome.Order
	if refundDue {
		if result, err = h.refund(ctx, uow, result, at); err != nil {
			return nil, from, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, from, err
	}

	h.metrics.TransitionApplied(result.Mode(), from, cmd.To())
	if refundDue {
		h.metrics.PaymentRecorded("REFUND")
	}
	return result, from, nil
}

func (h RequestTransitionCommandHandler) refund(
	ctx context.Context,
	uow LedgerUoW,
	cancelled *order.Order,
	at time.Time,
) (*order.Order, error) {
	payments := uow.PaymentRepository()
	entries, err := payments.ListByOrder(ctx, cancelled.ID())
	if err != nil {
		return nil, err
	}

	res, err := h.ledger.Refund(cancelled, entries, cancellationRefundReason, at)
	if err != nil {
		return nil, err
	}
	if !res.Changed() {
		return cancelled, nil
	}

	if err = uow.OrderRepository().Update(ctx, res.Order, cancelled.Version()); err != nil {
		return nil, err
	}
	if err = payments.Add(ctx, *res.Entry); err != nil {
		return nil, err
	}
	return res.Order, nil
}

func (h RequestTransitionCommandHandler) currentVersion(ctx context.Context, id kernel.UUID) (int64, error) {
	o, err := h.uowFactory.Create().OrderRepository().Get(ctx, id)
	if err != nil {
		return 0, err
	}
	return o.Version(), nil
}

func (h RequestTransitionCommandHandler) observeRejection(
	ctx context.Context,
	cmd RequestTransitionCommand,
	from order.State,
	err error,
) {
	switch {
	case errors.Is(err, order.ErrUnauthorizedTransition):
		h.metrics.UnauthorizedAttempt(cmd.Actor().Role())
		h.logger.WarnContext(ctx, "unauthorized transition attempt",
			"order_id", cmd.OrderID().String(),
			"actor", cmd.Actor().String(),
			"from", from.String(),
			"to", cmd.To().String(),
		)
	case errors.Is(err, order.ErrStaleOrder):
		h.metrics.StaleConflict("transition")
	case errors.Is(err, order.ErrInvalidTransition):
		h.metrics.TransitionRejected("invalid")
	}
}
