package commands

import (
	"context"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/services"
	"ordering/internal/core/ports"
)

// CommitOrderCommandHandler places orders. Amounts are priced once here and
// never recomputed afterwards.
//
// Example:
//
//	handler := NewCommitOrderCommandHandler(uowFactory, pricing, metrics)
//	o, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, cart.ErrEmptyCart) {
//	    // nothing to order
//	}
type CommitOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	machine    services.OrderStateMachine
	pricing    order.Pricing
	metrics    ports.LifecycleMetrics
	now        Clock
}

func NewCommitOrderCommandHandler(
	uowFactory OrderUoWFactory,
	pricing order.Pricing,
	metrics ports.LifecycleMetrics,
) CommitOrderCommandHandler {
	return CommitOrderCommandHandler{
		uowFactory: uowFactory,
		machine:    services.NewOrderStateMachine(services.NewRoleGateway()),
		pricing:    pricing,
		metrics:    metrics,
		now:        SystemClock,
	}
}

// Handle prices the cart and persists the new order at version 1. The cart is
// emptied once the order is committed and left as is on any failure.
func (h CommitOrderCommandHandler) Handle(ctx context.Context, cmd CommitOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	placed, err := h.machine.Commit(cmd.Cart(), cmd.Mode(), cmd.TableRef(), h.pricing, h.now())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, placed); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	cmd.Cart().Clear()

	h.metrics.OrderPlaced(placed.Mode())
	return placed, nil
}
