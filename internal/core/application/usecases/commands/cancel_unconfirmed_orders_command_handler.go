package commands

import (
	"context"
	"errors"
	"log/slog"

	"ordering/internal/core/domain/model/actor"
	"ordering/internal/core/domain/model/order"
)

// TransitionHandler is the subset of RequestTransitionCommandHandler the
// auto-cancel policy needs.
type TransitionHandler interface {
	Handle(ctx context.Context, cmd RequestTransitionCommand) (*order.Order, error)
}

// CancelUnconfirmedOrdersCommandHandler is the auto-cancel policy. It requests
// CANCELLED as the system super-admin through the regular transition path,
// so a kitchen that accepts the order first simply wins the version race.
type CancelUnconfirmedOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	transition TransitionHandler
	logger     *slog.Logger
}

func NewCancelUnconfirmedOrdersCommandHandler(
	uowFactory OrderUoWFactory,
	transition TransitionHandler,
	logger *slog.Logger,
) CancelUnconfirmedOrdersCommandHandler {
	return CancelUnconfirmedOrdersCommandHandler{
		uowFactory: uowFactory,
		transition: transition,
		logger:     logger.With("component", "auto-cancel"),
	}
}

// Handle returns how many orders were cancelled. Orders that moved on
// concurrently are skipped; other failures are joined and returned after
// every candidate was tried.
func (h CancelUnconfirmedOrdersCommandHandler) Handle(
	ctx context.Context,
	cmd CancelUnconfirmedOrdersCommand,
) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	candidates, err := h.uowFactory.Create().OrderRepository().ListUnconfirmed(ctx, cmd.PlacedBefore(), cmd.Limit())
	if err != nil {
		return 0, err
	}

	var (
		cancelled int
		failures  []error
	)
	for _, o := range candidates {
		req, err := NewRequestTransitionCommand(o.ID(), o.Version(), order.Cancelled, actor.System())
		if err != nil {
			failures = append(failures, err)
			continue
		}

		_, err = h.transition.Handle(ctx, req)
		switch {
		case errors.Is(err, order.ErrStaleOrder):
			h.logger.InfoContext(ctx, "order moved on before auto-cancel", "order_id", o.ID().String())
		case err != nil:
			h.logger.ErrorContext(ctx, "auto-cancel failed", "order_id", o.ID().String(), "error", err)
			failures = append(failures, err)
		default:
			cancelled++
			h.logger.InfoContext(ctx, "unconfirmed order cancelled", "order_id", o.ID().String())
		}
	}

	return cancelled, errors.Join(failures...)
}
