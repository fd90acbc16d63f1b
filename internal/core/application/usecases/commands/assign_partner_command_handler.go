package commands

import (
	"context"
	"errors"
	"log/slog"

	"ordering/internal/core/application/concurrency"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/partner"
	"ordering/internal/core/domain/services"
	"ordering/internal/core/ports"
)

// AssignPartnerCommandHandler assigns a partner to an order and captures the
// fee from the configured schedule. The assignment is a versioned write like
// any transition.
//
// Example:
//
//	handler := NewAssignPartnerCommandHandler(uowFactory, schedule, metrics, logger)
//	o, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, partner.ErrPartnerIsInactive) {
//	    // pick someone else
//	}
type AssignPartnerCommandHandler struct {
	uowFactory UoWFactory
	resolver   concurrency.Resolver
	assigner   services.PartnerAssigner
	schedule   partner.FeeSchedule
	metrics    ports.LifecycleMetrics
	logger     *slog.Logger
	now        Clock
}

func NewAssignPartnerCommandHandler(
	uowFactory UoWFactory,
	schedule partner.FeeSchedule,
	metrics ports.LifecycleMetrics,
	logger *slog.Logger,
) AssignPartnerCommandHandler {
	return AssignPartnerCommandHandler{
		uowFactory: uowFactory,
		resolver:   concurrency.NewResolver(),
		assigner:   services.NewPartnerAssigner(services.NewRoleGateway()),
		schedule:   schedule,
		metrics:    metrics,
		logger:     logger.With("component", "assign-partner"),
		now:        SystemClock,
	}
}

func (h AssignPartnerCommandHandler) Handle(ctx context.Context, cmd AssignPartnerCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	p, err := uow.PartnerRepository().Get(ctx, cmd.PartnerID())
	if err != nil {
		return nil, err
	}

	at := h.now()
	outcome, err := h.resolver.Apply(ctx, uow.OrderRepository(), cmd.OrderID(), cmd.Version(),
		func(current *order.Order) (*order.Order, error) {
			return h.assigner.Assign(current, p, h.schedule, cmd.Pickup(), cmd.Dropoff(), cmd.Actor(), at)
		})
	switch {
	case errors.Is(err, order.ErrUnauthorizedTransition):
		h.metrics.UnauthorizedAttempt(cmd.Actor().Role())
		h.logger.WarnContext(ctx, "unauthorized assignment attempt",
			"order_id", cmd.OrderID().String(),
			"partner_id", cmd.PartnerID().String(),
			"actor", cmd.Actor().String(),
		)
		return nil, err
	case errors.Is(err, order.ErrStaleOrder):
		h.metrics.StaleConflict("assignment")
		return nil, err
	case err != nil:
		return nil, err
	}
	if !outcome.Changed {
		return outcome.Order, nil
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	assignment, _ := outcome.Order.Assignment()
	h.logger.InfoContext(ctx, "partner assigned",
		"order_id", cmd.OrderID().String(),
		"partner_id", cmd.PartnerID().String(),
		"distance", assignment.Distance(),
		"fee", assignment.Fee().String(),
	)
	return outcome.Order, nil
}
