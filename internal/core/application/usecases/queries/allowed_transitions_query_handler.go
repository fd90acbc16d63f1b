package queries

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/services"
	"ordering/internal/core/ports"
)

// AllowedTransitionsResponse carries the version the answer was computed
// against, so a client can send it straight back with RequestTransition.
type AllowedTransitionsResponse struct {
	OrderID kernel.UUID
	State   order.State
	Version int64
	Next    []order.State
}

// AllowedTransitionsQueryHandler answers from the same role table the state
// machine enforces, so buttons shown on any surface match what the core accepts.
type AllowedTransitionsQueryHandler struct {
	orders  ports.OrderRepository
	gateway services.RoleGateway
}

func NewAllowedTransitionsQueryHandler(orders ports.OrderRepository) AllowedTransitionsQueryHandler {
	return AllowedTransitionsQueryHandler{orders: orders, gateway: services.NewRoleGateway()}
}

// Handle returns an empty list for actors that do not own the order or when
// the order is terminal.
func (h AllowedTransitionsQueryHandler) Handle(
	ctx context.Context,
	query AllowedTransitionsQuery,
) (AllowedTransitionsResponse, error) {
	if err := query.Validate(); err != nil {
		return AllowedTransitionsResponse{}, err
	}

	o, err := h.orders.Get(ctx, query.OrderID())
	if err != nil {
		return AllowedTransitionsResponse{}, err
	}

	next := h.gateway.AllowedNext(query.Actor(), o)
	if next == nil {
		next = []order.State{}
	}

	return AllowedTransitionsResponse{OrderID: o.ID(), State: o.State(), Version: o.Version(), Next: next}, nil
}
