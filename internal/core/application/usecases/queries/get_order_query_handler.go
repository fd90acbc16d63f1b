package queries

import (
	"context"

	"ordering/internal/core/domain/services"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"
)

// GetOrderQueryHandler returns an order with the transitions its reader may request next.
//
// Example:
//
//	handler := NewGetOrderQueryHandler(orderRepository)
//	query, _ := NewGetOrderQuery(orderID, kitchen)
//	view, err := handler.Handle(ctx, query)
//	// view.AllowedNext == [PREPARING CANCELLED] for a freshly accepted order
type GetOrderQueryHandler struct {
	orders  ports.OrderRepository
	gateway services.RoleGateway
}

func NewGetOrderQueryHandler(orders ports.OrderRepository) GetOrderQueryHandler {
	return GetOrderQueryHandler{orders: orders, gateway: services.NewRoleGateway()}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	o, err := h.orders.Get(ctx, query.OrderID())
	if err != nil {
		return OrderView{}, err
	}

	if !h.gateway.Owns(query.Actor(), o.Ownership()) {
		return OrderView{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}

	return NewOrderView(o, h.gateway.AllowedNext(query.Actor(), o))
}
