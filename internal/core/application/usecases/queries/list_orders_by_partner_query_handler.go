package queries

import (
	"context"

	"ordering/internal/core/ports"
)

type ListOrdersByPartnerQueryHandler struct {
	orders ports.OrderRepository
}

func NewListOrdersByPartnerQueryHandler(orders ports.OrderRepository) ListOrdersByPartnerQueryHandler {
	return ListOrdersByPartnerQueryHandler{orders: orders}
}

// Handle returns the partner's orders that entered any state within the window, oldest first.
func (h ListOrdersByPartnerQueryHandler) Handle(
	ctx context.Context,
	query ListOrdersByPartnerQuery,
) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders, err := h.orders.ListByPartner(ctx, query.PartnerID(), query.Window())
	if err != nil {
		return nil, err
	}

	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		view, viewErr := NewOrderView(o, nil)
		if viewErr != nil {
			return nil, viewErr
		}
		views = append(views, view)
	}

	return views, nil
}
