package ports

import (
	"context"

	"ordering/internal/core/domain/model/order"
)

// OrderEventPublisher delivers committed order changes to other surfaces
// (message broker, live dashboards). Publishing happens after commit, so a
// failure never rolls back the order.
type OrderEventPublisher interface {
	Publish(ctx context.Context, events ...order.ChangedEvent) error
}
