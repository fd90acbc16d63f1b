// Package ports defines the contracts between the ordering core and its
// adapters: persistence, event publishing and metrics.
package ports

import (
	"context"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a newly committed order with its items and PLACED timestamp.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists aggregate only if the stored version still equals
	// expectedVersion (compare-and-swap). When another writer got there first
	// it returns *order.StaleOrderError and stores nothing.
	Update(ctx context.Context, aggregate *order.Order, expectedVersion int64) error

	// Get returns the order or errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// ListByState returns the tenant's orders currently in state, oldest first.
	ListByState(ctx context.Context, tenantID kernel.UUID, state order.State) ([]*order.Order, error)

	// ListByPartner returns orders assigned to the partner that entered any
	// state within the window, oldest first.
	ListByPartner(ctx context.Context, partnerID kernel.UUID, window kernel.TimeWindow) ([]*order.Order, error)

	// ListPendingPayments returns DELIVERED or SERVED orders whose payment is
	// still PENDING, oldest first. A nil tenantID covers every tenant.
	ListPendingPayments(ctx context.Context, tenantID *kernel.UUID) ([]*order.Order, error)

	// ListUnconfirmed returns PLACED orders of every tenant placed before the cutoff.
	ListUnconfirmed(ctx context.Context, placedBefore time.Time, limit int) ([]*order.Order, error)
}
