package queries

import (
	"errors"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/guard"
)

var ErrListOrdersByStateQueryIsNotConstructed = errors.New(
	"ListOrdersByStateQuery must be created via NewListOrdersByStateQuery constructor",
)

// ListOrdersByStateQuery lists a tenant's orders sitting in one state.
// Kitchen displays poll it per column (PLACED, PREPARING, READY).
//
// Example:
//
//	query, err := NewListOrdersByStateQuery(tenantID, order.Preparing)
//	if err != nil {
//	    return err
//	}
//	summaries, err := handler.Handle(ctx, query)
type ListOrdersByStateQuery struct {
	tenantID kernel.UUID
	state    order.State
	guard    guard.ConstructorGuard
}

func NewListOrdersByStateQuery(tenantID kernel.UUID, state order.State) (ListOrdersByStateQuery, error) {
	if err := errors.Join(tenantID.Validate(), state.Validate()); err != nil {
		return ListOrdersByStateQuery{}, err
	}
	return ListOrdersByStateQuery{tenantID: tenantID, state: state, guard: guard.NewConstructorGuard()}, nil
}

func (q ListOrdersByStateQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersByStateQueryIsNotConstructed)
}

func (q ListOrdersByStateQuery) TenantID() kernel.UUID {
	return q.tenantID
}

func (q ListOrdersByStateQuery) State() order.State {
	return q.state
}

// OrderSummary is one row of an order board.
type OrderSummary struct {
	ID            kernel.UUID
	CustomerID    kernel.UUID
	Mode          order.Mode
	TableRef      string
	State         order.State
	PaymentStatus order.PaymentStatus
	Total         kernel.Money
	Version       int64
	PartnerID     *kernel.UUID
	PlacedAt      time.Time
	ChangedAt     time.Time
}
