package services

import (
	"time"

	"ordering/internal/core/domain/model/actor"
	"ordering/internal/core/domain/model/cart"
	"ordering/internal/core/domain/model/order"
)

// TransitionResult is the outcome of a transition request.
type TransitionResult struct {
	// Order is the record after the request. It is the input record when
	// nothing changed.
	Order *order.Order
	// Changed is false for an idempotent re-request of the current state.
	Changed bool
	// RefundDue is set when a PAID order was cancelled and the payment must be
	// compensated in the same unit of work.
	RefundDue bool
}

// OrderStateMachine validates and applies lifecycle transitions. It is pure:
// persistence and version checks happen in the concurrency resolver.
//
// Checks, in order:
//  1. ownership
//  2. idempotence: the current state is returned unchanged, even when terminal
//  3. terminal states absorb every other request
//  4. the edge must exist for the order's mode
//  5. the role must be allowed to take the edge
//  6. customers may only cancel before preparation starts
//
// Example usage:
//
//	machine := services.NewOrderStateMachine(services.NewRoleGateway())
//	res, err := machine.Transition(o, order.Ready, staff, time.Now())
//	if err != nil {
//	    return err
//	}
//	if res.Changed {
//	    // persist res.Order
//	}
type OrderStateMachine struct {
	gateway RoleGateway
}

func NewOrderStateMachine(gateway RoleGateway) OrderStateMachine {
	return OrderStateMachine{gateway: gateway}
}

// Commit turns the cart into a PLACED order.
func (m OrderStateMachine) Commit(
	c *cart.Cart,
	mode order.Mode,
	tableRef string,
	pricing order.Pricing,
	at time.Time,
) (*order.Order, error) {
	return order.Place(c, mode, tableRef, pricing, at)
}

// Transition evaluates a request to move o to the requested state.
//
// Parameters:
//   - o: the current record; never modified
//   - to: requested state
//   - who: acting party
//   - at: request instant, clamped so timestamps never decrease
//
// Returns:
//   - TransitionResult: the new or unchanged record
//   - error: UnauthorizedTransitionError or InvalidTransitionError
func (m OrderStateMachine) Transition(
	o *order.Order,
	to order.State,
	who actor.Actor,
	at time.Time,
) (TransitionResult, error) {
	if err := o.Validate(); err != nil {
		return TransitionResult{}, err
	}
	from := o.State()

	if !m.gateway.Owns(who, o.Ownership()) {
		return TransitionResult{}, order.NewUnauthorizedTransitionError(o.ID(), who, from, to,
			"actor does not own the order")
	}
	if to == from {
		return TransitionResult{Order: o}, nil
	}
	if from.IsTerminal() {
		return TransitionResult{}, order.NewInvalidTransitionError(o.ID(), from, to,
			"order is already "+from.String())
	}
	if !order.HasEdge(o.Mode(), from, to) {
		return TransitionResult{}, order.NewInvalidTransitionError(o.ID(), from, to,
			"no such edge for "+o.Mode().String()+" orders")
	}
	if !m.gateway.RoleMayTake(who.Role(), o.Mode(), from, to) {
		return TransitionResult{}, order.NewUnauthorizedTransitionError(o.ID(), who, from, to,
			who.Role().String()+" may not take this edge")
	}
	if to == order.Cancelled && !cancelWindowOpen(who.Role(), from) {
		return TransitionResult{}, order.NewInvalidTransitionError(o.ID(), from, to,
			"customers can only cancel before preparation starts")
	}

	next, err := o.Advance(to, at)
	if err != nil {
		return TransitionResult{}, err
	}
	return TransitionResult{
		Order:     next,
		Changed:   true,
		RefundDue: to == order.Cancelled && o.PaymentStatus() == order.PaymentPaid,
	}, nil
}
