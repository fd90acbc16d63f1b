package order

import (
	"errors"
	"fmt"

	"ordering/internal/core/domain/model/actor"
	"ordering/internal/core/domain/model/kernel"
)

var (
	// ErrInvalidTransition means the requested edge does not exist for the order right now.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrUnauthorizedTransition means the edge exists but the actor may not take it.
	ErrUnauthorizedTransition = errors.New("unauthorized transition")

	// ErrStaleOrder means the caller acted on a version that is no longer current.
	ErrStaleOrder = errors.New("stale order")
)

// InvalidTransitionError reports a request outside the lifecycle graph: a
// missing edge, a terminal order or a closed cancellation window.
type InvalidTransitionError struct {
	OrderID kernel.UUID
	From    State
	To      State
	Reason  string
}

func NewInvalidTransitionError(orderID kernel.UUID, from State, to State, reason string) *InvalidTransitionError {
	return &InvalidTransitionError{OrderID: orderID, From: from, To: to, Reason: reason}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: order %s %s -> %s: %s", ErrInvalidTransition, e.OrderID, e.From, e.To, e.Reason)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// UnauthorizedTransitionError reports an actor acting outside its role or
// ownership. It is an audit event, distinct from an invalid transition.
type UnauthorizedTransitionError struct {
	OrderID kernel.UUID
	Role    actor.Role
	ActorID kernel.UUID
	From    State
	To      State
	Reason  string
}

func NewUnauthorizedTransitionError(
	orderID kernel.UUID,
	who actor.Actor,
	from State,
	to State,
	reason string,
) *UnauthorizedTransitionError {
	return &UnauthorizedTransitionError{
		OrderID: orderID,
		Role:    who.Role(),
		ActorID: who.ID(),
		From:    from,
		To:      to,
		Reason:  reason,
	}
}

func (e *UnauthorizedTransitionError) Error() string {
	return fmt.Sprintf("%s: %s %s on order %s %s -> %s: %s",
		ErrUnauthorizedTransition, e.Role, e.ActorID, e.OrderID, e.From, e.To, e.Reason)
}

func (e *UnauthorizedTransitionError) Unwrap() error {
	return ErrUnauthorizedTransition
}

// StaleOrderError is returned when the version a writer read is no longer
// stored. Actual is zero when the conflict was detected by a failed
// compare-and-swap and the winning version is unknown.
type StaleOrderError struct {
	OrderID  kernel.UUID
	Expected int64
	Actual   int64
}

func NewStaleOrderError(orderID kernel.UUID, expected int64, actual int64) *StaleOrderError {
	return &StaleOrderError{OrderID: orderID, Expected: expected, Actual: actual}
}

func (e *StaleOrderError) Error() string {
	if e.Actual == 0 {
		return fmt.Sprintf("%s: order %s version %d was superseded", ErrStaleOrder, e.OrderID, e.Expected)
	}
	return fmt.Sprintf("%s: order %s expected version %d, current is %d",
		ErrStaleOrder, e.OrderID, e.Expected, e.Actual)
}

func (e *StaleOrderError) Unwrap() error {
	return ErrStaleOrder
}
