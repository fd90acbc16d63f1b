package commands

import (
	"errors"

	"ordering/internal/core/domain/model/actor"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrRequestTransitionCommandIsNotConstructed = errors.New(
	"RequestTransitionCommand must be created via NewRequestTransitionCommand constructor",
)

// RequestTransitionCommand asks to move an order to another lifecycle state.
// The version is the one the caller read; a mismatch yields StaleOrderError.
//
// Example:
//
//	cmd, err := NewRequestTransitionCommand(orderID, 4, order.Ready, staff)
//	if err != nil {
//	    return err
//	}
//	o, err := handler.Handle(ctx, cmd)
type RequestTransitionCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	version     int64
	to          order.State
	actor       actor.Actor
	silentRetry bool

	guard guard.ConstructorGuard
}

func NewRequestTransitionCommand(
	orderID kernel.UUID,
	version int64,
	to order.State,
	who actor.Actor,
) (RequestTransitionCommand, error) {
	cmd := RequestTransitionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setVersion(version),
		cmd.setTo(to),
		cmd.setActor(who),
	); err != nil {
		return RequestTransitionCommand{}, err
	}

	return cmd, nil
}

// WithSilentRetry returns a copy that re-reads the order and retries once when
// the first attempt is stale or unauthorized.
func (c RequestTransitionCommand) WithSilentRetry() RequestTransitionCommand {
	c.silentRetry = true
	return c
}

func (c RequestTransitionCommand) Validate() error {
	return c.guard.Validate(ErrRequestTransitionCommandIsNotConstructed)
}

func (c RequestTransitionCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c RequestTransitionCommand) Version() int64 {
	return c.version
}

func (c RequestTransitionCommand) To() order.State {
	return c.to
}

func (c RequestTransitionCommand) Actor() actor.Actor {
	return c.actor
}

func (c RequestTransitionCommand) SilentRetry() bool {
	return c.silentRetry
}

func (c *RequestTransitionCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *RequestTransitionCommand) setVersion(version int64) error {
	if version < 1 {
		return errs.NewValueIsOutOfRangeError("version", version, 1, "unbounded")
	}

	c.version = version
	return nil
}

func (c *RequestTransitionCommand) setTo(to order.State) error {
	if err := to.Validate(); err != nil {
		return err
	}

	c.to = to
	return nil
}

func (c *RequestTransitionCommand) setActor(who actor.Actor) error {
	if err := who.Validate(); err != nil {
		return err
	}

	c.actor = who
	return nil
}
