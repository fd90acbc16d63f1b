package commands

import (
	"errors"

	"ordering/internal/core/domain/model/actor"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrAssignPartnerCommandIsNotConstructed = errors.New(
	"AssignPartnerCommand must be created via NewAssignPartnerCommand constructor",
)

// AssignPartnerCommand attaches a delivery partner to a delivery order. Pickup
// and drop-off are grid locations; their distance prices the partner's fee.
type AssignPartnerCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	version   int64
	partnerID kernel.UUID
	pickup    kernel.Location
	dropoff   kernel.Location
	actor     actor.Actor

	guard guard.ConstructorGuard
}

func NewAssignPartnerCommand(
	orderID kernel.UUID,
	version int64,
	partnerID kernel.UUID,
	pickup kernel.Location,
	dropoff kernel.Location,
	who actor.Actor,
) (AssignPartnerCommand, error) {
	cmd := AssignPartnerCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		partnerID.Validate(),
		pickup.Validate(),
		dropoff.Validate(),
		who.Validate(),
	); err != nil {
		return AssignPartnerCommand{}, err
	}
	if version < 1 {
		return AssignPartnerCommand{}, errs.NewValueIsOutOfRangeError("version", version, 1, "unbounded")
	}

	cmd.orderID = orderID
	cmd.version = version
	cmd.partnerID = partnerID
	cmd.pickup = pickup
	cmd.dropoff = dropoff
	cmd.actor = who
	return cmd, nil
}

func (c AssignPartnerCommand) Validate() error {
	return c.guard.Validate(ErrAssignPartnerCommandIsNotConstructed)
}

func (c AssignPartnerCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c AssignPartnerCommand) Version() int64 {
	return c.version
}

func (c AssignPartnerCommand) PartnerID() kernel.UUID {
	return c.partnerID
}

func (c AssignPartnerCommand) Pickup() kernel.Location {
	return c.pickup
}

func (c AssignPartnerCommand) Dropoff() kernel.Location {
	return c.dropoff
}

func (c AssignPartnerCommand) Actor() actor.Actor {
	return c.actor
}
