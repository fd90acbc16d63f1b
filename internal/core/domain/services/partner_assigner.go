package services

import (
	"errors"
	"time"

	"ordering/internal/core/domain/model/actor"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/partner"
)

// PartnerAssigner binds a delivery order to a partner and captures the fee
// the partner earns for it, priced from the distance between pickup and
// drop-off.
//
// Business rules:
//   - only delivery orders before pickup can be assigned
//   - kitchen staff of the tenant and super-admins may assign any active partner
//   - a partner may claim an unassigned order for itself
//   - re-assigning the same partner is a no-op
//
// Example usage:
//
//	assigner := services.NewPartnerAssigner(services.NewRoleGateway())
//	next, err := assigner.Assign(o, p, schedule, pickup, dropoff, staff, time.Now())
type PartnerAssigner struct {
	gateway RoleGateway
}

func NewPartnerAssigner(gateway RoleGateway) PartnerAssigner {
	return PartnerAssigner{gateway: gateway}
}

// Assign returns the order with the partner attached. When the same partner
// is already assigned the input order is returned unchanged.
//
// Returns:
//   - *order.Order: the assigned record
//   - error: UnauthorizedTransitionError, partner.ErrPartnerIsInactive, or
//     a validation error for dine-in or already picked-up orders
func (s PartnerAssigner) Assign(
	o *order.Order,
	p *partner.Partner,
	schedule partner.FeeSchedule,
	pickup kernel.Location,
	dropoff kernel.Location,
	who actor.Actor,
	at time.Time,
) (*order.Order, error) {
	if err := errors.Join(o.Validate(), p.Validate()); err != nil {
		return nil, err
	}
	if !s.gateway.CanAssign(who, o.Ownership(), p.ID()) {
		return nil, order.NewUnauthorizedTransitionError(o.ID(), who, o.State(), o.State(),
			who.Role().String()+" may not assign this partner")
	}
	if current, ok := o.Assignment(); ok && current.PartnerID().IsEqual(p.ID()) {
		return o, nil
	}
	if err := p.CanTakeOrders(); err != nil {
		return nil, err
	}

	distance, err := pickup.Distance(dropoff)
	if err != nil {
		return nil, err
	}
	fee, err := schedule.FeeFor(distance)
	if err != nil {
		return nil, err
	}
	assignment, err := order.NewAssignment(p.ID(), fee, distance, at)
	if err != nil {
		return nil, err
	}
	return o.WithAssignment(assignment)
}
