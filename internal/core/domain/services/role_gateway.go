package services

import (
	"ordering/internal/core/domain/model/actor"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
)

// edgeRoles lists the role allowed to take each forward edge. CANCELLED is
// handled separately because it is reachable from every non-terminal state.
var edgeRoles = map[order.Mode]map[order.State]actor.Role{
	order.Delivery: {
		order.Accepted:  actor.KitchenStaff, // PLACED → ACCEPTED
		order.Preparing: actor.KitchenStaff, // ACCEPTED → PREPARING
		order.Ready:     actor.KitchenStaff, // PREPARING → READY
		order.PickedUp:  actor.DeliveryPartner,
		order.OnTheWay:  actor.DeliveryPartner,
		order.Delivered: actor.DeliveryPartner,
	},
	order.DineIn: {
		order.Preparing: actor.KitchenStaff, // PLACED → PREPARING
		order.Ready:     actor.KitchenStaff,
		order.Served:    actor.KitchenStaff,
	},
}

var cancelRoles = map[actor.Role]bool{
	actor.Customer:     true,
	actor.KitchenStaff: true,
	actor.SuperAdmin:   true,
}

// RoleGateway decides who may touch an order and which edges each role may take.
// It is the single table every surface consults, so the customer app, kitchen
// dashboard and partner app always agree on what can happen next.
//
// Ownership rules:
//   - customer owns orders placed under its customer id
//   - kitchen staff owns every order of its restaurant tenant
//   - delivery partner owns only orders assigned to it; unassigned orders never
//   - super-admin owns everything
//
// Example usage:
//
//	gateway := services.NewRoleGateway()
//	if !gateway.Owns(who, o.Ownership()) {
//	    return order.NewUnauthorizedTransitionError(o.ID(), who, o.State(), to, "not the owner")
//	}
type RoleGateway struct{}

func NewRoleGateway() RoleGateway {
	return RoleGateway{}
}

// Owns reports whether the actor may act on an order with the given ownership.
func (RoleGateway) Owns(who actor.Actor, own order.Ownership) bool {
	if who.Validate() != nil {
		return false
	}
	switch who.Role() {
	case actor.Customer:
		return who.ID().IsEqual(own.CustomerID)
	case actor.KitchenStaff:
		tenant, ok := who.TenantID()
		return ok && tenant.IsEqual(own.TenantID)
	case actor.DeliveryPartner:
		return own.PartnerID != nil && who.ID().IsEqual(*own.PartnerID)
	case actor.SuperAdmin:
		return true
	default:
		return false
	}
}

// RoleMayTake checks the edge role table only, without ownership.
func (RoleGateway) RoleMayTake(role actor.Role, mode order.Mode, from order.State, to order.State) bool {
	if !order.HasEdge(mode, from, to) {
		return false
	}
	if to == order.Cancelled {
		return cancelRoles[role]
	}
	allowed, ok := edgeRoles[mode][to]
	return ok && allowed == role
}

// CanTransition combines ownership and the edge role table.
//
// Parameters:
//   - who: the acting party
//   - mode: lifecycle of the order
//   - from, to: the requested edge
//   - own: ownership of the order
//
// Returns:
//   - bool: true when both checks pass; the cancellation window is checked
//     by the state machine
func (g RoleGateway) CanTransition(
	who actor.Actor,
	mode order.Mode,
	from order.State,
	to order.State,
	own order.Ownership,
) bool {
	return g.Owns(who, own) && g.RoleMayTake(who.Role(), mode, from, to)
}

// AllowedNext returns the states the actor may request right now, in graph order.
func (g RoleGateway) AllowedNext(who actor.Actor, o *order.Order) []order.State {
	if o.Validate() != nil {
		return nil
	}
	own := o.Ownership()
	allowed := make([]order.State, 0, 2)
	for _, next := range order.Next(o.Mode(), o.State()) {
		if !g.CanTransition(who, o.Mode(), o.State(), next, own) {
			continue
		}
		if next == order.Cancelled && !cancelWindowOpen(who.Role(), o.State()) {
			continue
		}
		allowed = append(allowed, next)
	}
	return allowed
}

// CanAssign reports whether the actor may assign partnerID to the order:
// kitchen staff of the tenant, a super-admin, or the partner claiming the
// order for itself.
func (g RoleGateway) CanAssign(who actor.Actor, own order.Ownership, partnerID kernel.UUID) bool {
	if who.Validate() != nil {
		return false
	}
	switch who.Role() {
	case actor.KitchenStaff, actor.SuperAdmin:
		return g.Owns(who, own)
	case actor.DeliveryPartner:
		if !who.ID().IsEqual(partnerID) {
			return false
		}
		return own.PartnerID == nil || own.PartnerID.IsEqual(partnerID)
	default:
		return false
	}
}

// cancelWindowOpen reports whether the role may still cancel from the state.
// Customers lose the right once the kitchen starts preparing; staff may
// cancel from any non-terminal state.
func cancelWindowOpen(role actor.Role, from order.State) bool {
	if role.IsStaff() {
		return true
	}
	return from == order.Placed || from == order.Accepted
}
