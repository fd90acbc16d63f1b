package order

import (
	"time"

	"ordering/internal/core/domain/model/kernel"
)

// ChangeKind names what happened to an order.
type ChangeKind string

const (
	ChangePlaced          ChangeKind = "ORDER_PLACED"
	ChangeState           ChangeKind = "STATE_CHANGED"
	ChangePayment         ChangeKind = "PAYMENT_CHANGED"
	ChangePartnerAssigned ChangeKind = "PARTNER_ASSIGNED"
)

// ChangedEvent is raised by every applied mutation and published after the
// unit of work commits. Dashboards and partner apps refresh from it instead
// of polling.
type ChangedEvent struct {
	OrderID       kernel.UUID
	TenantID      kernel.UUID
	CustomerID    kernel.UUID
	PartnerID     *kernel.UUID
	Kind          ChangeKind
	State         State
	PaymentStatus PaymentStatus
	Version       int64
	OccurredAt    time.Time
}

func (o *Order) raise(kind ChangeKind, at time.Time) {
	event := ChangedEvent{
		OrderID:       o.id,
		TenantID:      o.tenantID,
		CustomerID:    o.customerID,
		Kind:          kind,
		State:         o.state,
		PaymentStatus: o.paymentStatus,
		Version:       o.version,
		OccurredAt:    at.UTC(),
	}
	if o.assignment != nil {
		id := o.assignment.PartnerID()
		event.PartnerID = &id
	}
	o.events = append(o.events, event)
}

// DomainEvents returns the events raised while producing this instance.
func (o *Order) DomainEvents() []ChangedEvent {
	return append([]ChangedEvent(nil), o.events...)
}

// ClearDomainEvents drops raised events once they are published.
func (o *Order) ClearDomainEvents() {
	o.events = nil
}
