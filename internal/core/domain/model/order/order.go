package order

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"ordering/internal/core/domain/model/cart"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

// ErrOrderIsNotConstructed is returned when an Order did not come from Place or Restore.
var ErrOrderIsNotConstructed = errs.NewValueIsRequiredError("order must be created via Place or Restore")

// Order is the single shared record every surface reads and mutates: the
// customer app, the kitchen dashboard, the partner app and the admin console.
//
// Order follows these invariants:
//   - items and amounts are frozen at commit
//   - the state only moves along the graph of its mode (see Next)
//   - timestamps are append-only, one per entered state, never decreasing
//   - version starts at 1 and grows by one on every applied mutation
//   - dine-in orders never carry a partner assignment
//
// Mutations never change the receiver. Advance, WithPaymentStatus and
// WithAssignment return a new *Order so a rejected write leaves nothing behind.
type Order struct {
	id            kernel.UUID
	customerID    kernel.UUID
	tenantID      kernel.UUID
	mode          Mode
	tableRef      string
	items         []cart.LineItem
	amounts       Amounts
	state         State
	paymentStatus PaymentStatus
	assignment    *Assignment
	timestamps    map[State]time.Time
	version       int64
	events        []ChangedEvent
	guard         guard.ConstructorGuard
}

// Place commits a cart into a new order in PLACED with version 1.
//
// Parameters:
//   - c: the customer's cart; an empty cart yields cart.EmptyCartError
//   - mode: DineIn or Delivery
//   - tableRef: QR table label, dine-in only
//   - pricing: tax rate and delivery fee of the tenant
//   - placedAt: commit instant, recorded as the PLACED timestamp
//
// Returns:
//   - *Order: the committed order with an ORDER_PLACED event raised
//   - error: EmptyCartError, validation errors or NegativeResultError from pricing
//
// Example:
//
//	o, err := order.Place(c, order.Delivery, "", pricing, time.Now())
//	if err != nil {
//	    return nil, err
//	}
//	c.Clear()
func Place(c *cart.Cart, mode Mode, tableRef string, pricing Pricing, placedAt time.Time) (*Order, error) {
	if err := c.RequireItems(); err != nil {
		return nil, err
	}
	if err := errors.Join(mode.Validate(), validateTableRef(mode, tableRef)); err != nil {
		return nil, err
	}
	if placedAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("placedAt")
	}

	amounts, err := pricing.Quote(c, mode)
	if err != nil {
		return nil, err
	}

	o := &Order{
		id:            kernel.NewUUID(),
		customerID:    c.CustomerID(),
		tenantID:      c.TenantID(),
		mode:          mode,
		tableRef:      strings.TrimSpace(tableRef),
		items:         c.Items(),
		amounts:       amounts,
		state:         Placed,
		paymentStatus: PaymentPending,
		timestamps:    map[State]time.Time{Placed: placedAt.UTC()},
		version:       1,
		guard:         guard.NewConstructorGuard(),
	}
	o.raise(ChangePlaced, placedAt)
	return o, nil
}

// Snapshot carries a stored order back into the domain.
type Snapshot struct {
	ID            kernel.UUID
	CustomerID    kernel.UUID
	TenantID      kernel.UUID
	Mode          Mode
	TableRef      string
	Items         []cart.LineItem
	Amounts       Amounts
	State         State
	PaymentStatus PaymentStatus
	Assignment    *Assignment
	Timestamps    map[State]time.Time
	Version       int64
}

// Restore rebuilds an order from storage and re-checks its invariants.
// No event is raised.
func Restore(s Snapshot) (*Order, error) {
	var errItems, errVersion, errPlaced, errAssignment, errState error
	if len(s.Items) == 0 {
		errItems = errs.NewValueIsRequiredError("items")
	}
	if s.Version < 1 {
		errVersion = errs.NewVersionIsInvalidError("version", fmt.Errorf("%d is less than 1", s.Version))
	}
	if _, ok := s.Timestamps[Placed]; !ok {
		errPlaced = errs.NewValueIsRequiredError("timestamps[PLACED]")
	}
	if s.Assignment != nil && s.Mode != Delivery {
		errAssignment = errs.NewValueIsInvalidErrorWithCause("assignment",
			fmt.Errorf("%s orders are never assigned", s.Mode))
	}
	if s.State.Validate() == nil && !s.State.BelongsTo(s.Mode) {
		errState = errs.NewValueIsInvalidErrorWithCause("state",
			fmt.Errorf("%s is not part of the %s lifecycle", s.State, s.Mode))
	}

	if err := errors.Join(
		s.ID.Validate(),
		s.CustomerID.Validate(),
		s.TenantID.Validate(),
		s.Mode.Validate(),
		s.State.Validate(),
		s.PaymentStatus.Validate(),
		s.Amounts.Validate(),
		errItems, errVersion, errPlaced, errAssignment, errState,
	); err != nil {
		return nil, err
	}

	o := &Order{
		id:            s.ID,
		customerID:    s.CustomerID,
		tenantID:      s.TenantID,
		mode:          s.Mode,
		tableRef:      s.TableRef,
		items:         slices.Clone(s.Items),
		amounts:       s.Amounts,
		state:         s.State,
		paymentStatus: s.PaymentStatus,
		timestamps:    make(map[State]time.Time, len(s.Timestamps)),
		version:       s.Version,
		guard:         guard.NewConstructorGuard(),
	}
	for st, at := range s.Timestamps {
		o.timestamps[st] = at.UTC()
	}
	if s.Assignment != nil {
		a := *s.Assignment
		o.assignment = &a
	}
	return o, nil
}

func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares identity only.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

func (o *Order) TenantID() kernel.UUID {
	return o.tenantID
}

func (o *Order) Mode() Mode {
	return o.mode
}

func (o *Order) TableRef() string {
	return o.tableRef
}

// Items returns the frozen line items sorted by SKU.
func (o *Order) Items() []cart.LineItem {
	return slices.Clone(o.items)
}

func (o *Order) Amounts() Amounts {
	return o.amounts
}

func (o *Order) State() State {
	return o.state
}

func (o *Order) PaymentStatus() PaymentStatus {
	return o.paymentStatus
}

func (o *Order) Version() int64 {
	return o.version
}

// Assignment returns the partner assignment, if any.
func (o *Order) Assignment() (Assignment, bool) {
	if o.assignment == nil {
		return Assignment{}, false
	}
	return *o.assignment, true
}

// Timestamps returns a copy of the state → first-entered instant log.
func (o *Order) Timestamps() map[State]time.Time {
	return maps.Clone(o.timestamps)
}

// EnteredAt returns when the order first entered the state.
func (o *Order) EnteredAt(state State) (time.Time, bool) {
	at, ok := o.timestamps[state]
	return at, ok
}

// LastChangedAt is the latest timestamp in the log.
func (o *Order) LastChangedAt() time.Time {
	var latest time.Time
	for _, at := range o.timestamps {
		if at.After(latest) {
			latest = at
		}
	}
	return latest
}

// Ownership returns the identities the role gateway checks actors against.
func (o *Order) Ownership() Ownership {
	own := Ownership{CustomerID: o.customerID, TenantID: o.tenantID}
	if o.assignment != nil {
		id := o.assignment.PartnerID()
		own.PartnerID = &id
	}
	return own
}

// NeedsReconciliation flags finished orders whose payment never settled.
func (o *Order) NeedsReconciliation() bool {
	return (o.state == Delivered || o.state == Served) && o.paymentStatus == PaymentPending
}

// Advance moves the order one edge along its graph and returns the new record.
// The entry timestamp is clamped so the log never goes backwards.
// Authorization is not checked here; see the order state machine service.
func (o *Order) Advance(to State, at time.Time) (*Order, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if o.state.IsTerminal() {
		return nil, NewInvalidTransitionError(o.id, o.state, to, "order is already "+o.state.String())
	}
	if !HasEdge(o.mode, o.state, to) {
		return nil, NewInvalidTransitionError(o.id, o.state, to,
			fmt.Sprintf("no such edge for %s orders", o.mode))
	}

	next := o.clone()
	if latest := o.LastChangedAt(); at.Before(latest) {
		at = latest
	}
	next.state = to
	next.timestamps[to] = at.UTC()
	next.version++
	next.raise(ChangeState, at)
	return next, nil
}

// WithPaymentStatus records a payment outcome and returns the new record.
func (o *Order) WithPaymentStatus(status PaymentStatus, at time.Time) (*Order, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if !o.paymentStatus.CanMoveTo(status) {
		return nil, errs.NewValueIsInvalidErrorWithCause("paymentStatus",
			fmt.Errorf("%s cannot move to %s", o.paymentStatus, status))
	}

	next := o.clone()
	next.paymentStatus = status
	next.version++
	next.raise(ChangePayment, at)
	return next, nil
}

// WithAssignment attaches (or replaces) the delivery partner. Only delivery
// orders that have not been picked up can be assigned.
func (o *Order) WithAssignment(a Assignment) (*Order, error) {
	if err := errors.Join(o.Validate(), a.Validate()); err != nil {
		return nil, err
	}
	if o.mode != Delivery {
		return nil, errs.NewValueIsInvalidErrorWithCause("assignment",
			fmt.Errorf("%s orders are never assigned", o.mode))
	}
	if o.state.IsTerminal() || o.state == PickedUp || o.state == OnTheWay {
		return nil, errs.NewValueIsInvalidErrorWithCause("assignment",
			fmt.Errorf("order in %s can no longer be reassigned", o.state))
	}

	next := o.clone()
	next.assignment = &a
	next.version++
	next.raise(ChangePartnerAssigned, a.AssignedAt())
	return next, nil
}

// clone copies the record without its raised events.
func (o *Order) clone() *Order {
	c := *o
	c.items = slices.Clone(o.items)
	c.timestamps = maps.Clone(o.timestamps)
	c.events = nil
	if o.assignment != nil {
		a := *o.assignment
		c.assignment = &a
	}
	return &c
}

func validateTableRef(mode Mode, tableRef string) error {
	if strings.TrimSpace(tableRef) != "" && mode != DineIn {
		return errs.NewValueIsInvalidErrorWithCause("tableRef",
			fmt.Errorf("table reference is only used for %s orders", DineIn))
	}
	return nil
}
