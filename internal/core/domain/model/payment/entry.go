package payment

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

// ErrEntryIsNotConstructed is returned for a zero-value Entry.
var ErrEntryIsNotConstructed = errs.NewValueIsRequiredError("ledger entry must be created via its constructors")

// Entry is one immutable line of the payment ledger. Payments and refunds
// carry the order total; a refund points at the payment it compensates and
// never changes the order's amounts.
type Entry struct { //nolint:recvcheck //using for validation
	id         kernel.UUID
	orderID    kernel.UUID
	kind       Kind
	amount     kernel.Money
	method     Method
	reason     string
	refersTo   *kernel.UUID
	recordedAt time.Time
	guard      guard.ConstructorGuard
}

// NewPaymentEntry records money collected for an order.
func NewPaymentEntry(orderID kernel.UUID, amount kernel.Money, method Method, at time.Time) (Entry, error) {
	if err := errors.Join(orderID.Validate(), method.Validate(), requireTime(at)); err != nil {
		return Entry{}, err
	}
	return Entry{
		id:         kernel.NewUUID(),
		orderID:    orderID,
		kind:       KindPayment,
		amount:     amount,
		method:     method,
		recordedAt: at.UTC(),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// NewFailureEntry records a declined or abandoned payment. Amount is what was attempted.
func NewFailureEntry(orderID kernel.UUID, amount kernel.Money, reason string, at time.Time) (Entry, error) {
	var errReason error
	if strings.TrimSpace(reason) == "" {
		errReason = errs.NewValueIsRequiredError("reason")
	}
	if err := errors.Join(orderID.Validate(), errReason, requireTime(at)); err != nil {
		return Entry{}, err
	}
	return Entry{
		id:         kernel.NewUUID(),
		orderID:    orderID,
		kind:       KindFailure,
		amount:     amount,
		reason:     reason,
		recordedAt: at.UTC(),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// NewRefundEntry compensates a payment entry with the same amount and method.
func NewRefundEntry(original Entry, reason string, at time.Time) (Entry, error) {
	if err := errors.Join(original.Validate(), requireTime(at)); err != nil {
		return Entry{}, err
	}
	if original.kind != KindPayment {
		return Entry{}, errs.NewValueIsInvalidErrorWithCause("refersTo",
			fmt.Errorf("%s entries cannot be refunded", original.kind))
	}
	ref := original.id
	return Entry{
		id:         kernel.NewUUID(),
		orderID:    original.orderID,
		kind:       KindRefund,
		amount:     original.amount,
		method:     original.method,
		reason:     reason,
		refersTo:   &ref,
		recordedAt: at.UTC(),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// RestoreEntry rebuilds a stored ledger line.
func RestoreEntry(
	id kernel.UUID,
	orderID kernel.UUID,
	kind Kind,
	amount kernel.Money,
	method Method,
	reason string,
	refersTo *kernel.UUID,
	recordedAt time.Time,
) (Entry, error) {
	var errRef error
	if kind == KindRefund && refersTo == nil {
		errRef = errs.NewValueIsRequiredError("refersTo")
	}
	if err := errors.Join(id.Validate(), orderID.Validate(), kind.Validate(), requireTime(recordedAt), errRef); err != nil {
		return Entry{}, err
	}
	e := Entry{
		id:         id,
		orderID:    orderID,
		kind:       kind,
		amount:     amount,
		method:     method,
		reason:     reason,
		recordedAt: recordedAt.UTC(),
		guard:      guard.NewConstructorGuard(),
	}
	if refersTo != nil {
		ref := *refersTo
		e.refersTo = &ref
	}
	return e, nil
}

func (e Entry) Validate() error {
	return e.guard.Validate(ErrEntryIsNotConstructed)
}

func (e Entry) ID() kernel.UUID {
	return e.id
}

func (e Entry) OrderID() kernel.UUID {
	return e.orderID
}

func (e Entry) Kind() Kind {
	return e.kind
}

func (e Entry) Amount() kernel.Money {
	return e.amount
}

func (e Entry) Method() Method {
	return e.method
}

func (e Entry) Reason() string {
	return e.reason
}

// RefersTo is the payment entry a refund compensates.
func (e Entry) RefersTo() (kernel.UUID, bool) {
	if e.refersTo == nil {
		return kernel.UUID{}, false
	}
	return *e.refersTo, true
}

func (e Entry) RecordedAt() time.Time {
	return e.recordedAt
}

func requireTime(at time.Time) error {
	if at.IsZero() {
		return errs.NewValueIsRequiredError("recordedAt")
	}
	return nil
}
