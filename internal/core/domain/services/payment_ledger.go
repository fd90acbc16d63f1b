package services

import (
	"time"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/payment"
)

// LedgerResult is the outcome of a payment operation. Entry is nil and Order
// is the input record when the same outcome was already recorded.
type LedgerResult struct {
	Order *order.Order
	Entry *payment.Entry
}

// Changed reports whether a new ledger entry was produced.
func (r LedgerResult) Changed() bool {
	return r.Entry != nil
}

// PaymentLedger records payment outcomes against orders.
//
// Payment status moves PENDING → PAID | FAILED and PAID → REFUNDED only.
// Recording an outcome the order already has is a no-op, so client retries
// never double-charge or double-refund.
type PaymentLedger struct{}

func NewPaymentLedger() PaymentLedger {
	return PaymentLedger{}
}

// MarkPaid records a successful payment of the order total.
func (l PaymentLedger) MarkPaid(o *order.Order, method payment.Method, at time.Time) (LedgerResult, error) {
	if err := o.Validate(); err != nil {
		return LedgerResult{}, err
	}
	if o.PaymentStatus() == order.PaymentPaid {
		return LedgerResult{Order: o}, nil
	}
	if !o.PaymentStatus().CanMoveTo(order.PaymentPaid) {
		return LedgerResult{}, transitionError(o, order.PaymentPaid)
	}

	entry, err := payment.NewPaymentEntry(o.ID(), o.Amounts().Total(), method, at)
	if err != nil {
		return LedgerResult{}, err
	}
	next, err := o.WithPaymentStatus(order.PaymentPaid, at)
	if err != nil {
		return LedgerResult{}, err
	}
	return LedgerResult{Order: next, Entry: &entry}, nil
}

// MarkFailed records a failed payment attempt.
func (l PaymentLedger) MarkFailed(o *order.Order, reason string, at time.Time) (LedgerResult, error) {
	if err := o.Validate(); err != nil {
		return LedgerResult{}, err
	}
	if o.PaymentStatus() == order.PaymentFailed {
		return LedgerResult{Order: o}, nil
	}
	if !o.PaymentStatus().CanMoveTo(order.PaymentFailed) {
		return LedgerResult{}, transitionError(o, order.PaymentFailed)
	}

	entry, err := payment.NewFailureEntry(o.ID(), o.Amounts().Total(), reason, at)
	if err != nil {
		return LedgerResult{}, err
	}
	next, err := o.WithPaymentStatus(order.PaymentFailed, at)
	if err != nil {
		return LedgerResult{}, err
	}
	return LedgerResult{Order: next, Entry: &entry}, nil
}

// Refund compensates the latest PAYMENT entry of the order with a linked
// REFUND entry. The order's amounts are never changed.
//
// Parameters:
//   - o: the order; must be PAID (REFUNDED is a no-op)
//   - entries: the order's ledger so far
//   - reason: free text stored on the refund entry
//   - at: refund instant
func (l PaymentLedger) Refund(
	o *order.Order,
	entries []payment.Entry,
	reason string,
	at time.Time,
) (LedgerResult, error) {
	if err := o.Validate(); err != nil {
		return LedgerResult{}, err
	}
	switch o.PaymentStatus() {
	case order.PaymentRefunded:
		return LedgerResult{Order: o}, nil
	case order.PaymentPaid:
	default:
		return LedgerResult{}, &payment.RefundNotAllowedError{OrderID: o.ID(), Status: o.PaymentStatus()}
	}

	original, ok := latestPayment(entries)
	if !ok {
		return LedgerResult{}, &payment.RefundNotAllowedError{OrderID: o.ID(), Status: o.PaymentStatus()}
	}
	entry, err := payment.NewRefundEntry(original, reason, at)
	if err != nil {
		return LedgerResult{}, err
	}
	next, err := o.WithPaymentStatus(order.PaymentRefunded, at)
	if err != nil {
		return LedgerResult{}, err
	}
	return LedgerResult{Order: next, Entry: &entry}, nil
}

// PendingPayments keeps finished orders whose payment is still PENDING.
func (l PaymentLedger) PendingPayments(orders []*order.Order) []*order.Order {
	pending := make([]*order.Order, 0)
	for _, o := range orders {
		if o.NeedsReconciliation() {
			pending = append(pending, o)
		}
	}
	return pending
}

func latestPayment(entries []payment.Entry) (payment.Entry, bool) {
	var (
		latest payment.Entry
		found  bool
	)
	for _, e := range entries {
		if e.Kind() != payment.KindPayment {
			continue
		}
		if !found || !e.RecordedAt().Before(latest.RecordedAt()) {
			latest, found = e, true
		}
	}
	return latest, found
}

func transitionError(o *order.Order, to order.PaymentStatus) error {
	return &payment.PaymentTransitionError{OrderID: o.ID(), From: o.PaymentStatus(), To: to}
}
