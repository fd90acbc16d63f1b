package order

import (
	"fmt"

	"ordering/internal/pkg/errs"
)

// PaymentStatus tracks money collected for an order independently of its lifecycle.
//
//	PENDING ─┬─> PAID ─> REFUNDED
//	         └─> FAILED
type PaymentStatus int

const (
	// PaymentUnknown (0) catches zero-value statuses.
	PaymentUnknown PaymentStatus = iota
	PaymentPending
	PaymentPaid
	PaymentFailed
	PaymentRefunded
)

var paymentStatusNames = map[PaymentStatus]string{
	PaymentPending:  "PENDING",
	PaymentPaid:     "PAID",
	PaymentFailed:   "FAILED",
	PaymentRefunded: "REFUNDED",
}

var paymentEdges = map[PaymentStatus][]PaymentStatus{
	PaymentPending: {PaymentPaid, PaymentFailed},
	PaymentPaid:    {PaymentRefunded},
}

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	for status, name := range paymentStatusNames {
		if name == s {
			return status, nil
		}
	}
	return PaymentUnknown, errs.NewValueIsInvalidErrorWithCause(
		"paymentStatus", fmt.Errorf("%q is not a known payment status", s))
}

func (p PaymentStatus) Validate() error {
	if _, ok := paymentStatusNames[p]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"paymentStatus", fmt.Errorf("%d is not a known payment status", p))
	}
	return nil
}

func (p PaymentStatus) String() string {
	if name, ok := paymentStatusNames[p]; ok {
		return name
	}
	return "UNKNOWN"
}

// CanMoveTo reports whether next is a legal payment step from p.
func (p PaymentStatus) CanMoveTo(next PaymentStatus) bool {
	for _, allowed := range paymentEdges[p] {
		if allowed == next {
			return true
		}
	}
	return false
}
