package payment

import (
	"errors"
	"fmt"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
)

var (
	ErrRefundNotAllowed  = errors.New("refund not allowed")
	ErrPaymentTransition = errors.New("payment transition not allowed")
)

// RefundNotAllowedError is returned when refunding an order that is not PAID.
type RefundNotAllowedError struct {
	OrderID kernel.UUID
	Status  order.PaymentStatus
}

func (e *RefundNotAllowedError) Error() string {
	return fmt.Sprintf("%s: order %s payment is %s", ErrRefundNotAllowed, e.OrderID, e.Status)
}

func (e *RefundNotAllowedError) Unwrap() error {
	return ErrRefundNotAllowed
}

// PaymentTransitionError is returned for any other illegal payment step,
// such as PAID -> FAILED or FAILED -> PAID.
type PaymentTransitionError struct {
	OrderID kernel.UUID
	From    order.PaymentStatus
	To      order.PaymentStatus
}

func (e *PaymentTransitionError) Error() string {
	return fmt.Sprintf("%s: order %s %s -> %s", ErrPaymentTransition, e.OrderID, e.From, e.To)
}

func (e *PaymentTransitionError) Unwrap() error {
	return ErrPaymentTransition
}
