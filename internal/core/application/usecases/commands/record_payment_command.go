package commands

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/payment"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrRecordPaymentCommandIsNotConstructed = errors.New(
	"RecordPaymentCommand must be created via NewRecordPaymentCommand constructor",
)

// RecordPaymentCommand records the outcome of a payment attempt: PAID with a
// method, or FAILED with a reason.
//
// Example:
//
//	paid, _ := NewRecordPaymentCommand(orderID, order.PaymentPaid, payment.QRIS, "")
//	failed, _ := NewRecordPaymentCommand(orderID, order.PaymentFailed, payment.MethodUnknown, "card declined")
type RecordPaymentCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	outcome order.PaymentStatus
	method  payment.Method
	reason  string

	guard guard.ConstructorGuard
}

func NewRecordPaymentCommand(
	orderID kernel.UUID,
	outcome order.PaymentStatus,
	method payment.Method,
	reason string,
) (RecordPaymentCommand, error) {
	cmd := RecordPaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setOutcome(outcome, method, reason),
	); err != nil {
		return RecordPaymentCommand{}, err
	}

	return cmd, nil
}

func (c RecordPaymentCommand) Validate() error {
	return c.guard.Validate(ErrRecordPaymentCommandIsNotConstructed)
}

func (c RecordPaymentCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c RecordPaymentCommand) Outcome() order.PaymentStatus {
	return c.outcome
}

func (c RecordPaymentCommand) Method() payment.Method {
	return c.method
}

func (c RecordPaymentCommand) Reason() string {
	return c.reason
}

func (c *RecordPaymentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *RecordPaymentCommand) setOutcome(outcome order.PaymentStatus, method payment.Method, reason string) error {
	switch outcome {
	case order.PaymentPaid:
		if err := method.Validate(); err != nil {
			return err
		}
		c.method = method
	case order.PaymentFailed:
		if reason == "" {
			return errs.NewValueIsRequiredError("reason")
		}
		c.reason = reason
	default:
		return errs.NewValueIsInvalidError("outcome")
	}

	c.outcome = outcome
	return nil
}
