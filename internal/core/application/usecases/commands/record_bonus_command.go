package commands

import (
	"errors"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrRecordBonusCommandIsNotConstructed = errors.New(
	"RecordBonusCommand must be created via NewRecordBonusCommand constructor",
)

// RecordBonusCommand credits a partner with an extra amount outside of
// delivery fees, e.g. a weekend incentive.
type RecordBonusCommand struct { //nolint:recvcheck //using for validation
	partnerID  kernel.UUID
	amount     kernel.Money
	reason     string
	occurredAt time.Time

	guard guard.ConstructorGuard
}

func NewRecordBonusCommand(
	partnerID kernel.UUID,
	amount kernel.Money,
	reason string,
	occurredAt time.Time,
) (RecordBonusCommand, error) {
	var errAmount, errReason, errAt error
	if amount.IsZero() {
		errAmount = errs.NewValueIsOutOfRangeError("amount", amount.Minor(), 1, "unbounded")
	}
	if reason == "" {
		errReason = errs.NewValueIsRequiredError("reason")
	}
	if occurredAt.IsZero() {
		errAt = errs.NewValueIsRequiredError("occurredAt")
	}
	if err := errors.Join(partnerID.Validate(), errAmount, errReason, errAt); err != nil {
		return RecordBonusCommand{}, err
	}

	return RecordBonusCommand{
		partnerID:  partnerID,
		amount:     amount,
		reason:     reason,
		occurredAt: occurredAt.UTC(),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c RecordBonusCommand) Validate() error {
	return c.guard.Validate(ErrRecordBonusCommandIsNotConstructed)
}

func (c RecordBonusCommand) PartnerID() kernel.UUID {
	return c.partnerID
}

func (c RecordBonusCommand) Amount() kernel.Money {
	return c.amount
}

func (c RecordBonusCommand) Reason() string {
	return c.reason
}

func (c RecordBonusCommand) OccurredAt() time.Time {
	return c.occurredAt
}
