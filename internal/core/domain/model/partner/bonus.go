package partner

import (
	"errors"
	"strings"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

// ErrBonusIsNotConstructed is returned for a zero-value BonusEvent.
var ErrBonusIsNotConstructed = errs.NewValueIsRequiredError("bonus must be created via NewBonusEvent")

// BonusEvent is an extra payout (peak-hour incentive, rating reward) counted in
// earnings for the window it occurred in.
type BonusEvent struct { //nolint:recvcheck //using for validation
	id         kernel.UUID
	partnerID  kernel.UUID
	amount     kernel.Money
	reason     string
	occurredAt time.Time
	guard      guard.ConstructorGuard
}

func NewBonusEvent(partnerID kernel.UUID, amount kernel.Money, reason string, occurredAt time.Time) (BonusEvent, error) {
	return RestoreBonusEvent(kernel.NewUUID(), partnerID, amount, reason, occurredAt)
}

func RestoreBonusEvent(
	id kernel.UUID,
	partnerID kernel.UUID,
	amount kernel.Money,
	reason string,
	occurredAt time.Time,
) (BonusEvent, error) {
	var errAmount, errReason, errAt error
	if amount.IsZero() {
		errAmount = errs.NewValueIsRequiredError("amount")
	}
	if strings.TrimSpace(reason) == "" {
		errReason = errs.NewValueIsRequiredError("reason")
	}
	if occurredAt.IsZero() {
		errAt = errs.NewValueIsRequiredError("occurredAt")
	}
	if err := errors.Join(id.Validate(), partnerID.Validate(), errAmount, errReason, errAt); err != nil {
		return BonusEvent{}, err
	}
	return BonusEvent{
		id:         id,
		partnerID:  partnerID,
		amount:     amount,
		reason:     reason,
		occurredAt: occurredAt.UTC(),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (b BonusEvent) Validate() error {
	return b.guard.Validate(ErrBonusIsNotConstructed)
}

func (b BonusEvent) ID() kernel.UUID {
	return b.id
}

func (b BonusEvent) PartnerID() kernel.UUID {
	return b.partnerID
}

func (b BonusEvent) Amount() kernel.Money {
	return b.amount
}

func (b BonusEvent) Reason() string {
	return b.reason
}

func (b BonusEvent) OccurredAt() time.Time {
	return b.occurredAt
}
