package order

import (
	"errors"
	"fmt"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

// ErrAssignmentIsNotConstructed is returned for a zero-value Assignment.
var ErrAssignmentIsNotConstructed = errs.NewValueIsRequiredError("assignment must be created via NewAssignment")

// Assignment binds a delivery order to a partner and captures the fee the
// partner earns for it. The fee is fixed at assignment time; later fee
// schedule changes do not alter it.
type Assignment struct { //nolint:recvcheck //using for validation
	partnerID  kernel.UUID
	fee        kernel.Money
	distance   int
	assignedAt time.Time
	guard      guard.ConstructorGuard
}

func NewAssignment(partnerID kernel.UUID, fee kernel.Money, distance int, assignedAt time.Time) (Assignment, error) {
	var errDistance, errAt error
	if distance < 0 {
		errDistance = errs.NewValueIsInvalidErrorWithCause("distance", fmt.Errorf("%d is negative", distance))
	}
	if assignedAt.IsZero() {
		errAt = errs.NewValueIsRequiredError("assignedAt")
	}
	if err := errors.Join(partnerID.Validate(), errDistance, errAt); err != nil {
		return Assignment{}, err
	}
	return Assignment{
		partnerID:  partnerID,
		fee:        fee,
		distance:   distance,
		assignedAt: assignedAt.UTC(),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (a Assignment) Validate() error {
	return a.guard.Validate(ErrAssignmentIsNotConstructed)
}

func (a Assignment) PartnerID() kernel.UUID {
	return a.partnerID
}

func (a Assignment) Fee() kernel.Money {
	return a.fee
}

func (a Assignment) Distance() int {
	return a.distance
}

func (a Assignment) AssignedAt() time.Time {
	return a.assignedAt
}
