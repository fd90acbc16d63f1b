package commands

import (
	"errors"
	"time"

	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrCancelUnconfirmedOrdersCommandIsNotConstructed = errors.New(
	"CancelUnconfirmedOrdersCommand must be created via NewCancelUnconfirmedOrdersCommand constructor",
)

// CancelUnconfirmedOrdersCommand cancels orders that stayed PLACED since
// before the cutoff. Limit bounds one run.
type CancelUnconfirmedOrdersCommand struct { //nolint:recvcheck //using for validation
	placedBefore time.Time
	limit        int

	guard guard.ConstructorGuard
}

func NewCancelUnconfirmedOrdersCommand(placedBefore time.Time, limit int) (CancelUnconfirmedOrdersCommand, error) {
	if placedBefore.IsZero() {
		return CancelUnconfirmedOrdersCommand{}, errs.NewValueIsRequiredError("placedBefore")
	}
	if limit < 1 {
		return CancelUnconfirmedOrdersCommand{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, "unbounded")
	}

	return CancelUnconfirmedOrdersCommand{
		placedBefore: placedBefore.UTC(),
		limit:        limit,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c CancelUnconfirmedOrdersCommand) Validate() error {
	return c.guard.Validate(ErrCancelUnconfirmedOrdersCommandIsNotConstructed)
}

func (c CancelUnconfirmedOrdersCommand) PlacedBefore() time.Time {
	return c.placedBefore
}

func (c CancelUnconfirmedOrdersCommand) Limit() int {
	return c.limit
}
