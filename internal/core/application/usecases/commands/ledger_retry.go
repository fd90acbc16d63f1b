package commands

import (
	"context"
	"errors"

	"ordering/internal/core/domain/model/order"
)

// maxLedgerAttempts bounds how often a payment write is retried after losing
// the version race. Payment callbacks carry no client version, so a retry
// against the latest version is always safe.
const maxLedgerAttempts = 3

// retryOnStale runs attempt until it succeeds, fails with anything but a
// stale order, or runs out of attempts.
func retryOnStale[T any](
	ctx context.Context,
	onStale func(),
	attempt func(ctx context.Context) (T, error),
) (T, error) {
	var (
		result T
		err    error
	)
	for range maxLedgerAttempts {
		result, err = attempt(ctx)
		if !errors.Is(err, order.ErrStaleOrder) {
			return result, err
		}
		onStale()
		if ctx.Err() != nil {
			return result, errors.Join(err, ctx.Err())
		}
	}
	return result, err
}
