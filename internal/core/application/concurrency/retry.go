package concurrency

import (
	"context"
	"errors"

	"ordering/internal/core/domain/model/order"
)

// RetryOnce runs attempt with the caller's version and, if it fails with a
// stale or unauthorized error, re-reads the current version and tries exactly
// once more. The second error, if any, is returned as is.
//
// Parameters:
//   - version: the version the caller read
//   - attempt: one complete write, in its own unit of work
//   - refetch: reads the version stored now
//
// Example:
//
//	o, err := concurrency.RetryOnce(ctx, cmd.Version(), h.attempt, h.currentVersion)
func RetryOnce[T any](
	ctx context.Context,
	version int64,
	attempt func(ctx context.Context, version int64) (T, error),
	refetch func(ctx context.Context) (int64, error),
) (T, error) {
	result, err := attempt(ctx, version)
	if err == nil || !Retryable(err) {
		return result, err
	}

	fresh, fetchErr := refetch(ctx)
	if fetchErr != nil {
		var zero T
		return zero, errors.Join(err, fetchErr)
	}
	return attempt(ctx, fresh)
}

// Retryable reports whether a write may succeed after re-reading the order.
func Retryable(err error) bool {
	return errors.Is(err, order.ErrStaleOrder) || errors.Is(err, order.ErrUnauthorizedTransition)
}
