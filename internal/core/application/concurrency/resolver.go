// Package concurrency serializes writes to a single order with optimistic
// compare-and-swap on its version. There is no lock across orders: writes to
// different orders never wait on each other.
package concurrency

import (
	"context"
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
)

// Mutation computes the next record from the current one. Returning a record
// with the current version (typically the input itself) means "nothing to do".
type Mutation func(current *order.Order) (*order.Order, error)

// Outcome is the record after Apply and whether it was written.
type Outcome struct {
	Order   *order.Order
	Changed bool
}

// Resolver applies mutations with version checking.
//
// Apply, in order:
//  1. loads the stored record and runs the mutation on it
//  2. surfaces UnauthorizedTransitionError, whatever the version
//  3. returns the stored record untouched when the mutation is a no-op
//  4. rejects a request whose version is not the stored one with StaleOrderError
//  5. surfaces any other mutation error
//  6. writes with compare-and-swap; losing the race is also a StaleOrderError
//
// Example usage:
//
//	out, err := concurrency.NewResolver().Apply(ctx, uow.OrderRepository(), id, cmd.Version(),
//	    func(current *order.Order) (*order.Order, error) {
//	        res, err := machine.Transition(current, cmd.To(), cmd.Actor(), now)
//	        return res.Order, err
//	    })
type Resolver struct{}

func NewResolver() Resolver {
	return Resolver{}
}

// Apply runs mutate against the order if the caller's version is current.
func (r Resolver) Apply(
	ctx context.Context,
	repo ports.OrderRepository,
	id kernel.UUID,
	expectedVersion int64,
	mutate Mutation,
) (Outcome, error) {
	current, err := repo.Get(ctx, id)
	if err != nil {
		return Outcome{}, err
	}
	return r.apply(ctx, repo, current, expectedVersion, mutate)
}

// ApplyLatest is Apply against whatever version is stored right now. It serves
// writes that carry no client version, such as payment callbacks; the
// compare-and-swap still rejects a concurrent writer.
func (r Resolver) ApplyLatest(
	ctx context.Context,
	repo ports.OrderRepository,
	id kernel.UUID,
	mutate Mutation,
) (Outcome, error) {
	current, err := repo.Get(ctx, id)
	if err != nil {
		return Outcome{}, err
	}
	return r.apply(ctx, repo, current, current.Version(), mutate)
}

func (Resolver) apply(
	ctx context.Context,
	repo ports.OrderRepository,
	current *order.Order,
	expectedVersion int64,
	mutate Mutation,
) (Outcome, error) {
	next, mutateErr := mutate(current)
	if errors.Is(mutateErr, order.ErrUnauthorizedTransition) {
		return Outcome{}, mutateErr
	}
	if mutateErr == nil && next.Version() == current.Version() {
		return Outcome{Order: current}, nil
	}
	if current.Version() != expectedVersion {
		return Outcome{}, order.NewStaleOrderError(current.ID(), expectedVersion, current.Version())
	}
	if mutateErr != nil {
		return Outcome{}, mutateErr
	}

	if err := repo.Update(ctx, next, expectedVersion); err != nil {
		return Outcome{}, err
	}
	return Outcome{Order: next, Changed: true}, nil
}
