package concurrency_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ordering/internal/core/application/concurrency"
	"ordering/internal/core/domain/model/actor"
	"ordering/internal/core/domain/model/cart"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/services"
	"ordering/internal/pkg/errs"
)

var t0 = time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

type fixture struct {
	order   *order.Order
	staff   actor.Actor
	partner actor.Actor
}

// preparingDelivery returns a delivery order assigned to a partner and in PREPARING.
func preparingDelivery(t *testing.T) fixture {
	t.Helper()
	c, err := cart.NewCart(kernel.NewUUID(), kernel.NewUUID())
	require.NoError(t, err)
	item, err := cart.NewLineItem("sku-burger", "Beef burger", kernel.MustMoney(340), 2, nil)
	require.NoError(t, err)
	require.NoError(t, c.Put(item))

	o, err := order.Place(c, order.Delivery, "", order.Pricing{TaxRate: decimal.NewFromInt(5)}, t0)
	require.NoError(t, err)

	tenant := c.TenantID()
	staff, err := actor.NewActor(actor.KitchenStaff, kernel.NewUUID(), &tenant)
	require.NoError(t, err)
	rider, err := actor.NewActor(actor.DeliveryPartner, kernel.NewUUID(), nil)
	require.NoError(t, err)

	a, err := order.NewAssignment(rider.ID(), kernel.MustMoney(150), 8, t0)
	require.NoError(t, err)
	o, err = o.WithAssignment(a)
	require.NoError(t, err)
	o, err = o.Advance(order.Accepted, t0.Add(time.Minute))
	require.NoError(t, err)
	o, err = o.Advance(order.Preparing, t0.Add(2*time.Minute))
	require.NoError(t, err)

	return fixture{order: o, staff: staff, partner: rider}
}

func transitionTo(to order.State, who actor.Actor, at time.Time) concurrency.Mutation {
	machine := services.NewOrderStateMachine(services.NewRoleGateway())
	return func(current *order.Order) (*order.Order, error) {
		res, err := machine.Transition(current, to, who, at)
		return res.Order, err
	}
}

func TestResolver_Apply(t *testing.T) {
	resolver := concurrency.NewResolver()

	t.Run("current version is written", func(t *testing.T) {
		f := preparingDelivery(t)
		repo := newCASRepository(f.order)

		out, err := resolver.Apply(t.Context(), repo, f.order.ID(), f.order.Version(),
			transitionTo(order.Ready, f.staff, t0.Add(time.Hour)))

		require.NoError(t, err)
		assert.True(t, out.Changed)
		stored, err := repo.Get(t.Context(), f.order.ID())
		require.NoError(t, err)
		assert.Equal(t, order.Ready, stored.State())
		assert.Equal(t, f.order.Version()+1, stored.Version())
	})

	t.Run("kitchen wins and the partner's stale request is rejected then retried", func(t *testing.T) {
		// Given
		f := preparingDelivery(t)
		repo := newCASRepository(f.order)
		readVersion := f.order.Version()

		// When the kitchen marks READY with the version it read
		ready, err := resolver.Apply(t.Context(), repo, f.order.ID(), readVersion,
			transitionTo(order.Ready, f.staff, t0.Add(time.Hour)))
		require.NoError(t, err)

		// And the partner asks for PICKED_UP with an older version
		_, err = resolver.Apply(t.Context(), repo, f.order.ID(), readVersion-1,
			transitionTo(order.PickedUp, f.partner, t0.Add(time.Hour)))

		// Then
		var stale *order.StaleOrderError
		require.ErrorAs(t, err, &stale)
		assert.Equal(t, ready.Order.Version(), stale.Actual)

		picked, err := resolver.Apply(t.Context(), repo, f.order.ID(), ready.Order.Version(),
			transitionTo(order.PickedUp, f.partner, t0.Add(2*time.Hour)))
		require.NoError(t, err)
		assert.Equal(t, order.PickedUp, picked.Order.State())
	})

	t.Run("re-requesting the current state succeeds even with a stale version", func(t *testing.T) {
		f := preparingDelivery(t)
		repo := newCASRepository(f.order)

		out, err := resolver.Apply(t.Context(), repo, f.order.ID(), 1,
			transitionTo(order.Preparing, f.staff, t0.Add(time.Hour)))

		require.NoError(t, err)
		assert.False(t, out.Changed)
		assert.Equal(t, f.order.Version(), out.Order.Version())
	})

	t.Run("unauthorized beats stale", func(t *testing.T) {
		f := preparingDelivery(t)
		repo := newCASRepository(f.order)
		stranger, err := actor.NewActor(actor.Customer, kernel.NewUUID(), nil)
		require.NoError(t, err)

		_, err = resolver.Apply(t.Context(), repo, f.order.ID(), 1,
			transitionTo(order.Cancelled, stranger, t0))

		require.ErrorIs(t, err, order.ErrUnauthorizedTransition)
	})

	t.Run("invalid edge with a current version", func(t *testing.T) {
		f := preparingDelivery(t)
		repo := newCASRepository(f.order)

		_, err := resolver.Apply(t.Context(), repo, f.order.ID(), f.order.Version(),
			transitionTo(order.Delivered, f.partner, t0))

		require.ErrorIs(t, err, order.ErrInvalidTransition)
		stored, _ := repo.Get(t.Context(), f.order.ID())
		assert.Same(t, f.order, stored)
	})

	t.Run("missing order", func(t *testing.T) {
		_, err := resolver.Apply(t.Context(), newCASRepository(), kernel.NewUUID(), 1,
			transitionTo(order.Ready, actor.System(), t0))

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestResolver_ExactlyOneConcurrentWriterWins(t *testing.T) {
	resolver := concurrency.NewResolver()

	for range 50 {
		f := preparingDelivery(t)
		repo := newCASRepository(f.order)
		version := f.order.Version()

		var (
			wg      sync.WaitGroup
			results = make([]error, 2)
			writers = []concurrency.Mutation{
				transitionTo(order.Ready, f.staff, t0.Add(time.Hour)),
				transitionTo(order.Cancelled, f.staff, t0.Add(time.Hour)),
			}
		)
		for i, mutate := range writers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, results[i] = resolver.Apply(t.Context(), repo, f.order.ID(), version, mutate)
			}()
		}
		wg.Wait()

		stale := 0
		for _, err := range results {
			if errors.Is(err, order.ErrStaleOrder) {
				stale++
			} else {
				require.NoError(t, err)
			}
		}
		require.Equal(t, 1, stale)

		stored, err := repo.Get(t.Context(), f.order.ID())
		require.NoError(t, err)
		require.Equal(t, version+1, stored.Version())
	}
}

func TestResolver_ApplyLatest(t *testing.T) {
	f := preparingDelivery(t)
	repo := newCASRepository(f.order)
	ledger := services.NewPaymentLedger()

	out, err := concurrency.NewResolver().ApplyLatest(t.Context(), repo, f.order.ID(),
		func(current *order.Order) (*order.Order, error) {
			res, err := ledger.MarkFailed(current, "declined", t0)
			return res.Order, err
		})

	require.NoError(t, err)
	assert.True(t, out.Changed)
	assert.Equal(t, order.PaymentFailed, out.Order.PaymentStatus())
}
