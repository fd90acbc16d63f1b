package queries_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"ordering/internal/core/domain/model/actor"
	"ordering/internal/core/domain/model/cart"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
)

var (
	t0      = time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC) // a Monday
	pricing = order.Pricing{TaxRate: decimal.NewFromInt(5), DeliveryFee: kernel.MustMoney(40)}
)

func place(t *testing.T, mode order.Mode) *order.Order {
	t.Helper()
	c, err := cart.NewCart(kernel.NewUUID(), kernel.NewUUID())
	require.NoError(t, err)
	item, err := cart.NewLineItem("sku-satay", "Chicken satay", kernel.MustMoney(300), 2, []string{"extra sauce"})
	require.NoError(t, err)
	require.NoError(t, c.Put(item))

	o, err := order.Place(c, mode, "", pricing, t0)
	require.NoError(t, err)
	return o
}

func advance(t *testing.T, o *order.Order, states ...order.State) *order.Order {
	t.Helper()
	for _, st := range states {
		var err error
		o, err = o.Advance(st, o.LastChangedAt().Add(10*time.Minute))
		require.NoError(t, err)
	}
	return o
}

func assign(t *testing.T, o *order.Order, partnerID kernel.UUID, fee int64) *order.Order {
	t.Helper()
	a, err := order.NewAssignment(partnerID, kernel.MustMoney(fee), 4, o.LastChangedAt())
	require.NoError(t, err)
	next, err := o.WithAssignment(a)
	require.NoError(t, err)
	return next
}

func customerOf(t *testing.T, o *order.Order) actor.Actor {
	t.Helper()
	a, err := actor.NewActor(actor.Customer, o.CustomerID(), nil)
	require.NoError(t, err)
	return a
}

func staffOf(t *testing.T, o *order.Order) actor.Actor {
	t.Helper()
	tenant := o.TenantID()
	a, err := actor.NewActor(actor.KitchenStaff, kernel.NewUUID(), &tenant)
	require.NoError(t, err)
	return a
}

func stranger(t *testing.T) actor.Actor {
	t.Helper()
	a, err := actor.NewActor(actor.Customer, kernel.NewUUID(), nil)
	require.NoError(t, err)
	return a
}

func window(t *testing.T, from, to time.Time) kernel.TimeWindow {
	t.Helper()
	w, err := kernel.NewTimeWindow(from, to)
	require.NoError(t, err)
	return w
}
