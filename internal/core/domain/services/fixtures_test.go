package services_test

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

var t0 = time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

type cast struct {
	customer actor.Actor
	staff    actor.Actor
	partner  actor.Actor
	admin    actor.Actor
	stranger actor.Actor
}

func newCast(t *testing.T, customerID, tenantID kernel.UUID) cast {
	t.Helper()
	customer, err := actor.NewActor(actor.Customer, customerID, nil)
	require.NoError(t, err)
	staff, err := actor.NewActor(actor.KitchenStaff, kernel.NewUUID(), &tenantID)
	require.NoError(t, err)
	partner, err := actor.NewActor(actor.DeliveryPartner, kernel.NewUUID(), nil)
	require.NoError(t, err)
	admin, err := actor.NewActor(actor.SuperAdmin, kernel.NewUUID(), nil)
	require.NoError(t, err)
	stranger, err := actor.NewActor(actor.Customer, kernel.NewUUID(), nil)
	require.NoError(t, err)
	return cast{customer: customer, staff: staff, partner: partner, admin: admin, stranger: stranger}
}

func placeOrder(t *testing.T, mode order.Mode) (*order.Order, cast) {
	t.Helper()
	c, err := cart.NewCart(kernel.NewUUID(), kernel.NewUUID())
	require.NoError(t, err)
	burger, err := cart.NewLineItem("sku-burger", "Beef burger", kernel.MustMoney(340), 2, nil)
	require.NoError(t, err)
	fries, err := cart.NewLineItem("sku-fries", "Fries", kernel.MustMoney(180), 1, nil)
	require.NoError(t, err)
	require.NoError(t, c.Put(burger))
	require.NoError(t, c.Put(fries))

	pricing := order.Pricing{TaxRate: decimal.NewFromInt(5), DeliveryFee: kernel.MustMoney(40)}
	o, err := order.Place(c, mode, "", pricing, t0)
	require.NoError(t, err)
	return o, newCast(t, c.CustomerID(), c.TenantID())
}

func assignTo(t *testing.T, o *order.Order, partnerID kernel.UUID, fee int64) *order.Order {
	t.Helper()
	a, err := order.NewAssignment(partnerID, kernel.MustMoney(fee), 8, t0)
	require.NoError(t, err)
	next, err := o.WithAssignment(a)
	require.NoError(t, err)
	return next
}

func walk(t *testing.T, o *order.Order, at time.Time, states ...order.State) *order.Order {
	t.Helper()
	for _, st := range states {
		at = at.Add(time.Minute)
		var err error
		o, err = o.Advance(st, at)
		require.NoError(t, err)
	}
	return o
}
