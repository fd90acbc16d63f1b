package order_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"ordering/internal/core/domain/model/cart"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
)

var placedAt = time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

func scenarioPricing() order.Pricing {
	return order.Pricing{TaxRate: decimal.NewFromInt(5), DeliveryFee: kernel.MustMoney(40)}
}

func scenarioCart(t *testing.T) *cart.Cart {
	t.Helper()
	c, err := cart.NewCart(kernel.NewUUID(), kernel.NewUUID())
	require.NoError(t, err)

	burger, err := cart.NewLineItem("sku-burger", "Beef burger", kernel.MustMoney(340), 2, []string{"no onion"})
	require.NoError(t, err)
	fries, err := cart.NewLineItem("sku-fries", "Fries", kernel.MustMoney(180), 1, nil)
	require.NoError(t, err)

	require.NoError(t, c.Put(burger))
	require.NoError(t, c.Put(fries))
	return c
}

func placed(t *testing.T, mode order.Mode) *order.Order {
	t.Helper()
	o, err := order.Place(scenarioCart(t), mode, "", scenarioPricing(), placedAt)
	require.NoError(t, err)
	return o
}

func advance(t *testing.T, o *order.Order, states ...order.State) *order.Order {
	t.Helper()
	at := placedAt
	for _, st := range states {
		at = at.Add(time.Minute)
		var err error
		o, err = o.Advance(st, at)
		require.NoError(t, err)
	}
	return o
}
