package cart_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ordering/internal/core/domain/model/cart"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

func newItem(t *testing.T, sku string, price int64, qty int) cart.LineItem {
	t.Helper()
	item, err := cart.NewLineItem(sku, "item "+sku, kernel.MustMoney(price), qty, []string{"no onion", "extra cheese"})
	require.NoError(t, err)
	return item
}

func TestNewLineItem(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		item := newItem(t, "sku-burger", 340, 2)

		assert.Equal(t, "sku-burger", item.SkuID())
		assert.Equal(t, 2, item.Quantity())
		assert.Equal(t, []string{"no onion", "extra cheese"}, item.Customizations())
		total, err := item.LineTotal()
		require.NoError(t, err)
		assert.Equal(t, int64(680), total.Minor())
	})

	t.Run("zero quantity and blank sku", func(t *testing.T) {
		_, err := cart.NewLineItem(" ", "Fries", kernel.MustMoney(180), 0, nil)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("customizations are copied", func(t *testing.T) {
		opts := []string{"spicy"}
		item, err := cart.NewLineItem("sku-wings", "Wings", kernel.MustMoney(500), 1, opts)
		require.NoError(t, err)

		opts[0] = "mild"
		item.Customizations()[0] = "extra"

		assert.Equal(t, []string{"spicy"}, item.Customizations())
	})
}

func TestCart_PutAndSetQuantity(t *testing.T) {
	c, err := cart.NewCart(kernel.NewUUID(), kernel.NewUUID())
	require.NoError(t, err)

	t.Run("last write wins for the same sku", func(t *testing.T) {
		require.NoError(t, c.Put(newItem(t, "sku-burger", 340, 1)))
		require.NoError(t, c.Put(newItem(t, "sku-burger", 340, 4)))

		require.Equal(t, 1, c.Len())
		assert.Equal(t, 4, c.Items()[0].Quantity())
	})

	t.Run("quantity update", func(t *testing.T) {
		require.NoError(t, c.SetQuantity("sku-burger", 2))
		assert.Equal(t, 2, c.Items()[0].Quantity())
	})

	t.Run("negative quantity is rejected and leaves the cart untouched", func(t *testing.T) {
		err := c.SetQuantity("sku-burger", -1)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Equal(t, 2, c.Items()[0].Quantity())
	})

	t.Run("unknown sku", func(t *testing.T) {
		err := c.SetQuantity("sku-pizza", 1)
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("zero quantity removes the entry", func(t *testing.T) {
		require.NoError(t, c.SetQuantity("sku-burger", 0))
		assert.True(t, c.IsEmpty())
	})
}

func TestCart_ItemsAreSortedBySku(t *testing.T) {
	c, err := cart.NewCart(kernel.NewUUID(), kernel.NewUUID())
	require.NoError(t, err)

	require.NoError(t, c.Put(newItem(t, "sku-c", 1, 1)))
	require.NoError(t, c.Put(newItem(t, "sku-a", 1, 1)))
	require.NoError(t, c.Put(newItem(t, "sku-b", 1, 1)))

	items := c.Items()
	assert.Equal(t, "sku-a", items[0].SkuID())
	assert.Equal(t, "sku-b", items[1].SkuID())
	assert.Equal(t, "sku-c", items[2].SkuID())
}

func TestCart_RequireItems(t *testing.T) {
	customer := kernel.NewUUID()
	c, err := cart.NewCart(customer, kernel.NewUUID())
	require.NoError(t, err)

	err = c.RequireItems()

	var empty *cart.EmptyCartError
	require.ErrorAs(t, err, &empty)
	assert.True(t, empty.CustomerID.IsEqual(customer))
	require.ErrorIs(t, err, cart.ErrEmptyCart)
}

func TestCart_Clear(t *testing.T) {
	c, err := cart.NewCart(kernel.NewUUID(), kernel.NewUUID())
	require.NoError(t, err)
	require.NoError(t, c.Put(newItem(t, "sku-a", 100, 1)))
	require.NoError(t, c.ApplyDiscount(kernel.MustMoney(10)))

	c.Clear()

	assert.True(t, c.IsEmpty())
	assert.True(t, c.Discount().IsZero())
}

func TestCart_ZeroValue(t *testing.T) {
	var c *cart.Cart
	require.ErrorIs(t, c.Validate(), cart.ErrCartIsNotConstructed)

	_, err := cart.NewCart(kernel.UUID{}, kernel.NewUUID())
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}
