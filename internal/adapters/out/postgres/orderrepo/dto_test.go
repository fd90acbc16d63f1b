package orderrepo

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ordering/internal/core/domain/model/cart"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"
)

func storedOrder(t *testing.T) OrderDTO {
	t.Helper()
	c, err := cart.NewCart(kernel.NewUUID(), kernel.NewUUID())
	require.NoError(t, err)
	for _, sku := range []string{"sku-rice", "sku-tea"} {
		item, itemErr := cart.NewLineItem(sku, sku, kernel.MustMoney(120), 1, nil)
		require.NoError(t, itemErr)
		require.NoError(t, c.Put(item))
	}
	pricing := order.Pricing{TaxRate: decimal.NewFromInt(5), DeliveryFee: kernel.MustMoney(40)}
	o, err := order.Place(c, order.Delivery, "", pricing, time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return fromDomain(o)
}

func TestToDomain_RoundTripsItemsInPosition(t *testing.T) {
	dto := storedOrder(t)
	dto.Items[0], dto.Items[1] = dto.Items[1], dto.Items[0]

	o, err := toDomain(dto)

	require.NoError(t, err)
	require.Len(t, o.Items(), 2)
	assert.Equal(t, "sku-rice", o.Items()[0].SkuID())
	assert.Equal(t, "sku-tea", o.Items()[1].SkuID())
}

func TestToDomain_RejectsCorruptItemPositions(t *testing.T) {
	t.Run("position out of range", func(t *testing.T) {
		dto := storedOrder(t)
		dto.Items[1].Position = 5

		_, err := toDomain(dto)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("position stored twice", func(t *testing.T) {
		dto := storedOrder(t)
		dto.Items[1].Position = 0

		_, err := toDomain(dto)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
