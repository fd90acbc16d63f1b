package order

import (
	"github.com/shopspring/decimal"

	"ordering/internal/core/domain/model/cart"
	"ordering/internal/core/domain/model/kernel"
)

// Pricing holds the tenant-wide inputs of a quote.
type Pricing struct {
	TaxRate     decimal.Decimal
	DeliveryFee kernel.Money
}

// Quote prices the cart for the given mode. Dine-in orders never pay a delivery fee.
func (p Pricing) Quote(c *cart.Cart, mode Mode) (Amounts, error) {
	if err := c.Validate(); err != nil {
		return Amounts{}, err
	}
	fee := p.DeliveryFee
	if mode != Delivery {
		fee = kernel.ZeroMoney()
	}
	return ComputeAmounts(c.Items(), c.Discount(), fee, p.TaxRate)
}
