package order

import (
	"fmt"

	"github.com/shopspring/decimal"

	"ordering/internal/core/domain/model/cart"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

// Amounts is the price breakdown frozen into an order at commit.
// total = subtotal - discount + deliveryFee + taxAmount, exactly, in minor units.
type Amounts struct {
	subtotal    kernel.Money
	deliveryFee kernel.Money
	taxRate     decimal.Decimal
	taxAmount   kernel.Money
	discount    kernel.Money
	total       kernel.Money
}

// ComputeAmounts prices a set of line items.
//
// Parameters:
//   - items: the lines to price
//   - discount: subtracted before tax; larger than the subtotal is a NegativeResultError
//   - deliveryFee: added after tax is computed; pass zero for dine-in
//   - taxRate: percentage applied to subtotal - discount, e.g. 5 for 5%
//
// Example:
//
//	amounts, err := order.ComputeAmounts(items, kernel.ZeroMoney(), kernel.MustMoney(40), decimal.NewFromInt(5))
//	// [{340×2},{180×1}] → subtotal 860, tax 43, total 943
func ComputeAmounts(
	items []cart.LineItem,
	discount kernel.Money,
	deliveryFee kernel.Money,
	taxRate decimal.Decimal,
) (Amounts, error) {
	if taxRate.IsNegative() {
		return Amounts{}, errs.NewValueIsInvalidErrorWithCause("taxRate", fmt.Errorf("%s is negative", taxRate))
	}

	subtotal := kernel.ZeroMoney()
	for _, item := range items {
		line, err := item.LineTotal()
		if err != nil {
			return Amounts{}, err
		}
		if subtotal, err = subtotal.Add(line); err != nil {
			return Amounts{}, err
		}
	}

	taxable, err := subtotal.Subtract(discount)
	if err != nil {
		return Amounts{}, err
	}
	taxAmount, err := taxable.PercentageOf(taxRate)
	if err != nil {
		return Amounts{}, err
	}
	total, err := kernel.Sum(taxable, deliveryFee, taxAmount)
	if err != nil {
		return Amounts{}, err
	}

	return Amounts{
		subtotal:    subtotal,
		deliveryFee: deliveryFee,
		taxRate:     taxRate,
		taxAmount:   taxAmount,
		discount:    discount,
		total:       total,
	}, nil
}

// RestoreAmounts rebuilds stored amounts and rejects rows that break the total invariant.
func RestoreAmounts(
	subtotal kernel.Money,
	deliveryFee kernel.Money,
	taxRate decimal.Decimal,
	taxAmount kernel.Money,
	discount kernel.Money,
	total kernel.Money,
) (Amounts, error) {
	a := Amounts{
		subtotal:    subtotal,
		deliveryFee: deliveryFee,
		taxRate:     taxRate,
		taxAmount:   taxAmount,
		discount:    discount,
		total:       total,
	}
	if err := a.Validate(); err != nil {
		return Amounts{}, err
	}
	return a, nil
}

// Validate checks the total invariant.
func (a Amounts) Validate() error {
	taxable, err := a.subtotal.Subtract(a.discount)
	if err != nil {
		return err
	}
	expected, err := kernel.Sum(taxable, a.deliveryFee, a.taxAmount)
	if err != nil {
		return err
	}
	if !expected.IsEqual(a.total) {
		return errs.NewValueIsInvalidErrorWithCause("total",
			fmt.Errorf("%d does not match subtotal-discount+fee+tax=%d", a.total.Minor(), expected.Minor()))
	}
	return nil
}

func (a Amounts) Subtotal() kernel.Money {
	return a.subtotal
}

func (a Amounts) DeliveryFee() kernel.Money {
	return a.deliveryFee
}

func (a Amounts) TaxRate() decimal.Decimal {
	return a.taxRate
}

func (a Amounts) TaxAmount() kernel.Money {
	return a.taxAmount
}

func (a Amounts) Discount() kernel.Money {
	return a.discount
}

func (a Amounts) Total() kernel.Money {
	return a.total
}
