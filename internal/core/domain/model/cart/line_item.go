package cart

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

// ErrLineItemIsNotConstructed is returned for a zero-value LineItem.
var ErrLineItemIsNotConstructed = errs.NewValueIsRequiredError("line item must be created via NewLineItem")

// LineItem is one menu SKU in a cart or a committed order. Once attached to an
// order it never changes; cart edits replace the whole item.
type LineItem struct { //nolint:recvcheck //using for validation
	skuID          string
	name           string
	unitPrice      kernel.Money
	quantity       int
	customizations []string
	guard          guard.ConstructorGuard
}

// NewLineItem validates a cart line.
//
// Parameters:
//   - skuID: menu SKU, the cart key
//   - name: display name frozen into the order
//   - unitPrice: price of one unit
//   - quantity: at least 1
//   - customizations: ordered free-text options ("no onion", "extra cheese")
//
// Example:
//
//	burger, err := cart.NewLineItem("sku-burger", "Beef burger", kernel.MustMoney(340), 2, nil)
func NewLineItem(
	skuID string,
	name string,
	unitPrice kernel.Money,
	quantity int,
	customizations []string,
) (LineItem, error) {
	item := LineItem{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		item.setSkuID(skuID),
		item.setName(name),
		item.setQuantity(quantity),
	); err != nil {
		return LineItem{}, err
	}

	item.unitPrice = unitPrice
	item.customizations = slices.Clone(customizations)
	return item, nil
}

func (i LineItem) Validate() error {
	return i.guard.Validate(ErrLineItemIsNotConstructed)
}

func (i LineItem) SkuID() string {
	return i.skuID
}

func (i LineItem) Name() string {
	return i.name
}

func (i LineItem) UnitPrice() kernel.Money {
	return i.unitPrice
}

func (i LineItem) Quantity() int {
	return i.quantity
}

// Customizations returns a copy in the order the customer entered them.
func (i LineItem) Customizations() []string {
	return slices.Clone(i.customizations)
}

// LineTotal is unitPrice × quantity.
func (i LineItem) LineTotal() (kernel.Money, error) {
	return i.unitPrice.Multiply(i.quantity)
}

// WithQuantity returns a copy with a new quantity, which must be at least 1.
func (i LineItem) WithQuantity(quantity int) (LineItem, error) {
	if err := i.Validate(); err != nil {
		return LineItem{}, err
	}
	next := i
	next.customizations = slices.Clone(i.customizations)
	if err := next.setQuantity(quantity); err != nil {
		return LineItem{}, err
	}
	return next, nil
}

func (i *LineItem) setSkuID(skuID string) error {
	if strings.TrimSpace(skuID) == "" {
		return errs.NewValueIsRequiredError("skuId")
	}
	i.skuID = skuID
	return nil
}

func (i *LineItem) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("name")
	}
	i.name = name
	return nil
}

func (i *LineItem) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is less than 1", quantity))
	}
	i.quantity = quantity
	return nil
}
