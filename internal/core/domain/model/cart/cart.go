package cart

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var (
	// ErrCartIsNotConstructed is returned for a zero-value Cart.
	ErrCartIsNotConstructed = errs.NewValueIsRequiredError("cart must be created via NewCart")

	// ErrEmptyCart is the sentinel behind EmptyCartError.
	ErrEmptyCart = errors.New("cart is empty")
)

// EmptyCartError is returned when committing a cart without items.
type EmptyCartError struct {
	CustomerID kernel.UUID
}

func (e *EmptyCartError) Error() string {
	return fmt.Sprintf("%s: customer %s", ErrEmptyCart, e.CustomerID)
}

func (e *EmptyCartError) Unwrap() error {
	return ErrEmptyCart
}

// Cart is the customer's pre-commit basket for one restaurant tenant. It is a
// plain value passed to CommitOrder; nothing holds a cart between requests.
//
// Items are keyed by SKU. Putting an existing SKU replaces it, a zero quantity
// removes it, and a negative quantity is rejected.
//
// Example:
//
//	c, _ := cart.NewCart(customerID, tenantID)
//	_ = c.Put(burger)
//	_ = c.SetQuantity("sku-burger", 3)
//	_ = c.ApplyDiscount(kernel.MustMoney(50))
type Cart struct {
	customerID kernel.UUID
	tenantID   kernel.UUID
	items      map[string]LineItem
	discount   kernel.Money
	guard      guard.ConstructorGuard
}

// NewCart creates an empty cart for a customer at a restaurant tenant.
func NewCart(customerID kernel.UUID, tenantID kernel.UUID) (*Cart, error) {
	if err := errors.Join(customerID.Validate(), tenantID.Validate()); err != nil {
		return nil, err
	}
	return &Cart{
		customerID: customerID,
		tenantID:   tenantID,
		items:      make(map[string]LineItem),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c *Cart) Validate() error {
	if c == nil {
		return ErrCartIsNotConstructed
	}
	return c.guard.Validate(ErrCartIsNotConstructed)
}

func (c *Cart) CustomerID() kernel.UUID {
	return c.customerID
}

func (c *Cart) TenantID() kernel.UUID {
	return c.tenantID
}

func (c *Cart) Discount() kernel.Money {
	return c.discount
}

// Put adds the item or replaces the entry with the same SKU.
func (c *Cart) Put(item LineItem) error {
	if err := errors.Join(c.Validate(), item.Validate()); err != nil {
		return err
	}
	c.items[item.SkuID()] = item
	return nil
}

// SetQuantity changes the quantity of an existing SKU. Zero removes the entry.
func (c *Cart) SetQuantity(skuID string, quantity int) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if quantity < 0 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 0, "unbounded")
	}
	item, ok := c.items[skuID]
	if !ok {
		return errs.NewObjectNotFoundError("skuId", skuID)
	}
	if quantity == 0 {
		delete(c.items, skuID)
		return nil
	}
	updated, err := item.WithQuantity(quantity)
	if err != nil {
		return err
	}
	c.items[skuID] = updated
	return nil
}

func (c *Cart) Remove(skuID string) {
	delete(c.items, skuID)
}

// ApplyDiscount sets the cart-level discount. Whether it exceeds the subtotal
// is only known when the quote is computed.
func (c *Cart) ApplyDiscount(discount kernel.Money) error {
	if err := c.Validate(); err != nil {
		return err
	}
	c.discount = discount
	return nil
}

// Items returns the lines sorted by SKU so quotes and persisted orders are stable.
func (c *Cart) Items() []LineItem {
	keys := slices.Sorted(maps.Keys(c.items))
	items := make([]LineItem, 0, len(keys))
	for _, k := range keys {
		items = append(items, c.items[k])
	}
	return items
}

func (c *Cart) Len() int {
	return len(c.items)
}

func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// RequireItems returns EmptyCartError when nothing is in the cart.
func (c *Cart) RequireItems() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.IsEmpty() {
		return &EmptyCartError{CustomerID: c.customerID}
	}
	return nil
}

// Clear empties the cart after a successful commit.
func (c *Cart) Clear() {
	clear(c.items)
	c.discount = kernel.ZeroMoney()
}
