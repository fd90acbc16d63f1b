package commands

import (
	"errors"

	"ordering/internal/core/domain/model/cart"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrCommitOrderCommandIsNotConstructed = errors.New(
	"CommitOrderCommand must be created via NewCommitOrderCommand constructor",
)

// CommitOrderCommand turns a customer's cart into a PLACED order.
//
// Example:
//
//	cmd, err := NewCommitOrderCommand(c, order.DineIn, "T12")
//	if err != nil {
//	    return fmt.Errorf("invalid checkout: %w", err)
//	}
//	placed, err := handler.Handle(ctx, cmd)
type CommitOrderCommand struct { //nolint:recvcheck //using for validation
	cart     *cart.Cart
	mode     order.Mode
	tableRef string

	guard guard.ConstructorGuard
}

// NewCommitOrderCommand validates the cart and the fulfilment mode.
// An empty cart is rejected here with cart.EmptyCartError.
func NewCommitOrderCommand(c *cart.Cart, mode order.Mode, tableRef string) (CommitOrderCommand, error) {
	cmd := CommitOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCart(c),
		cmd.setMode(mode),
	); err != nil {
		return CommitOrderCommand{}, err
	}
	cmd.tableRef = tableRef

	return cmd, nil
}

func (c CommitOrderCommand) Validate() error {
	return c.guard.Validate(ErrCommitOrderCommandIsNotConstructed)
}

func (c CommitOrderCommand) Cart() *cart.Cart {
	return c.cart
}

func (c CommitOrderCommand) Mode() order.Mode {
	return c.mode
}

func (c CommitOrderCommand) TableRef() string {
	return c.tableRef
}

func (c *CommitOrderCommand) setCart(cc *cart.Cart) error {
	if cc == nil {
		return errs.NewValueIsRequiredError("cart")
	}
	if err := errors.Join(cc.Validate(), cc.RequireItems()); err != nil {
		return err
	}

	c.cart = cc
	return nil
}

func (c *CommitOrderCommand) setMode(mode order.Mode) error {
	if err := mode.Validate(); err != nil {
		return err
	}

	c.mode = mode
	return nil
}
