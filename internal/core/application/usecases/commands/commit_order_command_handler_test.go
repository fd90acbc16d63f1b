package commands_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/cart"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
)

func TestCommitOrderCommandHandler_Handle_Success(t *testing.T) {
	// Given
	ctx := t.Context()
	basket := burgerCart(t)
	cmd, err := commands.NewCommitOrderCommand(basket, order.Delivery, "")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	factory := new(MockUoWFactory)
	metrics := newMetricsSpy()

	mock.InOrder(
		factory.On("uow").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	// When
	handler := commands.NewCommitOrderCommandHandler(orderUoWFactory{factory}, pricing, metrics)
	placed, err := handler.Handle(ctx, cmd)

	// Then
	require.NoError(t, err)
	assert.Equal(t, order.Placed, placed.State())
	assert.Equal(t, int64(1), placed.Version())
	assert.Equal(t, order.PaymentPending, placed.PaymentStatus())
	// 680 + 40 fee + 5% of 680 (34)
	assert.Equal(t, kernel.MustMoney(754), placed.Amounts().Total())
	assert.Len(t, placed.Items(), 1)
	assert.True(t, basket.IsEmpty())
	assert.Equal(t, 1, metrics.count("placed"))
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCommitOrderCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()
	basket := burgerCart(t)
	cmd, err := commands.NewCommitOrderCommand(basket, order.DineIn, "T4")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	factory := new(MockUoWFactory)
	metrics := newMetricsSpy()

	mock.InOrder(
		factory.On("uow").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", ctx, mock.Anything).Return(errors.New("insert failed")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewCommitOrderCommandHandler(orderUoWFactory{factory}, pricing, metrics)
	_, err = handler.Handle(ctx, cmd)

	require.EqualError(t, err, "insert failed")
	assert.Equal(t, 1, basket.Len())
	uow.AssertNotCalled(t, "Commit", ctx)
	assert.Zero(t, metrics.count("placed"))
}

func TestCommitOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	factory := new(MockUoWFactory)
	handler := commands.NewCommitOrderCommandHandler(orderUoWFactory{factory}, pricing, newMetricsSpy())

	_, err := handler.Handle(t.Context(), commands.CommitOrderCommand{})

	require.ErrorIs(t, err, commands.ErrCommitOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "uow")
}

func TestNewCommitOrderCommand(t *testing.T) {
	t.Run("empty cart", func(t *testing.T) {
		c, err := cart.NewCart(kernel.NewUUID(), kernel.NewUUID())
		require.NoError(t, err)

		_, err = commands.NewCommitOrderCommand(c, order.Delivery, "")

		require.ErrorIs(t, err, cart.ErrEmptyCart)
	})

	t.Run("missing cart and mode are both reported", func(t *testing.T) {
		_, err := commands.NewCommitOrderCommand(nil, order.ModeUnknown, "")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "cart")
		assert.Contains(t, err.Error(), "mode")
	})

	t.Run("dine-in keeps the table", func(t *testing.T) {
		cmd, err := commands.NewCommitOrderCommand(burgerCart(t), order.DineIn, "T12")

		require.NoError(t, err)
		assert.Equal(t, "T12", cmd.TableRef())
		assert.Equal(t, order.DineIn, cmd.Mode())
	})
}
