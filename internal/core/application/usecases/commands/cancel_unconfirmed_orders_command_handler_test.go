package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/actor"
	"ordering/internal/core/domain/model/order"
)

type MockTransitionHandler struct{ mock.Mock }

func (m *MockTransitionHandler) Handle(ctx context.Context, cmd commands.RequestTransitionCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func TestCancelUnconfirmedOrdersCommandHandler_Handle(t *testing.T) {
	// Given three stale PLACED orders: one cancels, one was accepted meanwhile, one fails
	ctx := t.Context()
	cutoff := t0.Add(15 * time.Minute)
	first, _ := placeOrder(t, order.DineIn)
	second, _ := placeOrder(t, order.Delivery)
	third, _ := placeOrder(t, order.DineIn)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	factory := new(MockUoWFactory)
	transitions := new(MockTransitionHandler)

	factory.On("uow").Return(uow).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("ListUnconfirmed", ctx, cutoff, 50).Return([]*order.Order{first, second, third}, nil).Once()

	bySystem := func(o *order.Order) any {
		return mock.MatchedBy(func(cmd commands.RequestTransitionCommand) bool {
			return cmd.OrderID().IsEqual(o.ID()) &&
				cmd.To() == order.Cancelled &&
				cmd.Actor().Role() == actor.SuperAdmin &&
				cmd.Version() == o.Version()
		})
	}
	transitions.On("Handle", ctx, bySystem(first)).Return(walk(t, first, order.Cancelled), nil).Once()
	transitions.On("Handle", ctx, bySystem(second)).Return(nil, order.NewStaleOrderError(second.ID(), 1, 2)).Once()
	transitions.On("Handle", ctx, bySystem(third)).Return(nil, errors.New("db down")).Once()

	cmd, err := commands.NewCancelUnconfirmedOrdersCommand(cutoff, 50)
	require.NoError(t, err)

	// When
	handler := commands.NewCancelUnconfirmedOrdersCommandHandler(orderUoWFactory{factory}, transitions, silent)
	cancelled, err := handler.Handle(ctx, cmd)

	// Then
	require.EqualError(t, err, "db down")
	assert.Equal(t, 1, cancelled)
	transitions.AssertExpectations(t)
	uow.AssertNotCalled(t, "Begin", mock.Anything)
}

func TestNewCancelUnconfirmedOrdersCommand_Invalid(t *testing.T) {
	_, err := commands.NewCancelUnconfirmedOrdersCommand(time.Time{}, 10)
	require.Error(t, err)

	_, err = commands.NewCancelUnconfirmedOrdersCommand(t0, 0)
	require.Error(t, err)
}
