package fanout_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"ordering/internal/adapters/out/fanout"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
)

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, events ...order.ChangedEvent) error {
	return m.Called(ctx, events).Error(0)
}

func TestPublisher_DeliversToEveryTarget(t *testing.T) {
	// Given
	events := []order.ChangedEvent{{OrderID: kernel.NewUUID(), Kind: order.ChangePlaced}}
	broken := &MockPublisher{}
	broken.On("Publish", mock.Anything, events).Return(errors.New("broker down"))
	healthy := &MockPublisher{}
	healthy.On("Publish", mock.Anything, events).Return(nil)

	// When
	err := fanout.NewPublisher(broken, nil, healthy).Publish(context.Background(), events...)

	// Then
	assert.EqualError(t, err, "broker down")
	broken.AssertExpectations(t)
	healthy.AssertExpectations(t)
}

func TestPublisher_NoTargets(t *testing.T) {
	assert.NoError(t, fanout.NewPublisher().Publish(context.Background()))
}
