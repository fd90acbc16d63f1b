package queries_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/partner"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order, expectedVersion int64) error {
	return m.Called(ctx, o, expectedVersion).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByState(
	ctx context.Context,
	tenantID kernel.UUID,
	state order.State,
) ([]*order.Order, error) {
	args := m.Called(ctx, tenantID, state)
	return orders(args.Get(0)), args.Error(1)
}

func (m *MockOrderRepository) ListByPartner(
	ctx context.Context,
	partnerID kernel.UUID,
	window kernel.TimeWindow,
) ([]*order.Order, error) {
	args := m.Called(ctx, partnerID, window)
	return orders(args.Get(0)), args.Error(1)
}

func (m *MockOrderRepository) ListPendingPayments(ctx context.Context, tenantID *kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, tenantID)
	return orders(args.Get(0)), args.Error(1)
}

func (m *MockOrderRepository) ListUnconfirmed(
	ctx context.Context,
	placedBefore time.Time,
	limit int,
) ([]*order.Order, error) {
	args := m.Called(ctx, placedBefore, limit)
	return orders(args.Get(0)), args.Error(1)
}

type MockPartnerRepository struct{ mock.Mock }

func (m *MockPartnerRepository) Add(ctx context.Context, p *partner.Partner) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPartnerRepository) Update(ctx context.Context, p *partner.Partner) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPartnerRepository) Get(ctx context.Context, id kernel.UUID) (*partner.Partner, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Partner), args.Error(1)
}

func (m *MockPartnerRepository) AddBonus(ctx context.Context, b partner.BonusEvent) error {
	return m.Called(ctx, b).Error(0)
}

func (m *MockPartnerRepository) ListBonuses(
	ctx context.Context,
	partnerID kernel.UUID,
	window kernel.TimeWindow,
) ([]partner.BonusEvent, error) {
	args := m.Called(ctx, partnerID, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.BonusEvent), args.Error(1)
}

func orders(v any) []*order.Order {
	if v == nil {
		return nil
	}
	return v.([]*order.Order)
}
