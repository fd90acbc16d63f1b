package commands_test

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/actor"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/partner"
	"ordering/internal/core/domain/model/payment"
	"ordering/internal/core/ports"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order, expectedVersion int64) error {
	args := m.Called(ctx, o, expectedVersion)
	return args.Error(0)
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
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByPartner(
	ctx context.Context,
	partnerID kernel.UUID,
	window kernel.TimeWindow,
) ([]*order.Order, error) {
	args := m.Called(ctx, partnerID, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) ListPendingPayments(ctx context.Context, tenantID *kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) ListUnconfirmed(
	ctx context.Context,
	placedBefore time.Time,
	limit int,
) ([]*order.Order, error) {
	args := m.Called(ctx, placedBefore, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockPaymentRepository struct{ mock.Mock }

func (m *MockPaymentRepository) Add(ctx context.Context, entry payment.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockPaymentRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]payment.Entry, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]payment.Entry), args.Error(1)
}

type MockPartnerRepository struct{ mock.Mock }

func (m *MockPartnerRepository) Add(ctx context.Context, p *partner.Partner) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPartnerRepository) Update(ctx context.Context, p *partner.Partner) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPartnerRepository) Get(ctx context.Context, id kernel.UUID) (*partner.Partner, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Partner), args.Error(1)
}

func (m *MockPartnerRepository) AddBonus(ctx context.Context, bonus partner.BonusEvent) error {
	args := m.Called(ctx, bonus)
	return args.Error(0)
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

// MockUoW satisfies every unit of work interface of the commands package.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) PaymentRepository() ports.PaymentRepository {
	args := m.Called()
	return args.Get(0).(ports.PaymentRepository)
}

func (m *MockUoW) PartnerRepository() ports.PartnerRepository {
	args := m.Called()
	return args.Get(0).(ports.PartnerRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) uow() *MockUoW {
	args := m.Called()
	return args.Get(0).(*MockUoW)
}

type orderUoWFactory struct{ *MockUoWFactory }

func (f orderUoWFactory) Create() commands.OrderUoW { return f.uow() }

type ledgerUoWFactory struct{ *MockUoWFactory }

func (f ledgerUoWFactory) Create() commands.LedgerUoW { return f.uow() }

type partnerUoWFactory struct{ *MockUoWFactory }

func (f partnerUoWFactory) Create() commands.PartnerUoW { return f.uow() }

type uowFactory struct{ *MockUoWFactory }

func (f uowFactory) Create() commands.UoW { return f.uow() }

// metricsSpy records lifecycle counters by name.
type metricsSpy struct {
	mu     sync.Mutex
	counts map[string]int
}

func newMetricsSpy() *metricsSpy {
	return &metricsSpy{counts: make(map[string]int)}
}

func (s *metricsSpy) inc(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counts[name]++
}

func (s *metricsSpy) count(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts[name]
}

func (s *metricsSpy) OrderPlaced(order.Mode) { s.inc("placed") }

func (s *metricsSpy) TransitionApplied(_ order.Mode, _ order.State, to order.State) {
	s.inc("applied:" + to.String())
}

func (s *metricsSpy) TransitionRejected(reason string) { s.inc("rejected:" + reason) }

func (s *metricsSpy) UnauthorizedAttempt(actor.Role) { s.inc("unauthorized") }

func (s *metricsSpy) StaleConflict(operation string) { s.inc("stale:" + operation) }

func (s *metricsSpy) PaymentRecorded(kind string) { s.inc("payment:" + kind) }
