package http_test

import (
	"context"
	"net/http"

	"github.com/stretchr/testify/mock"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/partner"
)

type MockCommitOrderHandler struct{ mock.Mock }

func (m *MockCommitOrderHandler) Handle(ctx context.Context, cmd commands.CommitOrderCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockRequestTransitionHandler struct{ mock.Mock }

func (m *MockRequestTransitionHandler) Handle(
	ctx context.Context,
	cmd commands.RequestTransitionCommand,
) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockRecordPaymentHandler struct{ mock.Mock }

func (m *MockRecordPaymentHandler) Handle(ctx context.Context, cmd commands.RecordPaymentCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockRequestRefundHandler struct{ mock.Mock }

func (m *MockRequestRefundHandler) Handle(ctx context.Context, cmd commands.RequestRefundCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockRegisterPartnerHandler struct{ mock.Mock }

func (m *MockRegisterPartnerHandler) Handle(
	ctx context.Context,
	cmd commands.RegisterPartnerCommand,
) (*partner.Partner, error) {
	args := m.Called(ctx, cmd)
	p, _ := args.Get(0).(*partner.Partner)
	return p, args.Error(1)
}

type MockGetOrderHandler struct{ mock.Mock }

func (m *MockGetOrderHandler) Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderView, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.OrderView), args.Error(1)
}

type MockListOrdersByStateHandler struct{ mock.Mock }

func (m *MockListOrdersByStateHandler) Handle(
	ctx context.Context,
	query queries.ListOrdersByStateQuery,
) ([]queries.OrderSummary, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]queries.OrderSummary), args.Error(1)
}

type MockEarningsSummaryHandler struct{ mock.Mock }

func (m *MockEarningsSummaryHandler) Handle(
	ctx context.Context,
	query queries.EarningsSummaryQuery,
) (queries.EarningsSummary, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.EarningsSummary), args.Error(1)
}

type MockLiveFeed struct{ mock.Mock }

func (m *MockLiveFeed) Serve(w http.ResponseWriter, r *http.Request, tenantID kernel.UUID) error {
	args := m.Called(w, r, tenantID)
	return args.Error(0)
}
