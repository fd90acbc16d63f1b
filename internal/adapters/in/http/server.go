package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/partner"
	"ordering/internal/core/domain/services"
)

type CommitOrderHandler interface {
	Handle(ctx context.Context, cmd commands.CommitOrderCommand) (*order.Order, error)
}

type RequestTransitionHandler interface {
	Handle(ctx context.Context, cmd commands.RequestTransitionCommand) (*order.Order, error)
}

type RecordPaymentHandler interface {
	Handle(ctx context.Context, cmd commands.RecordPaymentCommand) (*order.Order, error)
}

type RequestRefundHandler interface {
	Handle(ctx context.Context, cmd commands.RequestRefundCommand) (*order.Order, error)
}

type AssignPartnerHandler interface {
	Handle(ctx context.Context, cmd commands.AssignPartnerCommand) (*order.Order, error)
}

type RegisterPartnerHandler interface {
	Handle(ctx context.Context, cmd commands.RegisterPartnerCommand) (*partner.Partner, error)
}

type RecordBonusHandler interface {
	Handle(ctx context.Context, cmd commands.RecordBonusCommand) (partner.BonusEvent, error)
}

type GetOrderHandler interface {
	Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderView, error)
}

type AllowedTransitionsHandler interface {
	Handle(ctx context.Context, query queries.AllowedTransitionsQuery) (queries.AllowedTransitionsResponse, error)
}

type ListOrdersByStateHandler interface {
	Handle(ctx context.Context, query queries.ListOrdersByStateQuery) ([]queries.OrderSummary, error)
}

type ListOrdersByPartnerHandler interface {
	Handle(ctx context.Context, query queries.ListOrdersByPartnerQuery) ([]queries.OrderView, error)
}

type EarningsSummaryHandler interface {
	Handle(ctx context.Context, query queries.EarningsSummaryQuery) (queries.EarningsSummary, error)
}

type PendingPaymentsReportHandler interface {
	Handle(ctx context.Context, query queries.PendingPaymentsReportQuery) (queries.PendingPaymentsReport, error)
}

// LiveFeed upgrades a request to a WebSocket subscribed to one tenant.
type LiveFeed interface {
	Serve(w http.ResponseWriter, r *http.Request, tenantID kernel.UUID) error
}

// Handlers groups the use cases the API exposes.
type Handlers struct {
	// Commands
	CommitOrder       CommitOrderHandler
	RequestTransition RequestTransitionHandler
	RecordPayment     RecordPaymentHandler
	RequestRefund     RequestRefundHandler
	AssignPartner     AssignPartnerHandler
	RegisterPartner   RegisterPartnerHandler
	RecordBonus       RecordBonusHandler

	// Queries
	GetOrder              GetOrderHandler
	AllowedTransitions    AllowedTransitionsHandler
	ListOrdersByState     ListOrdersByStateHandler
	ListOrdersByPartner   ListOrdersByPartnerHandler
	EarningsSummary       EarningsSummaryHandler
	PendingPaymentsReport PendingPaymentsReportHandler
}

// Server adapts HTTP requests to commands and queries. Every response that
// carries an order is projected through queries.NewOrderView.
type Server struct {
	handlers Handlers
	live     LiveFeed
	gateway  services.RoleGateway
	logger   *slog.Logger
}

func NewServer(handlers Handlers, live LiveFeed, logger *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		live:     live,
		gateway:  services.NewRoleGateway(),
		logger:   logger.With("component", "http"),
	}
}

// Register mounts the API routes on g. Authentication and contract
// validation are expected as group middleware.
func (s *Server) Register(g *echo.Group) {
	g.POST("/orders", s.CommitOrder)
	g.GET("/orders/:orderId", s.GetOrder)
	g.GET("/orders/:orderId/transitions", s.AllowedTransitions)
	g.POST("/orders/:orderId/transitions", s.RequestTransition)
	g.POST("/orders/:orderId/payments", s.RecordPayment)
	g.POST("/orders/:orderId/refunds", s.RequestRefund)
	g.POST("/orders/:orderId/assignment", s.AssignPartner)

	g.GET("/tenants/:tenantId/orders", s.ListOrdersByState)
	g.GET("/tenants/:tenantId/pending-payments", s.TenantPendingPayments)
	g.GET("/tenants/:tenantId/live", s.LiveFeed)
	g.GET("/pending-payments", s.PlatformPendingPayments)

	g.POST("/partners", s.RegisterPartner)
	g.POST("/partners/:partnerId/bonuses", s.RecordBonus)
	g.GET("/partners/:partnerId/orders", s.ListOrdersByPartner)
	g.GET("/partners/:partnerId/earnings", s.EarningsSummary)
}
