package cmd

import (
	"log/slog"

	"gorm.io/gorm"

	httpin "ordering/internal/adapters/in/http"
	"ordering/internal/adapters/out/metrics"
	"ordering/internal/adapters/out/postgres"
	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/partner"
	"ordering/internal/core/ports"
	"ordering/internal/jobs"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	metrics    *metrics.PrometheusLifecycleMetrics
	fees       partner.FeeSchedule
	logger     *slog.Logger
}

// NewCompositionRoot wires the core to postgres. Committed order events go to
// publisher, which may fan out to Kafka and the live feed.
func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	publisher ports.OrderEventPublisher,
	lifecycleMetrics *metrics.PrometheusLifecycleMetrics,
	fees partner.FeeSchedule,
	logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, publisher, logger),
		metrics:    lifecycleMetrics,
		fees:       fees,
		logger:     logger,
	}
}

func (c *CompositionRoot) pricing() order.Pricing {
	return order.Pricing{TaxRate: c.config.TaxRate, DeliveryFee: c.config.DeliveryFee}
}

func (c *CompositionRoot) orderRepository() ports.OrderRepository {
	return c.uowFactory.Create().OrderRepository()
}

func (c *CompositionRoot) CreateCommitOrderCommandHandler() commands.CommitOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCommitOrderCommandHandler(f, c.pricing(), c.metrics)
}

func (c *CompositionRoot) CreateRequestTransitionCommandHandler() commands.RequestTransitionCommandHandler {
	var f commands.LedgerUoWFactory = FuncLedgerUoWFactory(func() commands.LedgerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRequestTransitionCommandHandler(f, c.metrics, c.logger)
}

func (c *CompositionRoot) CreateRecordPaymentCommandHandler() commands.RecordPaymentCommandHandler {
	var f commands.LedgerUoWFactory = FuncLedgerUoWFactory(func() commands.LedgerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRecordPaymentCommandHandler(f, c.metrics, c.logger)
}

func (c *CompositionRoot) CreateRequestRefundCommandHandler() commands.RequestRefundCommandHandler {
	var f commands.LedgerUoWFactory = FuncLedgerUoWFactory(func() commands.LedgerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRequestRefundCommandHandler(f, c.metrics, c.logger)
}

func (c *CompositionRoot) CreateAssignPartnerCommandHandler() commands.AssignPartnerCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignPartnerCommandHandler(f, c.fees, c.metrics, c.logger)
}

func (c *CompositionRoot) CreateRegisterPartnerCommandHandler() commands.RegisterPartnerCommandHandler {
	var f commands.PartnerUoWFactory = FuncPartnerUoWFactory(func() commands.PartnerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRegisterPartnerCommandHandler(f)
}

func (c *CompositionRoot) CreateRecordBonusCommandHandler() commands.RecordBonusCommandHandler {
	var f commands.PartnerUoWFactory = FuncPartnerUoWFactory(func() commands.PartnerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRecordBonusCommandHandler(f)
}

func (c *CompositionRoot) CreateCancelUnconfirmedOrdersCommandHandler() commands.CancelUnconfirmedOrdersCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelUnconfirmedOrdersCommandHandler(f, c.CreateRequestTransitionCommandHandler(), c.logger)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.orderRepository())
}

func (c *CompositionRoot) CreateAllowedTransitionsQueryHandler() queries.AllowedTransitionsQueryHandler {
	return queries.NewAllowedTransitionsQueryHandler(c.orderRepository())
}

func (c *CompositionRoot) CreateListOrdersByStateQueryHandler() queries.ListOrdersByStateQueryHandler {
	return queries.NewListOrdersByStateQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListOrdersByPartnerQueryHandler() queries.ListOrdersByPartnerQueryHandler {
	return queries.NewListOrdersByPartnerQueryHandler(c.orderRepository())
}

func (c *CompositionRoot) CreateEarningsSummaryQueryHandler() queries.EarningsSummaryQueryHandler {
	uow := c.uowFactory.Create()
	return queries.NewEarningsSummaryQueryHandler(uow.OrderRepository(), uow.PartnerRepository())
}

func (c *CompositionRoot) CreatePendingPaymentsReportQueryHandler() queries.PendingPaymentsReportQueryHandler {
	return queries.NewPendingPaymentsReportQueryHandler(c.orderRepository())
}

// CreateHTTPHandlers collects the use cases served by the HTTP adapter.
func (c *CompositionRoot) CreateHTTPHandlers() httpin.Handlers {
	return httpin.Handlers{
		CommitOrder:       c.CreateCommitOrderCommandHandler(),
		RequestTransition: c.CreateRequestTransitionCommandHandler(),
		RecordPayment:     c.CreateRecordPaymentCommandHandler(),
		RequestRefund:     c.CreateRequestRefundCommandHandler(),
		AssignPartner:     c.CreateAssignPartnerCommandHandler(),
		RegisterPartner:   c.CreateRegisterPartnerCommandHandler(),
		RecordBonus:       c.CreateRecordBonusCommandHandler(),

		GetOrder:              c.CreateGetOrderQueryHandler(),
		AllowedTransitions:    c.CreateAllowedTransitionsQueryHandler(),
		ListOrdersByState:     c.CreateListOrdersByStateQueryHandler(),
		ListOrdersByPartner:   c.CreateListOrdersByPartnerQueryHandler(),
		EarningsSummary:       c.CreateEarningsSummaryQueryHandler(),
		PendingPaymentsReport: c.CreatePendingPaymentsReportQueryHandler(),
	}
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	autoCancel := jobs.NewAutoCancelJob(
		c.CreateCancelUnconfirmedOrdersCommandHandler(),
		c.config.AutoCancelTimeout,
		c.config.AutoCancelBatch,
		c.config.AutoCancelSchedule,
		c.logger,
	)
	reconcile := jobs.NewPaymentReconciliationJob(
		c.CreatePendingPaymentsReportQueryHandler(),
		c.metrics,
		c.config.ReconcileSchedule,
		c.logger,
	)
	return jobs.NewJobManager(autoCancel, reconcile)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncLedgerUoWFactory func() commands.LedgerUoW

func (f FuncLedgerUoWFactory) Create() commands.LedgerUoW {
	return f()
}

type FuncPartnerUoWFactory func() commands.PartnerUoW

func (f FuncPartnerUoWFactory) Create() commands.PartnerUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
