package queries

import (
	"context"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/services"
	"ordering/internal/core/ports"
)

// PendingPayment is one unsettled order.
type PendingPayment struct {
	OrderID    kernel.UUID
	TenantID   kernel.UUID
	CustomerID kernel.UUID
	Mode       order.Mode
	State      order.State
	Total      kernel.Money
	FinishedAt time.Time
}

// PendingPaymentsReport lists unsettled orders, oldest first, with the sum owed.
type PendingPaymentsReport struct {
	Orders      []PendingPayment
	Outstanding kernel.Money
}

type PendingPaymentsReportQueryHandler struct {
	orders ports.OrderRepository
	ledger services.PaymentLedger
}

func NewPendingPaymentsReportQueryHandler(orders ports.OrderRepository) PendingPaymentsReportQueryHandler {
	return PendingPaymentsReportQueryHandler{orders: orders, ledger: services.NewPaymentLedger()}
}

func (h PendingPaymentsReportQueryHandler) Handle(
	ctx context.Context,
	query PendingPaymentsReportQuery,
) (PendingPaymentsReport, error) {
	if err := query.Validate(); err != nil {
		return PendingPaymentsReport{}, err
	}

	var tenant *kernel.UUID
	if id, ok := query.TenantID(); ok {
		tenant = &id
	}

	candidates, err := h.orders.ListPendingPayments(ctx, tenant)
	if err != nil {
		return PendingPaymentsReport{}, err
	}

	report := PendingPaymentsReport{Orders: make([]PendingPayment, 0, len(candidates))}
	for _, o := range h.ledger.PendingPayments(candidates) {
		finishedAt, _ := o.EnteredAt(o.State())
		report.Orders = append(report.Orders, PendingPayment{
			OrderID:    o.ID(),
			TenantID:   o.TenantID(),
			CustomerID: o.CustomerID(),
			Mode:       o.Mode(),
			State:      o.State(),
			Total:      o.Amounts().Total(),
			FinishedAt: finishedAt,
		})
		if report.Outstanding, err = report.Outstanding.Add(o.Amounts().Total()); err != nil {
			return PendingPaymentsReport{}, err
		}
	}

	return report, nil
}
