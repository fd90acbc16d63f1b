package queries

import (
	"context"

	"ordering/internal/core/domain/services"
	"ordering/internal/core/ports"
)

// EarningsSummary is the window total plus an optional breakdown.
type EarningsSummary struct {
	services.Earnings
	Granularity services.Granularity
	Buckets     []services.Earnings
}

// EarningsSummaryQueryHandler feeds stored orders and bonus events to the
// shared earnings calculator.
type EarningsSummaryQueryHandler struct {
	orders     ports.OrderRepository
	partners   ports.PartnerRepository
	calculator services.EarningsCalculator
}

func NewEarningsSummaryQueryHandler(
	orders ports.OrderRepository,
	partners ports.PartnerRepository,
) EarningsSummaryQueryHandler {
	return EarningsSummaryQueryHandler{
		orders:     orders,
		partners:   partners,
		calculator: services.NewEarningsCalculator(),
	}
}

// Handle fails with errs.ObjectNotFoundError for an unknown partner.
func (h EarningsSummaryQueryHandler) Handle(ctx context.Context, query EarningsSummaryQuery) (EarningsSummary, error) {
	if err := query.Validate(); err != nil {
		return EarningsSummary{}, err
	}

	if _, err := h.partners.Get(ctx, query.PartnerID()); err != nil {
		return EarningsSummary{}, err
	}

	orders, err := h.orders.ListByPartner(ctx, query.PartnerID(), query.Window())
	if err != nil {
		return EarningsSummary{}, err
	}
	bonuses, err := h.partners.ListBonuses(ctx, query.PartnerID(), query.Window())
	if err != nil {
		return EarningsSummary{}, err
	}

	total, err := h.calculator.Earnings(query.PartnerID(), query.Window(), orders, bonuses)
	if err != nil {
		return EarningsSummary{}, err
	}
	summary := EarningsSummary{Earnings: total, Granularity: query.Granularity()}

	if query.Granularity() == services.GranularityUnknown {
		return summary, nil
	}

	summary.Buckets, err = h.calculator.Breakdown(
		query.PartnerID(), query.Window(), orders, bonuses, query.Granularity())
	if err != nil {
		return EarningsSummary{}, err
	}

	return summary, nil
}
