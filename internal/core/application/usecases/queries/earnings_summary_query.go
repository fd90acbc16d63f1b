package queries

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/services"
	"ordering/internal/pkg/guard"
)

var ErrEarningsSummaryQueryIsNotConstructed = errors.New(
	"EarningsSummaryQuery must be created via NewEarningsSummaryQuery constructor",
)

// EarningsSummaryQuery asks what a partner earned over a window, optionally
// broken down by day, week or month.
//
// Example:
//
//	week, _ := kernel.NewTimeWindow(monday, monday.AddDate(0, 0, 7))
//	query, err := NewEarningsSummaryQuery(partnerID, week, services.Day)
//	summary, err := handler.Handle(ctx, query)
//	// summary.Buckets has seven entries, Monday first
type EarningsSummaryQuery struct {
	partnerID   kernel.UUID
	window      kernel.TimeWindow
	granularity services.Granularity
	guard       guard.ConstructorGuard
}

// NewEarningsSummaryQuery builds the query. Pass services.GranularityUnknown
// to skip the breakdown.
func NewEarningsSummaryQuery(
	partnerID kernel.UUID,
	window kernel.TimeWindow,
	granularity services.Granularity,
) (EarningsSummaryQuery, error) {
	var errGranularity error
	if granularity != services.GranularityUnknown {
		errGranularity = services.CheckBreakdownWindow(window, granularity)
	}
	if err := errors.Join(partnerID.Validate(), requireWindow(window), errGranularity); err != nil {
		return EarningsSummaryQuery{}, err
	}

	return EarningsSummaryQuery{
		partnerID:   partnerID,
		window:      window,
		granularity: granularity,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (q EarningsSummaryQuery) Validate() error {
	return q.guard.Validate(ErrEarningsSummaryQueryIsNotConstructed)
}

func (q EarningsSummaryQuery) PartnerID() kernel.UUID {
	return q.partnerID
}

func (q EarningsSummaryQuery) Window() kernel.TimeWindow {
	return q.window
}

func (q EarningsSummaryQuery) Granularity() services.Granularity {
	return q.granularity
}
