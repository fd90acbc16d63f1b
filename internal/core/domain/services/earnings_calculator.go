package services

import (
	"fmt"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/partner"
	"ordering/internal/pkg/errs"
)

// Granularity is the bucket size of an earnings breakdown.
type Granularity int

const (
	GranularityUnknown Granularity = iota
	Day
	Week
	Month
)

var granularityNames = map[Granularity]string{
	Day:   "DAY",
	Week:  "WEEK",
	Month: "MONTH",
}

func ParseGranularity(s string) (Granularity, error) {
	for g, name := range granularityNames {
		if name == s {
			return g, nil
		}
	}
	return GranularityUnknown, errs.NewValueIsInvalidErrorWithCause("granularity",
		fmt.Errorf("%q is not one of DAY, WEEK, MONTH", s))
}

func (g Granularity) String() string {
	if name, ok := granularityNames[g]; ok {
		return name
	}
	return "UNKNOWN"
}

// maxBuckets caps a breakdown at a year of days, two years of weeks or ten
// years of months.
var maxBuckets = map[Granularity]int{
	Day:   366,
	Week:  104,
	Month: 120,
}

// BucketCount returns how many buckets Breakdown yields for the window.
func BucketCount(window kernel.TimeWindow, granularity Granularity) int {
	start := truncate(window.From, granularity)
	to := window.To.UTC()
	switch granularity {
	case Month:
		months := (to.Year()-start.Year())*12 + int(to.Month()) - int(start.Month())
		if start.AddDate(0, months, 0).Before(to) {
			months++
		}
		return months
	case Week:
		return ceilDiv(to.Sub(start), 7*24*time.Hour)
	default:
		return ceilDiv(to.Sub(start), 24*time.Hour)
	}
}

// CheckBreakdownWindow rejects windows that would yield more buckets than the
// granularity allows.
func CheckBreakdownWindow(window kernel.TimeWindow, granularity Granularity) error {
	limit, ok := maxBuckets[granularity]
	if !ok {
		return errs.NewValueIsInvalidErrorWithCause("granularity",
			fmt.Errorf("%d is not a known granularity", granularity))
	}
	if n := BucketCount(window, granularity); n > limit {
		return errs.NewValueIsOutOfRangeError("window", n, 1, limit)
	}
	return nil
}

func ceilDiv(d, unit time.Duration) int {
	n := d / unit
	if d%unit != 0 {
		n++
	}
	return int(n)
}

// Earnings is what a partner earned over a window.
type Earnings struct {
	PartnerID     kernel.UUID
	Window        kernel.TimeWindow
	Base          kernel.Money
	Bonuses       kernel.Money
	Total         kernel.Money
	DeliveryCount int
}

// EarningsCalculator derives partner earnings from delivered orders and bonus
// events. It is pure and shared by the partner app, the admin console and the
// payout export, so every surface shows the same figure.
//
// Business rules:
//   - only DELIVERED orders assigned to the partner count
//   - an order belongs to the window its DELIVERED timestamp falls in, [from, to)
//   - the per-order amount is the fee captured at assignment
//   - bonus events count in the window they occurred in
type EarningsCalculator struct{}

func NewEarningsCalculator() EarningsCalculator {
	return EarningsCalculator{}
}

// Earnings sums base fees and bonuses for the partner over the window.
//
// Example:
//
//	calc := services.NewEarningsCalculator()
//	week, _ := kernel.NewTimeWindow(monday, monday.AddDate(0, 0, 7))
//	e, err := calc.Earnings(partnerID, week, delivered, bonuses)
func (c EarningsCalculator) Earnings(
	partnerID kernel.UUID,
	window kernel.TimeWindow,
	orders []*order.Order,
	bonuses []partner.BonusEvent,
) (Earnings, error) {
	if err := partnerID.Validate(); err != nil {
		return Earnings{}, err
	}

	e := Earnings{PartnerID: partnerID, Window: window}
	for _, o := range orders {
		fee, ok := deliveredFee(o, partnerID, window)
		if !ok {
			continue
		}
		var err error
		if e.Base, err = e.Base.Add(fee); err != nil {
			return Earnings{}, err
		}
		e.DeliveryCount++
	}
	for _, b := range bonuses {
		if !b.PartnerID().IsEqual(partnerID) || !window.Contains(b.OccurredAt()) {
			continue
		}
		var err error
		if e.Bonuses, err = e.Bonuses.Add(b.Amount()); err != nil {
			return Earnings{}, err
		}
	}

	total, err := e.Base.Add(e.Bonuses)
	if err != nil {
		return Earnings{}, err
	}
	e.Total = total
	return e, nil
}

// Breakdown splits the window into UTC buckets of the given granularity, in
// chronological order. Weeks start on Monday. The first and last buckets are
// clipped to the window, and empty buckets are kept so charts have no gaps.
// Windows beyond the bucket cap fail with errs.ErrValueIsOutOfRange.
func (c EarningsCalculator) Breakdown(
	partnerID kernel.UUID,
	window kernel.TimeWindow,
	orders []*order.Order,
	bonuses []partner.BonusEvent,
	granularity Granularity,
) ([]Earnings, error) {
	if err := CheckBreakdownWindow(window, granularity); err != nil {
		return nil, err
	}

	buckets := make([]Earnings, 0, BucketCount(window, granularity))
	for start := truncate(window.From, granularity); start.Before(window.To); start = step(start, granularity) {
		from := maxTime(start, window.From)
		to := minTime(step(start, granularity), window.To)
		bucket, err := kernel.NewTimeWindow(from, to)
		if err != nil {
			return nil, err
		}
		e, err := c.Earnings(partnerID, bucket, orders, bonuses)
		if err != nil {
			return nil, err
		}
		buckets = append(buckets, e)
	}
	return buckets, nil
}

func deliveredFee(o *order.Order, partnerID kernel.UUID, window kernel.TimeWindow) (kernel.Money, bool) {
	if o == nil || o.State() != order.Delivered {
		return kernel.Money{}, false
	}
	a, ok := o.Assignment()
	if !ok || !a.PartnerID().IsEqual(partnerID) {
		return kernel.Money{}, false
	}
	deliveredAt, ok := o.EnteredAt(order.Delivered)
	if !ok || !window.Contains(deliveredAt) {
		return kernel.Money{}, false
	}
	return a.Fee(), true
}

func truncate(t time.Time, g Granularity) time.Time {
	t = t.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	switch g {
	case Week:
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset)
	case Month:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		return day
	}
}

func step(t time.Time, g Granularity) time.Time {
	switch g {
	case Week:
		return t.AddDate(0, 0, 7)
	case Month:
		return t.AddDate(0, 1, 0)
	default:
		return t.AddDate(0, 0, 1)
	}
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
