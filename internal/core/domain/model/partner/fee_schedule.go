package partner

import (
	"cmp"
	"fmt"
	"slices"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

// FeeTier pays Fee for deliveries up to and including UpTo grid blocks.
type FeeTier struct {
	UpTo int
	Fee  kernel.Money
}

// FeeSchedule prices a delivery for the partner, either with one fixed fee or
// by distance tiers. Distances beyond the last tier pay the last tier's fee.
type FeeSchedule struct {
	fixed *kernel.Money
	tiers []FeeTier
}

// NewFixedFeeSchedule pays the same fee for every delivery.
func NewFixedFeeSchedule(fee kernel.Money) FeeSchedule {
	return FeeSchedule{fixed: &fee}
}

// NewTieredFeeSchedule validates tiers and sorts them by distance.
//
// Example:
//
//	schedule, err := partner.NewTieredFeeSchedule([]partner.FeeTier{
//	    {UpTo: 10, Fee: kernel.MustMoney(100)},
//	    {UpTo: 25, Fee: kernel.MustMoney(150)},
//	})
func NewTieredFeeSchedule(tiers []FeeTier) (FeeSchedule, error) {
	if len(tiers) == 0 {
		return FeeSchedule{}, errs.NewValueIsRequiredError("tiers")
	}
	sorted := slices.SortedFunc(slices.Values(tiers), func(a, b FeeTier) int {
		return cmp.Compare(a.UpTo, b.UpTo)
	})
	for i, tier := range sorted {
		if tier.UpTo < 0 {
			return FeeSchedule{}, errs.NewValueIsInvalidErrorWithCause("upTo", fmt.Errorf("%d is negative", tier.UpTo))
		}
		if i > 0 && sorted[i-1].UpTo == tier.UpTo {
			return FeeSchedule{}, errs.NewValueIsInvalidErrorWithCause("upTo",
				fmt.Errorf("%d is listed twice", tier.UpTo))
		}
	}
	return FeeSchedule{tiers: sorted}, nil
}

// FeeFor returns the fee for a delivery of the given distance.
func (s FeeSchedule) FeeFor(distance int) (kernel.Money, error) {
	if distance < 0 {
		return kernel.Money{}, errs.NewValueIsInvalidErrorWithCause("distance", fmt.Errorf("%d is negative", distance))
	}
	if s.fixed != nil {
		return *s.fixed, nil
	}
	if len(s.tiers) == 0 {
		return kernel.Money{}, errs.NewValueIsRequiredError("fee schedule")
	}
	for _, tier := range s.tiers {
		if distance <= tier.UpTo {
			return tier.Fee, nil
		}
	}
	return s.tiers[len(s.tiers)-1].Fee, nil
}

// Tiers returns the distance tiers; empty for a fixed schedule.
func (s FeeSchedule) Tiers() []FeeTier {
	return slices.Clone(s.tiers)
}
