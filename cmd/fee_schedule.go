package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/partner"
	"ordering/internal/pkg/errs"
)

// feeScheduleFile is the YAML layout of the partner fee schedule:
//
//	fixed: 120
//
// or
//
//	tiers:
//	  - upTo: 10
//	    fee: 100
//	  - upTo: 25
//	    fee: 150
type feeScheduleFile struct {
	Fixed *int64 `yaml:"fixed"`
	Tiers []struct {
		UpTo int   `yaml:"upTo"`
		Fee  int64 `yaml:"fee"`
	} `yaml:"tiers"`
}

// LoadFeeSchedule reads the schedule from path. Without a path every
// delivery pays the fallback fee.
func LoadFeeSchedule(path string, fallback kernel.Money) (partner.FeeSchedule, error) {
	if path == "" {
		return partner.NewFixedFeeSchedule(fallback), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return partner.FeeSchedule{}, fmt.Errorf("read fee schedule: %w", err)
	}
	return ParseFeeSchedule(raw)
}

func ParseFeeSchedule(raw []byte) (partner.FeeSchedule, error) {
	var file feeScheduleFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return partner.FeeSchedule{}, fmt.Errorf("parse fee schedule: %w", err)
	}

	switch {
	case file.Fixed != nil && len(file.Tiers) > 0:
		return partner.FeeSchedule{}, errs.NewValueIsInvalidErrorWithCause("feeSchedule",
			fmt.Errorf("fixed and tiers are mutually exclusive"))
	case file.Fixed != nil:
		fee, err := kernel.NewMoney(*file.Fixed)
		if err != nil {
			return partner.FeeSchedule{}, err
		}
		return partner.NewFixedFeeSchedule(fee), nil
	}

	tiers := make([]partner.FeeTier, 0, len(file.Tiers))
	for _, t := range file.Tiers {
		fee, err := kernel.NewMoney(t.Fee)
		if err != nil {
			return partner.FeeSchedule{}, err
		}
		tiers = append(tiers, partner.FeeTier{UpTo: t.UpTo, Fee: fee})
	}
	return partner.NewTieredFeeSchedule(tiers)
}
