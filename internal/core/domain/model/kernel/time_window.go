package kernel

import (
	"fmt"
	"time"

	"ordering/internal/pkg/errs"
)

// TimeWindow is the half-open interval [From, To) used by earnings and listings.
type TimeWindow struct {
	From time.Time
	To   time.Time
}

// NewTimeWindow requires To to be strictly after From. Both ends are normalized to UTC.
func NewTimeWindow(from, to time.Time) (TimeWindow, error) {
	if from.IsZero() {
		return TimeWindow{}, errs.NewValueIsRequiredError("from")
	}
	if !to.After(from) {
		return TimeWindow{}, errs.NewValueIsInvalidErrorWithCause("to",
			fmt.Errorf("%s is not after %s", to.Format(time.RFC3339), from.Format(time.RFC3339)))
	}
	return TimeWindow{From: from.UTC(), To: to.UTC()}, nil
}

// Contains reports whether From <= t < To.
func (w TimeWindow) Contains(t time.Time) bool {
	return !t.Before(w.From) && t.Before(w.To)
}
