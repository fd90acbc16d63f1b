// Package fanout delivers order events to several publishers at once.
package fanout

import (
	"context"
	"errors"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
)

// Publisher forwards every batch to each target. A failing target does not
// stop the others; all failures are joined.
type Publisher struct {
	targets []ports.OrderEventPublisher
}

func NewPublisher(targets ...ports.OrderEventPublisher) *Publisher {
	kept := make([]ports.OrderEventPublisher, 0, len(targets))
	for _, t := range targets {
		if t != nil {
			kept = append(kept, t)
		}
	}
	return &Publisher{targets: kept}
}

func (p *Publisher) Publish(ctx context.Context, events ...order.ChangedEvent) error {
	var errs []error
	for _, t := range p.targets {
		if err := t.Publish(ctx, events...); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
