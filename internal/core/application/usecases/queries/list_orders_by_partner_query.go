package queries

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/guard"
)

var ErrListOrdersByPartnerQueryIsNotConstructed = errors.New(
	"ListOrdersByPartnerQuery must be created via NewListOrdersByPartnerQuery constructor",
)

// ListOrdersByPartnerQuery lists a partner's orders active within a window.
type ListOrdersByPartnerQuery struct {
	partnerID kernel.UUID
	window    kernel.TimeWindow
	guard     guard.ConstructorGuard
}

func NewListOrdersByPartnerQuery(partnerID kernel.UUID, window kernel.TimeWindow) (ListOrdersByPartnerQuery, error) {
	if err := errors.Join(partnerID.Validate(), requireWindow(window)); err != nil {
		return ListOrdersByPartnerQuery{}, err
	}
	return ListOrdersByPartnerQuery{partnerID: partnerID, window: window, guard: guard.NewConstructorGuard()}, nil
}

func (q ListOrdersByPartnerQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersByPartnerQueryIsNotConstructed)
}

func (q ListOrdersByPartnerQuery) PartnerID() kernel.UUID {
	return q.partnerID
}

func (q ListOrdersByPartnerQuery) Window() kernel.TimeWindow {
	return q.window
}

func requireWindow(w kernel.TimeWindow) error {
	_, err := kernel.NewTimeWindow(w.From, w.To)
	return err
}
