package queries

import (
	"errors"

	"ordering/internal/core/domain/model/actor"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/guard"
)

var ErrAllowedTransitionsQueryIsNotConstructed = errors.New(
	"AllowedTransitionsQuery must be created via NewAllowedTransitionsQuery constructor",
)

// AllowedTransitionsQuery asks which states an actor may move an order to right now.
type AllowedTransitionsQuery struct {
	orderID kernel.UUID
	who     actor.Actor
	guard   guard.ConstructorGuard
}

func NewAllowedTransitionsQuery(orderID kernel.UUID, who actor.Actor) (AllowedTransitionsQuery, error) {
	if err := errors.Join(orderID.Validate(), who.Validate()); err != nil {
		return AllowedTransitionsQuery{}, err
	}
	return AllowedTransitionsQuery{orderID: orderID, who: who, guard: guard.NewConstructorGuard()}, nil
}

func (q AllowedTransitionsQuery) Validate() error {
	return q.guard.Validate(ErrAllowedTransitionsQueryIsNotConstructed)
}

func (q AllowedTransitionsQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q AllowedTransitionsQuery) Actor() actor.Actor {
	return q.who
}
