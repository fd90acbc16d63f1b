package ports

import (
	"ordering/internal/core/domain/model/actor"
	"ordering/internal/core/domain/model/order"
)

// LifecycleMetrics counts what happens to orders.
type LifecycleMetrics interface {
	OrderPlaced(mode order.Mode)
	TransitionApplied(mode order.Mode, from order.State, to order.State)
	TransitionRejected(reason string)
	UnauthorizedAttempt(role actor.Role)
	StaleConflict(operation string)
	PaymentRecorded(kind string)
}
