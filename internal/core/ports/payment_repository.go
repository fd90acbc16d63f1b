package ports

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/payment"
)

// PaymentRepository stores the append-only payment ledger.
type PaymentRepository interface {
	// Add appends one ledger entry. Entries are never updated or deleted.
	Add(ctx context.Context, entry payment.Entry) error

	// ListByOrder returns the order's entries in recording order.
	ListByOrder(ctx context.Context, orderID kernel.UUID) ([]payment.Entry, error)
}
