package order

import "ordering/internal/core/domain/model/kernel"

// Ownership lists who an order belongs to, per role.
type Ownership struct {
	CustomerID kernel.UUID
	TenantID   kernel.UUID
	// PartnerID is nil until a delivery partner is assigned.
	PartnerID *kernel.UUID
}
