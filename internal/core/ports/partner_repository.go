package ports

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/partner"
)

// PartnerRepository defines the persistence contract for delivery partners
// and their bonus events.
type PartnerRepository interface {
	// Add persists a newly registered partner.
	Add(ctx context.Context, aggregate *partner.Partner) error

	// Update persists name and activity changes.
	Update(ctx context.Context, aggregate *partner.Partner) error

	// Get returns the partner or errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*partner.Partner, error)

	// AddBonus appends a bonus event for a partner.
	AddBonus(ctx context.Context, bonus partner.BonusEvent) error

	// ListBonuses returns the partner's bonus events that occurred within the window.
	ListBonuses(ctx context.Context, partnerID kernel.UUID, window kernel.TimeWindow) ([]partner.BonusEvent, error)
}
