package partnerrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/partner"
	"ordering/internal/pkg/errs"
)

// GormPartnerRepository implements PartnerRepository using GORM.
type GormPartnerRepository struct {
	db *gorm.DB
}

func NewGormPartnerRepository(db *gorm.DB) *GormPartnerRepository {
	return &GormPartnerRepository{db: db}
}

// Add saves a newly registered partner.
func (r *GormPartnerRepository) Add(ctx context.Context, aggregate *partner.Partner) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update saves name and activity changes.
func (r *GormPartnerRepository) Update(ctx context.Context, aggregate *partner.Partner) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&PartnerDTO{}).Where("id = ?", dto.ID).
		Updates(map[string]any{"name": dto.Name, "active": dto.Active})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("partner", aggregate.ID().String())
	}

	return nil
}

// Get retrieves a partner by ID.
func (r *GormPartnerRepository) Get(ctx context.Context, id kernel.UUID) (*partner.Partner, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PartnerDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("partner", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// AddBonus appends a bonus event.
func (r *GormPartnerRepository) AddBonus(ctx context.Context, bonus partner.BonusEvent) error {
	if err := bonus.Validate(); err != nil {
		return err
	}

	dto := bonusFromDomain(bonus)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// ListBonuses returns the partner's bonus events within [from, to).
func (r *GormPartnerRepository) ListBonuses(
	ctx context.Context,
	partnerID kernel.UUID,
	window kernel.TimeWindow,
) ([]partner.BonusEvent, error) {
	var dtos []BonusEventDTO
	if err := r.db.WithContext(ctx).
		Where("partner_id = ? AND occurred_at >= ? AND occurred_at < ?", partnerID.Bytes(), window.From, window.To).
		Order("occurred_at, id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	bonuses := make([]partner.BonusEvent, 0, len(dtos))
	for _, dto := range dtos {
		b, err := bonusToDomain(dto)
		if err != nil {
			return nil, err
		}
		bonuses = append(bonuses, b)
	}

	return bonuses, nil
}
