// Package partnerrepo persists delivery partners and their bonus events.
package partnerrepo

import (
	"time"

	"github.com/google/uuid"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/partner"
)

type PartnerDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"type:varchar(255);not null"`
	Active       bool      `gorm:"not null"`
	RegisteredAt time.Time `gorm:"not null"`
}

func (PartnerDTO) TableName() string {
	return "partners"
}

type BonusEventDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	PartnerID  uuid.UUID `gorm:"type:uuid;not null;index:idx_bonus_partner_time,priority:1"`
	Amount     int64     `gorm:"not null"`
	Reason     string    `gorm:"type:text;not null"`
	OccurredAt time.Time `gorm:"not null;index:idx_bonus_partner_time,priority:2"`
}

func (BonusEventDTO) TableName() string {
	return "partner_bonus_events"
}

func fromDomain(p *partner.Partner) PartnerDTO {
	return PartnerDTO{
		ID:           p.ID().Bytes(),
		Name:         p.Name(),
		Active:       p.IsActive(),
		RegisteredAt: p.RegisteredAt(),
	}
}

func toDomain(dto PartnerDTO) (*partner.Partner, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return partner.RestorePartner(id, dto.Name, dto.Active, dto.RegisteredAt)
}

func bonusFromDomain(b partner.BonusEvent) BonusEventDTO {
	return BonusEventDTO{
		ID:         b.ID().Bytes(),
		PartnerID:  b.PartnerID().Bytes(),
		Amount:     b.Amount().Minor(),
		Reason:     b.Reason(),
		OccurredAt: b.OccurredAt(),
	}
}

func bonusToDomain(dto BonusEventDTO) (partner.BonusEvent, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return partner.BonusEvent{}, err
	}
	partnerID, err := kernel.UUIDFromBytes(dto.PartnerID[:])
	if err != nil {
		return partner.BonusEvent{}, err
	}
	amount, err := kernel.NewMoney(dto.Amount)
	if err != nil {
		return partner.BonusEvent{}, err
	}
	return partner.RestoreBonusEvent(id, partnerID, amount, dto.Reason, dto.OccurredAt)
}
