package commands

import (
	"context"

	"ordering/internal/core/domain/model/partner"
)

// RecordBonusCommandHandler appends bonus events for registered partners.
// Bonuses count towards earnings in the window they occurred in.
type RecordBonusCommandHandler struct {
	uowFactory PartnerUoWFactory
}

func NewRecordBonusCommandHandler(uowFactory PartnerUoWFactory) RecordBonusCommandHandler {
	return RecordBonusCommandHandler{uowFactory: uowFactory}
}

func (h RecordBonusCommandHandler) Handle(ctx context.Context, cmd RecordBonusCommand) (partner.BonusEvent, error) {
	if err := cmd.Validate(); err != nil {
		return partner.BonusEvent{}, err
	}

	bonus, err := partner.NewBonusEvent(cmd.PartnerID(), cmd.Amount(), cmd.Reason(), cmd.OccurredAt())
	if err != nil {
		return partner.BonusEvent{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return partner.BonusEvent{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.PartnerRepository()
	if _, err = repo.Get(ctx, cmd.PartnerID()); err != nil {
		return partner.BonusEvent{}, err
	}

	if err = repo.AddBonus(ctx, bonus); err != nil {
		return partner.BonusEvent{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return partner.BonusEvent{}, err
	}

	return bonus, nil
}
