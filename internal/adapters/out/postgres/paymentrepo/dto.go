// Package paymentrepo persists the append-only payment ledger.
package paymentrepo

import (
	"time"

	"github.com/google/uuid"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/payment"
)

// EntryDTO is one ledger line. Rows are never updated.
type EntryDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	Kind       string     `gorm:"type:varchar(16);not null"`
	Amount     int64      `gorm:"not null"`
	Method     string     `gorm:"type:varchar(16)"`
	Reason     string     `gorm:"type:text"`
	RefersTo   *uuid.UUID `gorm:"type:uuid;index"`
	RecordedAt time.Time  `gorm:"not null;index"`
}

func (EntryDTO) TableName() string {
	return "payment_entries"
}

func fromDomain(e payment.Entry) EntryDTO {
	dto := EntryDTO{
		ID:         e.ID().Bytes(),
		OrderID:    e.OrderID().Bytes(),
		Kind:       e.Kind().String(),
		Amount:     e.Amount().Minor(),
		Method:     e.Method().String(),
		Reason:     e.Reason(),
		RecordedAt: e.RecordedAt(),
	}
	if ref, ok := e.RefersTo(); ok {
		raw := ref.Bytes()
		dto.RefersTo = &raw
	}
	return dto
}

func toDomain(dto EntryDTO) (payment.Entry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return payment.Entry{}, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return payment.Entry{}, err
	}
	kind, err := payment.ParseKind(dto.Kind)
	if err != nil {
		return payment.Entry{}, err
	}
	amount, err := kernel.NewMoney(dto.Amount)
	if err != nil {
		return payment.Entry{}, err
	}

	method := payment.MethodUnknown
	if dto.Method != "" {
		if method, err = payment.ParseMethod(dto.Method); err != nil {
			return payment.Entry{}, err
		}
	}

	var refersTo *kernel.UUID
	if dto.RefersTo != nil {
		ref, refErr := kernel.UUIDFromBytes(dto.RefersTo[:])
		if refErr != nil {
			return payment.Entry{}, refErr
		}
		refersTo = &ref
	}

	return payment.RestoreEntry(id, orderID, kind, amount, method, dto.Reason, refersTo, dto.RecordedAt)
}
