package postgres

import (
	"gorm.io/gorm"

	"ordering/internal/adapters/out/postgres/orderrepo"
	"ordering/internal/adapters/out/postgres/partnerrepo"
	"ordering/internal/adapters/out/postgres/paymentrepo"
)

// Migrate creates or updates every table the ordering core persists to.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&orderrepo.StateTimestampDTO{},
		&paymentrepo.EntryDTO{},
		&partnerrepo.PartnerDTO{},
		&partnerrepo.BonusEventDTO{},
	)
}
