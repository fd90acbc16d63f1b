// Package orderrepo persists order records: one row per order, its frozen
// line items and the append-only log of state timestamps.
package orderrepo

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"ordering/internal/core/domain/model/cart"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"
)

// OrderDTO is the orders row. Amounts and assignment are embedded columns;
// version drives the compare-and-swap in Update.
type OrderDTO struct {
	ID            uuid.UUID           `gorm:"type:uuid;primaryKey"`
	CustomerID    uuid.UUID           `gorm:"type:uuid;not null;index"`
	TenantID      uuid.UUID           `gorm:"type:uuid;not null;index:idx_orders_tenant_state,priority:1"`
	Mode          string              `gorm:"type:varchar(16);not null"`
	TableRef      string              `gorm:"type:varchar(64)"`
	State         string              `gorm:"type:varchar(16);not null;index:idx_orders_tenant_state,priority:2"`
	PaymentStatus string              `gorm:"type:varchar(16);not null"`
	Version       int64               `gorm:"not null"`
	Amounts       AmountsDTO          `gorm:"embedded"`
	Assignment    AssignmentDTO       `gorm:"embedded;embeddedPrefix:assignment_"`
	PlacedAt      time.Time           `gorm:"not null;index"`
	ChangedAt     time.Time           `gorm:"not null"`
	Items         []OrderItemDTO      `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Timestamps    []StateTimestampDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// AmountsDTO stores money in minor units.
type AmountsDTO struct {
	Subtotal    int64           `gorm:"not null"`
	DeliveryFee int64           `gorm:"not null"`
	TaxRate     decimal.Decimal `gorm:"type:numeric(7,4);not null"`
	TaxAmount   int64           `gorm:"not null"`
	Discount    int64           `gorm:"not null"`
	Total       int64           `gorm:"not null"`
}

// AssignmentDTO is all-null for unassigned orders.
type AssignmentDTO struct {
	PartnerID  *uuid.UUID `gorm:"type:uuid;index"`
	Fee        *int64
	Distance   *int
	AssignedAt *time.Time
}

// OrderItemDTO is one frozen line of the committed cart.
type OrderItemDTO struct {
	ID             uint           `gorm:"primaryKey"`
	OrderID        uuid.UUID      `gorm:"type:uuid;not null;index"`
	Position       int            `gorm:"not null"`
	SkuID          string         `gorm:"type:varchar(64);not null"`
	Name           string         `gorm:"type:varchar(255);not null"`
	UnitPrice      int64          `gorm:"not null"`
	Quantity       int            `gorm:"not null"`
	Customizations pq.StringArray `gorm:"type:text[]"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

// StateTimestampDTO records when an order entered a state. Rows are only
// ever inserted.
type StateTimestampDTO struct {
	OrderID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	State     string    `gorm:"type:varchar(16);primaryKey"`
	EnteredAt time.Time `gorm:"not null;index"`
}

func (StateTimestampDTO) TableName() string {
	return "order_state_timestamps"
}

func fromDomain(o *order.Order) OrderDTO {
	id := o.ID().Bytes()
	amounts := o.Amounts()

	items := make([]OrderItemDTO, 0, len(o.Items()))
	for i, item := range o.Items() {
		items = append(items, OrderItemDTO{
			OrderID:        id,
			Position:       i,
			SkuID:          item.SkuID(),
			Name:           item.Name(),
			UnitPrice:      item.UnitPrice().Minor(),
			Quantity:       item.Quantity(),
			Customizations: pq.StringArray(item.Customizations()),
		})
	}

	dto := OrderDTO{
		ID:            id,
		CustomerID:    o.CustomerID().Bytes(),
		TenantID:      o.TenantID().Bytes(),
		Mode:          o.Mode().String(),
		TableRef:      o.TableRef(),
		State:         o.State().String(),
		PaymentStatus: o.PaymentStatus().String(),
		Version:       o.Version(),
		Amounts: AmountsDTO{
			Subtotal:    amounts.Subtotal().Minor(),
			DeliveryFee: amounts.DeliveryFee().Minor(),
			TaxRate:     amounts.TaxRate(),
			TaxAmount:   amounts.TaxAmount().Minor(),
			Discount:    amounts.Discount().Minor(),
			Total:       amounts.Total().Minor(),
		},
		ChangedAt:  o.LastChangedAt(),
		Items:      items,
		Timestamps: timestampsFromDomain(o),
	}
	if placedAt, ok := o.EnteredAt(order.Placed); ok {
		dto.PlacedAt = placedAt
	}
	if a, ok := o.Assignment(); ok {
		partnerID := a.PartnerID().Bytes()
		fee := a.Fee().Minor()
		distance := a.Distance()
		assignedAt := a.AssignedAt()
		dto.Assignment = AssignmentDTO{
			PartnerID:  &partnerID,
			Fee:        &fee,
			Distance:   &distance,
			AssignedAt: &assignedAt,
		}
	}
	return dto
}

func timestampsFromDomain(o *order.Order) []StateTimestampDTO {
	id := o.ID().Bytes()
	timestamps := o.Timestamps()
	stamps := make([]StateTimestampDTO, 0, len(timestamps))
	for st, at := range timestamps {
		stamps = append(stamps, StateTimestampDTO{OrderID: id, State: st.String(), EnteredAt: at})
	}
	return stamps
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	ids, err := parseIDs(dto.ID, dto.CustomerID, dto.TenantID)
	if err != nil {
		return nil, err
	}
	mode, err := order.ParseMode(dto.Mode)
	if err != nil {
		return nil, err
	}
	state, err := order.ParseState(dto.State)
	if err != nil {
		return nil, err
	}
	paymentStatus, err := order.ParsePaymentStatus(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}

	items := make([]cart.LineItem, len(dto.Items))
	filled := make([]bool, len(dto.Items))
	for _, it := range dto.Items {
		if it.Position < 0 || it.Position >= len(items) {
			return nil, errs.NewValueIsOutOfRangeError("position", it.Position, 0, len(items)-1)
		}
		if filled[it.Position] {
			return nil, errs.NewValueIsInvalidErrorWithCause("position",
				fmt.Errorf("line %d is stored twice", it.Position))
		}
		filled[it.Position] = true
		price, priceErr := kernel.NewMoney(it.UnitPrice)
		if priceErr != nil {
			return nil, priceErr
		}
		item, itemErr := cart.NewLineItem(it.SkuID, it.Name, price, it.Quantity, it.Customizations)
		if itemErr != nil {
			return nil, itemErr
		}
		items[it.Position] = item
	}

	amounts, err := amountsToDomain(dto.Amounts)
	if err != nil {
		return nil, err
	}

	assignment, err := assignmentToDomain(dto.Assignment)
	if err != nil {
		return nil, err
	}

	timestamps := make(map[order.State]time.Time, len(dto.Timestamps))
	for _, ts := range dto.Timestamps {
		st, stErr := order.ParseState(ts.State)
		if stErr != nil {
			return nil, stErr
		}
		timestamps[st] = ts.EnteredAt
	}

	return order.Restore(order.Snapshot{
		ID:            ids[0],
		CustomerID:    ids[1],
		TenantID:      ids[2],
		Mode:          mode,
		TableRef:      dto.TableRef,
		Items:         items,
		Amounts:       amounts,
		State:         state,
		PaymentStatus: paymentStatus,
		Assignment:    assignment,
		Timestamps:    timestamps,
		Version:       dto.Version,
	})
}

func amountsToDomain(dto AmountsDTO) (order.Amounts, error) {
	minors := []int64{dto.Subtotal, dto.DeliveryFee, dto.TaxAmount, dto.Discount, dto.Total}
	money := make([]kernel.Money, len(minors))
	for i, minor := range minors {
		m, err := kernel.NewMoney(minor)
		if err != nil {
			return order.Amounts{}, err
		}
		money[i] = m
	}
	return order.RestoreAmounts(money[0], money[1], dto.TaxRate, money[2], money[3], money[4])
}

func assignmentToDomain(dto AssignmentDTO) (*order.Assignment, error) {
	if dto.PartnerID == nil {
		return nil, nil //nolint:nilnil // unassigned
	}
	partnerID, err := kernel.UUIDFromBytes(dto.PartnerID[:])
	if err != nil {
		return nil, err
	}

	var (
		fee      kernel.Money
		distance int
		at       time.Time
	)
	if dto.Fee != nil {
		if fee, err = kernel.NewMoney(*dto.Fee); err != nil {
			return nil, err
		}
	}
	if dto.Distance != nil {
		distance = *dto.Distance
	}
	if dto.AssignedAt != nil {
		at = *dto.AssignedAt
	}

	a, err := order.NewAssignment(partnerID, fee, distance, at)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func parseIDs(raw ...uuid.UUID) ([]kernel.UUID, error) {
	ids := make([]kernel.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := kernel.UUIDFromBytes(r[:])
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
