// Package queries holds the read side of the ordering core. Queries never
// mutate orders; they project stored records for the surfaces that render
// them (customer app, kitchen display, partner app, admin console).
package queries

import (
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
)

// OrderView is the read model of a single order.
type OrderView struct {
	ID            kernel.UUID
	CustomerID    kernel.UUID
	TenantID      kernel.UUID
	Mode          order.Mode
	TableRef      string
	State         order.State
	PaymentStatus order.PaymentStatus
	Version       int64
	Items         []ItemView
	Subtotal      kernel.Money
	DeliveryFee   kernel.Money
	TaxAmount     kernel.Money
	Discount      kernel.Money
	Total         kernel.Money
	Assignment    *AssignmentView
	Timestamps    map[order.State]time.Time
	// AllowedNext is filled only when the view is built for a known actor.
	AllowedNext []order.State
}

type ItemView struct {
	SkuID          string
	Name           string
	UnitPrice      kernel.Money
	Quantity       int
	Customizations []string
	LineTotal      kernel.Money
}

type AssignmentView struct {
	PartnerID  kernel.UUID
	Fee        kernel.Money
	Distance   int
	AssignedAt time.Time
}

// NewOrderView projects an order. Command surfaces use it to echo the result
// of a mutation in the same shape GetOrder returns.
func NewOrderView(o *order.Order, allowed []order.State) (OrderView, error) {
	amounts := o.Amounts()
	view := OrderView{
		ID:            o.ID(),
		CustomerID:    o.CustomerID(),
		TenantID:      o.TenantID(),
		Mode:          o.Mode(),
		TableRef:      o.TableRef(),
		State:         o.State(),
		PaymentStatus: o.PaymentStatus(),
		Version:       o.Version(),
		Subtotal:      amounts.Subtotal(),
		DeliveryFee:   amounts.DeliveryFee(),
		TaxAmount:     amounts.TaxAmount(),
		Discount:      amounts.Discount(),
		Total:         amounts.Total(),
		Timestamps:    o.Timestamps(),
		AllowedNext:   allowed,
	}

	items := o.Items()
	view.Items = make([]ItemView, 0, len(items))
	for _, item := range items {
		lineTotal, err := item.LineTotal()
		if err != nil {
			return OrderView{}, err
		}
		view.Items = append(view.Items, ItemView{
			SkuID:          item.SkuID(),
			Name:           item.Name(),
			UnitPrice:      item.UnitPrice(),
			Quantity:       item.Quantity(),
			Customizations: item.Customizations(),
			LineTotal:      lineTotal,
		})
	}

	if a, ok := o.Assignment(); ok {
		view.Assignment = &AssignmentView{
			PartnerID:  a.PartnerID(),
			Fee:        a.Fee(),
			Distance:   a.Distance(),
			AssignedAt: a.AssignedAt(),
		}
	}

	return view, nil
}
