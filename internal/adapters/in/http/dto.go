package http

import (
	"time"

	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/partner"
	"ordering/internal/core/domain/services"
)

// Amounts travel as integers in minor currency units.

type lineItemRequest struct {
	SkuID          string   `json:"skuId"`
	Name           string   `json:"name"`
	UnitPrice      int64    `json:"unitPrice"`
	Quantity       int      `json:"quantity"`
	Customizations []string `json:"customizations"`
}

type commitOrderRequest struct {
	TenantID string            `json:"tenantId"`
	Mode     string            `json:"mode"`
	TableRef string            `json:"tableRef"`
	Discount int64             `json:"discount"`
	Items    []lineItemRequest `json:"items"`
}

type transitionRequest struct {
	To      string `json:"to"`
	Version int64  `json:"version"`
	Retry   bool   `json:"retry"`
}

type paymentRequest struct {
	Outcome string `json:"outcome"`
	Method  string `json:"method"`
	Reason  string `json:"reason"`
}

type refundRequest struct {
	Reason string `json:"reason"`
}

type locationDTO struct {
	X int32 `json:"x"`
	Y int32 `json:"y"`
}

type assignmentRequest struct {
	PartnerID string      `json:"partnerId"`
	Version   int64       `json:"version"`
	Pickup    locationDTO `json:"pickup"`
	Dropoff   locationDTO `json:"dropoff"`
}

type newPartnerRequest struct {
	Name string `json:"name"`
}

type newBonusRequest struct {
	Amount     int64     `json:"amount"`
	Reason     string    `json:"reason"`
	OccurredAt time.Time `json:"occurredAt"`
}

type lineItemResponse struct {
	SkuID          string   `json:"skuId"`
	Name           string   `json:"name"`
	UnitPrice      int64    `json:"unitPrice"`
	Quantity       int      `json:"quantity"`
	Customizations []string `json:"customizations,omitempty"`
	LineTotal      int64    `json:"lineTotal"`
}

type assignmentResponse struct {
	PartnerID  string    `json:"partnerId"`
	Fee        int64     `json:"fee"`
	Distance   int       `json:"distance"`
	AssignedAt time.Time `json:"assignedAt"`
}

type orderResponse struct {
	ID            string               `json:"id"`
	CustomerID    string               `json:"customerId"`
	TenantID      string               `json:"tenantId"`
	Mode          string               `json:"mode"`
	TableRef      string               `json:"tableRef,omitempty"`
	State         string               `json:"state"`
	PaymentStatus string               `json:"paymentStatus"`
	Version       int64                `json:"version"`
	Items         []lineItemResponse   `json:"items"`
	Subtotal      int64                `json:"subtotal"`
	DeliveryFee   int64                `json:"deliveryFee"`
	TaxAmount     int64                `json:"taxAmount"`
	Discount      int64                `json:"discount"`
	Total         int64                `json:"total"`
	Assignment    *assignmentResponse  `json:"assignment,omitempty"`
	Timestamps    map[string]time.Time `json:"timestamps"`
	AllowedNext   []string             `json:"allowedNext"`
}

func toOrderResponse(v queries.OrderView) orderResponse {
	resp := orderResponse{
		ID:            v.ID.String(),
		CustomerID:    v.CustomerID.String(),
		TenantID:      v.TenantID.String(),
		Mode:          v.Mode.String(),
		TableRef:      v.TableRef,
		State:         v.State.String(),
		PaymentStatus: v.PaymentStatus.String(),
		Version:       v.Version,
		Items:         make([]lineItemResponse, 0, len(v.Items)),
		Subtotal:      v.Subtotal.Minor(),
		DeliveryFee:   v.DeliveryFee.Minor(),
		TaxAmount:     v.TaxAmount.Minor(),
		Discount:      v.Discount.Minor(),
		Total:         v.Total.Minor(),
		Timestamps:    make(map[string]time.Time, len(v.Timestamps)),
		AllowedNext:   stateNames(v.AllowedNext),
	}
	for _, item := range v.Items {
		resp.Items = append(resp.Items, lineItemResponse{
			SkuID:          item.SkuID,
			Name:           item.Name,
			UnitPrice:      item.UnitPrice.Minor(),
			Quantity:       item.Quantity,
			Customizations: item.Customizations,
			LineTotal:      item.LineTotal.Minor(),
		})
	}
	for state, at := range v.Timestamps {
		resp.Timestamps[state.String()] = at
	}
	if a := v.Assignment; a != nil {
		resp.Assignment = &assignmentResponse{
			PartnerID:  a.PartnerID.String(),
			Fee:        a.Fee.Minor(),
			Distance:   a.Distance,
			AssignedAt: a.AssignedAt,
		}
	}
	return resp
}

type orderSummaryResponse struct {
	ID            string    `json:"id"`
	CustomerID    string    `json:"customerId"`
	Mode          string    `json:"mode"`
	TableRef      string    `json:"tableRef,omitempty"`
	State         string    `json:"state"`
	PaymentStatus string    `json:"paymentStatus"`
	Total         int64     `json:"total"`
	Version       int64     `json:"version"`
	PartnerID     *string   `json:"partnerId,omitempty"`
	PlacedAt      time.Time `json:"placedAt"`
	ChangedAt     time.Time `json:"changedAt"`
}

func toOrderSummaryResponse(s queries.OrderSummary) orderSummaryResponse {
	resp := orderSummaryResponse{
		ID:            s.ID.String(),
		CustomerID:    s.CustomerID.String(),
		Mode:          s.Mode.String(),
		TableRef:      s.TableRef,
		State:         s.State.String(),
		PaymentStatus: s.PaymentStatus.String(),
		Total:         s.Total.Minor(),
		Version:       s.Version,
		PlacedAt:      s.PlacedAt,
		ChangedAt:     s.ChangedAt,
	}
	if s.PartnerID != nil {
		id := s.PartnerID.String()
		resp.PartnerID = &id
	}
	return resp
}

type allowedTransitionsResponse struct {
	OrderID string   `json:"orderId"`
	State   string   `json:"state"`
	Version int64    `json:"version"`
	Next    []string `json:"next"`
}

type pendingPaymentResponse struct {
	OrderID    string    `json:"orderId"`
	TenantID   string    `json:"tenantId"`
	CustomerID string    `json:"customerId"`
	Mode       string    `json:"mode"`
	State      string    `json:"state"`
	Total      int64     `json:"total"`
	FinishedAt time.Time `json:"finishedAt"`
}

type pendingPaymentsReportResponse struct {
	Outstanding int64                    `json:"outstanding"`
	Orders      []pendingPaymentResponse `json:"orders"`
}

func toPendingPaymentsReportResponse(r queries.PendingPaymentsReport) pendingPaymentsReportResponse {
	resp := pendingPaymentsReportResponse{
		Outstanding: r.Outstanding.Minor(),
		Orders:      make([]pendingPaymentResponse, 0, len(r.Orders)),
	}
	for _, p := range r.Orders {
		resp.Orders = append(resp.Orders, pendingPaymentResponse{
			OrderID:    p.OrderID.String(),
			TenantID:   p.TenantID.String(),
			CustomerID: p.CustomerID.String(),
			Mode:       p.Mode.String(),
			State:      p.State.String(),
			Total:      p.Total.Minor(),
			FinishedAt: p.FinishedAt,
		})
	}
	return resp
}

type partnerResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Active       bool      `json:"active"`
	RegisteredAt time.Time `json:"registeredAt"`
}

func toPartnerResponse(p *partner.Partner) partnerResponse {
	return partnerResponse{
		ID:           p.ID().String(),
		Name:         p.Name(),
		Active:       p.IsActive(),
		RegisteredAt: p.RegisteredAt(),
	}
}

type bonusResponse struct {
	ID         string    `json:"id"`
	PartnerID  string    `json:"partnerId"`
	Amount     int64     `json:"amount"`
	Reason     string    `json:"reason"`
	OccurredAt time.Time `json:"occurredAt"`
}

func toBonusResponse(b partner.BonusEvent) bonusResponse {
	return bonusResponse{
		ID:         b.ID().String(),
		PartnerID:  b.PartnerID().String(),
		Amount:     b.Amount().Minor(),
		Reason:     b.Reason(),
		OccurredAt: b.OccurredAt(),
	}
}

type earningsResponse struct {
	From          time.Time `json:"from"`
	To            time.Time `json:"to"`
	Base          int64     `json:"base"`
	Bonuses       int64     `json:"bonuses"`
	Total         int64     `json:"total"`
	DeliveryCount int       `json:"deliveryCount"`
}

func toEarningsResponse(e services.Earnings) earningsResponse {
	return earningsResponse{
		From:          e.Window.From,
		To:            e.Window.To,
		Base:          e.Base.Minor(),
		Bonuses:       e.Bonuses.Minor(),
		Total:         e.Total.Minor(),
		DeliveryCount: e.DeliveryCount,
	}
}

type earningsSummaryResponse struct {
	earningsResponse
	PartnerID   string             `json:"partnerId"`
	Granularity string             `json:"granularity,omitempty"`
	Buckets     []earningsResponse `json:"buckets,omitempty"`
}

func toEarningsSummaryResponse(s queries.EarningsSummary) earningsSummaryResponse {
	resp := earningsSummaryResponse{
		earningsResponse: toEarningsResponse(s.Earnings),
		PartnerID:        s.PartnerID.String(),
	}
	if s.Granularity != services.GranularityUnknown {
		resp.Granularity = s.Granularity.String()
		resp.Buckets = make([]earningsResponse, 0, len(s.Buckets))
		for _, b := range s.Buckets {
			resp.Buckets = append(resp.Buckets, toEarningsResponse(b))
		}
	}
	return resp
}

func stateNames(states []order.State) []string {
	names := make([]string, 0, len(states))
	for _, s := range states {
		names = append(names, s.String())
	}
	return names
}
