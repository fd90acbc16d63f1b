package commands_test

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/actor"
	"ordering/internal/core/domain/model/cart"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/payment"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"
)

var (
	t0      = time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	pricing = order.Pricing{TaxRate: decimal.NewFromInt(5), DeliveryFee: kernel.MustMoney(40)}
	silent  = slog.New(slog.DiscardHandler)
)

type cast struct {
	customer actor.Actor
	staff    actor.Actor
	partner  actor.Actor
	admin    actor.Actor
}

func burgerCart(t *testing.T) *cart.Cart {
	t.Helper()
	c, err := cart.NewCart(kernel.NewUUID(), kernel.NewUUID())
	require.NoError(t, err)
	burger, err := cart.NewLineItem("sku-burger", "Beef burger", kernel.MustMoney(340), 2, []string{"no onions"})
	require.NoError(t, err)
	require.NoError(t, c.Put(burger))
	return c
}

func newCast(t *testing.T, c *cart.Cart) cast {
	t.Helper()
	tenant := c.TenantID()
	customer, err := actor.NewActor(actor.Customer, c.CustomerID(), nil)
	require.NoError(t, err)
	staff, err := actor.NewActor(actor.KitchenStaff, kernel.NewUUID(), &tenant)
	require.NoError(t, err)
	rider, err := actor.NewActor(actor.DeliveryPartner, kernel.NewUUID(), nil)
	require.NoError(t, err)
	admin, err := actor.NewActor(actor.SuperAdmin, kernel.NewUUID(), nil)
	require.NoError(t, err)
	return cast{customer: customer, staff: staff, partner: rider, admin: admin}
}

func placeOrder(t *testing.T, mode order.Mode) (*order.Order, cast) {
	t.Helper()
	c := burgerCart(t)
	o, err := order.Place(c, mode, "", pricing, t0)
	require.NoError(t, err)
	return o, newCast(t, c)
}

func assignTo(t *testing.T, o *order.Order, partnerID kernel.UUID) *order.Order {
	t.Helper()
	a, err := order.NewAssignment(partnerID, kernel.MustMoney(150), 8, t0)
	require.NoError(t, err)
	next, err := o.WithAssignment(a)
	require.NoError(t, err)
	return next
}

func walk(t *testing.T, o *order.Order, states ...order.State) *order.Order {
	t.Helper()
	at := o.LastChangedAt()
	for _, st := range states {
		at = at.Add(time.Minute)
		var err error
		o, err = o.Advance(st, at)
		require.NoError(t, err)
	}
	return o
}

func markPaid(t *testing.T, o *order.Order) (*order.Order, payment.Entry) {
	t.Helper()
	entry, err := payment.NewPaymentEntry(o.ID(), o.Amounts().Total(), payment.Card, t0)
	require.NoError(t, err)
	next, err := o.WithPaymentStatus(order.PaymentPaid, t0)
	require.NoError(t, err)
	return next, entry
}

// memoryStore is an in-memory order and payment store with the same version
// compare-and-swap the postgres adapter performs. Transactions are not
// modelled; every write is visible at once.
type memoryStore struct {
	mu       sync.Mutex
	orders   map[string]*order.Order
	payments map[string][]payment.Entry
}

func newMemoryStore(orders ...*order.Order) *memoryStore {
	s := &memoryStore{
		orders:   make(map[string]*order.Order),
		payments: make(map[string][]payment.Entry),
	}
	for _, o := range orders {
		s.orders[o.ID().String()] = o
	}
	return s
}

func (s *memoryStore) Create() commands.LedgerUoW { return memoryUoW{store: s} }

type memoryUoW struct{ store *memoryStore }

func (memoryUoW) Begin(context.Context) error                  { return nil }
func (memoryUoW) Commit(context.Context) error                 { return nil }
func (memoryUoW) Rollback(context.Context) error               { return nil }
func (u memoryUoW) OrderRepository() ports.OrderRepository     { return memoryOrders{u.store} }
func (u memoryUoW) PaymentRepository() ports.PaymentRepository { return memoryPayments{u.store} }

type memoryOrders struct{ *memoryStore }

func (s memoryOrders) Add(_ context.Context, o *order.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[o.ID().String()] = o
	return nil
}

func (s memoryOrders) Update(_ context.Context, o *order.Order, expectedVersion int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.orders[o.ID().String()]
	if !ok || stored.Version() != expectedVersion {
		return order.NewStaleOrderError(o.ID(), expectedVersion, 0)
	}
	s.orders[o.ID().String()] = o
	return nil
}

func (s memoryOrders) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return o, nil
}

func (s memoryOrders) ListByState(context.Context, kernel.UUID, order.State) ([]*order.Order, error) {
	return nil, nil
}

func (s memoryOrders) ListByPartner(context.Context, kernel.UUID, kernel.TimeWindow) ([]*order.Order, error) {
	return nil, nil
}

func (s memoryOrders) ListPendingPayments(context.Context, *kernel.UUID) ([]*order.Order, error) {
	return nil, nil
}

func (s memoryOrders) ListUnconfirmed(context.Context, time.Time, int) ([]*order.Order, error) {
	return nil, nil
}

type memoryPayments struct{ *memoryStore }

func (s memoryPayments) Add(_ context.Context, entry payment.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payments[entry.OrderID().String()] = append(s.payments[entry.OrderID().String()], entry)
	return nil
}

func (s memoryPayments) ListByOrder(_ context.Context, orderID kernel.UUID) ([]payment.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]payment.Entry(nil), s.payments[orderID.String()]...), nil
}
