package concurrency_test

import (
	"context"
	"sync"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"
)

// casRepository keeps orders in memory and implements the version
// compare-and-swap the postgres repository performs with UPDATE ... WHERE version = ?.
type casRepository struct {
	mu     sync.Mutex
	orders map[string]*order.Order
	gets   int
}

func newCASRepository(orders ...*order.Order) *casRepository {
	r := &casRepository{orders: make(map[string]*order.Order)}
	for _, o := range orders {
		r.orders[o.ID().String()] = o
	}
	return r
}

func (r *casRepository) Add(_ context.Context, o *order.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[o.ID().String()] = o
	return nil
}

func (r *casRepository) Update(_ context.Context, o *order.Order, expectedVersion int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.orders[o.ID().String()]
	if !ok || stored.Version() != expectedVersion {
		return order.NewStaleOrderError(o.ID(), expectedVersion, 0)
	}
	r.orders[o.ID().String()] = o
	return nil
}

func (r *casRepository) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gets++
	o, ok := r.orders[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return o, nil
}

func (r *casRepository) ListByState(context.Context, kernel.UUID, order.State) ([]*order.Order, error) {
	return nil, nil
}

func (r *casRepository) ListByPartner(context.Context, kernel.UUID, kernel.TimeWindow) ([]*order.Order, error) {
	return nil, nil
}

func (r *casRepository) ListPendingPayments(context.Context, *kernel.UUID) ([]*order.Order, error) {
	return nil, nil
}

func (r *casRepository) ListUnconfirmed(context.Context, time.Time, int) ([]*order.Order, error) {
	return nil, nil
}
