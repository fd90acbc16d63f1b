package orderrepo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a newly placed order with its items and PLACED timestamp.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the order only if the stored version still equals
// expectedVersion. Items are frozen at commit and never rewritten; state
// timestamps are appended.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order, expectedVersion int64) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	result := db.Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, expectedVersion).
		Updates(map[string]any{
			"state":                  dto.State,
			"payment_status":         dto.PaymentStatus,
			"version":                dto.Version,
			"assignment_partner_id":  dto.Assignment.PartnerID,
			"assignment_fee":         dto.Assignment.Fee,
			"assignment_distance":    dto.Assignment.Distance,
			"assignment_assigned_at": dto.Assignment.AssignedAt,
			"changed_at":             dto.ChangedAt,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return r.conflict(ctx, aggregate.ID(), expectedVersion)
	}

	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&dto.Timestamps).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// conflict explains a zero-row update: the order is gone or someone else
// bumped the version first.
func (r *GormOrderRepository) conflict(ctx context.Context, id kernel.UUID, expectedVersion int64) error {
	var stored struct{ Version int64 }
	err := r.db.WithContext(ctx).Model(&OrderDTO{}).Select("version").Where("id = ?", id.Bytes()).Take(&stored).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundError("order", id.String())
	}
	if err != nil {
		return errors.Join(order.NewStaleOrderError(id, expectedVersion, 0), err)
	}
	return order.NewStaleOrderError(id, expectedVersion, stored.Version)
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.preloaded(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// ListByState returns the tenant's orders currently in state, oldest first.
func (r *GormOrderRepository) ListByState(
	ctx context.Context,
	tenantID kernel.UUID,
	state order.State,
) ([]*order.Order, error) {
	return r.find(r.preloaded(ctx).
		Where("tenant_id = ? AND state = ?", tenantID.Bytes(), state.String()).
		Order("placed_at, id"))
}

// ListByPartner returns orders assigned to the partner that entered any state
// within the window.
func (r *GormOrderRepository) ListByPartner(
	ctx context.Context,
	partnerID kernel.UUID,
	window kernel.TimeWindow,
) ([]*order.Order, error) {
	return r.find(r.preloaded(ctx).
		Where("assignment_partner_id = ?", partnerID.Bytes()).
		Where(`EXISTS (
			SELECT 1 FROM order_state_timestamps t
			WHERE t.order_id = orders.id AND t.entered_at >= ? AND t.entered_at < ?
		)`, window.From, window.To).
		Order("placed_at, id"))
}

// ListPendingPayments returns finished orders still waiting for payment.
func (r *GormOrderRepository) ListPendingPayments(ctx context.Context, tenantID *kernel.UUID) ([]*order.Order, error) {
	q := r.preloaded(ctx).
		Where("state IN ? AND payment_status = ?",
			[]string{order.Delivered.String(), order.Served.String()},
			order.PaymentPending.String())
	if tenantID != nil {
		q = q.Where("tenant_id = ?", tenantID.Bytes())
	}
	return r.find(q.Order("changed_at, id"))
}

// ListUnconfirmed returns PLACED orders placed before the cutoff, oldest first.
func (r *GormOrderRepository) ListUnconfirmed(
	ctx context.Context,
	placedBefore time.Time,
	limit int,
) ([]*order.Order, error) {
	return r.find(r.preloaded(ctx).
		Where("state = ? AND placed_at < ?", order.Placed.String(), placedBefore).
		Order("placed_at, id").
		Limit(limit))
}

func (r *GormOrderRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("Timestamps")
}

func (r *GormOrderRepository) find(q *gorm.DB) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := q.Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}
