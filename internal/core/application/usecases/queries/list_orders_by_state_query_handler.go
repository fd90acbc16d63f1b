package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
)

// ListOrdersByStateQueryHandler reads order boards straight from the orders
// table without loading items or timestamps.
type ListOrdersByStateQueryHandler struct {
	db *gorm.DB
}

func NewListOrdersByStateQueryHandler(db *gorm.DB) ListOrdersByStateQueryHandler {
	return ListOrdersByStateQueryHandler{db: db}
}

// Handle returns the tenant's orders in the requested state, oldest first.
func (h ListOrdersByStateQueryHandler) Handle(
	ctx context.Context,
	query ListOrdersByStateQuery,
) ([]OrderSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	summaries := make([]OrderSummary, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer_id,
			mode,
			table_ref,
			state,
			payment_status,
			total,
			version,
			assignment_partner_id,
			placed_at,
			changed_at
		FROM orders
		WHERE tenant_id = ? AND state = ?
		ORDER BY placed_at, id
	`, query.TenantID().Bytes(), query.State().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id, customerID       uuid.UUID
			partnerID            *uuid.UUID
			mode, state, payment string
			tableRef             string
			total, version       int64
			placedAt, changedAt  time.Time
		)

		if err = rows.Scan(
			&id,
			&customerID,
			&mode,
			&tableRef,
			&state,
			&payment,
			&total,
			&version,
			&partnerID,
			&placedAt,
			&changedAt,
		); err != nil {
			return nil, err
		}

		summary, scanErr := toSummary(id, customerID, partnerID, mode, tableRef, state, payment, total)
		if scanErr != nil {
			return nil, scanErr
		}
		summary.Version = version
		summary.PlacedAt = placedAt.UTC()
		summary.ChangedAt = changedAt.UTC()
		summaries = append(summaries, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return summaries, nil
}

func toSummary(
	id, customerID uuid.UUID,
	partnerID *uuid.UUID,
	mode, tableRef, state, payment string,
	total int64,
) (OrderSummary, error) {
	var s OrderSummary
	var err error

	if s.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return OrderSummary{}, err
	}
	if s.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
		return OrderSummary{}, err
	}
	if partnerID != nil {
		pid, pidErr := kernel.UUIDFromBytes(partnerID[:])
		if pidErr != nil {
			return OrderSummary{}, pidErr
		}
		s.PartnerID = &pid
	}
	if s.Mode, err = order.ParseMode(mode); err != nil {
		return OrderSummary{}, err
	}
	if s.State, err = order.ParseState(state); err != nil {
		return OrderSummary{}, err
	}
	if s.PaymentStatus, err = order.ParsePaymentStatus(payment); err != nil {
		return OrderSummary{}, err
	}
	if s.Total, err = kernel.NewMoney(total); err != nil {
		return OrderSummary{}, err
	}
	s.TableRef = tableRef

	return s, nil
}
