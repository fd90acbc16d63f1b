package queries

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/guard"
)

var ErrPendingPaymentsReportQueryIsNotConstructed = errors.New(
	"PendingPaymentsReportQuery must be created via a PendingPaymentsReportQuery constructor",
)

// PendingPaymentsReportQuery lists finished orders whose payment never settled.
type PendingPaymentsReportQuery struct {
	tenantID *kernel.UUID
	guard    guard.ConstructorGuard
}

// NewPendingPaymentsReportQuery scopes the report to one tenant.
func NewPendingPaymentsReportQuery(tenantID kernel.UUID) (PendingPaymentsReportQuery, error) {
	if err := tenantID.Validate(); err != nil {
		return PendingPaymentsReportQuery{}, err
	}
	return PendingPaymentsReportQuery{tenantID: &tenantID, guard: guard.NewConstructorGuard()}, nil
}

// NewPlatformPendingPaymentsReportQuery covers every tenant. It is used by
// the reconciliation job.
func NewPlatformPendingPaymentsReportQuery() PendingPaymentsReportQuery {
	return PendingPaymentsReportQuery{guard: guard.NewConstructorGuard()}
}

func (q PendingPaymentsReportQuery) Validate() error {
	return q.guard.Validate(ErrPendingPaymentsReportQueryIsNotConstructed)
}

// TenantID returns the tenant the report is scoped to, if any.
func (q PendingPaymentsReportQuery) TenantID() (kernel.UUID, bool) {
	if q.tenantID == nil {
		return kernel.UUID{}, false
	}
	return *q.tenantID, true
}
