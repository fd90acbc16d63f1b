package partner

import (
	"errors"
	"strings"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var (
	// ErrNameIsRequired is returned when registering a partner without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrPartnerIsNotConstructed is returned for a zero-value Partner.
	ErrPartnerIsNotConstructed = errors.New("Partner must be created via NewPartner constructor")
	// ErrPartnerIsInactive is returned when assigning work to a deactivated partner.
	ErrPartnerIsInactive = errors.New("partner is inactive")
)

// Partner is a delivery partner who can be assigned delivery orders and earns
// a fee per completed delivery.
//
// Business rules:
//   - Partner must have a valid UUID and a non-empty name
//   - Only active partners can receive new assignments
//
// Example usage:
//
//	p, err := partner.NewPartner(kernel.NewUUID(), "Budi", time.Now())
//	if err != nil {
//	    return err
//	}
type Partner struct {
	id           kernel.UUID
	name         string
	active       bool
	registeredAt time.Time
	guard        guard.ConstructorGuard
}

// NewPartner registers a new, active partner.
//
// Parameters:
//   - id: partner identifier, also the subject of the partner's access token
//   - name: display name shown to kitchens and customers
//   - registeredAt: registration instant
//
// Returns:
//   - *Partner: the registered partner
//   - error: aggregated validation errors
func NewPartner(id kernel.UUID, name string, registeredAt time.Time) (*Partner, error) {
	p := &Partner{
		active: true,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setName(name),
		p.setRegisteredAt(registeredAt),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestorePartner rebuilds a stored partner.
func RestorePartner(id kernel.UUID, name string, active bool, registeredAt time.Time) (*Partner, error) {
	p := &Partner{
		active: active,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setName(name),
		p.setRegisteredAt(registeredAt),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// IsEqual compares partners by identifier.
func (p *Partner) IsEqual(other *Partner) bool {
	if other == nil {
		return false
	}
	return p.id.IsEqual(other.id)
}

func (p *Partner) Validate() error {
	if p == nil {
		return ErrPartnerIsNotConstructed
	}
	return p.guard.Validate(ErrPartnerIsNotConstructed)
}

func (p *Partner) ID() kernel.UUID {
	return p.id
}

func (p *Partner) Name() string {
	return p.name
}

func (p *Partner) IsActive() bool {
	return p.active
}

func (p *Partner) RegisteredAt() time.Time {
	return p.registeredAt
}

// CanTakeOrders returns ErrPartnerIsInactive for deactivated partners.
func (p *Partner) CanTakeOrders() error {
	if err := p.Validate(); err != nil {
		return err
	}
	if !p.active {
		return ErrPartnerIsInactive
	}
	return nil
}

// Deactivate stops new assignments. Orders already assigned are unaffected.
func (p *Partner) Deactivate() {
	p.active = false
}

func (p *Partner) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Partner) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameIsRequired
	}
	p.name = name
	return nil
}

func (p *Partner) setRegisteredAt(at time.Time) error {
	if at.IsZero() {
		return errs.NewValueIsRequiredError("registeredAt")
	}
	p.registeredAt = at.UTC()
	return nil
}
