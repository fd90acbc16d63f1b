package actor

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

// ErrActorIsNotConstructed is returned for a zero-value Actor.
var ErrActorIsNotConstructed = errs.NewValueIsRequiredError("actor must be created via NewActor")

// systemActorID identifies scheduled jobs acting with super-admin rights.
const systemActorID = "00000000-0000-4000-8000-000000000001"

// Actor is the authenticated party behind a request: who they are, which role
// they act in and, for kitchen staff, which restaurant tenant they work for.
//
// Example:
//
//	staff, err := actor.NewActor(actor.KitchenStaff, staffID, &tenantID)
type Actor struct { //nolint:recvcheck //using for validation
	role     Role
	id       kernel.UUID
	tenantID *kernel.UUID
	guard    guard.ConstructorGuard
}

// NewActor validates the role and identity. Kitchen staff must carry a tenant.
//
// Parameters:
//   - role: surface the actor speaks for
//   - id: customer, staff, partner or admin identifier
//   - tenantID: restaurant tenant, required for KitchenStaff, optional otherwise
func NewActor(role Role, id kernel.UUID, tenantID *kernel.UUID) (Actor, error) {
	a := Actor{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		a.setRole(role),
		a.setID(id),
		a.setTenantID(role, tenantID),
	); err != nil {
		return Actor{}, err
	}

	return a, nil
}

// System is the super-admin identity used by scheduled policy jobs.
func System() Actor {
	id, err := kernel.UUIDFromString(systemActorID)
	if err != nil {
		panic(err)
	}
	a, err := NewActor(SuperAdmin, id, nil)
	if err != nil {
		panic(err)
	}
	return a
}

func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

func (a Actor) Role() Role {
	return a.role
}

func (a Actor) ID() kernel.UUID {
	return a.id
}

// TenantID returns the tenant and whether one is set.
func (a Actor) TenantID() (kernel.UUID, bool) {
	if a.tenantID == nil {
		return kernel.UUID{}, false
	}
	return *a.tenantID, true
}

func (a Actor) String() string {
	return a.role.String() + ":" + a.id.String()
}

func (a *Actor) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	a.role = role
	return nil
}

func (a *Actor) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Actor) setTenantID(role Role, tenantID *kernel.UUID) error {
	if tenantID == nil {
		if role == KitchenStaff {
			return errs.NewValueIsRequiredError("tenantId")
		}
		return nil
	}
	if err := tenantID.Validate(); err != nil {
		return err
	}
	id := *tenantID
	a.tenantID = &id
	return nil
}
