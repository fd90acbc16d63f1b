package actor

import (
	"fmt"

	"ordering/internal/pkg/errs"
)

// Role is the surface an actor speaks for.
type Role int

const (
	// RoleUnknown (0) catches zero-value roles.
	RoleUnknown Role = iota
	Customer
	KitchenStaff
	DeliveryPartner
	SuperAdmin
)

var roleNames = map[Role]string{
	Customer:        "CUSTOMER",
	KitchenStaff:    "KITCHEN_STAFF",
	DeliveryPartner: "DELIVERY_PARTNER",
	SuperAdmin:      "SUPER_ADMIN",
}

// ParseRole maps the wire name ("KITCHEN_STAFF") to a Role.
func ParseRole(s string) (Role, error) {
	for role, name := range roleNames {
		if name == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", s))
}

func (r Role) Validate() error {
	if _, ok := roleNames[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a known role", r))
	}
	return nil
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsStaff reports whether the role may override the customer cancellation window.
func (r Role) IsStaff() bool {
	return r == KitchenStaff || r == SuperAdmin
}
