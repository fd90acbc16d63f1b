package http

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"

	"ordering/internal/adapters/in/http/auth"
	"ordering/internal/core/domain/model/actor"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

func pathUUID(c echo.Context, name string) (kernel.UUID, error) {
	var id uuid.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true})
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return kernel.UUIDFromBytes(id[:])
}

// queryString binds a plain string for required parameters and a *string for
// optional ones, which is what the runtime binder expects in each case.
func queryString(c echo.Context, name string, required bool) (string, error) {
	if required {
		var value string
		if err := runtime.BindQueryParameter("form", true, true, name, c.QueryParams(), &value); err != nil {
			return "", errs.NewValueIsInvalidErrorWithCause(name, err)
		}
		return value, nil
	}

	var value *string
	if err := runtime.BindQueryParameter("form", true, false, name, c.QueryParams(), &value); err != nil {
		return "", errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	if value == nil {
		return "", nil
	}
	return *value, nil
}

// queryWindow reads the half-open [from, to) window of partner queries.
func queryWindow(c echo.Context) (kernel.TimeWindow, error) {
	var from, to time.Time
	if err := runtime.BindQueryParameter("form", true, true, "from", c.QueryParams(), &from); err != nil {
		return kernel.TimeWindow{}, errs.NewValueIsInvalidErrorWithCause("from", err)
	}
	if err := runtime.BindQueryParameter("form", true, true, "to", c.QueryParams(), &to); err != nil {
		return kernel.TimeWindow{}, errs.NewValueIsInvalidErrorWithCause("to", err)
	}
	return kernel.NewTimeWindow(from, to)
}

func currentActor(c echo.Context) (actor.Actor, error) {
	who, ok := auth.ActorFrom(c)
	if !ok {
		return actor.Actor{}, echo.ErrUnauthorized
	}
	return who, nil
}

// requireTenant lets kitchen staff of the tenant and super admins through.
func requireTenant(who actor.Actor, tenantID kernel.UUID) error {
	if who.Role() == actor.SuperAdmin {
		return nil
	}
	if tenant, ok := who.TenantID(); ok && who.Role() == actor.KitchenStaff && tenant.IsEqual(tenantID) {
		return nil
	}
	return errForbidden
}

// requirePartner lets the partner itself and super admins through.
func requirePartner(who actor.Actor, partnerID kernel.UUID) error {
	if who.Role() == actor.SuperAdmin {
		return nil
	}
	if who.Role() == actor.DeliveryPartner && who.ID().IsEqual(partnerID) {
		return nil
	}
	return errForbidden
}

func requireRole(who actor.Actor, roles ...actor.Role) error {
	for _, role := range roles {
		if who.Role() == role {
			return nil
		}
	}
	return errForbidden
}
