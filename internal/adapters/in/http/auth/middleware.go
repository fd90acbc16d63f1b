package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"ordering/internal/core/domain/model/actor"
)

const actorKey = "ordering.actor"

// Middleware authenticates "Authorization: Bearer <token>", or the "token"
// query parameter for WebSocket upgrades, and stores the actor on the context.
func Middleware(issuer *Issuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearer(c.Request().Header.Get(echo.HeaderAuthorization))
			if token == "" {
				token = c.QueryParam("token")
			}
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}

			who, err := issuer.Verify(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid bearer token")
			}

			c.Set(actorKey, who)
			return next(c)
		}
	}
}

// ActorFrom returns the authenticated actor.
func ActorFrom(c echo.Context) (actor.Actor, bool) {
	who, ok := c.Get(actorKey).(actor.Actor)
	return who, ok
}

// WithActor stores an actor on the context. Tests use it to skip token parsing.
func WithActor(c echo.Context, who actor.Actor) {
	c.Set(actorKey, who)
}

func bearer(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}
