package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/afoninsb/api-yamdb/internal/core/domain"
)

// actorKey is the echo context key the actor is stored under.
const actorKey = "actor"

// Authenticator verifies a bearer token and extracts the acting identity.
type Authenticator interface {
	Authenticate(token string) (domain.Actor, error)
}

// Authenticate resolves the request's actor and injects it into context.
//
// Requests without an Authorization header pass through with an anonymous
// actor; read endpoints are public. A header that is present but malformed
// or carries an invalid token is rejected with 401.
func Authenticate(auth Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				c.Set(actorKey, domain.Actor{})
				return next(c)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			actor, err := auth.Authenticate(parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(actorKey, actor)
			return next(c)
		}
	}
}

// RequireAuth rejects anonymous requests. Must run after Authenticate.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, _ := c.Get(actorKey).(domain.Actor)
			if !actor.Authenticated {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			return next(c)
		}
	}
}
