package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/afoninsb/api-yamdb/internal/core/domain"
)

// RBAC enforces role-based access control. Must run after Authenticate.
//
// Services re-check authorization against the domain rules; this middleware
// only gives the obvious denials a fast path before any service call.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, _ := c.Get(actorKey).(domain.Actor)
			if !actor.Authenticated {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			if _, ok := allowed[actor.Role]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
