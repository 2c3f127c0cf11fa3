package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/afoninsb/api-yamdb/internal/core/domain"
)

// ctxActor extracts the actor injected by the Authenticate middleware.
// When the middleware did not run (public routes in tests) the zero actor
// is returned, which the domain rules treat as anonymous.
func ctxActor(c echo.Context) domain.Actor {
	actor, _ := c.Get("actor").(domain.Actor)
	return actor
}

// pageParams reads ?page= and ?limit= with sane fallbacks. Out-of-range
// values are clamped by the repositories, not here.
func pageParams(c echo.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	return page, limit
}
