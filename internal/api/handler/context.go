package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/devlance/marketplace-api/internal/api/middleware"
	"github.com/devlance/marketplace-api/internal/core/domain"
)

// ctxPrincipal extracts the principal injected by the Auth middleware. Its
// presence proves the middleware ran; a missing principal means the route was
// wired without auth and must not proceed.
func ctxPrincipal(c echo.Context) (domain.Principal, error) {
	principal, ok := c.Get(middleware.ContextPrincipal).(domain.Principal)
	if !ok {
		return domain.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return principal, nil
}

// atoiParam parses an optional numeric query parameter; empty means zero.
func atoiParam(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}
