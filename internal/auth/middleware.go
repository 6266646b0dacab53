package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const identityKey = "identity"

// RequireAuth rejects requests without a valid Bearer token and stores the
// verified identity in the echo context.
func (v *Verifier) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if header == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
		}
		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "authorization header must be a Bearer token")
		}

		identity, err := v.Verify(tokenString)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
		}

		SetIdentity(c, identity)
		return next(c)
	}
}

// RequireAdmin must run after RequireAuth.
func (v *Verifier) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		identity := IdentityFrom(c)
		if identity == nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
		}
		if !identity.IsAdmin() {
			return echo.NewHTTPError(http.StatusForbidden, "admin access required")
		}
		return next(c)
	}
}

// SetIdentity stores the verified caller identity in the request context.
func SetIdentity(c echo.Context, identity *Identity) {
	c.Set(identityKey, identity)
}

// IdentityFrom returns the verified caller identity, or nil outside an
// authenticated route.
func IdentityFrom(c echo.Context) *Identity {
	identity, _ := c.Get(identityKey).(*Identity)
	return identity
}
