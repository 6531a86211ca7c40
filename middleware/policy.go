package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireRole is middleware that requires one of the given roles. It must run
// after RequireAuth.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return RequireRoleWithMessage("Insufficient permissions", roles...)
}

// RequireRoleWithMessage is RequireRole with the 403 message the route
// reports to callers outside roles
func RequireRoleWithMessage(message string, roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := GetCurrentUser(c)
			if user == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
			}

			for _, role := range roles {
				if user.Role == role {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, message)
		}
	}
}
