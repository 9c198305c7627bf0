package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/homeservices/booking-app/internal/core/domain"
)

// RBAC lets through requests whose resolved role is allowed. Anonymous
// requests fail with domain.ErrUnauthenticated so the error handler can
// point the view at the login screen.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(CtxRole).(string)
			if role == "" {
				return domain.ErrUnauthenticated
			}
			if _, ok := allowed[role]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
