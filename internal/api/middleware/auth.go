package middleware

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/homeservices/booking-app/internal/core/domain"
)

// Roles resolved from the stored session markers.
const (
	RoleCustomer = "customer"
	RoleEmployee = "employee"
)

// Context keys set by Identify.
const (
	CtxUsername = "username"
	CtxRole     = "role"
)

// SessionChecker reports the session stored on this device.
type SessionChecker interface {
	CheckSession(ctx context.Context) domain.Session
}

// Source pairs a role with the checker that recognises it.
type Source struct {
	Role    string
	Checker SessionChecker
}

// Identify resolves who is logged in and injects username and role into the
// context. The first authenticated source wins; anonymous requests pass
// through without a role.
func Identify(sources ...Source) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			for _, src := range sources {
				sess := src.Checker.CheckSession(ctx)
				if !sess.Authenticated {
					continue
				}
				c.Set(CtxUsername, sess.Username)
				c.Set(CtxRole, src.Role)
				break
			}
			return next(c)
		}
	}
}
