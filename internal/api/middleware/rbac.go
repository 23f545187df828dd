package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/carehub/patient-portal/internal/core/domain"
)

// RBAC lets the request through when the session holds at least one of
// allowedRoles, and fails with domain.ErrForbidden otherwise. It must run
// after Auth.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			roles, _ := c.Get("roles").([]string)
			for _, role := range roles {
				if _, ok := allowed[role]; ok {
					return next(c)
				}
			}
			return domain.ErrForbidden
		}
	}
}
