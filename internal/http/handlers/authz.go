package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	applog "greenbytes/internal/log"
	"greenbytes/internal/services"
	"greenbytes/pkg/apierror"
)

func bearerToken(c *fiber.Ctx) string {
	auth := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

// RequireRole gates a route on a valid bearer token whose role claim is
// in the allow-list. The resolved user lands in c.Locals("user").
func RequireRole(auth *services.AuthService, roles ...string) fiber.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return fail(c, apierror.Unauthorized("missing bearer token"))
		}
		u, err := auth.UserFromToken(token)
		if err != nil || u == nil {
			applog.Security(c, "access.denied.token", nil)
			return fail(c, apierror.Unauthorized("invalid or expired token"))
		}
		if !allowed[u.Role] {
			applog.Security(c, "access.denied.role", map[string]any{"role": u.Role})
			return fail(c, apierror.Forbidden(""))
		}
		c.Locals("user", u)
		return c.Next()
	}
}
