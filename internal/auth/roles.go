package auth

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/callback-service/internal/domain"
)

// RequireAgent ensures a logged-in agent is calling.
func RequireAgent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.SubjectType != domain.SubjectTypeAgent || principal.Agent == nil {
			return fiber.NewError(http.StatusForbidden, "agent login required")
		}
		return c.Next()
	}
}

// RequireAdmin ensures the caller unlocked the admin console.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.SubjectType != domain.SubjectTypeAdmin {
			return fiber.NewError(http.StatusForbidden, "admin access required")
		}
		return c.Next()
	}
}
