package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/moraleja/portfolio/internal/application"
)

const adminUserKey = "admin_user"

// RequireAdmin rejects requests without a valid bearer session.
func RequireAdmin(auth *application.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.Authenticate(bearerToken(c))
		if err != nil {
			return respondError(c, err)
		}
		c.Locals(adminUserKey, user)
		return c.Next()
	}
}

func bearerToken(c *fiber.Ctx) string {
	h := c.Get(fiber.HeaderAuthorization)
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// clientKey identifies the caller for rate limiting.
func clientKey(c *fiber.Ctx) string {
	return c.IP()
}
