package api

import (
	"strings"

	"github.com/SahilGarg15/TaskFlow/modules/auth"
	"github.com/gofiber/fiber/v2"
)

const (
	// UserContextKey is the key used to store user claims in the Fiber context.
	UserContextKey = "user"
)

// AuthMiddleware creates a middleware that validates JWT tokens.
func AuthMiddleware(authAdapter auth.AuthPort) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return respondError(c, fiber.StatusUnauthorized, "Authorization header is required")
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			return respondError(c, fiber.StatusUnauthorized, "Invalid authorization header format. Use: Bearer <token>")
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == "" {
			return respondError(c, fiber.StatusUnauthorized, "Token is required")
		}

		claims, err := authAdapter.ValidateToken(c.UserContext(), token)
		if err != nil {
			return respondError(c, fiber.StatusUnauthorized, "Invalid or expired token")
		}

		c.Locals(UserContextKey, claims)

		return c.Next()
	}
}
