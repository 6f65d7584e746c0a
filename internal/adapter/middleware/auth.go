package middleware

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/amanik/pesabank/internal/core/security"
)

// UserIDKey is the locals key handlers read the authenticated user id from.
const UserIDKey = "user_id"

// Protected verifies the bearer token and stores the caller's user id in
// the request locals. Everything past this middleware can trust it.
func Protected(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 1. Get Token from Header
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid Header Format"})
		}

		// 2. Verify signature and expiry
		userID, err := security.VerifyToken(parts[1], jwtSecret)
		if err != nil {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		// 3. Save user ID to Context (so handlers know who is calling)
		c.Locals(UserIDKey, userID)

		return c.Next()
	}
}
