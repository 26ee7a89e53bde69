package middleware

import (
	"strings"

	"github.com/Olumuyiwaray/blog-api/internal/utils"
	"github.com/gofiber/fiber/v2"
)

// JWTAuth verifies the bearer token and stores the caller identity in
// the request locals for handlers and the ownership guard.
func JWTAuth(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		auth := c.Get("Authorization")
		if auth == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"isSuccess": false,
				"message":   "missing authorization",
			})
		}
		parts := strings.SplitN(auth, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"isSuccess": false,
				"message":   "invalid authorization",
			})
		}
		claims, err := utils.ParseJWT(parts[1], secret)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"isSuccess": false,
				"message":   "invalid token",
			})
		}
		c.Locals("userID", claims.UserID)
		c.Locals("username", claims.Username)
		return c.Next()
	}
}
