package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/victortedesco/inventory-management/internal/helper"
)

// AuthMiddleware stores the token subject as "userID". With auth disabled
// requests pass through and act as the anonymous user.
func AuthMiddleware(auth helper.Auth) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if !auth.Enabled() {
			return ctx.Next()
		}

		// 1) try cookie first
		tokenStr := strings.TrimSpace(ctx.Cookies("access_token"))

		// 2) fallback to Authorization header
		if tokenStr == "" {
			tokenStr = strings.TrimSpace(ctx.Get("Authorization"))
		}

		user, err := auth.VerifyToken(tokenStr)
		if err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		ctx.Locals("userID", user.UserID)
		ctx.Locals("user", user)
		return ctx.Next()
	}
}
