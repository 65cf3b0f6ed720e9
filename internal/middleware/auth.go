package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/example/pinkbears/internal/apperrors"
	"github.com/example/pinkbears/internal/config"
	"github.com/example/pinkbears/internal/utils"
)

const adminContextKey = "currentAdmin"

// AdminAuth validates bearer JWT tokens and loads the admin claims into context.
func AdminAuth(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return apperrors.Authf("missing authorization header")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return apperrors.Authf("invalid authorization header")
		}

		claims, err := utils.ParseToken(cfg.JWTSecret, parts[1])
		if err != nil {
			return apperrors.Authf("invalid token")
		}

		c.Locals(adminContextKey, claims)
		return c.Next()
	}
}

// GetCurrentAdmin extracts the authenticated admin claims from context.
func GetCurrentAdmin(c *fiber.Ctx) (*utils.AdminClaims, bool) {
	claims, ok := c.Locals(adminContextKey).(*utils.AdminClaims)
	return claims, ok
}
