package middleware

import (
	"github.com/boxtrackhq/boxtrack-backend/internal/boxscope"
	"github.com/boxtrackhq/boxtrack-backend/internal/config"
	"github.com/boxtrackhq/boxtrack-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
)

// SuperAdminOnly restricts a route to the hard-coded super administrator.
// Box creation and deletion live behind this; per-box administration goes
// through boxscope.RequireRole instead.
func SuperAdminOnly(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, err := boxscope.GetUserID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}
		if cfg.SuperAdminUID == "" || uid != cfg.SuperAdminUID {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Super administrator access required",
			})
		}
		return c.Next()
	}
}
