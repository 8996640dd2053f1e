package boxscope

import (
	"errors"
	"time"

	"github.com/boxtrackhq/boxtrack-backend/internal/config"
	"github.com/boxtrackhq/boxtrack-backend/internal/dto"
	"github.com/boxtrackhq/boxtrack-backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// RequireRole guards a box-scoped route: the caller must hold one of the
// given roles in the :box_id box. The super administrator bypasses the
// membership check entirely. The resolved role lands in locals under
// "box_role".
func RequireRole(db *gorm.DB, cfg *config.Config, roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, err := GetUserID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		boxID, err := GetBoxID(c)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid box id",
			})
		}

		if cfg.SuperAdminUID != "" && uid == cfg.SuperAdminUID {
			c.Locals("box_role", models.RoleAdmin)
			return c.Next()
		}

		var m models.Membership
		err = db.First(&m, "id = ?", models.MembershipID(uid, boxID)).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Not a member of this box",
			})
		}
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Internal server error",
			})
		}
		if m.ExpiresAt != nil && time.Now().After(*m.ExpiresAt) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Membership has expired",
			})
		}

		if len(roles) > 0 && !containsRole(roles, m.Role) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Insufficient box role",
			})
		}

		c.Locals("box_role", m.Role)
		return c.Next()
	}
}

// RoleOnly tightens a route inside a group already guarded by RequireRole.
// It only inspects the resolved "box_role" local, so it never hits the
// database again.
func RoleOnly(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !containsRole(roles, GetRole(c)) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Insufficient box role",
			})
		}
		return c.Next()
	}
}

func containsRole(roles []string, role string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
