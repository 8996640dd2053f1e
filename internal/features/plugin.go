// Package features holds the box-scoped feature plugins. Each plugin owns
// its models and routes; the core server only knows the Plugin contract.
package features

import (
	"github.com/boxtrackhq/boxtrack-backend/internal/config"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Plugin defines the interface every feature must implement.
type Plugin interface {
	// ID returns the unique feature identifier.
	ID() string

	// Models returns the list of GORM model pointers for AutoMigrate.
	Models() []interface{}

	// RegisterRoutes mounts feature routes on the given Fiber group. The
	// group is prefixed with /api/boxes/:box_id and already carries JWT
	// and box-membership middleware; routes needing a coach or admin role
	// add boxscope.RoleOnly themselves.
	RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config)
}
