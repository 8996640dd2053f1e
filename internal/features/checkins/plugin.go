package checkins

import (
	"github.com/boxtrackhq/boxtrack-backend/internal/boxscope"
	"github.com/boxtrackhq/boxtrack-backend/internal/config"
	"github.com/boxtrackhq/boxtrack-backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type Plugin struct{}

func New() *Plugin { return &Plugin{} }

func (p *Plugin) ID() string { return "checkins" }

func (p *Plugin) Models() []interface{} {
	return []interface{}{
		&CheckIn{},
	}
}

func (p *Plugin) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	handler := NewCheckInHandler(NewCheckInService(db))
	staff := boxscope.RoleOnly(models.RoleAdmin, models.RoleCoach)

	router.Post("/classes/:class_id/checkin", handler.CheckIn)
	router.Delete("/classes/:class_id/checkin", handler.Cancel)
	router.Get("/classes/:class_id/checkins", staff, handler.ListForClass)
}
