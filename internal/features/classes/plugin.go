package classes

import (
	"github.com/boxtrackhq/boxtrack-backend/internal/boxscope"
	"github.com/boxtrackhq/boxtrack-backend/internal/config"
	"github.com/boxtrackhq/boxtrack-backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type Plugin struct{}

func New() *Plugin { return &Plugin{} }

func (p *Plugin) ID() string { return "classes" }

func (p *Plugin) Models() []interface{} {
	return []interface{}{
		&ClassPlan{},
	}
}

func (p *Plugin) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	handler := NewClassHandler(NewClassService(db))
	staff := boxscope.RoleOnly(models.RoleAdmin, models.RoleCoach)

	router.Get("/classes", handler.List)
	router.Get("/classes/:class_id", handler.Get)
	router.Post("/classes", staff, handler.Create)
	router.Put("/classes/:class_id", staff, handler.Update)
	router.Delete("/classes/:class_id", staff, handler.Delete)
}
