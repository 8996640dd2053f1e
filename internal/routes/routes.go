package routes

import (
	"time"

	"github.com/boxtrackhq/boxtrack-backend/internal/boxscope"
	"github.com/boxtrackhq/boxtrack-backend/internal/config"
	"github.com/boxtrackhq/boxtrack-backend/internal/features"
	"github.com/boxtrackhq/boxtrack-backend/internal/handlers"
	"github.com/boxtrackhq/boxtrack-backend/internal/middleware"
	"github.com/boxtrackhq/boxtrack-backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	sessionHandler *handlers.SessionHandler,
	healthHandler *handlers.HealthHandler,
	boxHandler *handlers.BoxHandler,
	invitationHandler *handlers.InvitationHandler,
	membershipHandler *handlers.MembershipHandler,
	statsHandler *handlers.StatsHandler,
	plugins []features.Plugin,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	// Health
	api.Get("/health", healthHandler.Check)

	// Invite-link resolution (public, used by the sign-in page)
	api.Get("/invites/:token", invitationHandler.ResolveToken)

	// Auth is public, with a stricter rate limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/signin", sessionHandler.SignIn)
	auth.Post("/refresh", sessionHandler.Refresh)

	// Protected auth routes
	api.Post("/auth/logout", middleware.JWTProtected(cfg), sessionHandler.Logout)
	api.Delete("/auth/account", middleware.JWTProtected(cfg), sessionHandler.DeleteAccount)

	// Session surface (protected)
	api.Get("/session", middleware.JWTProtected(cfg), sessionHandler.GetSession)
	api.Put("/session/active-box", middleware.JWTProtected(cfg), sessionHandler.SetActiveBox)

	// Profile surface (protected)
	api.Get("/me/stats", middleware.JWTProtected(cfg), statsHandler.Get)
	api.Put("/me/stats", middleware.JWTProtected(cfg), statsHandler.Update)

	// Super-administrator box management
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.SuperAdminOnly(cfg))
	admin.Get("/boxes", boxHandler.List)
	admin.Get("/boxes/:box_id", boxHandler.Get)
	admin.Post("/boxes", boxHandler.Create)
	admin.Put("/boxes/:box_id", boxHandler.Update)
	admin.Delete("/boxes/:box_id", boxHandler.Delete)

	// Box-scoped surfaces: membership required, role checked per route.
	member := api.Group("/boxes/:box_id", middleware.JWTProtected(cfg), boxscope.RequireRole(db, cfg))
	boxAdmin := boxscope.RoleOnly(models.RoleAdmin)

	member.Get("/members", membershipHandler.List)
	member.Put("/members/:uid", boxAdmin, membershipHandler.UpdateRole)
	member.Delete("/members/:uid", boxAdmin, membershipHandler.Remove)

	member.Get("/invitations", boxAdmin, invitationHandler.List)
	member.Post("/invitations", boxAdmin, invitationHandler.Create)
	member.Delete("/invitations/:invitation_id", boxAdmin, invitationHandler.Revoke)

	// Feature plugin routes share the box-scoped group.
	for _, p := range plugins {
		p.RegisterRoutes(member, db, cfg)
	}
}
