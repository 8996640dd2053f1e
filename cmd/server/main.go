package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/joho/godotenv"

	"github.com/boxtrackhq/boxtrack-backend/internal/config"
	"github.com/boxtrackhq/boxtrack-backend/internal/database"
	"github.com/boxtrackhq/boxtrack-backend/internal/features"
	"github.com/boxtrackhq/boxtrack-backend/internal/features/checkins"
	"github.com/boxtrackhq/boxtrack-backend/internal/features/classes"
	"github.com/boxtrackhq/boxtrack-backend/internal/features/movements"
	"github.com/boxtrackhq/boxtrack-backend/internal/features/scores"
	"github.com/boxtrackhq/boxtrack-backend/internal/features/whiteboard"
	"github.com/boxtrackhq/boxtrack-backend/internal/handlers"
	"github.com/boxtrackhq/boxtrack-backend/internal/identity"
	"github.com/boxtrackhq/boxtrack-backend/internal/logging"
	"github.com/boxtrackhq/boxtrack-backend/internal/mailer"
	"github.com/boxtrackhq/boxtrack-backend/internal/middleware"
	"github.com/boxtrackhq/boxtrack-backend/internal/routes"
	"github.com/boxtrackhq/boxtrack-backend/internal/services"
	"github.com/boxtrackhq/boxtrack-backend/internal/session"
	"github.com/boxtrackhq/boxtrack-backend/internal/store"
	"github.com/boxtrackhq/boxtrack-backend/internal/watch"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	_ = godotenv.Load()

	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	// Migrate shared models
	if err := database.MigrateShared(); err != nil {
		slog.Error("shared migration failed", "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(database.DB)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		pgLogHandler,
	)))

	// Log cleanup (30-day retention)
	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cleanupDone)

	// Live membership feed + stores
	hub := watch.NewHub()
	stores := store.New(database.DB, hub)

	// Identity provider
	provider := identity.NewHostedProvider(cfg)

	// Session bootstrap
	manager := session.NewManager(session.ManagerOptions{
		Provider:      provider,
		Stats:         stores.Stats,
		Boxes:         stores.Boxes,
		Members:       stores.Memberships,
		Invitations:   stores.Invitations,
		Feed:          hub,
		SuperAdminUID: cfg.SuperAdminUID,
		SlowAfter:     cfg.BootstrapSlowAfter,
	})

	// Invitation mail queue (optional, needs Redis + SMTP)
	var mailEnqueuer *mailer.Enqueuer
	var mailWorker *mailer.Worker
	if cfg.SMTPHost != "" {
		var err error
		mailEnqueuer, err = mailer.NewEnqueuer(cfg.RedisURL)
		if err != nil {
			slog.Error("failed to create mail enqueuer", "error", err)
			os.Exit(1)
		}

		sender := mailer.NewSMTPSender(mailer.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
			FromName: cfg.SMTPFromName,
		})
		mailWorker, err = mailer.NewWorker(cfg.RedisURL, sender, cfg.AppBaseURL)
		if err != nil {
			slog.Error("failed to create mail worker", "error", err)
			os.Exit(1)
		}
		if err := mailWorker.Start(); err != nil {
			slog.Error("failed to start mail worker", "error", err)
			os.Exit(1)
		}
		slog.Info("invitation mail worker started")
	} else {
		slog.Warn("SMTP not configured, invitation mail disabled")
	}

	// Services
	authService := services.NewAuthService(database.DB, cfg, provider, stores.Memberships)
	invitationService := services.NewInvitationService(database.DB, cfg, mailEnqueuer)
	boxService := services.NewBoxService(database.DB)
	membershipService := services.NewMembershipService(database.DB, stores.Memberships)

	// Feature plugins
	plugins := []features.Plugin{
		movements.New(),
		classes.New(),
		scores.New(),
		checkins.New(),
		whiteboard.New(),
	}

	// Migrate plugin models
	for _, p := range plugins {
		if models := p.Models(); len(models) > 0 {
			if err := database.MigrateModels(models); err != nil {
				slog.Error("plugin migration failed", "plugin", p.ID(), "error", err)
				os.Exit(1)
			}
			slog.Info("plugin migrated", "plugin", p.ID(), "models", len(models))
		}
	}

	// Handlers
	sessionHandler := handlers.NewSessionHandler(manager, authService, provider)
	healthHandler := handlers.NewHealthHandler(database.DB)
	boxHandler := handlers.NewBoxHandler(boxService, stores.Boxes)
	invitationHandler := handlers.NewInvitationHandler(invitationService, manager.Invitations(), stores.Boxes)
	membershipHandler := handlers.NewMembershipHandler(membershipService)
	statsHandler := handlers.NewStatsHandler(stores.Stats)

	// Sentry error tracking
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      os.Getenv("APP_ENV"),
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    12 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})

	// Routes
	routes.Setup(app, cfg, database.DB, sessionHandler, healthHandler, boxHandler, invitationHandler, membershipHandler, statsHandler, plugins)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	if mailWorker != nil {
		mailWorker.Shutdown()
	}
	if mailEnqueuer != nil {
		mailEnqueuer.Close()
	}

	close(cleanupDone)
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	// Close database connections
	if sqlDB, err := database.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
