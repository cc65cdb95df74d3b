package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"kada-admin/internal/adapters/http/middleware"
	"kada-admin/internal/adapters/http/routes"
	"kada-admin/internal/adapters/persistence/models"
	"kada-admin/internal/adapters/storage"
	"kada-admin/internal/config"
	"kada-admin/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"go.uber.org/zap"

	_ "kada-admin/docs" // Swagger docs
)

// @title KADA Admin API
// @version 1.0
// @description Back office koperasi KADA: kitaran ahli, laporan tahunan dan pentadbiran

// @contact.name KADA Support
// @contact.email support@kada.gov.my

// @BasePath /

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name access_token

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	logger, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Without an admin nobody can log in, so a failed seed is fatal
	if err := config.NewSeeder(db, cfg.Seed).Run(); err != nil {
		log.Fatalf("❌ Failed to seed database: %v", err)
	}

	files, err := storage.New(context.Background(), cfg.Storage)
	if err != nil {
		log.Fatalf("❌ Failed to open report storage: %v", err)
	}
	log.Printf("✅ Report storage ready [DRIVER: %s]", cfg.Storage.Driver)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "KADA Admin v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
		BodyLimit:    cfg.BodyLimit(),
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	sessions := session.New(session.Config{
		Expiration:     cfg.Session.Expiration,
		KeyLookup:      "cookie:" + cfg.Session.CookieName,
		CookieSecure:   cfg.Cookie.Secure,
		CookieHTTPOnly: true,
		CookieSameSite: cfg.Cookie.SameSite,
	})

	svc := routes.Setup(app, routes.Deps{
		DB:       db,
		Config:   cfg,
		Files:    files,
		Sessions: sessions,
		Log:      logger,
	})

	// Sweep report files left behind by failed uploads or deletes
	cronService := services.NewCronService(svc.Reports, cfg.Cron, logger)
	if err := cronService.Start(); err != nil {
		logger.Fatal("failed to start cron", zap.Error(err))
	}
	defer cronService.Stop()

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
