package routes

import (
	"time"

	"kada-admin/internal/adapters/http/handlers"
	"kada-admin/internal/adapters/http/middleware"
	"kada-admin/internal/adapters/persistence/repositories"
	"kada-admin/internal/adapters/storage"
	"kada-admin/internal/config"
	"kada-admin/internal/core/services"
	"kada-admin/internal/pkg/flash"
	"kada-admin/internal/pkg/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Deps are the process-wide resources the routes are built from
type Deps struct {
	DB       *gorm.DB
	Config   *config.Config
	Files    storage.FileStore
	Sessions *session.Store
	Log      *zap.Logger
}

// Services exposes the services main needs beyond the HTTP layer
type Services struct {
	Reports *services.ReportService
}

// Setup configures all routes for the application
func Setup(app *fiber.App, d Deps) *Services {
	cfg := d.Config

	// Initialize repositories
	memberRepo := repositories.NewMemberRepository(d.DB)
	adminRepo := repositories.NewAdminRepository(d.DB)
	directorRepo := repositories.NewDirectorRepository(d.DB)
	reportRepo := repositories.NewReportRepository(d.DB)
	rateRepo := repositories.NewInterestRateRepository(d.DB)
	resignationRepo := repositories.NewResignationRepository(d.DB)
	financeRepo := repositories.NewFinanceRepository(d.DB)
	txManager := repositories.NewTxManager(d.DB, config.TxOptions(cfg.Database))

	// Initialize services
	authService := services.NewAuthService(adminRepo, cfg, d.Log)
	adminService := services.NewAdminService(adminRepo, d.Log)
	directorService := services.NewDirectorService(directorRepo, d.Log)
	rateService := services.NewInterestRateService(rateRepo, d.Log)
	lifecycleService := services.NewLifecycleService(txManager, repositories.NewRepos(d.DB), d.Log)
	reportService := services.NewReportService(reportRepo, d.Files, cfg.Upload.MaxBytes, d.Log)
	exportService := services.NewExportService(memberRepo, d.Log)
	dashboardService := services.NewDashboardService(services.DashboardRepos{
		Members:      memberRepo,
		Reports:      reportRepo,
		Rates:        rateRepo,
		Resignations: resignationRepo,
		Directors:    directorRepo,
		Admins:       adminRepo,
		Finance:      financeRepo,
	})

	// Initialize handlers
	flashes := flash.NewStore(d.Sessions)
	healthHandler := handlers.NewHealthHandler(d.DB, cfg.AppMode)
	authHandler := handlers.NewAuthHandler(authService, cfg, flashes, d.Log)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, flashes, d.Log)
	memberHandler := handlers.NewMemberHandler(lifecycleService, flashes, d.Log)
	reportHandler := handlers.NewReportHandler(reportService, flashes, d.Log)
	exportHandler := handlers.NewExportHandler(exportService, flashes, d.Log)
	adminHandler := handlers.NewAdminHandler(adminService, flashes, d.Log)
	settingsHandler := handlers.NewSettingsHandler(rateService, directorService, flashes, d.Log)

	// ============================================================
	// Public Routes
	// ============================================================
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))
	app.Get("/swagger/*", middleware.PublicCache(time.Hour), swagger.HandlerDefault)

	authRoutes := app.Group("/auth")
	authRoutes.Get("/login", authHandler.LoginPage)
	authRoutes.Post("/login", middleware.LoginThrottle(flashes), authHandler.Login)
	authRoutes.Post("/logout", authHandler.Logout)

	// ============================================================
	// Admin Routes (signed-in admins only)
	// ============================================================
	admin := app.Group("/admin", middleware.NoStore(), middleware.AdminAuth(authService, flashes))

	// Dashboards
	admin.Get("/", dashboardHandler.Index)
	admin.Get("/member_list", dashboardHandler.MemberList)
	admin.Get("/director-dashboard", dashboardHandler.DirectorDashboard)

	// Member lifecycle
	admin.Post("/members/status", memberHandler.UpdateStatus)
	admin.Get("/members/:id", dashboardHandler.MemberDetail)
	admin.Get("/members/:id/history", memberHandler.History)
	admin.Post("/members/:id/approve", memberHandler.Approve)
	admin.Post("/members/:id/reject", memberHandler.Reject)
	admin.Post("/members/:id/resignation", memberHandler.RequestResignation)
	admin.Get("/resignations", memberHandler.Resignations)
	admin.Post("/resignations/approve", memberHandler.ApproveResignation)

	// Exports
	admin.Get("/export/pdf", exportHandler.PDF)
	admin.Get("/export/excel", exportHandler.Excel)

	// Annual reports
	admin.Get("/annual-reports", reportHandler.List)
	admin.Post("/annual-reports", reportHandler.Upload)
	admin.Get("/annual-reports/:id/download", reportHandler.Download)
	admin.Post("/annual-reports/:id/delete", reportHandler.Delete)

	// Settings
	admin.Post("/interest-rates", settingsHandler.UpdateRates)
	admin.Get("/edit-director/:id", settingsHandler.EditDirectorPage)
	admin.Post("/directors/:id", settingsHandler.UpdateDirector)

	// Admin accounts
	admin.Get("/add-admin", adminHandler.AddAdminPage)
	admin.Post("/admins", adminHandler.Create)
	admin.Get("/edit-admin/:id", adminHandler.EditAdminPage)
	admin.Post("/admins/:id", adminHandler.Update)
	admin.Post("/admins/:id/delete", adminHandler.Delete)
	admin.Get("/edit-profile", adminHandler.ProfilePage)
	admin.Post("/edit-profile", adminHandler.UpdateProfile)

	return &Services{Reports: reportService}
}
