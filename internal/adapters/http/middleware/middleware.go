package middleware

import (
	"errors"
	"time"

	"kada-admin/internal/config"
	"kada-admin/internal/pkg/flash"
	"kada-admin/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

const (
	// MsgTooManyRequests answers any client over the global request budget
	MsgTooManyRequests = "Terlalu banyak permintaan. Sila tunggu sebentar"
	// MsgTooManyLogins is flashed on the login form once attempts run out
	MsgTooManyLogins = "Terlalu banyak cubaan log masuk. Sila tunggu 1 minit"

	requestsPerMinute = 100
	loginsPerMinute   = 5
)

// Setup installs the middleware every request passes through, outermost
// first.
func Setup(app *fiber.App, cfg *config.Config) {
	app.Use(recover.New())

	// Report downloads are already compressed, so keep the cheapest level
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	// The back office is never framed by another site
	app.Use(helmet.New(helmet.Config{
		XSSProtection:             "1; mode=block",
		ContentTypeNosniff:        "nosniff",
		XFrameOptions:             "SAMEORIGIN",
		ReferrerPolicy:            "strict-origin-when-cross-origin",
		CrossOriginOpenerPolicy:   "same-origin",
		CrossOriginResourcePolicy: "same-origin",
		PermissionPolicy:          "geolocation=(), microphone=(), camera=()",
	}))

	app.Use(limiter.New(limiter.Config{
		Max:          requestsPerMinute,
		Expiration:   time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string { return c.IP() },
		LimitReached: func(c *fiber.Ctx) error {
			return response.Error(c, fiber.StatusTooManyRequests, MsgTooManyRequests)
		},
	}))

	app.Use(logger.New(accessLog(cfg)))
	app.Use(cors.New(corsPolicy(cfg)))
}

func accessLog(cfg *config.Config) logger.Config {
	if cfg.IsDev() {
		return logger.Config{
			Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
		}
	}
	return logger.Config{
		Format:     "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${error}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}
}

// corsPolicy only lets credentials through for named origins. Browsers
// refuse credentials alongside a wildcard origin.
func corsPolicy(cfg *config.Config) cors.Config {
	origins := cfg.GetAllowedOrigins()
	return cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization",
		AllowCredentials: origins != "*",
	}
}

// LoginThrottle caps login attempts per IP. A throttled admin is sent back
// to the login form with a flash instead of a bare 429.
func LoginThrottle(flashes *flash.Store) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:          loginsPerMinute,
		Expiration:   time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string { return c.IP() + "|login" },
		LimitReached: func(c *fiber.Ctx) error {
			_ = flashes.Error(c, MsgTooManyLogins)
			return response.Redirect(c, LoginPath)
		},
	})
}

// CustomErrorHandler answers errors no handler turned into a response.
// Fiber errors keep their status. Anything else is a 500 whose text stays
// out of the body.
func CustomErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return response.Error(c, fe.Code, fe.Message)
	}
	return response.InternalServerError(c, fiber.ErrInternalServerError.Message)
}
