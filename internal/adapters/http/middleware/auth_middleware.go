package middleware

import (
	"strings"

	"kada-admin/internal/adapters/http/handlers"
	"kada-admin/internal/core/services"
	"kada-admin/internal/pkg/flash"
	"kada-admin/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// LoginPath is where unauthenticated admins are sent
const LoginPath = "/auth/login"

// AdminAuth requires a signed-in admin. The token comes from the access
// token cookie, falling back to an Authorization bearer header.
func AdminAuth(auth *services.AuthService, flashes *flash.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 1. Try to get token from cookie first
		accessToken := c.Cookies(handlers.AccessTokenCookie)

		// 2. If not in cookie, try Authorization header
		if accessToken == "" {
			authHeader := c.Get(fiber.HeaderAuthorization)
			if strings.HasPrefix(authHeader, "Bearer ") {
				accessToken = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		// 3. Validate token against a live admin account
		who, err := auth.Authenticate(c.UserContext(), accessToken, c.IP())
		if err != nil {
			_ = flashes.Error(c, handlers.MsgLoginRequired)
			return response.Redirect(c, LoginPath)
		}

		// 4. Set admin identity in context
		c.Locals(handlers.IdentityKey, who)
		return c.Next()
	}
}
