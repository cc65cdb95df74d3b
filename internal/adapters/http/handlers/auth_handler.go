package handlers

import (
	"errors"
	"time"

	"kada-admin/internal/config"
	"kada-admin/internal/core/domain"
	"kada-admin/internal/core/services"
	"kada-admin/internal/pkg/flash"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AccessTokenCookie is the cookie carrying the admin session token
const AccessTokenCookie = "access_token"

// Auth messages
const (
	MsgLoggedIn  = "Log masuk berjaya"
	MsgLoggedOut = "Anda telah log keluar"
)

// AuthHandler handles admin login and logout
type AuthHandler struct {
	base
	authService *services.AuthService
	cfg         *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, cfg *config.Config, flashes *flash.Store, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		base:        base{flash: flashes, log: log},
		authService: authService,
		cfg:         cfg,
	}
}

// LoginPage renders the login form
// @Summary Login form
// @Tags Auth
// @Produce json
// @Success 200 {object} response.ViewResponse
// @Router /auth/login [get]
func (h *AuthHandler) LoginPage(c *fiber.Ctx) error {
	return h.view(c, "auth/login", nil)
}

// Login handles admin login
// @Summary Login admin
// @Description Authenticate an admin and set the session cookie
// @Tags Auth
// @Accept x-www-form-urlencoded
// @Param username formData string true "Username"
// @Param password formData string true "Password"
// @Success 303 "Redirect to /admin, or back to /auth/login on failure"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input services.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return h.failWith(c, "/auth/login", MsgInvalidRequestBody)
	}

	result, err := h.authService.Login(c.UserContext(), &input)
	if err != nil {
		if !errors.Is(err, domain.ErrInvalidLogin) && !errors.Is(err, domain.ErrValidation) {
			h.log.Error("login failed", zap.Error(err))
		}
		return h.fail(c, "/auth/login", err)
	}

	h.setAuthCookie(c, result.AccessToken)
	return h.done(c, "/admin", MsgLoggedIn)
}

// Logout clears the session cookie
// @Summary Logout admin
// @Tags Auth
// @Success 303 "Redirect to /auth/login"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.clearAuthCookie(c)
	return h.done(c, "/auth/login", MsgLoggedOut)
}

// setAuthCookie sets the access token cookie
func (h *AuthHandler) setAuthCookie(c *fiber.Ctx, accessToken string) {
	c.Cookie(&fiber.Cookie{
		Name:     AccessTokenCookie,
		Value:    accessToken,
		Path:     "/",
		MaxAge:   h.cfg.JWT.AccessTokenMins * 60, // Convert minutes to seconds
		Secure:   h.cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: h.cfg.Cookie.SameSite,
		Domain:   h.cfg.Cookie.Domain,
	})
}

// clearAuthCookie expires the access token cookie
func (h *AuthHandler) clearAuthCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     AccessTokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Now().Add(-1 * time.Hour),
		Secure:   h.cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: h.cfg.Cookie.SameSite,
		Domain:   h.cfg.Cookie.Domain,
	})
}
