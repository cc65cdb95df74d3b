package handlers

import (
	"fmt"

	"kada-admin/internal/core/services"
	"kada-admin/internal/pkg/flash"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Admin account messages
const (
	MsgAdminCreated   = "Admin baharu telah berjaya ditambah"
	MsgAdminUpdated   = "Maklumat admin telah berjaya dikemaskini"
	MsgAdminDeleted   = "Admin telah berjaya dipadam"
	MsgProfileUpdated = "Profil telah berjaya dikemaskini"
)

// AdminHandler handles admin account endpoints
type AdminHandler struct {
	base
	adminService *services.AdminService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminService *services.AdminService, flashes *flash.Store, log *zap.Logger) *AdminHandler {
	return &AdminHandler{
		base:         base{flash: flashes, log: log},
		adminService: adminService,
	}
}

// AddAdminPage renders the add-admin form
// @Summary Add admin form
// @Tags Admins
// @Produce json
// @Success 200 {object} response.ViewResponse
// @Router /admin/add-admin [get]
func (h *AdminHandler) AddAdminPage(c *fiber.Ctx) error {
	return h.view(c, "admin/add_admin", nil)
}

// Create adds an admin account
// @Summary Create admin
// @Tags Admins
// @Accept x-www-form-urlencoded
// @Param username formData string true "Username"
// @Param email formData string true "Email"
// @Param password formData string true "Password"
// @Param confirm_password formData string true "Password again"
// @Success 303 "Redirect to /admin, or back to the form on error"
// @Router /admin/admins [post]
func (h *AdminHandler) Create(c *fiber.Ctx) error {
	var input services.CreateAdminInput
	if err := c.BodyParser(&input); err != nil {
		return h.failWith(c, "/admin/add-admin", MsgInvalidRequestBody)
	}

	if _, err := h.adminService.Create(c.UserContext(), &input); err != nil {
		return h.fail(c, "/admin/add-admin", err)
	}
	return h.done(c, "/admin", MsgAdminCreated)
}

// EditAdminPage renders the edit-admin form
// @Summary Edit admin form
// @Tags Admins
// @Produce json
// @Param id path int true "Admin ID"
// @Success 200 {object} response.ViewResponse
// @Router /admin/edit-admin/{id} [get]
func (h *AdminHandler) EditAdminPage(c *fiber.Ctx) error {
	id, ok := parseID(c.Params("id"))
	if !ok {
		return h.failWith(c, "/admin", MsgInvalidID)
	}

	admin, err := h.adminService.Get(c.UserContext(), id)
	if err != nil {
		return h.fail(c, "/admin", err)
	}
	return h.view(c, "admin/edit_admin", fiber.Map{"admin": admin.ToResponse()})
}

// Update edits an admin account
// @Summary Update admin
// @Tags Admins
// @Accept x-www-form-urlencoded
// @Param id path int true "Admin ID"
// @Param username formData string true "Username"
// @Param email formData string true "Email"
// @Param password formData string false "New password"
// @Param confirm_password formData string false "New password again"
// @Success 303 "Redirect to /admin, or back to the form on error"
// @Router /admin/admins/{id} [post]
func (h *AdminHandler) Update(c *fiber.Ctx) error {
	id, ok := parseID(c.Params("id"))
	if !ok {
		return h.failWith(c, "/admin", MsgInvalidID)
	}
	back := fmt.Sprintf("/admin/edit-admin/%d", id)

	var input services.UpdateAdminInput
	if err := c.BodyParser(&input); err != nil {
		return h.failWith(c, back, MsgInvalidRequestBody)
	}

	if _, err := h.adminService.Update(c.UserContext(), id, &input); err != nil {
		return h.fail(c, back, err)
	}
	return h.done(c, "/admin", MsgAdminUpdated)
}

// Delete removes an admin account
// @Summary Delete admin
// @Description The signed-in admin and the last admin cannot be deleted
// @Tags Admins
// @Param id path int true "Admin ID"
// @Success 303 "Redirect to /admin"
// @Router /admin/admins/{id}/delete [post]
func (h *AdminHandler) Delete(c *fiber.Ctx) error {
	id, ok := parseID(c.Params("id"))
	if !ok {
		return h.failWith(c, "/admin", MsgInvalidID)
	}

	if err := h.adminService.Delete(c.UserContext(), id, identity(c)); err != nil {
		return h.fail(c, "/admin", err)
	}
	return h.done(c, "/admin", MsgAdminDeleted)
}

// ProfilePage renders the signed-in admin's profile form
// @Summary Edit profile form
// @Tags Profile
// @Produce json
// @Success 200 {object} response.ViewResponse
// @Router /admin/edit-profile [get]
func (h *AdminHandler) ProfilePage(c *fiber.Ctx) error {
	admin, err := h.adminService.Get(c.UserContext(), identity(c).AdminID)
	if err != nil {
		return h.fail(c, "/admin", err)
	}
	return h.view(c, "admin/edit_profile", fiber.Map{"admin": admin.ToResponse()})
}

// UpdateProfile edits the signed-in admin's account
// @Summary Update profile
// @Tags Profile
// @Accept x-www-form-urlencoded
// @Param username formData string true "Username"
// @Param email formData string true "Email"
// @Param current_password formData string false "Current password, required to change it"
// @Param new_password formData string false "New password"
// @Param confirm_password formData string false "New password again"
// @Success 303 "Redirect to /admin/edit-profile"
// @Router /admin/edit-profile [post]
func (h *AdminHandler) UpdateProfile(c *fiber.Ctx) error {
	var input services.ProfileInput
	if err := c.BodyParser(&input); err != nil {
		return h.failWith(c, "/admin/edit-profile", MsgInvalidRequestBody)
	}

	if _, err := h.adminService.UpdateProfile(c.UserContext(), identity(c), &input); err != nil {
		return h.fail(c, "/admin/edit-profile", err)
	}
	return h.done(c, "/admin/edit-profile", MsgProfileUpdated)
}
