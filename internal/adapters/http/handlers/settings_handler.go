package handlers

import (
	"fmt"

	"kada-admin/internal/core/services"
	"kada-admin/internal/pkg/flash"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Settings messages
const (
	MsgRatesUpdated    = "Kadar faedah telah berjaya dikemaskini"
	MsgDirectorUpdated = "Maklumat pengarah telah berjaya dikemaskini"
)

// SettingsHandler handles interest rates and director profiles
type SettingsHandler struct {
	base
	rateService     *services.InterestRateService
	directorService *services.DirectorService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(
	rateService *services.InterestRateService,
	directorService *services.DirectorService,
	flashes *flash.Store,
	log *zap.Logger,
) *SettingsHandler {
	return &SettingsHandler{
		base:            base{flash: flashes, log: log},
		rateService:     rateService,
		directorService: directorService,
	}
}

// UpdateRates replaces the savings and loan rates
// @Summary Update interest rates
// @Tags Settings
// @Accept x-www-form-urlencoded
// @Param savings_rate formData number true "Savings rate (%)"
// @Param loan_rate formData number true "Loan rate (%)"
// @Success 303 "Redirect to /admin"
// @Router /admin/interest-rates [post]
func (h *SettingsHandler) UpdateRates(c *fiber.Ctx) error {
	var input services.RateInput
	if err := c.BodyParser(&input); err != nil {
		return h.failWith(c, "/admin", MsgInvalidRequestBody)
	}

	if _, err := h.rateService.Update(c.UserContext(), &input, identity(c)); err != nil {
		return h.fail(c, "/admin", err)
	}
	return h.done(c, "/admin", MsgRatesUpdated)
}

// EditDirectorPage renders the edit-director form
// @Summary Edit director form
// @Tags Settings
// @Produce json
// @Param id path int true "Director ID"
// @Success 200 {object} response.ViewResponse
// @Router /admin/edit-director/{id} [get]
func (h *SettingsHandler) EditDirectorPage(c *fiber.Ctx) error {
	id, ok := parseID(c.Params("id"))
	if !ok {
		return h.failWith(c, "/admin", MsgInvalidID)
	}

	d, err := h.directorService.Get(c.UserContext(), id)
	if err != nil {
		return h.fail(c, "/admin", err)
	}
	return h.view(c, "admin/edit_director", fiber.Map{"director": d})
}

// UpdateDirector edits a director's profile
// @Summary Update director
// @Tags Settings
// @Accept x-www-form-urlencoded
// @Param id path int true "Director ID"
// @Param name formData string true "Name"
// @Param position formData string true "Position"
// @Param email formData string false "Email"
// @Param phone formData string false "Phone"
// @Success 303 "Redirect to /admin, or back to the form on error"
// @Router /admin/directors/{id} [post]
func (h *SettingsHandler) UpdateDirector(c *fiber.Ctx) error {
	id, ok := parseID(c.Params("id"))
	if !ok {
		return h.failWith(c, "/admin", MsgInvalidID)
	}
	back := fmt.Sprintf("/admin/edit-director/%d", id)

	var input services.DirectorInput
	if err := c.BodyParser(&input); err != nil {
		return h.failWith(c, back, MsgInvalidRequestBody)
	}

	if _, err := h.directorService.Update(c.UserContext(), id, &input); err != nil {
		return h.fail(c, back, err)
	}
	return h.done(c, "/admin", MsgDirectorUpdated)
}
