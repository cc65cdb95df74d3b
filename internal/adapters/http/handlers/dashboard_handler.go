package handlers

import (
	"errors"

	"kada-admin/internal/core/domain"
	"kada-admin/internal/core/services"
	"kada-admin/internal/pkg/flash"
	"kada-admin/internal/pkg/pagination"
	"kada-admin/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// DashboardHandler handles dashboard endpoints
type DashboardHandler struct {
	base
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService, flashes *flash.Store, log *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		base:             base{flash: flashes, log: log},
		dashboardService: dashboardService,
	}
}

// Index returns the admin dashboard
// @Summary Admin Dashboard
// @Description Members, reports, statistics, rates, resignations, directors and admins
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.ViewResponse
// @Failure 500 {object} response.Response
// @Router /admin [get]
func (h *DashboardHandler) Index(c *fiber.Ctx) error {
	data, err := h.dashboardService.GetAdminDashboard(c.UserContext(), identity(c))
	if err != nil {
		h.log.Error("failed to build admin dashboard", zap.Error(err))
		return response.InternalServerError(c, MsgSystemError)
	}
	return h.view(c, "admin/index", data)
}

// MemberList returns a page of members
// @Summary Member list
// @Tags Dashboard
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.ViewResponse
// @Router /admin/member_list [get]
func (h *DashboardHandler) MemberList(c *fiber.Ctx) error {
	data, err := h.dashboardService.GetMemberList(c.UserContext(), pagination.FromQuery(c))
	if err != nil {
		h.log.Error("failed to list members", zap.Error(err))
		return response.InternalServerError(c, MsgSystemError)
	}
	return h.view(c, "admin/member_list", data)
}

// MemberDetail returns one member with savings and loan totals
// @Summary Member detail
// @Tags Dashboard
// @Produce json
// @Param id path int true "Member ID"
// @Success 200 {object} response.ViewResponse
// @Router /admin/members/{id} [get]
func (h *DashboardHandler) MemberDetail(c *fiber.Ctx) error {
	id, ok := parseID(c.Params("id"))
	if !ok {
		return h.failWith(c, "/admin/member_list", MsgInvalidID)
	}

	data, err := h.dashboardService.GetMemberDetail(c.UserContext(), id)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			h.log.Error("failed to load member", zap.Uint("member_id", id), zap.Error(err))
		}
		return h.fail(c, "/admin/member_list", err)
	}
	return h.view(c, "admin/member_detail", data)
}

// DirectorDashboard returns society-wide metrics for a period
// @Summary Director dashboard
// @Tags Dashboard
// @Produce json
// @Param period query string false "today, week, month or year"
// @Success 200 {object} response.ViewResponse
// @Router /admin/director-dashboard [get]
func (h *DashboardHandler) DirectorDashboard(c *fiber.Ctx) error {
	period := domain.ParsePeriod(c.Query("period"))
	data, err := h.dashboardService.GetDirectorDashboard(c.UserContext(), period)
	if err != nil {
		h.log.Error("failed to build director dashboard", zap.String("period", string(period)), zap.Error(err))
		return response.InternalServerError(c, MsgSystemError)
	}
	return h.view(c, "admin/director_dashboard", data)
}
