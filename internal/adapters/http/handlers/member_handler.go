package handlers

import (
	"kada-admin/internal/core/services"
	"kada-admin/internal/pkg/flash"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// MemberHandler handles member lifecycle actions
type MemberHandler struct {
	base
	lifecycle *services.LifecycleService
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(lifecycle *services.LifecycleService, flashes *flash.Store, log *zap.Logger) *MemberHandler {
	return &MemberHandler{
		base:      base{flash: flashes, log: log},
		lifecycle: lifecycle,
	}
}

// Approve handles member approval
// @Summary Approve member
// @Description Activate a pending member or migrate a rejected one back to the active list
// @Tags Members
// @Param id path int true "Member ID"
// @Success 303 "Redirect to /admin/member_list"
// @Router /admin/members/{id}/approve [post]
func (h *MemberHandler) Approve(c *fiber.Ctx) error {
	id, ok := parseID(c.Params("id"))
	if !ok {
		return h.failWith(c, "/admin/member_list", MsgInvalidID)
	}

	res, err := h.lifecycle.Approve(c.UserContext(), id, identity(c))
	if err != nil {
		return h.fail(c, "/admin/member_list", err)
	}
	return h.done(c, "/admin/member_list", res.Message)
}

// Reject handles member rejection
// @Summary Reject member
// @Description Reject a pending application
// @Tags Members
// @Param id path int true "Member ID"
// @Success 303 "Redirect to /admin"
// @Router /admin/members/{id}/reject [post]
func (h *MemberHandler) Reject(c *fiber.Ctx) error {
	id, ok := parseID(c.Params("id"))
	if !ok {
		return h.failWith(c, "/admin", MsgInvalidID)
	}

	res, err := h.lifecycle.Reject(c.UserContext(), id, identity(c))
	if err != nil {
		return h.fail(c, "/admin", err)
	}
	return h.done(c, "/admin", res.Message)
}

// UpdateStatus handles a generic status change
// @Summary Update member status
// @Description Set a member's status by name (Pending, Active, Rejected, Resigned or Lulus)
// @Tags Members
// @Accept x-www-form-urlencoded
// @Param id formData int true "Member ID"
// @Param status formData string true "New status"
// @Success 303 "Redirect to /admin"
// @Router /admin/members/status [post]
func (h *MemberHandler) UpdateStatus(c *fiber.Ctx) error {
	id, ok := parseID(c.FormValue("id"))
	if !ok {
		return h.failWith(c, "/admin", MsgInvalidID)
	}

	res, err := h.lifecycle.UpdateStatus(c.UserContext(), id, c.FormValue("status"), identity(c))
	if err != nil {
		return h.fail(c, "/admin", err)
	}
	return h.done(c, "/admin", res.Message)
}

// RequestResignation records a resignation request
// @Summary Request resignation
// @Description Record a resignation request for an active member
// @Tags Resignations
// @Accept x-www-form-urlencoded
// @Param id path int true "Member ID"
// @Param reason formData string true "Reason"
// @Success 303 "Redirect to /admin/resignations"
// @Router /admin/members/{id}/resignation [post]
func (h *MemberHandler) RequestResignation(c *fiber.Ctx) error {
	id, ok := parseID(c.Params("id"))
	if !ok {
		return h.failWith(c, "/admin/resignations", MsgInvalidID)
	}

	res, err := h.lifecycle.RequestResignation(c.UserContext(), id, c.FormValue("reason"), identity(c))
	if err != nil {
		return h.fail(c, "/admin/resignations", err)
	}
	return h.done(c, "/admin/resignations", res.Message)
}

// ApproveResignation approves a pending resignation request
// @Summary Approve resignation
// @Description Resign a member who has a pending resignation request
// @Tags Resignations
// @Accept x-www-form-urlencoded
// @Param member_id formData int true "Member ID"
// @Success 303 "Redirect to /admin/resignations"
// @Router /admin/resignations/approve [post]
func (h *MemberHandler) ApproveResignation(c *fiber.Ctx) error {
	id, ok := parseID(c.FormValue("member_id"))
	if !ok {
		return h.failWith(c, "/admin/resignations", MsgInvalidID)
	}

	res, err := h.lifecycle.ApproveResignation(c.UserContext(), id, identity(c))
	if err != nil {
		return h.fail(c, "/admin/resignations", err)
	}
	return h.done(c, "/admin/resignations", res.Message)
}

// Resignations lists pending resignation requests
// @Summary Pending resignations
// @Tags Resignations
// @Produce json
// @Success 200 {object} response.ViewResponse
// @Router /admin/resignations [get]
func (h *MemberHandler) Resignations(c *fiber.Ctx) error {
	pending, err := h.lifecycle.PendingResignations(c.UserContext())
	if err != nil {
		h.log.Error("failed to list resignations", zap.Error(err))
		return h.fail(c, "/admin", err)
	}
	return h.view(c, "admin/resignations", fiber.Map{"requests": pending})
}

// History shows a member's status history
// @Summary Member status history
// @Tags Members
// @Produce json
// @Param id path int true "Member ID"
// @Success 200 {object} response.ViewResponse
// @Router /admin/members/{id}/history [get]
func (h *MemberHandler) History(c *fiber.Ctx) error {
	id, ok := parseID(c.Params("id"))
	if !ok {
		return h.failWith(c, "/admin/member_list", MsgInvalidID)
	}

	history, err := h.lifecycle.History(c.UserContext(), id)
	if err != nil {
		return h.fail(c, "/admin/member_list", err)
	}
	return h.view(c, "admin/member_history", fiber.Map{"member_id": id, "history": history})
}
