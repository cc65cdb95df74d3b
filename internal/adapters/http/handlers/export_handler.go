package handlers

import (
	"fmt"

	"kada-admin/internal/core/services"
	"kada-admin/internal/pkg/flash"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ExportHandler serves member list downloads
type ExportHandler struct {
	base
	exportService *services.ExportService
}

// NewExportHandler creates a new export handler
func NewExportHandler(exportService *services.ExportService, flashes *flash.Store, log *zap.Logger) *ExportHandler {
	return &ExportHandler{
		base:          base{flash: flashes, log: log},
		exportService: exportService,
	}
}

// PDF downloads the member list as PDF
// @Summary Export members (PDF)
// @Tags Export
// @Produce application/pdf
// @Success 200 {file} binary
// @Router /admin/export/pdf [get]
func (h *ExportHandler) PDF(c *fiber.Ctx) error {
	return h.send(c, services.ExportPDF)
}

// Excel downloads the member list as XLSX
// @Summary Export members (Excel)
// @Tags Export
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary
// @Router /admin/export/excel [get]
func (h *ExportHandler) Excel(c *fiber.Ctx) error {
	return h.send(c, services.ExportXLSX)
}

func (h *ExportHandler) send(c *fiber.Ctx, format services.ExportFormat) error {
	file, err := h.exportService.Members(c.UserContext(), format)
	if err != nil {
		return h.failWith(c, "/admin/member_list", MsgSystemError)
	}

	c.Set(fiber.HeaderContentType, file.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, file.Filename))
	return c.Send(file.Data)
}
