package handlers

import (
	"fmt"

	"kada-admin/internal/core/services"
	"kada-admin/internal/pkg/flash"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ReportHandler handles annual report endpoints
type ReportHandler struct {
	base
	reportService *services.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *services.ReportService, flashes *flash.Store, log *zap.Logger) *ReportHandler {
	return &ReportHandler{
		base:          base{flash: flashes, log: log},
		reportService: reportService,
	}
}

// List returns every annual report
// @Summary List annual reports
// @Tags Annual Reports
// @Produce json
// @Success 200 {object} response.ViewResponse
// @Router /admin/annual-reports [get]
func (h *ReportHandler) List(c *fiber.Ctx) error {
	reports, err := h.reportService.List(c.UserContext())
	if err != nil {
		h.log.Error("failed to list reports", zap.Error(err))
		return h.fail(c, "/admin", err)
	}
	return h.view(c, "admin/annual_reports", fiber.Map{"reports": reports})
}

// Upload stores a new annual report
// @Summary Upload annual report
// @Description PDF only, size bounded
// @Tags Annual Reports
// @Accept multipart/form-data
// @Param year formData int true "Report year"
// @Param title formData string true "Report title"
// @Param report_file formData file true "PDF file"
// @Success 303 "Redirect to /admin"
// @Router /admin/annual-reports [post]
func (h *ReportHandler) Upload(c *fiber.Ctx) error {
	input := &services.UploadInput{
		Year:  c.FormValue("year"),
		Title: c.FormValue("title"),
	}

	if fh, err := c.FormFile("report_file"); err == nil {
		f, err := fh.Open()
		if err != nil {
			h.log.Error("failed to open uploaded file", zap.Error(err))
			return h.failWith(c, "/admin", services.MsgUploadFailed)
		}
		defer f.Close()
		input.Filename = fh.Filename
		input.Size = fh.Size
		input.Body = f
	}

	if _, err := h.reportService.Upload(c.UserContext(), input, identity(c)); err != nil {
		return h.fail(c, "/admin", err)
	}
	return h.done(c, "/admin", services.MsgReportUploaded)
}

// Download streams a stored annual report
// @Summary Download annual report
// @Tags Annual Reports
// @Produce application/pdf
// @Param id path int true "Report ID"
// @Success 200 {file} binary
// @Failure 303 "Redirect to /admin/annual-reports"
// @Router /admin/annual-reports/{id}/download [get]
func (h *ReportHandler) Download(c *fiber.Ctx) error {
	id, ok := parseID(c.Params("id"))
	if !ok {
		return h.failWith(c, "/admin/annual-reports", MsgInvalidID)
	}

	report, rc, size, err := h.reportService.Download(c.UserContext(), id)
	if err != nil {
		return h.fail(c, "/admin/annual-reports", err)
	}

	c.Set(fiber.HeaderContentType, services.PDFContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, report.Filename))
	return c.SendStream(rc, int(size))
}

// Delete removes an annual report and its file
// @Summary Delete annual report
// @Tags Annual Reports
// @Param id path int true "Report ID"
// @Success 303 "Redirect to /admin"
// @Router /admin/annual-reports/{id}/delete [post]
func (h *ReportHandler) Delete(c *fiber.Ctx) error {
	id, ok := parseID(c.Params("id"))
	if !ok {
		return h.failWith(c, "/admin", MsgInvalidID)
	}

	if err := h.reportService.Delete(c.UserContext(), id, identity(c)); err != nil {
		return h.fail(c, "/admin", err)
	}
	return h.done(c, "/admin", services.MsgReportDeleted)
}
