package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"boiler-ai/backend/internal/service"
	"boiler-ai/backend/pkg/response"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeICS  = "text/calendar; charset=utf-8"
)

// ExportHandler file downloads
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler creates an ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ScheduleXLSX
// GET /api/v1/schedules/:id/export.xlsx
func (h *ExportHandler) ScheduleXLSX(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ScheduleWorkbook(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	response.File(c, contentTypeXLSX, filename, buf.Bytes())
}

// ScheduleICS
// GET /api/v1/schedules/:id/export.ics
func (h *ExportHandler) ScheduleICS(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	body, filename, err := h.exportSvc.ScheduleCalendar(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	response.File(c, contentTypeICS, filename, body)
}

// GPAHistoryXLSX
// GET /api/v1/gpa/history/:userId/export.xlsx
func (h *ExportHandler) GPAHistoryXLSX(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.GPAHistoryWorkbook(c.Request.Context(), caller, c.Param("userId"))
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	response.File(c, contentTypeXLSX, filename, buf.Bytes())
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrScheduleNotFound):
		response.NotFound(c, 13001, "Schedule not found")
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(c, response.CodeForbidden, "Access denied")
	default:
		// ErrExportGenerateFail included
		response.InternalError(c)
	}
}
