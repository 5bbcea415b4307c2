package handler

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/priscillasauvan-boop/Mon-journal-de-stage/internal/service"
	"github.com/priscillasauvan-boop/Mon-journal-de-stage/pkg/response"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	icsContentType  = "text/calendar; charset=utf-8"
)

// ExportHandler file export endpoints
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler creates an ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportJournal GET /api/v1/export/journal
func (h *ExportHandler) ExportJournal(c *gin.Context) {
	buf, filename, err := h.exportSvc.ExportJournal(c.Request.Context())
	if err != nil {
		c.Error(err)
		response.InternalError(c)
		return
	}

	setDownloadHeaders(c, filename)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// ExportStagesICS GET /api/v1/export/stages.ics
func (h *ExportHandler) ExportStagesICS(c *gin.Context) {
	data, filename, err := h.exportSvc.ExportStagesICS(c.Request.Context())
	if err != nil {
		c.Error(err)
		response.InternalError(c)
		return
	}

	setDownloadHeaders(c, filename)
	c.Data(http.StatusOK, icsContentType, data)
}

func setDownloadHeaders(c *gin.Context, filename string) {
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.QueryEscape(filename))
}
