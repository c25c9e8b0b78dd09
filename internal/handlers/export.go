package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"coldchain/internal/service"
)

const (
	contentTypeJSON = "application/json"
	contentTypeCSV  = "text/csv"
)

// exportFormat reads ?format=csv|json, defaulting to json.
func exportFormat(c *gin.Context) string {
	if f := c.Query("format"); f != "" {
		return f
	}
	return service.FormatJSON
}

func exportContentType(format string) string {
	if format == service.FormatCSV {
		return contentTypeCSV
	}
	return contentTypeJSON
}

func attachmentHeader(c *gin.Context, name, format string) {
	filename := fmt.Sprintf("%s_%s.%s", name, time.Now().UTC().Format("20060102T150405Z"), format)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
}

// @Summary      Export telemetry history
// @Tags         export
// @Produce      json
// @Produce      text/csv
// @Param        format  query  string  false  "Export format"  Enums(json,csv)  default(json)
// @Success      200  {string}  string  "file download"
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/export/telemetry [get]
func (h *Handler) exportTelemetry(c *gin.Context) {
	h.serveExport(c, "telemetry", h.services.Export.Telemetry)
}

// @Summary      Export full shipment report
// @Tags         export
// @Produce      json
// @Produce      text/csv
// @Param        format  query  string  false  "Export format"  Enums(json,csv)  default(json)
// @Success      200  {string}  string  "file download"
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/export/report [get]
func (h *Handler) exportReport(c *gin.Context) {
	h.serveExport(c, "shipment_report", h.services.Export.Report)
}

func (h *Handler) serveExport(c *gin.Context, name string, render func(ctx context.Context, format string) ([]byte, error)) {
	ctx := c.Request.Context()
	format := exportFormat(c)

	out, err := render(ctx, format)
	if err != nil {
		if errors.Is(err, service.ErrUnknownFormat) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if h.log != nil {
			h.log.Errorw("export_failed", "err", err, "export", name, "format", format)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render export"})
		return
	}

	attachmentHeader(c, name, format)
	c.Data(http.StatusOK, exportContentType(format), out)
}
