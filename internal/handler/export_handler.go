package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusdev/gestion-escolar-api/internal/service"
	appErrors "github.com/campusdev/gestion-escolar-api/pkg/errors"
	"github.com/campusdev/gestion-escolar-api/pkg/response"
)

// ExportHandler streams generated documents instead of the JSON envelope.
type ExportHandler struct {
	exports *service.ExportService
}

// NewExportHandler constructs ExportHandler.
func NewExportHandler(exports *service.ExportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// Reportes godoc
// @Summary Export incident reports as CSV or PDF
// @Tags Exportaciones
// @Produce text/csv
// @Produce application/pdf
// @Param formato query string false "csv or pdf" default(csv)
// @Param estudiante_id query string false "Filter by student"
// @Param curso_id query string false "Filter by course offering"
// @Param tipo query string false "Filter by type"
// @Param severidad query string false "Filter by severity"
// @Success 200 {file} binary
// @Router /reportes/export [get]
func (h *ExportHandler) Reportes(c *gin.Context) {
	formato := c.DefaultQuery("formato", "csv")
	data, contentType, err := h.exports.ExportReportes(c.Request.Context(), reporteFilterFromQuery(c), formato)
	if err != nil {
		response.Error(c, err)
		return
	}
	ext := "csv"
	if contentType == "application/pdf" {
		ext = "pdf"
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=reportes.%s", ext))
	c.Data(http.StatusOK, contentType, data)
}

// Boletin godoc
// @Summary Render a student's report card for a course offering
// @Tags Exportaciones
// @Produce application/pdf
// @Param id path string true "Student ID"
// @Param curso_id query string true "Course ID"
// @Success 200 {file} binary
// @Router /estudiantes/{id}/boletin [get]
func (h *ExportHandler) Boletin(c *gin.Context) {
	cursoID := c.Query("curso_id")
	if cursoID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "curso_id is required"))
		return
	}
	data, err := h.exports.Boletin(c.Request.Context(), c.Param("id"), cursoID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=boletin.pdf")
	c.Data(http.StatusOK, "application/pdf", data)
}
