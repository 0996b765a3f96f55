package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campusdev/gestion-escolar-api/internal/models"
	"github.com/campusdev/gestion-escolar-api/internal/service"
	appErrors "github.com/campusdev/gestion-escolar-api/pkg/errors"
	"github.com/campusdev/gestion-escolar-api/pkg/response"
)

// ReporteHandler exposes incident report endpoints.
type ReporteHandler struct {
	reportes *service.ReporteService
}

// NewReporteHandler constructs ReporteHandler.
func NewReporteHandler(reportes *service.ReporteService) *ReporteHandler {
	return &ReporteHandler{reportes: reportes}
}

func reporteFilterFromQuery(c *gin.Context) models.ReporteFilter {
	var filter models.ReporteFilter
	filter.EstudianteID = c.Query("estudiante_id")
	filter.CursoID = c.Query("curso_id")
	filter.Tipo = c.Query("tipo")
	filter.Severidad = c.Query("severidad")
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = size
	}
	return filter
}

// List godoc
// @Summary List incident reports
// @Tags Reportes
// @Produce json
// @Param estudiante_id query string false "Filter by student"
// @Param curso_id query string false "Filter by course offering"
// @Param tipo query string false "Filter by type"
// @Param severidad query string false "Filter by severity"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /reportes [get]
func (h *ReporteHandler) List(c *gin.Context) {
	filter := reporteFilterFromQuery(c)
	reportes, total, err := h.reportes.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	pagination := &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}
	response.JSON(c, http.StatusOK, reportes, pagination)
}

// Get godoc
// @Summary Get incident report detail
// @Tags Reportes
// @Produce json
// @Param id path string true "Report ID"
// @Success 200 {object} response.Envelope
// @Router /reportes/{id} [get]
func (h *ReporteHandler) Get(c *gin.Context) {
	reporte, err := h.reportes.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, reporte, nil)
}

// Create godoc
// @Summary File an incident report
// @Tags Reportes
// @Accept json
// @Produce json
// @Param payload body service.CreateReporteRequest true "Report payload"
// @Success 201 {object} response.Envelope
// @Router /reportes [post]
func (h *ReporteHandler) Create(c *gin.Context) {
	var req service.CreateReporteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	reporte, err := h.reportes.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, reporte)
}

// Update godoc
// @Summary Amend an incident report
// @Tags Reportes
// @Accept json
// @Produce json
// @Param id path string true "Report ID"
// @Param payload body service.UpdateReporteRequest true "Report payload"
// @Success 200 {object} response.Envelope
// @Router /reportes/{id} [put]
func (h *ReporteHandler) Update(c *gin.Context) {
	var req service.UpdateReporteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	reporte, err := h.reportes.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, reporte, nil)
}

// Delete godoc
// @Summary Soft-delete incident report
// @Tags Reportes
// @Param id path string true "Report ID"
// @Success 204
// @Router /reportes/{id} [delete]
func (h *ReporteHandler) Delete(c *gin.Context) {
	if err := h.reportes.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListDeleted godoc
// @Summary List soft-deleted incident reports
// @Tags Reportes
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /reportes/eliminados [get]
func (h *ReporteHandler) ListDeleted(c *gin.Context) {
	reportes, err := h.reportes.ListDeleted(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, reportes, nil)
}

// Restore godoc
// @Summary Restore a soft-deleted incident report
// @Tags Reportes
// @Produce json
// @Param id path string true "Report ID"
// @Success 200 {object} response.Envelope
// @Router /reportes/{id}/restaurar [post]
func (h *ReporteHandler) Restore(c *gin.Context) {
	reporte, err := h.reportes.Restore(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, reporte, nil)
}
