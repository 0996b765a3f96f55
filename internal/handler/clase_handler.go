package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campusdev/gestion-escolar-api/internal/models"
	"github.com/campusdev/gestion-escolar-api/internal/service"
	appErrors "github.com/campusdev/gestion-escolar-api/pkg/errors"
	"github.com/campusdev/gestion-escolar-api/pkg/response"
)

// ClaseHandler exposes class session endpoints and the per-session
// attendance roll.
type ClaseHandler struct {
	clases      *service.ClaseService
	asistencias *service.AsistenciaService
}

// NewClaseHandler constructs ClaseHandler.
func NewClaseHandler(clases *service.ClaseService, asistencias *service.AsistenciaService) *ClaseHandler {
	return &ClaseHandler{clases: clases, asistencias: asistencias}
}

// List godoc
// @Summary List class sessions
// @Tags Clases
// @Produce json
// @Param curso_id query string false "Filter by course offering"
// @Param desde query string false "Earliest date (YYYY-MM-DD)"
// @Param hasta query string false "Latest date (YYYY-MM-DD)"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /clases [get]
func (h *ClaseHandler) List(c *gin.Context) {
	var filter models.ClaseFilter
	filter.CursoID = c.Query("curso_id")
	if raw := c.Query("desde"); raw != "" {
		desde, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid desde date"))
			return
		}
		filter.Desde = &desde
	}
	if raw := c.Query("hasta"); raw != "" {
		hasta, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid hasta date"))
			return
		}
		filter.Hasta = &hasta
	}
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = size
	}
	filter.SortOrder = c.Query("order")

	clases, pagination, err := h.clases.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, clases, pagination)
}

// Get godoc
// @Summary Get class session detail
// @Tags Clases
// @Produce json
// @Param id path string true "Class ID"
// @Success 200 {object} response.Envelope
// @Router /clases/{id} [get]
func (h *ClaseHandler) Get(c *gin.Context) {
	clase, err := h.clases.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, clase, nil)
}

// Create godoc
// @Summary Record a class session
// @Tags Clases
// @Accept json
// @Produce json
// @Param payload body service.CreateClaseRequest true "Class payload"
// @Success 201 {object} response.Envelope
// @Router /clases [post]
func (h *ClaseHandler) Create(c *gin.Context) {
	var req service.CreateClaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	clase, err := h.clases.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, clase)
}

// Update godoc
// @Summary Update class session
// @Tags Clases
// @Accept json
// @Produce json
// @Param id path string true "Class ID"
// @Param payload body service.UpdateClaseRequest true "Class payload"
// @Success 200 {object} response.Envelope
// @Router /clases/{id} [put]
func (h *ClaseHandler) Update(c *gin.Context) {
	var req service.UpdateClaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	clase, err := h.clases.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, clase, nil)
}

// Delete godoc
// @Summary Soft-delete class session
// @Tags Clases
// @Param id path string true "Class ID"
// @Success 204
// @Router /clases/{id} [delete]
func (h *ClaseHandler) Delete(c *gin.Context) {
	if err := h.clases.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListDeleted godoc
// @Summary List soft-deleted class sessions
// @Tags Clases
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /clases/eliminados [get]
func (h *ClaseHandler) ListDeleted(c *gin.Context) {
	clases, err := h.clases.ListDeleted(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, clases, nil)
}

// Restore godoc
// @Summary Restore a soft-deleted class session
// @Tags Clases
// @Produce json
// @Param id path string true "Class ID"
// @Success 200 {object} response.Envelope
// @Router /clases/{id}/restaurar [post]
func (h *ClaseHandler) Restore(c *gin.Context) {
	clase, err := h.clases.Restore(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, clase, nil)
}

// Asistencias godoc
// @Summary List the attendance roll of a class session
// @Tags Clases
// @Produce json
// @Param id path string true "Class ID"
// @Success 200 {object} response.Envelope
// @Router /clases/{id}/asistencias [get]
func (h *ClaseHandler) Asistencias(c *gin.Context) {
	asistencias, err := h.asistencias.ListByClase(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, asistencias, nil)
}
