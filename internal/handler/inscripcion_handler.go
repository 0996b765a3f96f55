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

// InscripcionHandler exposes enrollment endpoints.
type InscripcionHandler struct {
	inscripciones *service.InscripcionService
}

// NewInscripcionHandler constructs InscripcionHandler.
func NewInscripcionHandler(inscripciones *service.InscripcionService) *InscripcionHandler {
	return &InscripcionHandler{inscripciones: inscripciones}
}

// List godoc
// @Summary List enrollments
// @Tags Inscripciones
// @Produce json
// @Param curso_id query string false "Filter by course offering"
// @Param estudiante_id query string false "Filter by student"
// @Param estado query string false "Filter by state"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /inscripciones [get]
func (h *InscripcionHandler) List(c *gin.Context) {
	var filter models.InscripcionFilter
	filter.CursoID = c.Query("curso_id")
	filter.EstudianteID = c.Query("estudiante_id")
	filter.Estado = c.Query("estado")
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = size
	}

	inscripciones, pagination, err := h.inscripciones.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, inscripciones, pagination)
}

// Get godoc
// @Summary Get enrollment detail
// @Tags Inscripciones
// @Produce json
// @Param id path string true "Enrollment ID"
// @Success 200 {object} response.Envelope
// @Router /inscripciones/{id} [get]
func (h *InscripcionHandler) Get(c *gin.Context) {
	inscripcion, err := h.inscripciones.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, inscripcion, nil)
}

// Create godoc
// @Summary Enroll a student into a course offering
// @Tags Inscripciones
// @Accept json
// @Produce json
// @Param payload body service.CreateInscripcionRequest true "Enrollment payload"
// @Success 201 {object} response.Envelope
// @Router /inscripciones [post]
func (h *InscripcionHandler) Create(c *gin.Context) {
	var req service.CreateInscripcionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	inscripcion, err := h.inscripciones.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, inscripcion)
}

// UpdateEstado godoc
// @Summary Change enrollment state
// @Tags Inscripciones
// @Accept json
// @Produce json
// @Param id path string true "Enrollment ID"
// @Param payload body service.UpdateInscripcionEstadoRequest true "State payload"
// @Success 200 {object} response.Envelope
// @Router /inscripciones/{id}/estado [put]
func (h *InscripcionHandler) UpdateEstado(c *gin.Context) {
	var req service.UpdateInscripcionEstadoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	inscripcion, err := h.inscripciones.UpdateEstado(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, inscripcion, nil)
}

// Delete godoc
// @Summary Soft-delete enrollment
// @Tags Inscripciones
// @Param id path string true "Enrollment ID"
// @Success 204
// @Router /inscripciones/{id} [delete]
func (h *InscripcionHandler) Delete(c *gin.Context) {
	if err := h.inscripciones.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListDeleted godoc
// @Summary List soft-deleted enrollments
// @Tags Inscripciones
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /inscripciones/eliminados [get]
func (h *InscripcionHandler) ListDeleted(c *gin.Context) {
	inscripciones, err := h.inscripciones.ListDeleted(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, inscripciones, nil)
}

// Restore godoc
// @Summary Restore a soft-deleted enrollment
// @Tags Inscripciones
// @Produce json
// @Param id path string true "Enrollment ID"
// @Success 200 {object} response.Envelope
// @Router /inscripciones/{id}/restaurar [post]
func (h *InscripcionHandler) Restore(c *gin.Context) {
	inscripcion, err := h.inscripciones.Restore(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, inscripcion, nil)
}
