package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campusdev/gestion-escolar-api/internal/service"
	appErrors "github.com/campusdev/gestion-escolar-api/pkg/errors"
	"github.com/campusdev/gestion-escolar-api/pkg/response"
)

// CalificacionHandler exposes grade endpoints.
type CalificacionHandler struct {
	calificaciones *service.CalificacionService
}

// NewCalificacionHandler constructs CalificacionHandler.
func NewCalificacionHandler(calificaciones *service.CalificacionService) *CalificacionHandler {
	return &CalificacionHandler{calificaciones: calificaciones}
}

// Registrar godoc
// @Summary Record a grade
// @Tags Calificaciones
// @Accept json
// @Produce json
// @Param payload body service.RegistrarCalificacionRequest true "Grade payload"
// @Success 201 {object} response.Envelope
// @Router /calificaciones [post]
func (h *CalificacionHandler) Registrar(c *gin.Context) {
	var req service.RegistrarCalificacionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	calificacion, err := h.calificaciones.Registrar(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, calificacion)
}

// Actualizar godoc
// @Summary Correct a grade
// @Tags Calificaciones
// @Accept json
// @Produce json
// @Param id path string true "Grade ID"
// @Param payload body service.ActualizarCalificacionRequest true "Grade payload"
// @Success 200 {object} response.Envelope
// @Router /calificaciones/{id} [put]
func (h *CalificacionHandler) Actualizar(c *gin.Context) {
	var req service.ActualizarCalificacionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	calificacion, err := h.calificaciones.Actualizar(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, calificacion, nil)
}

// Delete godoc
// @Summary Soft-delete grade
// @Tags Calificaciones
// @Param id path string true "Grade ID"
// @Success 204
// @Router /calificaciones/{id} [delete]
func (h *CalificacionHandler) Delete(c *gin.Context) {
	if err := h.calificaciones.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListDeleted godoc
// @Summary List soft-deleted grades
// @Tags Calificaciones
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /calificaciones/eliminados [get]
func (h *CalificacionHandler) ListDeleted(c *gin.Context) {
	calificaciones, err := h.calificaciones.ListDeleted(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, calificaciones, nil)
}

// Restore godoc
// @Summary Restore a soft-deleted grade
// @Tags Calificaciones
// @Produce json
// @Param id path string true "Grade ID"
// @Success 200 {object} response.Envelope
// @Router /calificaciones/{id}/restaurar [post]
func (h *CalificacionHandler) Restore(c *gin.Context) {
	calificacion, err := h.calificaciones.Restore(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, calificacion, nil)
}

// PorRango godoc
// @Summary List a course's grades inside a score range
// @Tags Calificaciones
// @Produce json
// @Param id path string true "Course ID"
// @Param min query number true "Lower bound"
// @Param max query number true "Upper bound"
// @Success 200 {object} response.Envelope
// @Router /cursos/{id}/calificaciones/rango [get]
func (h *CalificacionHandler) PorRango(c *gin.Context) {
	min, err := strconv.ParseFloat(c.DefaultQuery("min", "0"), 64)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid min"))
		return
	}
	max, err := strconv.ParseFloat(c.DefaultQuery("max", "100"), 64)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid max"))
		return
	}
	calificaciones, err := h.calificaciones.ListByRango(c.Request.Context(), c.Param("id"), min, max)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, calificaciones, nil)
}

// HistorialEstudiante godoc
// @Summary List a student's grades in a course offering
// @Tags Calificaciones
// @Produce json
// @Param id path string true "Student ID"
// @Param curso_id query string true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /estudiantes/{id}/calificaciones [get]
func (h *CalificacionHandler) HistorialEstudiante(c *gin.Context) {
	calificaciones, err := h.calificaciones.ListByEstudianteCurso(c.Request.Context(), c.Param("id"), c.Query("curso_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, calificaciones, nil)
}

// PromedioEstudiante godoc
// @Summary Average a student's grades, optionally scoped to one offering
// @Tags Calificaciones
// @Produce json
// @Param id path string true "Student ID"
// @Param curso_id query string false "Course ID; omitted averages across all courses"
// @Success 200 {object} response.Envelope
// @Router /estudiantes/{id}/promedio [get]
func (h *CalificacionHandler) PromedioEstudiante(c *gin.Context) {
	promedio, err := h.calificaciones.CalcularPromedioEstudiante(c.Request.Context(), c.Param("id"), c.Query("curso_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, promedio, nil)
}
