package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusdev/gestion-escolar-api/internal/service"
	appErrors "github.com/campusdev/gestion-escolar-api/pkg/errors"
	"github.com/campusdev/gestion-escolar-api/pkg/response"
)

// AsistenciaHandler exposes attendance endpoints.
type AsistenciaHandler struct {
	asistencias *service.AsistenciaService
}

// NewAsistenciaHandler constructs AsistenciaHandler.
func NewAsistenciaHandler(asistencias *service.AsistenciaService) *AsistenciaHandler {
	return &AsistenciaHandler{asistencias: asistencias}
}

// Registrar godoc
// @Summary Record an attendance mark
// @Tags Asistencias
// @Accept json
// @Produce json
// @Param payload body service.RegistrarAsistenciaRequest true "Attendance payload"
// @Success 201 {object} response.Envelope
// @Router /asistencias [post]
func (h *AsistenciaHandler) Registrar(c *gin.Context) {
	var req service.RegistrarAsistenciaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	asistencia, err := h.asistencias.Registrar(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, asistencia)
}

// Actualizar godoc
// @Summary Correct an attendance mark
// @Tags Asistencias
// @Accept json
// @Produce json
// @Param id path string true "Attendance ID"
// @Param payload body service.ActualizarAsistenciaRequest true "Attendance payload"
// @Success 200 {object} response.Envelope
// @Router /asistencias/{id} [put]
func (h *AsistenciaHandler) Actualizar(c *gin.Context) {
	var req service.ActualizarAsistenciaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	asistencia, err := h.asistencias.Actualizar(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, asistencia, nil)
}

// Delete godoc
// @Summary Soft-delete attendance mark
// @Tags Asistencias
// @Param id path string true "Attendance ID"
// @Success 204
// @Router /asistencias/{id} [delete]
func (h *AsistenciaHandler) Delete(c *gin.Context) {
	if err := h.asistencias.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListDeleted godoc
// @Summary List soft-deleted attendance marks
// @Tags Asistencias
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /asistencias/eliminados [get]
func (h *AsistenciaHandler) ListDeleted(c *gin.Context) {
	asistencias, err := h.asistencias.ListDeleted(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, asistencias, nil)
}

// Restore godoc
// @Summary Restore a soft-deleted attendance mark
// @Tags Asistencias
// @Produce json
// @Param id path string true "Attendance ID"
// @Success 200 {object} response.Envelope
// @Router /asistencias/{id}/restaurar [post]
func (h *AsistenciaHandler) Restore(c *gin.Context) {
	asistencia, err := h.asistencias.Restore(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, asistencia, nil)
}

// HistorialEstudiante godoc
// @Summary List a student's attendance in a course offering
// @Tags Asistencias
// @Produce json
// @Param id path string true "Student ID"
// @Param curso_id query string true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /estudiantes/{id}/asistencias [get]
func (h *AsistenciaHandler) HistorialEstudiante(c *gin.Context) {
	asistencias, err := h.asistencias.ListByEstudianteCurso(c.Request.Context(), c.Param("id"), c.Query("curso_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, asistencias, nil)
}

// ResumenEstudiante godoc
// @Summary Summarize a student's attendance in a course offering
// @Tags Asistencias
// @Produce json
// @Param id path string true "Student ID"
// @Param curso_id query string true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /estudiantes/{id}/asistencias/resumen [get]
func (h *AsistenciaHandler) ResumenEstudiante(c *gin.Context) {
	resumen, err := h.asistencias.Resumen(c.Request.Context(), c.Param("id"), c.Query("curso_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resumen, nil)
}
