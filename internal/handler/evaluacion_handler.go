package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campusdev/gestion-escolar-api/internal/service"
	appErrors "github.com/campusdev/gestion-escolar-api/pkg/errors"
	"github.com/campusdev/gestion-escolar-api/pkg/response"
)

// EvaluacionHandler exposes assessment and assessment-type endpoints.
type EvaluacionHandler struct {
	evaluaciones   *service.EvaluacionService
	calificaciones *service.CalificacionService
}

// NewEvaluacionHandler constructs EvaluacionHandler.
func NewEvaluacionHandler(evaluaciones *service.EvaluacionService, calificaciones *service.CalificacionService) *EvaluacionHandler {
	return &EvaluacionHandler{evaluaciones: evaluaciones, calificaciones: calificaciones}
}

// Proximas godoc
// @Summary List published upcoming assessments
// @Tags Evaluaciones
// @Produce json
// @Param dias query int false "Optional horizon in days; omitted means all future dates"
// @Success 200 {object} response.Envelope
// @Router /evaluaciones/proximas [get]
func (h *EvaluacionHandler) Proximas(c *gin.Context) {
	dias, err := strconv.Atoi(c.DefaultQuery("dias", "0"))
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid dias"))
		return
	}
	evaluaciones, err := h.evaluaciones.ListProximas(c.Request.Context(), dias)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, evaluaciones, nil)
}

// Get godoc
// @Summary Get assessment detail
// @Tags Evaluaciones
// @Produce json
// @Param id path string true "Assessment ID"
// @Success 200 {object} response.Envelope
// @Router /evaluaciones/{id} [get]
func (h *EvaluacionHandler) Get(c *gin.Context) {
	evaluacion, err := h.evaluaciones.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, evaluacion, nil)
}

// Create godoc
// @Summary Create assessment
// @Tags Evaluaciones
// @Accept json
// @Produce json
// @Param payload body service.CreateEvaluacionRequest true "Assessment payload"
// @Success 201 {object} response.Envelope
// @Router /evaluaciones [post]
func (h *EvaluacionHandler) Create(c *gin.Context) {
	var req service.CreateEvaluacionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	evaluacion, err := h.evaluaciones.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, evaluacion)
}

// Update godoc
// @Summary Update assessment
// @Tags Evaluaciones
// @Accept json
// @Produce json
// @Param id path string true "Assessment ID"
// @Param payload body service.UpdateEvaluacionRequest true "Assessment payload"
// @Success 200 {object} response.Envelope
// @Router /evaluaciones/{id} [put]
func (h *EvaluacionHandler) Update(c *gin.Context) {
	var req service.UpdateEvaluacionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	evaluacion, err := h.evaluaciones.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, evaluacion, nil)
}

// Delete godoc
// @Summary Soft-delete assessment
// @Tags Evaluaciones
// @Param id path string true "Assessment ID"
// @Success 204
// @Router /evaluaciones/{id} [delete]
func (h *EvaluacionHandler) Delete(c *gin.Context) {
	if err := h.evaluaciones.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListDeleted godoc
// @Summary List soft-deleted assessments
// @Tags Evaluaciones
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /evaluaciones/eliminados [get]
func (h *EvaluacionHandler) ListDeleted(c *gin.Context) {
	evaluaciones, err := h.evaluaciones.ListDeleted(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, evaluaciones, nil)
}

// Restore godoc
// @Summary Restore a soft-deleted assessment
// @Tags Evaluaciones
// @Produce json
// @Param id path string true "Assessment ID"
// @Success 200 {object} response.Envelope
// @Router /evaluaciones/{id}/restaurar [post]
func (h *EvaluacionHandler) Restore(c *gin.Context) {
	evaluacion, err := h.evaluaciones.Restore(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, evaluacion, nil)
}

// Calificaciones godoc
// @Summary List grades of an assessment
// @Tags Evaluaciones
// @Produce json
// @Param id path string true "Assessment ID"
// @Success 200 {object} response.Envelope
// @Router /evaluaciones/{id}/calificaciones [get]
func (h *EvaluacionHandler) Calificaciones(c *gin.Context) {
	calificaciones, err := h.calificaciones.ListByEvaluacion(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, calificaciones, nil)
}

// ListTipos godoc
// @Summary List assessment types
// @Tags Evaluaciones
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /tipos-evaluacion [get]
func (h *EvaluacionHandler) ListTipos(c *gin.Context) {
	tipos, err := h.evaluaciones.ListTipos(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, tipos, nil)
}

// CreateTipo godoc
// @Summary Create assessment type
// @Tags Evaluaciones
// @Accept json
// @Produce json
// @Param payload body service.SaveTipoEvaluacionRequest true "Type payload"
// @Success 201 {object} response.Envelope
// @Router /tipos-evaluacion [post]
func (h *EvaluacionHandler) CreateTipo(c *gin.Context) {
	var req service.SaveTipoEvaluacionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	tipo, err := h.evaluaciones.CreateTipo(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, tipo)
}

// UpdateTipo godoc
// @Summary Update assessment type
// @Tags Evaluaciones
// @Accept json
// @Produce json
// @Param id path string true "Type ID"
// @Param payload body service.SaveTipoEvaluacionRequest true "Type payload"
// @Success 200 {object} response.Envelope
// @Router /tipos-evaluacion/{id} [put]
func (h *EvaluacionHandler) UpdateTipo(c *gin.Context) {
	var req service.SaveTipoEvaluacionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	tipo, err := h.evaluaciones.UpdateTipo(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, tipo, nil)
}

// DeleteTipo godoc
// @Summary Soft-delete assessment type
// @Tags Evaluaciones
// @Param id path string true "Type ID"
// @Success 204
// @Router /tipos-evaluacion/{id} [delete]
func (h *EvaluacionHandler) DeleteTipo(c *gin.Context) {
	if err := h.evaluaciones.DeleteTipo(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListDeletedTipos godoc
// @Summary List soft-deleted assessment types
// @Tags Evaluaciones
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /tipos-evaluacion/eliminados [get]
func (h *EvaluacionHandler) ListDeletedTipos(c *gin.Context) {
	tipos, err := h.evaluaciones.ListDeletedTipos(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, tipos, nil)
}

// RestoreTipo godoc
// @Summary Restore a soft-deleted assessment type
// @Tags Evaluaciones
// @Produce json
// @Param id path string true "Type ID"
// @Success 200 {object} response.Envelope
// @Router /tipos-evaluacion/{id}/restaurar [post]
func (h *EvaluacionHandler) RestoreTipo(c *gin.Context) {
	tipo, err := h.evaluaciones.RestoreTipo(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, tipo, nil)
}
