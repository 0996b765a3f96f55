package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusdev/gestion-escolar-api/internal/service"
	appErrors "github.com/campusdev/gestion-escolar-api/pkg/errors"
	"github.com/campusdev/gestion-escolar-api/pkg/response"
)

// ActividadHandler exposes assignment and submission endpoints.
type ActividadHandler struct {
	actividades *service.ActividadService
}

// NewActividadHandler constructs ActividadHandler.
func NewActividadHandler(actividades *service.ActividadService) *ActividadHandler {
	return &ActividadHandler{actividades: actividades}
}

// Abiertas godoc
// @Summary List assignments currently open for submissions
// @Tags Actividades
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /actividades/abiertas [get]
func (h *ActividadHandler) Abiertas(c *gin.Context) {
	actividades, err := h.actividades.ListAbiertas(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, actividades, nil)
}

// Proximas godoc
// @Summary List assignments that have not opened yet
// @Tags Actividades
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /actividades/proximas [get]
func (h *ActividadHandler) Proximas(c *gin.Context) {
	actividades, err := h.actividades.ListProximas(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, actividades, nil)
}

// Get godoc
// @Summary Get assignment detail
// @Tags Actividades
// @Produce json
// @Param id path string true "Assignment ID"
// @Success 200 {object} response.Envelope
// @Router /actividades/{id} [get]
func (h *ActividadHandler) Get(c *gin.Context) {
	actividad, err := h.actividades.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, actividad, nil)
}

// Create godoc
// @Summary Create assignment
// @Tags Actividades
// @Accept json
// @Produce json
// @Param payload body service.CreateActividadRequest true "Assignment payload"
// @Success 201 {object} response.Envelope
// @Router /actividades [post]
func (h *ActividadHandler) Create(c *gin.Context) {
	var req service.CreateActividadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	actividad, err := h.actividades.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, actividad)
}

// Update godoc
// @Summary Update assignment
// @Tags Actividades
// @Accept json
// @Produce json
// @Param id path string true "Assignment ID"
// @Param payload body service.UpdateActividadRequest true "Assignment payload"
// @Success 200 {object} response.Envelope
// @Router /actividades/{id} [put]
func (h *ActividadHandler) Update(c *gin.Context) {
	var req service.UpdateActividadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	actividad, err := h.actividades.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, actividad, nil)
}

// Delete godoc
// @Summary Soft-delete assignment
// @Tags Actividades
// @Param id path string true "Assignment ID"
// @Success 204
// @Router /actividades/{id} [delete]
func (h *ActividadHandler) Delete(c *gin.Context) {
	if err := h.actividades.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListDeleted godoc
// @Summary List soft-deleted assignments
// @Tags Actividades
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /actividades/eliminados [get]
func (h *ActividadHandler) ListDeleted(c *gin.Context) {
	actividades, err := h.actividades.ListDeleted(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, actividades, nil)
}

// Restore godoc
// @Summary Restore a soft-deleted assignment
// @Tags Actividades
// @Produce json
// @Param id path string true "Assignment ID"
// @Success 200 {object} response.Envelope
// @Router /actividades/{id}/restaurar [post]
func (h *ActividadHandler) Restore(c *gin.Context) {
	actividad, err := h.actividades.Restore(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, actividad, nil)
}

// Entregas godoc
// @Summary List submissions for an assignment
// @Tags Actividades
// @Produce json
// @Param id path string true "Assignment ID"
// @Success 200 {object} response.Envelope
// @Router /actividades/{id}/entregas [get]
func (h *ActividadHandler) Entregas(c *gin.Context) {
	entregas, err := h.actividades.ListEntregas(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entregas, nil)
}

// CrearEntrega godoc
// @Summary Submit work for an assignment
// @Tags Actividades
// @Accept json
// @Produce json
// @Param id path string true "Assignment ID"
// @Param payload body service.CrearEntregaRequest true "Submission payload"
// @Success 201 {object} response.Envelope
// @Router /actividades/{id}/entregas [post]
func (h *ActividadHandler) CrearEntrega(c *gin.Context) {
	var req service.CrearEntregaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	req.ActividadID = c.Param("id")
	entrega, err := h.actividades.CrearEntrega(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, entrega)
}

// CalificarEntrega godoc
// @Summary Grade a submission
// @Tags Actividades
// @Accept json
// @Produce json
// @Param id path string true "Submission ID"
// @Param payload body service.CalificarEntregaRequest true "Score payload"
// @Success 200 {object} response.Envelope
// @Router /entregas/{id}/calificar [put]
func (h *ActividadHandler) CalificarEntrega(c *gin.Context) {
	var req service.CalificarEntregaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	entrega, err := h.actividades.CalificarEntrega(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entrega, nil)
}

// DeleteEntrega godoc
// @Summary Soft-delete submission
// @Tags Actividades
// @Param id path string true "Submission ID"
// @Success 204
// @Router /entregas/{id} [delete]
func (h *ActividadHandler) DeleteEntrega(c *gin.Context) {
	if err := h.actividades.DeleteEntrega(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListDeletedEntregas godoc
// @Summary List soft-deleted submissions
// @Tags Actividades
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /entregas/eliminados [get]
func (h *ActividadHandler) ListDeletedEntregas(c *gin.Context) {
	entregas, err := h.actividades.ListDeletedEntregas(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entregas, nil)
}

// RestoreEntrega godoc
// @Summary Restore a soft-deleted submission
// @Tags Actividades
// @Produce json
// @Param id path string true "Submission ID"
// @Success 200 {object} response.Envelope
// @Router /entregas/{id}/restaurar [post]
func (h *ActividadHandler) RestoreEntrega(c *gin.Context) {
	entrega, err := h.actividades.RestoreEntrega(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entrega, nil)
}
