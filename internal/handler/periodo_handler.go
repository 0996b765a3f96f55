package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusdev/gestion-escolar-api/internal/service"
	appErrors "github.com/campusdev/gestion-escolar-api/pkg/errors"
	"github.com/campusdev/gestion-escolar-api/pkg/response"
)

// PeriodoHandler exposes academic period endpoints.
type PeriodoHandler struct {
	periodos *service.PeriodoService
}

// NewPeriodoHandler constructs PeriodoHandler.
func NewPeriodoHandler(periodos *service.PeriodoService) *PeriodoHandler {
	return &PeriodoHandler{periodos: periodos}
}

// List godoc
// @Summary List academic periods
// @Tags Periodos
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /periodos [get]
func (h *PeriodoHandler) List(c *gin.Context) {
	periodos, err := h.periodos.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, periodos, nil)
}

// ListDeleted godoc
// @Summary List logically deleted periods
// @Tags Periodos
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /periodos/eliminados [get]
func (h *PeriodoHandler) ListDeleted(c *gin.Context) {
	periodos, err := h.periodos.ListDeleted(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, periodos, nil)
}

// Actual godoc
// @Summary Get the period covering today
// @Tags Periodos
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /periodos/actual [get]
func (h *PeriodoHandler) Actual(c *gin.Context) {
	periodo, err := h.periodos.GetActual(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, periodo, nil)
}

// Get godoc
// @Summary Get period detail
// @Tags Periodos
// @Produce json
// @Param id path string true "Period ID"
// @Success 200 {object} response.Envelope
// @Router /periodos/{id} [get]
func (h *PeriodoHandler) Get(c *gin.Context) {
	periodo, err := h.periodos.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, periodo, nil)
}

// Create godoc
// @Summary Create period
// @Tags Periodos
// @Accept json
// @Produce json
// @Param payload body service.CreatePeriodoRequest true "Period payload"
// @Success 201 {object} response.Envelope
// @Router /periodos [post]
func (h *PeriodoHandler) Create(c *gin.Context) {
	var req service.CreatePeriodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	periodo, err := h.periodos.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, periodo)
}

// Update godoc
// @Summary Update period
// @Tags Periodos
// @Accept json
// @Produce json
// @Param id path string true "Period ID"
// @Param payload body service.UpdatePeriodoRequest true "Period payload"
// @Success 200 {object} response.Envelope
// @Router /periodos/{id} [put]
func (h *PeriodoHandler) Update(c *gin.Context) {
	var req service.UpdatePeriodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	periodo, err := h.periodos.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, periodo, nil)
}

// Delete godoc
// @Summary Soft-delete period
// @Tags Periodos
// @Param id path string true "Period ID"
// @Success 204
// @Router /periodos/{id} [delete]
func (h *PeriodoHandler) Delete(c *gin.Context) {
	if err := h.periodos.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Restore godoc
// @Summary Restore a soft-deleted period
// @Tags Periodos
// @Produce json
// @Param id path string true "Period ID"
// @Success 200 {object} response.Envelope
// @Router /periodos/{id}/restaurar [post]
func (h *PeriodoHandler) Restore(c *gin.Context) {
	periodo, err := h.periodos.Restore(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, periodo, nil)
}
