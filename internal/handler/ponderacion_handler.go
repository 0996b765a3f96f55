package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusdev/gestion-escolar-api/internal/service"
	appErrors "github.com/campusdev/gestion-escolar-api/pkg/errors"
	"github.com/campusdev/gestion-escolar-api/pkg/response"
)

// PonderacionHandler exposes the top-level weighting category endpoints.
// Per-course listing and creation live under the course routes; see
// CursoHandler.
type PonderacionHandler struct {
	ponderaciones *service.PonderacionService
}

// NewPonderacionHandler constructs PonderacionHandler.
func NewPonderacionHandler(ponderaciones *service.PonderacionService) *PonderacionHandler {
	return &PonderacionHandler{ponderaciones: ponderaciones}
}

// Update godoc
// @Summary Update weighting category
// @Tags Ponderaciones
// @Accept json
// @Produce json
// @Param id path string true "Weighting ID"
// @Param payload body service.SavePonderacionRequest true "Weighting payload"
// @Success 200 {object} response.Envelope
// @Router /ponderaciones/{id} [put]
func (h *PonderacionHandler) Update(c *gin.Context) {
	var req service.SavePonderacionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	ponderacion, err := h.ponderaciones.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, ponderacion, nil)
}

// Delete godoc
// @Summary Soft-delete weighting category
// @Tags Ponderaciones
// @Param id path string true "Weighting ID"
// @Success 204
// @Router /ponderaciones/{id} [delete]
func (h *PonderacionHandler) Delete(c *gin.Context) {
	if err := h.ponderaciones.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListDeleted godoc
// @Summary List soft-deleted weighting categories
// @Tags Ponderaciones
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /ponderaciones/eliminados [get]
func (h *PonderacionHandler) ListDeleted(c *gin.Context) {
	ponderaciones, err := h.ponderaciones.ListDeleted(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, ponderaciones, nil)
}

// Restore godoc
// @Summary Restore a soft-deleted weighting category
// @Tags Ponderaciones
// @Produce json
// @Param id path string true "Weighting ID"
// @Success 200 {object} response.Envelope
// @Router /ponderaciones/{id}/restaurar [post]
func (h *PonderacionHandler) Restore(c *gin.Context) {
	ponderacion, err := h.ponderaciones.Restore(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, ponderacion, nil)
}
