package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusdev/gestion-escolar-api/internal/service"
	appErrors "github.com/campusdev/gestion-escolar-api/pkg/errors"
	"github.com/campusdev/gestion-escolar-api/pkg/response"
)

// HorarioHandler exposes timetable slot and time block endpoints. Slot
// creation lives under the course routes; see CursoHandler.
type HorarioHandler struct {
	horarios *service.HorarioService
}

// NewHorarioHandler constructs HorarioHandler.
func NewHorarioHandler(horarios *service.HorarioService) *HorarioHandler {
	return &HorarioHandler{horarios: horarios}
}

// Update godoc
// @Summary Move a timetable slot
// @Tags Horarios
// @Accept json
// @Produce json
// @Param id path string true "Slot ID"
// @Param payload body service.SaveHorarioRequest true "Slot payload"
// @Success 200 {object} response.Envelope
// @Router /horarios/{id} [put]
func (h *HorarioHandler) Update(c *gin.Context) {
	var req service.SaveHorarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	horario, err := h.horarios.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, horario, nil)
}

// Delete godoc
// @Summary Remove a timetable slot
// @Tags Horarios
// @Param id path string true "Slot ID"
// @Success 204
// @Router /horarios/{id} [delete]
func (h *HorarioHandler) Delete(c *gin.Context) {
	if err := h.horarios.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListDeleted godoc
// @Summary List soft-deleted timetable slots
// @Tags Horarios
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /horarios/eliminados [get]
func (h *HorarioHandler) ListDeleted(c *gin.Context) {
	horarios, err := h.horarios.ListDeleted(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, horarios, nil)
}

// Restore godoc
// @Summary Restore a soft-deleted timetable slot
// @Tags Horarios
// @Produce json
// @Param id path string true "Slot ID"
// @Success 200 {object} response.Envelope
// @Router /horarios/{id}/restaurar [post]
func (h *HorarioHandler) Restore(c *gin.Context) {
	horario, err := h.horarios.Restore(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, horario, nil)
}

// Conflictos godoc
// @Summary List room collisions across the timetable
// @Tags Horarios
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /horarios/conflictos [get]
func (h *HorarioHandler) Conflictos(c *gin.Context) {
	conflictos, err := h.horarios.Conflictos(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, conflictos, nil)
}

// ListBloques godoc
// @Summary List time blocks
// @Tags Horarios
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /bloques [get]
func (h *HorarioHandler) ListBloques(c *gin.Context) {
	bloques, err := h.horarios.ListBloques(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, bloques, nil)
}

// CreateBloque godoc
// @Summary Create time block
// @Tags Horarios
// @Accept json
// @Produce json
// @Param payload body service.SaveBloqueRequest true "Block payload"
// @Success 201 {object} response.Envelope
// @Router /bloques [post]
func (h *HorarioHandler) CreateBloque(c *gin.Context) {
	var req service.SaveBloqueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	bloque, err := h.horarios.CreateBloque(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, bloque)
}

// UpdateBloque godoc
// @Summary Update time block
// @Tags Horarios
// @Accept json
// @Produce json
// @Param id path string true "Block ID"
// @Param payload body service.SaveBloqueRequest true "Block payload"
// @Success 200 {object} response.Envelope
// @Router /bloques/{id} [put]
func (h *HorarioHandler) UpdateBloque(c *gin.Context) {
	var req service.SaveBloqueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	bloque, err := h.horarios.UpdateBloque(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, bloque, nil)
}

// DeleteBloque godoc
// @Summary Soft-delete time block
// @Tags Horarios
// @Param id path string true "Block ID"
// @Success 204
// @Router /bloques/{id} [delete]
func (h *HorarioHandler) DeleteBloque(c *gin.Context) {
	if err := h.horarios.DeleteBloque(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListDeletedBloques godoc
// @Summary List soft-deleted time blocks
// @Tags Horarios
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /bloques/eliminados [get]
func (h *HorarioHandler) ListDeletedBloques(c *gin.Context) {
	bloques, err := h.horarios.ListDeletedBloques(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, bloques, nil)
}

// RestoreBloque godoc
// @Summary Restore a soft-deleted time block
// @Tags Horarios
// @Produce json
// @Param id path string true "Block ID"
// @Success 200 {object} response.Envelope
// @Router /bloques/{id}/restaurar [post]
func (h *HorarioHandler) RestoreBloque(c *gin.Context) {
	bloque, err := h.horarios.RestoreBloque(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, bloque, nil)
}
