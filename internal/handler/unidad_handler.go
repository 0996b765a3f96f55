package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusdev/gestion-escolar-api/internal/service"
	appErrors "github.com/campusdev/gestion-escolar-api/pkg/errors"
	"github.com/campusdev/gestion-escolar-api/pkg/response"
)

// UnidadHandler exposes content unit and topic endpoints.
type UnidadHandler struct {
	unidades *service.UnidadService
}

// NewUnidadHandler constructs UnidadHandler.
func NewUnidadHandler(unidades *service.UnidadService) *UnidadHandler {
	return &UnidadHandler{unidades: unidades}
}

// ListByCurso godoc
// @Summary List content units of an offering
// @Tags Unidades
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /cursos/{id}/unidades [get]
func (h *UnidadHandler) ListByCurso(c *gin.Context) {
	unidades, err := h.unidades.ListByCurso(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, unidades, nil)
}

// Create godoc
// @Summary Add a content unit to an offering
// @Tags Unidades
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param payload body service.SaveUnidadRequest true "Unit payload"
// @Success 201 {object} response.Envelope
// @Router /cursos/{id}/unidades [post]
func (h *UnidadHandler) Create(c *gin.Context) {
	var req service.SaveUnidadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	unidad, err := h.unidades.Create(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, unidad)
}

// Get godoc
// @Summary Get unit detail
// @Tags Unidades
// @Produce json
// @Param id path string true "Unit ID"
// @Success 200 {object} response.Envelope
// @Router /unidades/{id} [get]
func (h *UnidadHandler) Get(c *gin.Context) {
	unidad, err := h.unidades.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, unidad, nil)
}

// Update godoc
// @Summary Update unit
// @Tags Unidades
// @Accept json
// @Produce json
// @Param id path string true "Unit ID"
// @Param payload body service.SaveUnidadRequest true "Unit payload"
// @Success 200 {object} response.Envelope
// @Router /unidades/{id} [put]
func (h *UnidadHandler) Update(c *gin.Context) {
	var req service.SaveUnidadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	unidad, err := h.unidades.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, unidad, nil)
}

// Delete godoc
// @Summary Soft-delete unit
// @Tags Unidades
// @Param id path string true "Unit ID"
// @Success 204
// @Router /unidades/{id} [delete]
func (h *UnidadHandler) Delete(c *gin.Context) {
	if err := h.unidades.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListDeleted godoc
// @Summary List soft-deleted units
// @Tags Unidades
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /unidades/eliminados [get]
func (h *UnidadHandler) ListDeleted(c *gin.Context) {
	unidades, err := h.unidades.ListDeleted(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, unidades, nil)
}

// Restore godoc
// @Summary Restore a soft-deleted unit
// @Tags Unidades
// @Produce json
// @Param id path string true "Unit ID"
// @Success 200 {object} response.Envelope
// @Router /unidades/{id}/restaurar [post]
func (h *UnidadHandler) Restore(c *gin.Context) {
	unidad, err := h.unidades.Restore(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, unidad, nil)
}

// ListTemas godoc
// @Summary List topics of a unit
// @Tags Unidades
// @Produce json
// @Param id path string true "Unit ID"
// @Success 200 {object} response.Envelope
// @Router /unidades/{id}/temas [get]
func (h *UnidadHandler) ListTemas(c *gin.Context) {
	temas, err := h.unidades.ListTemas(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, temas, nil)
}

// CreateTema godoc
// @Summary Add a topic to a unit
// @Tags Unidades
// @Accept json
// @Produce json
// @Param id path string true "Unit ID"
// @Param payload body service.SaveTemaRequest true "Topic payload"
// @Success 201 {object} response.Envelope
// @Router /unidades/{id}/temas [post]
func (h *UnidadHandler) CreateTema(c *gin.Context) {
	var req service.SaveTemaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	tema, err := h.unidades.CreateTema(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, tema)
}

// UpdateTema godoc
// @Summary Update topic
// @Tags Unidades
// @Accept json
// @Produce json
// @Param id path string true "Topic ID"
// @Param payload body service.SaveTemaRequest true "Topic payload"
// @Success 200 {object} response.Envelope
// @Router /temas/{id} [put]
func (h *UnidadHandler) UpdateTema(c *gin.Context) {
	var req service.SaveTemaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	tema, err := h.unidades.UpdateTema(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, tema, nil)
}

// DeleteTema godoc
// @Summary Soft-delete topic
// @Tags Unidades
// @Param id path string true "Topic ID"
// @Success 204
// @Router /temas/{id} [delete]
func (h *UnidadHandler) DeleteTema(c *gin.Context) {
	if err := h.unidades.DeleteTema(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListDeletedTemas godoc
// @Summary List soft-deleted topics
// @Tags Unidades
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /temas/eliminados [get]
func (h *UnidadHandler) ListDeletedTemas(c *gin.Context) {
	temas, err := h.unidades.ListDeletedTemas(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, temas, nil)
}

// RestoreTema godoc
// @Summary Restore a soft-deleted topic
// @Tags Unidades
// @Produce json
// @Param id path string true "Topic ID"
// @Success 200 {object} response.Envelope
// @Router /temas/{id}/restaurar [post]
func (h *UnidadHandler) RestoreTema(c *gin.Context) {
	tema, err := h.unidades.RestoreTema(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, tema, nil)
}
