package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/campusdev/gestion-escolar-api/internal/service"
	appErrors "github.com/campusdev/gestion-escolar-api/pkg/errors"
	"github.com/campusdev/gestion-escolar-api/pkg/response"
)

// AsignaturaHandler exposes subject endpoints.
type AsignaturaHandler struct {
	asignaturas *service.AsignaturaService
	actividades *service.ActividadService
}

// NewAsignaturaHandler constructs AsignaturaHandler.
func NewAsignaturaHandler(asignaturas *service.AsignaturaService, actividades *service.ActividadService) *AsignaturaHandler {
	return &AsignaturaHandler{asignaturas: asignaturas, actividades: actividades}
}

// List godoc
// @Summary List subjects
// @Tags Asignaturas
// @Produce json
// @Param search query string false "Search by name or code"
// @Success 200 {object} response.Envelope
// @Router /asignaturas [get]
func (h *AsignaturaHandler) List(c *gin.Context) {
	asignaturas, err := h.asignaturas.List(c.Request.Context(), strings.TrimSpace(c.Query("search")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, asignaturas, nil)
}

// ListDeleted godoc
// @Summary List logically deleted subjects
// @Tags Asignaturas
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /asignaturas/eliminados [get]
func (h *AsignaturaHandler) ListDeleted(c *gin.Context) {
	asignaturas, err := h.asignaturas.ListDeleted(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, asignaturas, nil)
}

// Get godoc
// @Summary Get subject detail
// @Tags Asignaturas
// @Produce json
// @Param id path string true "Subject ID"
// @Success 200 {object} response.Envelope
// @Router /asignaturas/{id} [get]
func (h *AsignaturaHandler) Get(c *gin.Context) {
	asignatura, err := h.asignaturas.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, asignatura, nil)
}

// Create godoc
// @Summary Create subject
// @Tags Asignaturas
// @Accept json
// @Produce json
// @Param payload body service.CreateAsignaturaRequest true "Subject payload"
// @Success 201 {object} response.Envelope
// @Router /asignaturas [post]
func (h *AsignaturaHandler) Create(c *gin.Context) {
	var req service.CreateAsignaturaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	asignatura, err := h.asignaturas.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, asignatura)
}

// Update godoc
// @Summary Update subject
// @Tags Asignaturas
// @Accept json
// @Produce json
// @Param id path string true "Subject ID"
// @Param payload body service.UpdateAsignaturaRequest true "Subject payload"
// @Success 200 {object} response.Envelope
// @Router /asignaturas/{id} [put]
func (h *AsignaturaHandler) Update(c *gin.Context) {
	var req service.UpdateAsignaturaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	asignatura, err := h.asignaturas.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, asignatura, nil)
}

// Delete godoc
// @Summary Soft-delete subject
// @Tags Asignaturas
// @Param id path string true "Subject ID"
// @Success 204
// @Router /asignaturas/{id} [delete]
func (h *AsignaturaHandler) Delete(c *gin.Context) {
	if err := h.asignaturas.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Restore godoc
// @Summary Restore a soft-deleted subject
// @Tags Asignaturas
// @Produce json
// @Param id path string true "Subject ID"
// @Success 200 {object} response.Envelope
// @Router /asignaturas/{id}/restaurar [post]
func (h *AsignaturaHandler) Restore(c *gin.Context) {
	asignatura, err := h.asignaturas.Restore(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, asignatura, nil)
}

// Actividades godoc
// @Summary List assignments of a subject
// @Tags Asignaturas
// @Produce json
// @Param id path string true "Subject ID"
// @Success 200 {object} response.Envelope
// @Router /asignaturas/{id}/actividades [get]
func (h *AsignaturaHandler) Actividades(c *gin.Context) {
	actividades, err := h.actividades.ListByAsignatura(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, actividades, nil)
}
