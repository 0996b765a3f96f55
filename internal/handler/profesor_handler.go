package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/campusdev/gestion-escolar-api/internal/models"
	"github.com/campusdev/gestion-escolar-api/internal/service"
	appErrors "github.com/campusdev/gestion-escolar-api/pkg/errors"
	"github.com/campusdev/gestion-escolar-api/pkg/response"
)

// ProfesorHandler exposes teacher endpoints.
type ProfesorHandler struct {
	profesores *service.ProfesorService
}

// NewProfesorHandler constructs ProfesorHandler.
func NewProfesorHandler(profesores *service.ProfesorService) *ProfesorHandler {
	return &ProfesorHandler{profesores: profesores}
}

// List godoc
// @Summary List teachers
// @Tags Profesores
// @Produce json
// @Param search query string false "Search by name or email"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /profesores [get]
func (h *ProfesorHandler) List(c *gin.Context) {
	var filter models.ProfesorFilter
	filter.Search = strings.TrimSpace(c.Query("search"))
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = size
	}
	filter.SortBy = c.Query("sort")
	filter.SortOrder = c.Query("order")

	profesores, pagination, err := h.profesores.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, profesores, pagination)
}

// ListDeleted godoc
// @Summary List logically deleted teachers
// @Tags Profesores
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /profesores/eliminados [get]
func (h *ProfesorHandler) ListDeleted(c *gin.Context) {
	profesores, err := h.profesores.ListDeleted(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, profesores, nil)
}

// Get godoc
// @Summary Get teacher detail
// @Tags Profesores
// @Produce json
// @Param id path string true "Teacher ID"
// @Success 200 {object} response.Envelope
// @Router /profesores/{id} [get]
func (h *ProfesorHandler) Get(c *gin.Context) {
	profesor, err := h.profesores.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, profesor, nil)
}

// Create godoc
// @Summary Create teacher
// @Tags Profesores
// @Accept json
// @Produce json
// @Param payload body service.CreateProfesorRequest true "Teacher payload"
// @Success 201 {object} response.Envelope
// @Router /profesores [post]
func (h *ProfesorHandler) Create(c *gin.Context) {
	var req service.CreateProfesorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	profesor, err := h.profesores.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, profesor)
}

// Update godoc
// @Summary Update teacher
// @Tags Profesores
// @Accept json
// @Produce json
// @Param id path string true "Teacher ID"
// @Param payload body service.UpdateProfesorRequest true "Teacher payload"
// @Success 200 {object} response.Envelope
// @Router /profesores/{id} [put]
func (h *ProfesorHandler) Update(c *gin.Context) {
	var req service.UpdateProfesorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	profesor, err := h.profesores.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, profesor, nil)
}

// Delete godoc
// @Summary Soft-delete teacher
// @Tags Profesores
// @Param id path string true "Teacher ID"
// @Success 204
// @Router /profesores/{id} [delete]
func (h *ProfesorHandler) Delete(c *gin.Context) {
	if err := h.profesores.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Restore godoc
// @Summary Restore a soft-deleted teacher
// @Tags Profesores
// @Produce json
// @Param id path string true "Teacher ID"
// @Success 200 {object} response.Envelope
// @Router /profesores/{id}/restaurar [post]
func (h *ProfesorHandler) Restore(c *gin.Context) {
	profesor, err := h.profesores.Restore(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, profesor, nil)
}
