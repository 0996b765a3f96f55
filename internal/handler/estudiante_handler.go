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

// EstudianteHandler exposes student endpoints.
type EstudianteHandler struct {
	estudiantes *service.EstudianteService
}

// NewEstudianteHandler constructs EstudianteHandler.
func NewEstudianteHandler(estudiantes *service.EstudianteService) *EstudianteHandler {
	return &EstudianteHandler{estudiantes: estudiantes}
}

// List godoc
// @Summary List students
// @Tags Estudiantes
// @Produce json
// @Param search query string false "Search by name or code"
// @Param curso_id query string false "Only students actively enrolled in the course"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /estudiantes [get]
func (h *EstudianteHandler) List(c *gin.Context) {
	var filter models.EstudianteFilter
	filter.Search = strings.TrimSpace(c.Query("search"))
	filter.CursoID = c.Query("curso_id")
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = size
	}
	filter.SortBy = c.Query("sort")
	filter.SortOrder = c.Query("order")

	estudiantes, pagination, err := h.estudiantes.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, estudiantes, pagination)
}

// ListDeleted godoc
// @Summary List logically deleted students
// @Tags Estudiantes
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /estudiantes/eliminados [get]
func (h *EstudianteHandler) ListDeleted(c *gin.Context) {
	estudiantes, err := h.estudiantes.ListDeleted(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, estudiantes, nil)
}

// Get godoc
// @Summary Get student detail
// @Tags Estudiantes
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /estudiantes/{id} [get]
func (h *EstudianteHandler) Get(c *gin.Context) {
	estudiante, err := h.estudiantes.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, estudiante, nil)
}

// Create godoc
// @Summary Create student
// @Tags Estudiantes
// @Accept json
// @Produce json
// @Param payload body service.CreateEstudianteRequest true "Student payload"
// @Success 201 {object} response.Envelope
// @Router /estudiantes [post]
func (h *EstudianteHandler) Create(c *gin.Context) {
	var req service.CreateEstudianteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	estudiante, err := h.estudiantes.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, estudiante)
}

// Update godoc
// @Summary Update student
// @Tags Estudiantes
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param payload body service.UpdateEstudianteRequest true "Student payload"
// @Success 200 {object} response.Envelope
// @Router /estudiantes/{id} [put]
func (h *EstudianteHandler) Update(c *gin.Context) {
	var req service.UpdateEstudianteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	estudiante, err := h.estudiantes.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, estudiante, nil)
}

// Delete godoc
// @Summary Soft-delete student
// @Tags Estudiantes
// @Param id path string true "Student ID"
// @Success 204
// @Router /estudiantes/{id} [delete]
func (h *EstudianteHandler) Delete(c *gin.Context) {
	if err := h.estudiantes.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Restore godoc
// @Summary Restore a soft-deleted student
// @Tags Estudiantes
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /estudiantes/{id}/restaurar [post]
func (h *EstudianteHandler) Restore(c *gin.Context) {
	estudiante, err := h.estudiantes.Restore(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, estudiante, nil)
}
