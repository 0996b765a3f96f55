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

// UsuarioHandler exposes account endpoints.
type UsuarioHandler struct {
	usuarios *service.UsuarioService
}

// NewUsuarioHandler constructs UsuarioHandler.
func NewUsuarioHandler(usuarios *service.UsuarioService) *UsuarioHandler {
	return &UsuarioHandler{usuarios: usuarios}
}

// List godoc
// @Summary List accounts
// @Tags Usuarios
// @Produce json
// @Param search query string false "Search by username, email or name"
// @Param rol_id query string false "Filter by role"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /usuarios [get]
func (h *UsuarioHandler) List(c *gin.Context) {
	var filter models.UsuarioFilter
	filter.Search = strings.TrimSpace(c.Query("search"))
	filter.RolID = c.Query("rol_id")
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = size
	}
	filter.SortBy = c.Query("sort")
	filter.SortOrder = c.Query("order")

	usuarios, pagination, err := h.usuarios.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, usuarios, pagination)
}

// ListDeleted godoc
// @Summary List logically deleted accounts
// @Tags Usuarios
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /usuarios/eliminados [get]
func (h *UsuarioHandler) ListDeleted(c *gin.Context) {
	usuarios, err := h.usuarios.ListDeleted(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, usuarios, nil)
}

// Get godoc
// @Summary Get account detail
// @Tags Usuarios
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} response.Envelope
// @Router /usuarios/{id} [get]
func (h *UsuarioHandler) Get(c *gin.Context) {
	usuario, err := h.usuarios.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, usuario, nil)
}

// Create godoc
// @Summary Create account
// @Tags Usuarios
// @Accept json
// @Produce json
// @Param payload body service.CreateUsuarioRequest true "Account payload"
// @Success 201 {object} response.Envelope
// @Router /usuarios [post]
func (h *UsuarioHandler) Create(c *gin.Context) {
	var req service.CreateUsuarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	usuario, err := h.usuarios.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, usuario)
}

// Update godoc
// @Summary Update account
// @Tags Usuarios
// @Accept json
// @Produce json
// @Param id path string true "Account ID"
// @Param payload body service.UpdateUsuarioRequest true "Account payload"
// @Success 200 {object} response.Envelope
// @Router /usuarios/{id} [put]
func (h *UsuarioHandler) Update(c *gin.Context) {
	var req service.UpdateUsuarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	usuario, err := h.usuarios.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, usuario, nil)
}

// Delete godoc
// @Summary Soft-delete account
// @Tags Usuarios
// @Param id path string true "Account ID"
// @Success 204
// @Router /usuarios/{id} [delete]
func (h *UsuarioHandler) Delete(c *gin.Context) {
	if err := h.usuarios.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Restore godoc
// @Summary Restore a soft-deleted account
// @Tags Usuarios
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} response.Envelope
// @Router /usuarios/{id}/restaurar [post]
func (h *UsuarioHandler) Restore(c *gin.Context) {
	usuario, err := h.usuarios.Restore(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, usuario, nil)
}
