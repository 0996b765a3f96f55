package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campusdev/gestion-escolar-api/internal/service"
	"github.com/campusdev/gestion-escolar-api/pkg/response"
)

// AuditoriaHandler exposes the read side of the audit trail. Records are
// written by middleware; there is no write endpoint.
type AuditoriaHandler struct {
	auditoria *service.AuditoriaService
}

// NewAuditoriaHandler constructs AuditoriaHandler.
func NewAuditoriaHandler(auditoria *service.AuditoriaService) *AuditoriaHandler {
	return &AuditoriaHandler{auditoria: auditoria}
}

// List godoc
// @Summary List recent audit records
// @Tags Auditoria
// @Produce json
// @Param usuario_id query string false "Filter by acting user"
// @Param limit query int false "Maximum records" default(50)
// @Success 200 {object} response.Envelope
// @Router /auditoria [get]
func (h *AuditoriaHandler) List(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil {
		limit = 50
	}
	registros, err := h.auditoria.List(c.Request.Context(), c.Query("usuario_id"), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, registros, nil)
}
