package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campusdev/gestion-escolar-api/internal/models"
	"github.com/campusdev/gestion-escolar-api/internal/service"
	appErrors "github.com/campusdev/gestion-escolar-api/pkg/errors"
	"github.com/campusdev/gestion-escolar-api/pkg/response"
)

// CursoHandler exposes course offering endpoints plus the per-course nested
// collections (timetable, assessments, weighting categories).
type CursoHandler struct {
	cursos        *service.CursoService
	horarios      *service.HorarioService
	evaluaciones  *service.EvaluacionService
	ponderaciones *service.PonderacionService
}

// NewCursoHandler constructs CursoHandler.
func NewCursoHandler(cursos *service.CursoService, horarios *service.HorarioService, evaluaciones *service.EvaluacionService, ponderaciones *service.PonderacionService) *CursoHandler {
	return &CursoHandler{cursos: cursos, horarios: horarios, evaluaciones: evaluaciones, ponderaciones: ponderaciones}
}

// List godoc
// @Summary List course offerings
// @Tags Cursos
// @Produce json
// @Param asignatura_id query string false "Filter by subject"
// @Param profesor_id query string false "Filter by teacher"
// @Param periodo_id query string false "Filter by period"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /cursos [get]
func (h *CursoHandler) List(c *gin.Context) {
	var filter models.CursoFilter
	filter.AsignaturaID = c.Query("asignatura_id")
	filter.ProfesorID = c.Query("profesor_id")
	filter.PeriodoID = c.Query("periodo_id")
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = size
	}
	filter.SortBy = c.Query("sort")
	filter.SortOrder = c.Query("order")

	cursos, pagination, err := h.cursos.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, cursos, pagination)
}

// ListDeleted godoc
// @Summary List logically deleted offerings
// @Tags Cursos
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /cursos/eliminados [get]
func (h *CursoHandler) ListDeleted(c *gin.Context) {
	cursos, err := h.cursos.ListDeleted(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, cursos, nil)
}

// ConCupo godoc
// @Summary List offerings with their live enrollment count
// @Tags Cursos
// @Produce json
// @Param periodo_id query string false "Filter by period"
// @Success 200 {object} response.Envelope
// @Router /cursos/con-cupo [get]
func (h *CursoHandler) ConCupo(c *gin.Context) {
	cursos, err := h.cursos.ListConCupo(c.Request.Context(), c.Query("periodo_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, cursos, nil)
}

// Get godoc
// @Summary Get offering detail
// @Tags Cursos
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /cursos/{id} [get]
func (h *CursoHandler) Get(c *gin.Context) {
	curso, err := h.cursos.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, curso, nil)
}

// Create godoc
// @Summary Create offering
// @Tags Cursos
// @Accept json
// @Produce json
// @Param payload body service.CreateCursoRequest true "Course payload"
// @Success 201 {object} response.Envelope
// @Router /cursos [post]
func (h *CursoHandler) Create(c *gin.Context) {
	var req service.CreateCursoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	curso, err := h.cursos.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, curso)
}

// Update godoc
// @Summary Update offering
// @Tags Cursos
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param payload body service.UpdateCursoRequest true "Course payload"
// @Success 200 {object} response.Envelope
// @Router /cursos/{id} [put]
func (h *CursoHandler) Update(c *gin.Context) {
	var req service.UpdateCursoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	curso, err := h.cursos.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, curso, nil)
}

// Delete godoc
// @Summary Soft-delete offering
// @Tags Cursos
// @Param id path string true "Course ID"
// @Success 204
// @Router /cursos/{id} [delete]
func (h *CursoHandler) Delete(c *gin.Context) {
	if err := h.cursos.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Restore godoc
// @Summary Restore a soft-deleted offering
// @Tags Cursos
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /cursos/{id}/restaurar [post]
func (h *CursoHandler) Restore(c *gin.Context) {
	curso, err := h.cursos.Restore(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, curso, nil)
}

// Horarios godoc
// @Summary List timetable slots of an offering
// @Tags Cursos
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /cursos/{id}/horarios [get]
func (h *CursoHandler) Horarios(c *gin.Context) {
	horarios, err := h.horarios.ListByCurso(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, horarios, nil)
}

// CreateHorario godoc
// @Summary Place the offering into a timetable slot
// @Tags Cursos
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param payload body service.SaveHorarioRequest true "Slot payload"
// @Success 201 {object} response.Envelope
// @Router /cursos/{id}/horarios [post]
func (h *CursoHandler) CreateHorario(c *gin.Context) {
	var req service.SaveHorarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	horario, err := h.horarios.Create(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, horario)
}

// Evaluaciones godoc
// @Summary List assessments of an offering
// @Tags Cursos
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /cursos/{id}/evaluaciones [get]
func (h *CursoHandler) Evaluaciones(c *gin.Context) {
	evaluaciones, err := h.evaluaciones.ListByCurso(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, evaluaciones, nil)
}

// Ponderaciones godoc
// @Summary List weighting categories of an offering
// @Tags Cursos
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /cursos/{id}/ponderaciones [get]
func (h *CursoHandler) Ponderaciones(c *gin.Context) {
	ponderaciones, err := h.ponderaciones.ListByCurso(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, ponderaciones, nil)
}

// CreatePonderacion godoc
// @Summary Add a weighting category to an offering
// @Tags Cursos
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param payload body service.SavePonderacionRequest true "Weighting payload"
// @Success 201 {object} response.Envelope
// @Router /cursos/{id}/ponderaciones [post]
func (h *CursoHandler) CreatePonderacion(c *gin.Context) {
	var req service.SavePonderacionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	ponderacion, err := h.ponderaciones.Create(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, ponderacion)
}

// ResumenPonderaciones godoc
// @Summary Report the weight total of an offering
// @Tags Cursos
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /cursos/{id}/ponderaciones/resumen [get]
func (h *CursoHandler) ResumenPonderaciones(c *gin.Context) {
	resumen, err := h.ponderaciones.Resumen(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resumen, nil)
}
