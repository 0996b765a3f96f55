package handler

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusdev/gestion-escolar-api/internal/service"
	appErrors "github.com/campusdev/gestion-escolar-api/pkg/errors"
	"github.com/campusdev/gestion-escolar-api/pkg/response"
)

// ArchivoHandler exposes file upload and signed download endpoints.
type ArchivoHandler struct {
	archivos *service.ArchivoService
}

// NewArchivoHandler constructs ArchivoHandler.
func NewArchivoHandler(archivos *service.ArchivoService) *ArchivoHandler {
	return &ArchivoHandler{archivos: archivos}
}

// Subir godoc
// @Summary Upload a document
// @Tags Archivos
// @Accept multipart/form-data
// @Produce json
// @Param archivo formData file true "File to store"
// @Param carpeta formData string true "Destination folder"
// @Success 201 {object} response.Envelope
// @Router /archivos [post]
func (h *ArchivoHandler) Subir(c *gin.Context) {
	fileHeader, err := c.FormFile("archivo")
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "missing archivo field"))
		return
	}
	src, err := fileHeader.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read upload"))
		return
	}
	defer src.Close()

	archivo, err := h.archivos.Subir(c.PostForm("carpeta"), fileHeader.Filename, src)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, archivo)
}

// Enlace godoc
// @Summary Issue a signed download token for a stored file
// @Tags Archivos
// @Produce json
// @Param recurso query string true "Owning resource ID"
// @Param ruta query string true "Stored relative path"
// @Success 200 {object} response.Envelope
// @Router /archivos/enlace [get]
func (h *ArchivoHandler) Enlace(c *gin.Context) {
	recurso := c.Query("recurso")
	ruta := c.Query("ruta")
	if recurso == "" || ruta == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "recurso and ruta are required"))
		return
	}
	enlace, err := h.archivos.GenerarEnlace(recurso, ruta)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, enlace, nil)
}

// Descargar godoc
// @Summary Download a file with a signed token
// @Tags Archivos
// @Produce application/octet-stream
// @Param token query string true "Signed download token"
// @Success 200 {file} binary
// @Router /archivos/descargar [get]
func (h *ArchivoHandler) Descargar(c *gin.Context) {
	file, nombre, err := h.archivos.Abrir(c.Query("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", nombre))
	c.Header("Content-Type", "application/octet-stream")
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, file); err != nil {
		_ = c.Error(err)
	}
}
