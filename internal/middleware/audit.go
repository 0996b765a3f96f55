package middleware

import (
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campusdev/gestion-escolar-api/internal/models"
	"github.com/campusdev/gestion-escolar-api/internal/service"
)

// Audit records an audit event for every mutating request that succeeds.
// Reads pass through untouched; failed audit writes never fail the request.
func Audit(auditoria *service.AuditoriaService) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now().UTC()
		c.Next()

		switch c.Request.Method {
		case "POST", "PUT", "PATCH", "DELETE":
		default:
			return
		}
		if c.Writer.Status() >= 400 {
			return
		}

		var usuarioID *string
		if claims, ok := CurrentClaims(c); ok {
			usuarioID = &claims.UsuarioID
		}

		cuerpo, _ := json.Marshal(map[string]interface{}{
			"path":    c.FullPath(),
			"status":  c.Writer.Status(),
			"latency": time.Since(start).Milliseconds(),
		})

		auditoria.Registrar(c.Request.Context(), &models.RegistroAuditoria{
			UsuarioID:   usuarioID,
			Accion:      c.Request.Method,
			Endpoint:    c.Request.URL.Path,
			IPAddress:   c.ClientIP(),
			Dispositivo: c.GetHeader("User-Agent"),
			Cuerpo:      cuerpo,
		})
	}
}
