package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/campusdev/gestion-escolar-api/internal/handler"
	"github.com/campusdev/gestion-escolar-api/internal/middleware"
	"github.com/campusdev/gestion-escolar-api/internal/service"
	"github.com/campusdev/gestion-escolar-api/pkg/config"
	"github.com/campusdev/gestion-escolar-api/pkg/logger"
	corsmiddleware "github.com/campusdev/gestion-escolar-api/pkg/middleware/cors"
	reqidmiddleware "github.com/campusdev/gestion-escolar-api/pkg/middleware/requestid"
)

type routeHandlers struct {
	auth           *handler.AuthHandler
	roles          *handler.RolHandler
	usuarios       *handler.UsuarioHandler
	estudiantes    *handler.EstudianteHandler
	profesores     *handler.ProfesorHandler
	asignaturas    *handler.AsignaturaHandler
	periodos       *handler.PeriodoHandler
	cursos         *handler.CursoHandler
	unidades       *handler.UnidadHandler
	inscripciones  *handler.InscripcionHandler
	clases         *handler.ClaseHandler
	asistencias    *handler.AsistenciaHandler
	evaluaciones   *handler.EvaluacionHandler
	calificaciones *handler.CalificacionHandler
	actividades    *handler.ActividadHandler
	horarios       *handler.HorarioHandler
	ponderaciones  *handler.PonderacionHandler
	reportes       *handler.ReporteHandler
	auditoria      *handler.AuditoriaHandler
	exports        *handler.ExportHandler
	archivos       *handler.ArchivoHandler
}

func newRouter(cfg *config.Config, logr *zap.Logger, h routeHandlers, authSvc *service.AuthService, auditoriaSvc *service.AuditoriaService, metricsSvc *service.MetricsService) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	api.POST("/auth/login", h.auth.Login)
	api.POST("/auth/refresh", h.auth.Refresh)

	// Downloads authenticate with the signed token carried in the URL.
	api.GET("/archivos/descargar", h.archivos.Descargar)

	// Tokens attribute actions (audit trail, /auth/me); they are not yet
	// required to reach the domain endpoints.
	protected := api.Group("")
	protected.Use(middleware.OptionalJWT(authSvc))
	if cfg.Auditoria.Enabled {
		protected.Use(middleware.Audit(auditoriaSvc))
	}

	// Session self-service and the audit listing do require a valid token.
	authed := protected.Group("")
	authed.Use(middleware.JWT(authSvc))
	authed.POST("/auth/logout", h.auth.Logout)
	authed.PUT("/auth/password", h.auth.ChangePassword)
	authed.GET("/auth/me", h.auth.Me)
	authed.GET("/auditoria", h.auditoria.List)

	roles := protected.Group("/roles")
	{
		roles.GET("", h.roles.List)
		roles.GET("/eliminados", h.roles.ListDeleted)
		roles.GET("/:id", h.roles.Get)
		roles.POST("", h.roles.Create)
		roles.PUT("/:id", h.roles.Update)
		roles.DELETE("/:id", h.roles.Delete)
		roles.POST("/:id/restaurar", h.roles.Restore)
	}

	usuarios := protected.Group("/usuarios")
	{
		usuarios.GET("", h.usuarios.List)
		usuarios.GET("/eliminados", h.usuarios.ListDeleted)
		usuarios.GET("/:id", h.usuarios.Get)
		usuarios.POST("", h.usuarios.Create)
		usuarios.PUT("/:id", h.usuarios.Update)
		usuarios.DELETE("/:id", h.usuarios.Delete)
		usuarios.POST("/:id/restaurar", h.usuarios.Restore)
	}

	estudiantes := protected.Group("/estudiantes")
	{
		estudiantes.GET("", h.estudiantes.List)
		estudiantes.GET("/eliminados", h.estudiantes.ListDeleted)
		estudiantes.GET("/:id", h.estudiantes.Get)
		estudiantes.POST("", h.estudiantes.Create)
		estudiantes.PUT("/:id", h.estudiantes.Update)
		estudiantes.DELETE("/:id", h.estudiantes.Delete)
		estudiantes.POST("/:id/restaurar", h.estudiantes.Restore)
		estudiantes.GET("/:id/asistencias", h.asistencias.HistorialEstudiante)
		estudiantes.GET("/:id/asistencias/resumen", h.asistencias.ResumenEstudiante)
		estudiantes.GET("/:id/calificaciones", h.calificaciones.HistorialEstudiante)
		estudiantes.GET("/:id/promedio", h.calificaciones.PromedioEstudiante)
		estudiantes.GET("/:id/boletin", h.exports.Boletin)
	}

	profesores := protected.Group("/profesores")
	{
		profesores.GET("", h.profesores.List)
		profesores.GET("/eliminados", h.profesores.ListDeleted)
		profesores.GET("/:id", h.profesores.Get)
		profesores.POST("", h.profesores.Create)
		profesores.PUT("/:id", h.profesores.Update)
		profesores.DELETE("/:id", h.profesores.Delete)
		profesores.POST("/:id/restaurar", h.profesores.Restore)
	}

	asignaturas := protected.Group("/asignaturas")
	{
		asignaturas.GET("", h.asignaturas.List)
		asignaturas.GET("/eliminados", h.asignaturas.ListDeleted)
		asignaturas.GET("/:id", h.asignaturas.Get)
		asignaturas.POST("", h.asignaturas.Create)
		asignaturas.PUT("/:id", h.asignaturas.Update)
		asignaturas.DELETE("/:id", h.asignaturas.Delete)
		asignaturas.POST("/:id/restaurar", h.asignaturas.Restore)
		asignaturas.GET("/:id/actividades", h.asignaturas.Actividades)
	}

	periodos := protected.Group("/periodos")
	{
		periodos.GET("", h.periodos.List)
		periodos.GET("/eliminados", h.periodos.ListDeleted)
		periodos.GET("/actual", h.periodos.Actual)
		periodos.GET("/:id", h.periodos.Get)
		periodos.POST("", h.periodos.Create)
		periodos.PUT("/:id", h.periodos.Update)
		periodos.DELETE("/:id", h.periodos.Delete)
		periodos.POST("/:id/restaurar", h.periodos.Restore)
	}

	cursos := protected.Group("/cursos")
	{
		cursos.GET("", h.cursos.List)
		cursos.GET("/eliminados", h.cursos.ListDeleted)
		cursos.GET("/con-cupo", h.cursos.ConCupo)
		cursos.GET("/:id", h.cursos.Get)
		cursos.POST("", h.cursos.Create)
		cursos.PUT("/:id", h.cursos.Update)
		cursos.DELETE("/:id", h.cursos.Delete)
		cursos.POST("/:id/restaurar", h.cursos.Restore)
		cursos.GET("/:id/unidades", h.unidades.ListByCurso)
		cursos.POST("/:id/unidades", h.unidades.Create)
		cursos.GET("/:id/horarios", h.cursos.Horarios)
		cursos.POST("/:id/horarios", h.cursos.CreateHorario)
		cursos.GET("/:id/evaluaciones", h.cursos.Evaluaciones)
		cursos.GET("/:id/ponderaciones", h.cursos.Ponderaciones)
		cursos.POST("/:id/ponderaciones", h.cursos.CreatePonderacion)
		cursos.GET("/:id/ponderaciones/resumen", h.cursos.ResumenPonderaciones)
		cursos.GET("/:id/calificaciones/rango", h.calificaciones.PorRango)
	}

	unidades := protected.Group("/unidades")
	{
		unidades.GET("/eliminados", h.unidades.ListDeleted)
		unidades.GET("/:id", h.unidades.Get)
		unidades.PUT("/:id", h.unidades.Update)
		unidades.DELETE("/:id", h.unidades.Delete)
		unidades.POST("/:id/restaurar", h.unidades.Restore)
		unidades.GET("/:id/temas", h.unidades.ListTemas)
		unidades.POST("/:id/temas", h.unidades.CreateTema)
	}
	protected.GET("/temas/eliminados", h.unidades.ListDeletedTemas)
	protected.PUT("/temas/:id", h.unidades.UpdateTema)
	protected.DELETE("/temas/:id", h.unidades.DeleteTema)
	protected.POST("/temas/:id/restaurar", h.unidades.RestoreTema)

	inscripciones := protected.Group("/inscripciones")
	{
		inscripciones.GET("", h.inscripciones.List)
		inscripciones.GET("/eliminados", h.inscripciones.ListDeleted)
		inscripciones.GET("/:id", h.inscripciones.Get)
		inscripciones.POST("", h.inscripciones.Create)
		inscripciones.PUT("/:id/estado", h.inscripciones.UpdateEstado)
		inscripciones.DELETE("/:id", h.inscripciones.Delete)
		inscripciones.POST("/:id/restaurar", h.inscripciones.Restore)
	}

	clases := protected.Group("/clases")
	{
		clases.GET("", h.clases.List)
		clases.GET("/eliminados", h.clases.ListDeleted)
		clases.GET("/:id", h.clases.Get)
		clases.POST("", h.clases.Create)
		clases.PUT("/:id", h.clases.Update)
		clases.DELETE("/:id", h.clases.Delete)
		clases.POST("/:id/restaurar", h.clases.Restore)
		clases.GET("/:id/asistencias", h.clases.Asistencias)
	}

	asistencias := protected.Group("/asistencias")
	{
		asistencias.GET("/eliminados", h.asistencias.ListDeleted)
		asistencias.POST("", h.asistencias.Registrar)
		asistencias.PUT("/:id", h.asistencias.Actualizar)
		asistencias.DELETE("/:id", h.asistencias.Delete)
		asistencias.POST("/:id/restaurar", h.asistencias.Restore)
	}

	evaluaciones := protected.Group("/evaluaciones")
	{
		evaluaciones.GET("/proximas", h.evaluaciones.Proximas)
		evaluaciones.GET("/eliminados", h.evaluaciones.ListDeleted)
		evaluaciones.GET("/:id", h.evaluaciones.Get)
		evaluaciones.POST("", h.evaluaciones.Create)
		evaluaciones.PUT("/:id", h.evaluaciones.Update)
		evaluaciones.DELETE("/:id", h.evaluaciones.Delete)
		evaluaciones.POST("/:id/restaurar", h.evaluaciones.Restore)
		evaluaciones.GET("/:id/calificaciones", h.evaluaciones.Calificaciones)
	}

	tipos := protected.Group("/tipos-evaluacion")
	{
		tipos.GET("", h.evaluaciones.ListTipos)
		tipos.GET("/eliminados", h.evaluaciones.ListDeletedTipos)
		tipos.POST("", h.evaluaciones.CreateTipo)
		tipos.PUT("/:id", h.evaluaciones.UpdateTipo)
		tipos.DELETE("/:id", h.evaluaciones.DeleteTipo)
		tipos.POST("/:id/restaurar", h.evaluaciones.RestoreTipo)
	}

	calificaciones := protected.Group("/calificaciones")
	{
		calificaciones.GET("/eliminados", h.calificaciones.ListDeleted)
		calificaciones.POST("", h.calificaciones.Registrar)
		calificaciones.PUT("/:id", h.calificaciones.Actualizar)
		calificaciones.DELETE("/:id", h.calificaciones.Delete)
		calificaciones.POST("/:id/restaurar", h.calificaciones.Restore)
	}

	actividades := protected.Group("/actividades")
	{
		actividades.GET("/abiertas", h.actividades.Abiertas)
		actividades.GET("/proximas", h.actividades.Proximas)
		actividades.GET("/eliminados", h.actividades.ListDeleted)
		actividades.GET("/:id", h.actividades.Get)
		actividades.POST("", h.actividades.Create)
		actividades.PUT("/:id", h.actividades.Update)
		actividades.DELETE("/:id", h.actividades.Delete)
		actividades.POST("/:id/restaurar", h.actividades.Restore)
		actividades.GET("/:id/entregas", h.actividades.Entregas)
		actividades.POST("/:id/entregas", h.actividades.CrearEntrega)
	}
	protected.GET("/entregas/eliminados", h.actividades.ListDeletedEntregas)
	protected.PUT("/entregas/:id/calificar", h.actividades.CalificarEntrega)
	protected.DELETE("/entregas/:id", h.actividades.DeleteEntrega)
	protected.POST("/entregas/:id/restaurar", h.actividades.RestoreEntrega)

	horarios := protected.Group("/horarios")
	{
		horarios.GET("/conflictos", h.horarios.Conflictos)
		horarios.GET("/eliminados", h.horarios.ListDeleted)
		horarios.PUT("/:id", h.horarios.Update)
		horarios.DELETE("/:id", h.horarios.Delete)
		horarios.POST("/:id/restaurar", h.horarios.Restore)
	}

	bloques := protected.Group("/bloques")
	{
		bloques.GET("", h.horarios.ListBloques)
		bloques.GET("/eliminados", h.horarios.ListDeletedBloques)
		bloques.POST("", h.horarios.CreateBloque)
		bloques.PUT("/:id", h.horarios.UpdateBloque)
		bloques.DELETE("/:id", h.horarios.DeleteBloque)
		bloques.POST("/:id/restaurar", h.horarios.RestoreBloque)
	}

	ponderaciones := protected.Group("/ponderaciones")
	{
		ponderaciones.GET("/eliminados", h.ponderaciones.ListDeleted)
		ponderaciones.PUT("/:id", h.ponderaciones.Update)
		ponderaciones.DELETE("/:id", h.ponderaciones.Delete)
		ponderaciones.POST("/:id/restaurar", h.ponderaciones.Restore)
	}

	reportes := protected.Group("/reportes")
	{
		reportes.GET("", h.reportes.List)
		reportes.GET("/export", h.exports.Reportes)
		reportes.GET("/eliminados", h.reportes.ListDeleted)
		reportes.GET("/:id", h.reportes.Get)
		reportes.POST("", h.reportes.Create)
		reportes.PUT("/:id", h.reportes.Update)
		reportes.DELETE("/:id", h.reportes.Delete)
		reportes.POST("/:id/restaurar", h.reportes.Restore)
	}

	archivos := protected.Group("/archivos")
	{
		archivos.POST("", h.archivos.Subir)
		archivos.GET("/enlace", h.archivos.Enlace)
	}

	return r
}
