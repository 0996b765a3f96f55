package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	_ "github.com/campusdev/gestion-escolar-api/api/swagger"
	"github.com/campusdev/gestion-escolar-api/internal/handler"
	"github.com/campusdev/gestion-escolar-api/internal/repository"
	"github.com/campusdev/gestion-escolar-api/internal/service"
	"github.com/campusdev/gestion-escolar-api/pkg/config"
	"github.com/campusdev/gestion-escolar-api/pkg/database"
	"github.com/campusdev/gestion-escolar-api/pkg/logger"
	"github.com/campusdev/gestion-escolar-api/pkg/storage"
)

// @title Gestion Escolar API
// @version 1.0.0
// @description REST backend for school administration
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close()

	localStorage, err := storage.NewLocalStorage(cfg.Archivos.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to init file storage", "error", err)
	}
	signer := storage.NewSignedURLSigner(cfg.Archivos.SignedURLSecret, cfg.Archivos.SignedURLTTL)

	validate := validator.New()

	rolRepo := repository.NewRolRepository(db)
	usuarioRepo := repository.NewUsuarioRepository(db)
	estudianteRepo := repository.NewEstudianteRepository(db)
	profesorRepo := repository.NewProfesorRepository(db)
	asignaturaRepo := repository.NewAsignaturaRepository(db)
	periodoRepo := repository.NewPeriodoRepository(db)
	cursoRepo := repository.NewCursoRepository(db)
	unidadRepo := repository.NewUnidadRepository(db)
	inscripcionRepo := repository.NewInscripcionRepository(db)
	claseRepo := repository.NewClaseRepository(db)
	asistenciaRepo := repository.NewAsistenciaRepository(db)
	evaluacionRepo := repository.NewEvaluacionRepository(db)
	calificacionRepo := repository.NewCalificacionRepository(db)
	ponderacionRepo := repository.NewPonderacionRepository(db)
	actividadRepo := repository.NewActividadRepository(db)
	horarioRepo := repository.NewHorarioRepository(db)
	reporteRepo := repository.NewReporteRepository(db)
	auditoriaRepo := repository.NewAuditoriaRepository(db)

	authSvc := service.NewAuthService(usuarioRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             cfg.JWT.Issuer,
	})
	rolSvc := service.NewRolService(rolRepo, validate, logr)
	usuarioSvc := service.NewUsuarioService(usuarioRepo, rolRepo, validate, logr)
	estudianteSvc := service.NewEstudianteService(estudianteRepo, validate, logr)
	profesorSvc := service.NewProfesorService(profesorRepo, validate, logr)
	asignaturaSvc := service.NewAsignaturaService(asignaturaRepo, validate, logr)
	periodoSvc := service.NewPeriodoService(periodoRepo, validate, logr)
	cursoSvc := service.NewCursoService(cursoRepo, asignaturaRepo, profesorRepo, periodoRepo, validate, logr)
	unidadSvc := service.NewUnidadService(unidadRepo, cursoRepo, validate, logr)
	inscripcionSvc := service.NewInscripcionService(inscripcionRepo, cursoRepo, estudianteRepo, validate, logr)
	claseSvc := service.NewClaseService(claseRepo, cursoRepo, validate, logr)
	asistenciaSvc := service.NewAsistenciaService(asistenciaRepo, claseRepo, estudianteRepo, validate, logr)
	evaluacionSvc := service.NewEvaluacionService(evaluacionRepo, cursoRepo, validate, logr)
	calificacionSvc := service.NewCalificacionService(calificacionRepo, evaluacionRepo, estudianteRepo, validate, logr)
	ponderacionSvc := service.NewPonderacionService(ponderacionRepo, cursoRepo, validate, logr)
	actividadSvc := service.NewActividadService(actividadRepo, asignaturaRepo, profesorRepo, estudianteRepo, validate, logr)
	horarioSvc := service.NewHorarioService(horarioRepo, cursoRepo, validate, logr)
	reporteSvc := service.NewReporteService(reporteRepo, estudianteRepo, cursoRepo, usuarioRepo, validate, logr)
	auditoriaSvc := service.NewAuditoriaService(auditoriaRepo, logr)
	exportSvc := service.NewExportService(reporteRepo, estudianteRepo, calificacionRepo, asistenciaRepo, nil, nil, logr)
	archivoSvc := service.NewArchivoService(localStorage, signer, logr)
	metricsSvc := service.NewMetricsService()

	handlers := routeHandlers{
		auth:           handler.NewAuthHandler(authSvc, usuarioSvc),
		roles:          handler.NewRolHandler(rolSvc),
		usuarios:       handler.NewUsuarioHandler(usuarioSvc),
		estudiantes:    handler.NewEstudianteHandler(estudianteSvc),
		profesores:     handler.NewProfesorHandler(profesorSvc),
		asignaturas:    handler.NewAsignaturaHandler(asignaturaSvc, actividadSvc),
		periodos:       handler.NewPeriodoHandler(periodoSvc),
		cursos:         handler.NewCursoHandler(cursoSvc, horarioSvc, evaluacionSvc, ponderacionSvc),
		unidades:       handler.NewUnidadHandler(unidadSvc),
		inscripciones:  handler.NewInscripcionHandler(inscripcionSvc),
		clases:         handler.NewClaseHandler(claseSvc, asistenciaSvc),
		asistencias:    handler.NewAsistenciaHandler(asistenciaSvc),
		evaluaciones:   handler.NewEvaluacionHandler(evaluacionSvc, calificacionSvc),
		calificaciones: handler.NewCalificacionHandler(calificacionSvc),
		actividades:    handler.NewActividadHandler(actividadSvc),
		horarios:       handler.NewHorarioHandler(horarioSvc),
		ponderaciones:  handler.NewPonderacionHandler(ponderacionSvc),
		reportes:       handler.NewReporteHandler(reporteSvc),
		auditoria:      handler.NewAuditoriaHandler(auditoriaSvc),
		exports:        handler.NewExportHandler(exportSvc),
		archivos:       handler.NewArchivoHandler(archivoSvc),
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := newRouter(cfg, logr, handlers, authSvc, auditoriaSvc, metricsSvc)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
