package service

import (
	"context"
	"database/sql"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campusdev/gestion-escolar-api/internal/models"
	appErrors "github.com/campusdev/gestion-escolar-api/pkg/errors"
)

type asistenciaRepository interface {
	ListByClase(ctx context.Context, claseID string) ([]models.AsistenciaDetail, error)
	ListByEstudianteCurso(ctx context.Context, estudianteID, cursoID string) ([]models.AsistenciaDetail, error)
	FindByID(ctx context.Context, id string) (*models.Asistencia, error)
	Exists(ctx context.Context, claseID, estudianteID string) (bool, error)
	Create(ctx context.Context, asistencia *models.Asistencia) error
	Update(ctx context.Context, asistencia *models.Asistencia) error
	SoftDelete(ctx context.Context, id string) error
	ListDeleted(ctx context.Context) ([]models.Asistencia, error)
	Restore(ctx context.Context, id string) error
	ResumenEstudianteCurso(ctx context.Context, estudianteID, cursoID string) (map[models.EstadoAsistencia]int, error)
}

type asistenciaClaseLookup interface {
	FindByID(ctx context.Context, id string) (*models.Clase, error)
}

type asistenciaEstudianteLookup interface {
	FindByID(ctx context.Context, id string) (*models.Estudiante, error)
}

// RegistrarAsistenciaRequest holds payload for recording attendance.
type RegistrarAsistenciaRequest struct {
	ClaseID      string                  `json:"clase_id" validate:"required,uuid4"`
	EstudianteID string                  `json:"estudiante_id" validate:"required,uuid4"`
	Estado       models.EstadoAsistencia `json:"estado" validate:"required"`
	Observacion  string                  `json:"observacion" validate:"max=255"`
}

// ActualizarAsistenciaRequest holds payload for changing an attendance state.
type ActualizarAsistenciaRequest struct {
	Estado      models.EstadoAsistencia `json:"estado" validate:"required"`
	Observacion string                  `json:"observacion" validate:"max=255"`
}

// ResumenAsistencia aggregates a student's attendance for a course.
type ResumenAsistencia struct {
	EstudianteID string                          `json:"estudiante_id"`
	CursoID      string                          `json:"curso_id"`
	Totales      map[models.EstadoAsistencia]int `json:"totales"`
}

// AsistenciaService handles attendance use-cases.
type AsistenciaService struct {
	repo        asistenciaRepository
	clases      asistenciaClaseLookup
	estudiantes asistenciaEstudianteLookup
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewAsistenciaService constructs the attendance service.
func NewAsistenciaService(repo asistenciaRepository, clases asistenciaClaseLookup, estudiantes asistenciaEstudianteLookup, validate *validator.Validate, logger *zap.Logger) *AsistenciaService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AsistenciaService{repo: repo, clases: clases, estudiantes: estudiantes, validator: validate, logger: logger}
}

// ListByClase returns a session's attendance sheet.
func (s *AsistenciaService) ListByClase(ctx context.Context, claseID string) ([]models.AsistenciaDetail, error) {
	asistencias, err := s.repo.ListByClase(ctx, claseID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list asistencias")
	}
	return asistencias, nil
}

// ListByEstudianteCurso returns a student's attendance across one course.
func (s *AsistenciaService) ListByEstudianteCurso(ctx context.Context, estudianteID, cursoID string) ([]models.AsistenciaDetail, error) {
	asistencias, err := s.repo.ListByEstudianteCurso(ctx, estudianteID, cursoID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list asistencias")
	}
	return asistencias, nil
}

// Registrar records attendance for one student in one session. A session
// admits a single active row per student.
func (s *AsistenciaService) Registrar(ctx context.Context, req RegistrarAsistenciaRequest) (*models.Asistencia, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid asistencia payload")
	}
	if !req.Estado.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown asistencia estado")
	}
	if _, err := s.clases.FindByID(ctx, req.ClaseID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NotFoundEntity("clase", "id", req.ClaseID)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load clase")
	}
	if _, err := s.estudiantes.FindByID(ctx, req.EstudianteID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NotFoundEntity("estudiante", "id", req.EstudianteID)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load estudiante")
	}
	exists, err := s.repo.Exists(ctx, req.ClaseID, req.EstudianteID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check asistencia")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "asistencia already recorded for estudiante in clase")
	}
	asistencia := &models.Asistencia{
		ClaseID:      req.ClaseID,
		EstudianteID: req.EstudianteID,
		Estado:       req.Estado,
		Observacion:  req.Observacion,
	}
	if err := s.repo.Create(ctx, asistencia); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create asistencia")
	}
	return asistencia, nil
}

// Actualizar replaces the state of an attendance row. Any state can follow
// any other; there is no transition graph.
func (s *AsistenciaService) Actualizar(ctx context.Context, id string, req ActualizarAsistenciaRequest) (*models.Asistencia, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid asistencia payload")
	}
	if !req.Estado.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown asistencia estado")
	}
	asistencia, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NotFoundEntity("asistencia", "id", id)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load asistencia")
	}
	asistencia.Estado = req.Estado
	asistencia.Observacion = req.Observacion
	if err := s.repo.Update(ctx, asistencia); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update asistencia")
	}
	return asistencia, nil
}

// Delete soft-deletes an attendance row.
func (s *AsistenciaService) Delete(ctx context.Context, id string) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.NotFoundEntity("asistencia", "id", id)
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete asistencia")
	}
	return nil
}

// ListDeleted returns soft-deleted attendance rows.
func (s *AsistenciaService) ListDeleted(ctx context.Context) ([]models.Asistencia, error) {
	asistencias, err := s.repo.ListDeleted(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list deleted asistencias")
	}
	return asistencias, nil
}

// Restore revives a soft-deleted attendance row.
func (s *AsistenciaService) Restore(ctx context.Context, id string) (*models.Asistencia, error) {
	if err := s.repo.Restore(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NotFoundEntity("asistencia eliminada", "id", id)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to restore asistencia")
	}
	asistencia, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load asistencia")
	}
	return asistencia, nil
}

// Resumen aggregates a student's attendance counts per state for one course.
func (s *AsistenciaService) Resumen(ctx context.Context, estudianteID, cursoID string) (*ResumenAsistencia, error) {
	totales, err := s.repo.ResumenEstudianteCurso(ctx, estudianteID, cursoID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to build resumen asistencia")
	}
	return &ResumenAsistencia{EstudianteID: estudianteID, CursoID: cursoID, Totales: totales}, nil
}
