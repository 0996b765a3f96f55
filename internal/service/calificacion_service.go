package service

import (
	"context"
	"database/sql"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campusdev/gestion-escolar-api/internal/models"
	appErrors "github.com/campusdev/gestion-escolar-api/pkg/errors"
)

type calificacionRepository interface {
	ListByEvaluacion(ctx context.Context, evaluacionID string) ([]models.Calificacion, error)
	ListByEstudianteCurso(ctx context.Context, estudianteID, cursoID string) ([]models.CalificacionDetail, error)
	ListByRango(ctx context.Context, cursoID string, min, max float64) ([]models.CalificacionDetail, error)
	FindByID(ctx context.Context, id string) (*models.Calificacion, error)
	Exists(ctx context.Context, evaluacionID, estudianteID string) (bool, error)
	PromedioEstudiante(ctx context.Context, estudianteID, cursoID string) (*float64, error)
	Create(ctx context.Context, calificacion *models.Calificacion) error
	Update(ctx context.Context, calificacion *models.Calificacion) error
	SoftDelete(ctx context.Context, id string) error
	ListDeleted(ctx context.Context) ([]models.Calificacion, error)
	Restore(ctx context.Context, id string) error
}

type calificacionEvaluacionLookup interface {
	FindByID(ctx context.Context, id string) (*models.Evaluacion, error)
}

type calificacionEstudianteLookup interface {
	FindByID(ctx context.Context, id string) (*models.Estudiante, error)
}

// RegistrarCalificacionRequest holds payload for recording a grade. Nota
// lives in the closed interval [0,100].
type RegistrarCalificacionRequest struct {
	EvaluacionID string  `json:"evaluacion_id" validate:"required,uuid4"`
	EstudianteID string  `json:"estudiante_id" validate:"required,uuid4"`
	Nota         float64 `json:"nota" validate:"gte=0,lte=100"`
	Observacion  string  `json:"observacion" validate:"max=255"`
}

// ActualizarCalificacionRequest holds payload for replacing a grade.
type ActualizarCalificacionRequest struct {
	Nota        float64 `json:"nota" validate:"gte=0,lte=100"`
	Observacion string  `json:"observacion" validate:"max=255"`
}

// PromedioEstudiante reports the unweighted average for one student. CursoID
// is empty when the average spans every course. Promedio is nil when no grade
// exists.
type PromedioEstudiante struct {
	EstudianteID string   `json:"estudiante_id"`
	CursoID      string   `json:"curso_id,omitempty"`
	Promedio     *float64 `json:"promedio"`
}

// CalificacionService handles grade use-cases.
type CalificacionService struct {
	repo         calificacionRepository
	evaluaciones calificacionEvaluacionLookup
	estudiantes  calificacionEstudianteLookup
	validator    *validator.Validate
	logger       *zap.Logger
}

// NewCalificacionService constructs the grade service.
func NewCalificacionService(repo calificacionRepository, evaluaciones calificacionEvaluacionLookup, estudiantes calificacionEstudianteLookup, validate *validator.Validate, logger *zap.Logger) *CalificacionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CalificacionService{repo: repo, evaluaciones: evaluaciones, estudiantes: estudiantes, validator: validate, logger: logger}
}

// ListByEvaluacion returns active grades of one assessment.
func (s *CalificacionService) ListByEvaluacion(ctx context.Context, evaluacionID string) ([]models.Calificacion, error) {
	calificaciones, err := s.repo.ListByEvaluacion(ctx, evaluacionID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list calificaciones")
	}
	return calificaciones, nil
}

// ListByEstudianteCurso returns a student's grades across one course.
func (s *CalificacionService) ListByEstudianteCurso(ctx context.Context, estudianteID, cursoID string) ([]models.CalificacionDetail, error) {
	calificaciones, err := s.repo.ListByEstudianteCurso(ctx, estudianteID, cursoID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list calificaciones")
	}
	return calificaciones, nil
}

// ListByRango returns a course's grades inside [min, max], both inclusive.
func (s *CalificacionService) ListByRango(ctx context.Context, cursoID string, min, max float64) ([]models.CalificacionDetail, error) {
	if min > max {
		return nil, appErrors.Clone(appErrors.ErrValidation, "min must not exceed max")
	}
	calificaciones, err := s.repo.ListByRango(ctx, cursoID, min, max)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list calificaciones por rango")
	}
	return calificaciones, nil
}

// Registrar records a grade. One active grade per (evaluacion, estudiante).
func (s *CalificacionService) Registrar(ctx context.Context, req RegistrarCalificacionRequest) (*models.Calificacion, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid calificacion payload")
	}
	if _, err := s.evaluaciones.FindByID(ctx, req.EvaluacionID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NotFoundEntity("evaluacion", "id", req.EvaluacionID)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load evaluacion")
	}
	if _, err := s.estudiantes.FindByID(ctx, req.EstudianteID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NotFoundEntity("estudiante", "id", req.EstudianteID)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load estudiante")
	}
	exists, err := s.repo.Exists(ctx, req.EvaluacionID, req.EstudianteID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check calificacion")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "calificacion already recorded for estudiante in evaluacion")
	}
	calificacion := &models.Calificacion{
		EvaluacionID: req.EvaluacionID,
		EstudianteID: req.EstudianteID,
		Nota:         req.Nota,
		Observacion:  req.Observacion,
	}
	if err := s.repo.Create(ctx, calificacion); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create calificacion")
	}
	return calificacion, nil
}

// Actualizar replaces the score and note of a grade.
func (s *CalificacionService) Actualizar(ctx context.Context, id string, req ActualizarCalificacionRequest) (*models.Calificacion, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid calificacion payload")
	}
	calificacion, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NotFoundEntity("calificacion", "id", id)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load calificacion")
	}
	calificacion.Nota = req.Nota
	calificacion.Observacion = req.Observacion
	if err := s.repo.Update(ctx, calificacion); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update calificacion")
	}
	return calificacion, nil
}

// Delete soft-deletes a grade, removing it from averages.
func (s *CalificacionService) Delete(ctx context.Context, id string) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.NotFoundEntity("calificacion", "id", id)
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete calificacion")
	}
	return nil
}

// CalcularPromedioEstudiante computes the unweighted average of a student's
// grades. An empty cursoID averages across every course the student holds
// grades in. A student with no grades yields a nil promedio, never zero.
func (s *CalificacionService) CalcularPromedioEstudiante(ctx context.Context, estudianteID, cursoID string) (*PromedioEstudiante, error) {
	promedio, err := s.repo.PromedioEstudiante(ctx, estudianteID, cursoID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to compute promedio")
	}
	return &PromedioEstudiante{EstudianteID: estudianteID, CursoID: cursoID, Promedio: promedio}, nil
}

// ListDeleted returns soft-deleted grades.
func (s *CalificacionService) ListDeleted(ctx context.Context) ([]models.Calificacion, error) {
	calificaciones, err := s.repo.ListDeleted(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list deleted calificaciones")
	}
	return calificaciones, nil
}

// Restore revives a soft-deleted grade, putting it back into averages.
func (s *CalificacionService) Restore(ctx context.Context, id string) (*models.Calificacion, error) {
	if err := s.repo.Restore(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NotFoundEntity("calificacion eliminada", "id", id)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to restore calificacion")
	}
	calificacion, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load calificacion")
	}
	return calificacion, nil
}
