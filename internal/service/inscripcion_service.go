package service

import (
	"context"
	"database/sql"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campusdev/gestion-escolar-api/internal/models"
	appErrors "github.com/campusdev/gestion-escolar-api/pkg/errors"
)

type inscripcionRepository interface {
	List(ctx context.Context, filter models.InscripcionFilter) ([]models.InscripcionDetail, int, error)
	FindByID(ctx context.Context, id string) (*models.InscripcionDetail, error)
	Exists(ctx context.Context, cursoID, estudianteID string) (bool, error)
	CountActivas(ctx context.Context, cursoID string) (int, error)
	Create(ctx context.Context, inscripcion *models.Inscripcion) error
	UpdateEstado(ctx context.Context, id string, estado models.EstadoInscripcion) error
	SoftDelete(ctx context.Context, id string) error
	ListDeleted(ctx context.Context) ([]models.InscripcionDetail, error)
	Restore(ctx context.Context, id string) error
}

type inscripcionCursoLookup interface {
	FindByID(ctx context.Context, id string) (*models.CursoDetail, error)
}

type inscripcionEstudianteLookup interface {
	FindByID(ctx context.Context, id string) (*models.Estudiante, error)
}

// CreateInscripcionRequest holds payload for enrolling a student.
type CreateInscripcionRequest struct {
	CursoID      string `json:"curso_id" validate:"required,uuid4"`
	EstudianteID string `json:"estudiante_id" validate:"required,uuid4"`
}

// UpdateInscripcionEstadoRequest holds payload for a state change.
type UpdateInscripcionEstadoRequest struct {
	Estado models.EstadoInscripcion `json:"estado" validate:"required"`
}

// InscripcionService handles enrollment use-cases.
type InscripcionService struct {
	repo        inscripcionRepository
	cursos      inscripcionCursoLookup
	estudiantes inscripcionEstudianteLookup
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewInscripcionService constructs the enrollment service.
func NewInscripcionService(repo inscripcionRepository, cursos inscripcionCursoLookup, estudiantes inscripcionEstudianteLookup, validate *validator.Validate, logger *zap.Logger) *InscripcionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InscripcionService{repo: repo, cursos: cursos, estudiantes: estudiantes, validator: validate, logger: logger}
}

// List returns enrollments and pagination metadata.
func (s *InscripcionService) List(ctx context.Context, filter models.InscripcionFilter) ([]models.InscripcionDetail, *models.Pagination, error) {
	inscripciones, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list inscripciones")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}
	return inscripciones, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// Get returns one active enrollment.
func (s *InscripcionService) Get(ctx context.Context, id string) (*models.InscripcionDetail, error) {
	inscripcion, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NotFoundEntity("inscripcion", "id", id)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load inscripcion")
	}
	return inscripcion, nil
}

// Create enrolls a student in an offering. The student must not already hold
// an active row in the course, and the live enrollment count must stay under
// the cupo. The count is taken fresh at call time.
func (s *InscripcionService) Create(ctx context.Context, req CreateInscripcionRequest) (*models.InscripcionDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid inscripcion payload")
	}
	curso, err := s.cursos.FindByID(ctx, req.CursoID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NotFoundEntity("curso", "id", req.CursoID)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load curso")
	}
	if _, err := s.estudiantes.FindByID(ctx, req.EstudianteID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NotFoundEntity("estudiante", "id", req.EstudianteID)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load estudiante")
	}

	exists, err := s.repo.Exists(ctx, req.CursoID, req.EstudianteID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check existing inscripcion")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "estudiante already enrolled in curso")
	}

	activas, err := s.repo.CountActivas(ctx, req.CursoID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count active inscripciones")
	}
	if activas >= curso.Cupo {
		return nil, appErrors.Clone(appErrors.ErrConflict, "curso has no remaining cupo")
	}

	inscripcion := &models.Inscripcion{
		CursoID:      req.CursoID,
		EstudianteID: req.EstudianteID,
		Estado:       models.InscripcionInscrita,
	}
	if err := s.repo.Create(ctx, inscripcion); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create inscripcion")
	}
	return s.Get(ctx, inscripcion.ID)
}

// UpdateEstado moves an enrollment to a new state. Any state may follow any
// other.
func (s *InscripcionService) UpdateEstado(ctx context.Context, id string, req UpdateInscripcionEstadoRequest) (*models.InscripcionDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid estado payload")
	}
	if !req.Estado.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown inscripcion estado")
	}
	if err := s.repo.UpdateEstado(ctx, id, req.Estado); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NotFoundEntity("inscripcion", "id", id)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update estado")
	}
	return s.Get(ctx, id)
}

// Delete soft-deletes an enrollment, freeing its cupo slot.
func (s *InscripcionService) Delete(ctx context.Context, id string) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.NotFoundEntity("inscripcion", "id", id)
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete inscripcion")
	}
	return nil
}

// ListDeleted returns soft-deleted enrollments.
func (s *InscripcionService) ListDeleted(ctx context.Context) ([]models.InscripcionDetail, error) {
	inscripciones, err := s.repo.ListDeleted(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list deleted inscripciones")
	}
	return inscripciones, nil
}

// Restore revives a soft-deleted enrollment. The row takes a cupo seat again
// immediately; no capacity re-check happens here.
func (s *InscripcionService) Restore(ctx context.Context, id string) (*models.InscripcionDetail, error) {
	if err := s.repo.Restore(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NotFoundEntity("inscripcion eliminada", "id", id)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to restore inscripcion")
	}
	return s.Get(ctx, id)
}
