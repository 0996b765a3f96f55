package service

import (
	"context"
	"database/sql"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campusdev/gestion-escolar-api/internal/models"
	appErrors "github.com/campusdev/gestion-escolar-api/pkg/errors"
)

type cursoRepository interface {
	List(ctx context.Context, filter models.CursoFilter) ([]models.CursoDetail, int, error)
	ListDeleted(ctx context.Context) ([]models.CursoDetail, error)
	ListConCupo(ctx context.Context, periodoID string) ([]models.CursoConCupo, error)
	FindByID(ctx context.Context, id string) (*models.CursoDetail, error)
	ExistsGrupo(ctx context.Context, asignaturaID, periodoID, grupo, excludeID string) (bool, error)
	Create(ctx context.Context, curso *models.Curso) error
	Update(ctx context.Context, curso *models.Curso) error
	SoftDelete(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) error
}

type cursoAsignaturaLookup interface {
	FindByID(ctx context.Context, id string) (*models.Asignatura, error)
}

type cursoProfesorLookup interface {
	FindByID(ctx context.Context, id string) (*models.Profesor, error)
}

type cursoPeriodoLookup interface {
	FindByID(ctx context.Context, id string) (*models.Periodo, error)
}

// CreateCursoRequest holds payload for opening a course offering.
type CreateCursoRequest struct {
	AsignaturaID string `json:"asignatura_id" validate:"required,uuid4"`
	ProfesorID   string `json:"profesor_id" validate:"required,uuid4"`
	PeriodoID    string `json:"periodo_id" validate:"required,uuid4"`
	Grupo        string `json:"grupo" validate:"required,min=1,max=20"`
	Cupo         int    `json:"cupo" validate:"required,gt=0"`
	Aula         string `json:"aula" validate:"max=50"`
}

// UpdateCursoRequest holds payload for updating a course offering.
type UpdateCursoRequest struct {
	AsignaturaID string `json:"asignatura_id" validate:"required,uuid4"`
	ProfesorID   string `json:"profesor_id" validate:"required,uuid4"`
	PeriodoID    string `json:"periodo_id" validate:"required,uuid4"`
	Grupo        string `json:"grupo" validate:"required,min=1,max=20"`
	Cupo         int    `json:"cupo" validate:"required,gt=0"`
	Aula         string `json:"aula" validate:"max=50"`
}

// CursoService handles course offering use-cases.
type CursoService struct {
	repo        cursoRepository
	asignaturas cursoAsignaturaLookup
	profesores  cursoProfesorLookup
	periodos    cursoPeriodoLookup
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewCursoService constructs the course offering service.
func NewCursoService(repo cursoRepository, asignaturas cursoAsignaturaLookup, profesores cursoProfesorLookup, periodos cursoPeriodoLookup, validate *validator.Validate, logger *zap.Logger) *CursoService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CursoService{
		repo:        repo,
		asignaturas: asignaturas,
		profesores:  profesores,
		periodos:    periodos,
		validator:   validate,
		logger:      logger,
	}
}

// List returns offerings and pagination metadata.
func (s *CursoService) List(ctx context.Context, filter models.CursoFilter) ([]models.CursoDetail, *models.Pagination, error) {
	cursos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list cursos")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}
	return cursos, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// ListDeleted returns logically deleted offerings.
func (s *CursoService) ListDeleted(ctx context.Context) ([]models.CursoDetail, error) {
	cursos, err := s.repo.ListDeleted(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list deleted cursos")
	}
	return cursos, nil
}

// ListConCupo returns a term's offerings with their live enrollment counts.
func (s *CursoService) ListConCupo(ctx context.Context, periodoID string) ([]models.CursoConCupo, error) {
	cursos, err := s.repo.ListConCupo(ctx, periodoID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list cursos con cupo")
	}
	return cursos, nil
}

// Get returns one active offering.
func (s *CursoService) Get(ctx context.Context, id string) (*models.CursoDetail, error) {
	curso, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NotFoundEntity("curso", "id", id)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load curso")
	}
	return curso, nil
}

// Create opens an offering. The referenced subject, teacher and term must be
// active, and the group label must be free within (asignatura, periodo).
func (s *CursoService) Create(ctx context.Context, req CreateCursoRequest) (*models.CursoDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid curso payload")
	}
	if err := s.checkReferences(ctx, req.AsignaturaID, req.ProfesorID, req.PeriodoID); err != nil {
		return nil, err
	}
	exists, err := s.repo.ExistsGrupo(ctx, req.AsignaturaID, req.PeriodoID, req.Grupo, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate grupo")
	}
	if exists {
		return nil, appErrors.DuplicateField("curso", "grupo", req.Grupo)
	}
	curso := &models.Curso{
		AsignaturaID: req.AsignaturaID,
		ProfesorID:   req.ProfesorID,
		PeriodoID:    req.PeriodoID,
		Grupo:        req.Grupo,
		Cupo:         req.Cupo,
		Aula:         req.Aula,
	}
	if err := s.repo.Create(ctx, curso); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create curso")
	}
	return s.Get(ctx, curso.ID)
}

// Update modifies an offering. Lowering cupo below the current enrollment
// count is allowed; existing enrollments are never evicted.
func (s *CursoService) Update(ctx context.Context, id string, req UpdateCursoRequest) (*models.CursoDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid curso payload")
	}
	detail, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, req.AsignaturaID, req.ProfesorID, req.PeriodoID); err != nil {
		return nil, err
	}
	exists, err := s.repo.ExistsGrupo(ctx, req.AsignaturaID, req.PeriodoID, req.Grupo, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate grupo")
	}
	if exists {
		return nil, appErrors.DuplicateField("curso", "grupo", req.Grupo)
	}
	curso := detail.Curso
	curso.AsignaturaID = req.AsignaturaID
	curso.ProfesorID = req.ProfesorID
	curso.PeriodoID = req.PeriodoID
	curso.Grupo = req.Grupo
	curso.Cupo = req.Cupo
	curso.Aula = req.Aula
	if err := s.repo.Update(ctx, &curso); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update curso")
	}
	return s.Get(ctx, id)
}

// Delete soft-deletes an offering.
func (s *CursoService) Delete(ctx context.Context, id string) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.NotFoundEntity("curso", "id", id)
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete curso")
	}
	return nil
}

// Restore revives a soft-deleted offering.
func (s *CursoService) Restore(ctx context.Context, id string) (*models.CursoDetail, error) {
	if err := s.repo.Restore(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NotFoundEntity("curso eliminado", "id", id)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to restore curso")
	}
	return s.Get(ctx, id)
}

func (s *CursoService) checkReferences(ctx context.Context, asignaturaID, profesorID, periodoID string) error {
	if _, err := s.asignaturas.FindByID(ctx, asignaturaID); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.NotFoundEntity("asignatura", "id", asignaturaID)
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load asignatura")
	}
	if _, err := s.profesores.FindByID(ctx, profesorID); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.NotFoundEntity("profesor", "id", profesorID)
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load profesor")
	}
	if _, err := s.periodos.FindByID(ctx, periodoID); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.NotFoundEntity("periodo", "id", periodoID)
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load periodo")
	}
	return nil
}
