package service

import (
	"context"
	"database/sql"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campusdev/gestion-escolar-api/internal/models"
	appErrors "github.com/campusdev/gestion-escolar-api/pkg/errors"
)

type unidadRepository interface {
	ListByCurso(ctx context.Context, cursoID string) ([]models.Unidad, error)
	FindByID(ctx context.Context, id string) (*models.Unidad, error)
	Create(ctx context.Context, unidad *models.Unidad) error
	Update(ctx context.Context, unidad *models.Unidad) error
	SoftDelete(ctx context.Context, id string) error
	ListDeleted(ctx context.Context) ([]models.Unidad, error)
	Restore(ctx context.Context, id string) error
	ListTemas(ctx context.Context, unidadID string) ([]models.Tema, error)
	FindTemaByID(ctx context.Context, id string) (*models.Tema, error)
	CreateTema(ctx context.Context, tema *models.Tema) error
	UpdateTema(ctx context.Context, tema *models.Tema) error
	SoftDeleteTema(ctx context.Context, id string) error
	ListDeletedTemas(ctx context.Context) ([]models.Tema, error)
	RestoreTema(ctx context.Context, id string) error
}

type unidadCursoLookup interface {
	FindByID(ctx context.Context, id string) (*models.CursoDetail, error)
}

// SaveUnidadRequest holds payload for creating or updating a course unit.
type SaveUnidadRequest struct {
	Titulo string `json:"titulo" validate:"required,min=2,max=150"`
	Orden  int    `json:"orden" validate:"gte=0"`
}

// SaveTemaRequest holds payload for creating or updating a topic.
type SaveTemaRequest struct {
	Titulo string `json:"titulo" validate:"required,min=2,max=150"`
	Orden  int    `json:"orden" validate:"gte=0"`
}

// UnidadService handles course content structure use-cases.
type UnidadService struct {
	repo      unidadRepository
	cursos    unidadCursoLookup
	validator *validator.Validate
	logger    *zap.Logger
}

// NewUnidadService constructs the content structure service.
func NewUnidadService(repo unidadRepository, cursos unidadCursoLookup, validate *validator.Validate, logger *zap.Logger) *UnidadService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UnidadService{repo: repo, cursos: cursos, validator: validate, logger: logger}
}

// ListByCurso returns active units of an offering.
func (s *UnidadService) ListByCurso(ctx context.Context, cursoID string) ([]models.Unidad, error) {
	unidades, err := s.repo.ListByCurso(ctx, cursoID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list unidades")
	}
	return unidades, nil
}

// Get returns one active unit.
func (s *UnidadService) Get(ctx context.Context, id string) (*models.Unidad, error) {
	unidad, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NotFoundEntity("unidad", "id", id)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load unidad")
	}
	return unidad, nil
}

// Create adds a unit to an active offering.
func (s *UnidadService) Create(ctx context.Context, cursoID string, req SaveUnidadRequest) (*models.Unidad, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid unidad payload")
	}
	if _, err := s.cursos.FindByID(ctx, cursoID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NotFoundEntity("curso", "id", cursoID)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load curso")
	}
	unidad := &models.Unidad{CursoID: cursoID, Titulo: req.Titulo, Orden: req.Orden}
	if err := s.repo.Create(ctx, unidad); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create unidad")
	}
	return unidad, nil
}

// Update modifies a unit.
func (s *UnidadService) Update(ctx context.Context, id string, req SaveUnidadRequest) (*models.Unidad, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid unidad payload")
	}
	unidad, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	unidad.Titulo = req.Titulo
	unidad.Orden = req.Orden
	if err := s.repo.Update(ctx, unidad); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update unidad")
	}
	return unidad, nil
}

// Delete soft-deletes a unit.
func (s *UnidadService) Delete(ctx context.Context, id string) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.NotFoundEntity("unidad", "id", id)
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete unidad")
	}
	return nil
}

// ListDeleted returns soft-deleted units.
func (s *UnidadService) ListDeleted(ctx context.Context) ([]models.Unidad, error) {
	unidades, err := s.repo.ListDeleted(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list deleted unidades")
	}
	return unidades, nil
}

// Restore revives a soft-deleted unit.
func (s *UnidadService) Restore(ctx context.Context, id string) (*models.Unidad, error) {
	if err := s.repo.Restore(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NotFoundEntity("unidad eliminada", "id", id)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to restore unidad")
	}
	return s.Get(ctx, id)
}

// ListTemas returns active topics of a unit.
func (s *UnidadService) ListTemas(ctx context.Context, unidadID string) ([]models.Tema, error) {
	temas, err := s.repo.ListTemas(ctx, unidadID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list temas")
	}
	return temas, nil
}

// CreateTema adds a topic to an active unit.
func (s *UnidadService) CreateTema(ctx context.Context, unidadID string, req SaveTemaRequest) (*models.Tema, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid tema payload")
	}
	if _, err := s.Get(ctx, unidadID); err != nil {
		return nil, err
	}
	tema := &models.Tema{UnidadID: unidadID, Titulo: req.Titulo, Orden: req.Orden}
	if err := s.repo.CreateTema(ctx, tema); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create tema")
	}
	return tema, nil
}

// UpdateTema modifies a topic.
func (s *UnidadService) UpdateTema(ctx context.Context, id string, req SaveTemaRequest) (*models.Tema, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid tema payload")
	}
	tema, err := s.repo.FindTemaByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NotFoundEntity("tema", "id", id)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load tema")
	}
	tema.Titulo = req.Titulo
	tema.Orden = req.Orden
	if err := s.repo.UpdateTema(ctx, tema); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update tema")
	}
	return tema, nil
}

// DeleteTema soft-deletes a topic.
func (s *UnidadService) DeleteTema(ctx context.Context, id string) error {
	if err := s.repo.SoftDeleteTema(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.NotFoundEntity("tema", "id", id)
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete tema")
	}
	return nil
}

// ListDeletedTemas returns soft-deleted topics.
func (s *UnidadService) ListDeletedTemas(ctx context.Context) ([]models.Tema, error) {
	temas, err := s.repo.ListDeletedTemas(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list deleted temas")
	}
	return temas, nil
}

// RestoreTema revives a soft-deleted topic.
func (s *UnidadService) RestoreTema(ctx context.Context, id string) (*models.Tema, error) {
	if err := s.repo.RestoreTema(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NotFoundEntity("tema eliminado", "id", id)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to restore tema")
	}
	tema, err := s.repo.FindTemaByID(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load tema")
	}
	return tema, nil
}
