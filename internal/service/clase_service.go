package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campusdev/gestion-escolar-api/internal/models"
	appErrors "github.com/campusdev/gestion-escolar-api/pkg/errors"
)

type claseRepository interface {
	List(ctx context.Context, filter models.ClaseFilter) ([]models.Clase, int, error)
	FindByID(ctx context.Context, id string) (*models.Clase, error)
	Create(ctx context.Context, clase *models.Clase) error
	Update(ctx context.Context, clase *models.Clase) error
	SoftDelete(ctx context.Context, id string) error
	ListDeleted(ctx context.Context) ([]models.Clase, error)
	Restore(ctx context.Context, id string) error
}

type claseCursoLookup interface {
	FindByID(ctx context.Context, id string) (*models.CursoDetail, error)
}

// CreateClaseRequest holds payload for recording a class session.
type CreateClaseRequest struct {
	CursoID       string    `json:"curso_id" validate:"required,uuid4"`
	UnidadID      *string   `json:"unidad_id"`
	TemaID        *string   `json:"tema_id"`
	Fecha         time.Time `json:"fecha" validate:"required"`
	Observaciones string    `json:"observaciones" validate:"max=500"`
}

// UpdateClaseRequest holds payload for updating a class session.
type UpdateClaseRequest struct {
	UnidadID      *string   `json:"unidad_id"`
	TemaID        *string   `json:"tema_id"`
	Fecha         time.Time `json:"fecha" validate:"required"`
	Observaciones string    `json:"observaciones" validate:"max=500"`
}

// ClaseService handles class session use-cases.
type ClaseService struct {
	repo      claseRepository
	cursos    claseCursoLookup
	validator *validator.Validate
	logger    *zap.Logger
}

// NewClaseService constructs the class session service.
func NewClaseService(repo claseRepository, cursos claseCursoLookup, validate *validator.Validate, logger *zap.Logger) *ClaseService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClaseService{repo: repo, cursos: cursos, validator: validate, logger: logger}
}

// List returns sessions and pagination metadata.
func (s *ClaseService) List(ctx context.Context, filter models.ClaseFilter) ([]models.Clase, *models.Pagination, error) {
	clases, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list clases")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}
	return clases, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// Get returns one active session.
func (s *ClaseService) Get(ctx context.Context, id string) (*models.Clase, error) {
	clase, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NotFoundEntity("clase", "id", id)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load clase")
	}
	return clase, nil
}

// Create records a session for an active offering.
func (s *ClaseService) Create(ctx context.Context, req CreateClaseRequest) (*models.Clase, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid clase payload")
	}
	if _, err := s.cursos.FindByID(ctx, req.CursoID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NotFoundEntity("curso", "id", req.CursoID)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load curso")
	}
	clase := &models.Clase{
		CursoID:       req.CursoID,
		UnidadID:      req.UnidadID,
		TemaID:        req.TemaID,
		Fecha:         req.Fecha,
		Observaciones: req.Observaciones,
	}
	if err := s.repo.Create(ctx, clase); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create clase")
	}
	return clase, nil
}

// Update modifies a session.
func (s *ClaseService) Update(ctx context.Context, id string, req UpdateClaseRequest) (*models.Clase, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid clase payload")
	}
	clase, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	clase.UnidadID = req.UnidadID
	clase.TemaID = req.TemaID
	clase.Fecha = req.Fecha
	clase.Observaciones = req.Observaciones
	if err := s.repo.Update(ctx, clase); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update clase")
	}
	return clase, nil
}

// Delete soft-deletes a session.
func (s *ClaseService) Delete(ctx context.Context, id string) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.NotFoundEntity("clase", "id", id)
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete clase")
	}
	return nil
}

// ListDeleted returns soft-deleted sessions.
func (s *ClaseService) ListDeleted(ctx context.Context) ([]models.Clase, error) {
	clases, err := s.repo.ListDeleted(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list deleted clases")
	}
	return clases, nil
}

// Restore revives a soft-deleted session.
func (s *ClaseService) Restore(ctx context.Context, id string) (*models.Clase, error) {
	if err := s.repo.Restore(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NotFoundEntity("clase eliminada", "id", id)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to restore clase")
	}
	return s.Get(ctx, id)
}
