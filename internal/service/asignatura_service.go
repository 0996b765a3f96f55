package service

import (
	"context"
	"database/sql"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campusdev/gestion-escolar-api/internal/models"
	appErrors "github.com/campusdev/gestion-escolar-api/pkg/errors"
)

type asignaturaRepository interface {
	List(ctx context.Context, search string) ([]models.Asignatura, error)
	ListDeleted(ctx context.Context) ([]models.Asignatura, error)
	FindByID(ctx context.Context, id string) (*models.Asignatura, error)
	ExistsByCodigo(ctx context.Context, codigo, excludeID string) (bool, error)
	Create(ctx context.Context, asignatura *models.Asignatura) error
	Update(ctx context.Context, asignatura *models.Asignatura) error
	SoftDelete(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) error
}

// CreateAsignaturaRequest holds payload for creating catalogue subjects.
type CreateAsignaturaRequest struct {
	Codigo      string `json:"codigo" validate:"required,min=2,max=20"`
	Nombre      string `json:"nombre" validate:"required,min=3,max=150"`
	Descripcion string `json:"descripcion" validate:"max=500"`
	Creditos    int    `json:"creditos" validate:"gte=0,lte=20"`
}

// UpdateAsignaturaRequest holds payload for updating catalogue subjects.
type UpdateAsignaturaRequest struct {
	Codigo      string `json:"codigo" validate:"required,min=2,max=20"`
	Nombre      string `json:"nombre" validate:"required,min=3,max=150"`
	Descripcion string `json:"descripcion" validate:"max=500"`
	Creditos    int    `json:"creditos" validate:"gte=0,lte=20"`
}

// AsignaturaService handles catalogue subject use-cases.
type AsignaturaService struct {
	repo      asignaturaRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAsignaturaService constructs the subject service.
func NewAsignaturaService(repo asignaturaRepository, validate *validator.Validate, logger *zap.Logger) *AsignaturaService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AsignaturaService{repo: repo, validator: validate, logger: logger}
}

// List returns active subjects.
func (s *AsignaturaService) List(ctx context.Context, search string) ([]models.Asignatura, error) {
	asignaturas, err := s.repo.List(ctx, search)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list asignaturas")
	}
	return asignaturas, nil
}

// ListDeleted returns logically deleted subjects.
func (s *AsignaturaService) ListDeleted(ctx context.Context) ([]models.Asignatura, error) {
	asignaturas, err := s.repo.ListDeleted(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list deleted asignaturas")
	}
	return asignaturas, nil
}

// Get returns one active subject.
func (s *AsignaturaService) Get(ctx context.Context, id string) (*models.Asignatura, error) {
	asignatura, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NotFoundEntity("asignatura", "id", id)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load asignatura")
	}
	return asignatura, nil
}

// Create registers a new subject. The codigo must be unique among active
// subjects.
func (s *AsignaturaService) Create(ctx context.Context, req CreateAsignaturaRequest) (*models.Asignatura, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid asignatura payload")
	}
	exists, err := s.repo.ExistsByCodigo(ctx, req.Codigo, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate codigo")
	}
	if exists {
		return nil, appErrors.DuplicateField("asignatura", "codigo", req.Codigo)
	}
	asignatura := &models.Asignatura{
		Codigo:      req.Codigo,
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		Creditos:    req.Creditos,
	}
	if err := s.repo.Create(ctx, asignatura); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create asignatura")
	}
	return asignatura, nil
}

// Update modifies a subject.
func (s *AsignaturaService) Update(ctx context.Context, id string, req UpdateAsignaturaRequest) (*models.Asignatura, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid asignatura payload")
	}
	asignatura, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	exists, err := s.repo.ExistsByCodigo(ctx, req.Codigo, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate codigo")
	}
	if exists {
		return nil, appErrors.DuplicateField("asignatura", "codigo", req.Codigo)
	}
	asignatura.Codigo = req.Codigo
	asignatura.Nombre = req.Nombre
	asignatura.Descripcion = req.Descripcion
	asignatura.Creditos = req.Creditos
	if err := s.repo.Update(ctx, asignatura); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update asignatura")
	}
	return asignatura, nil
}

// Delete soft-deletes a subject.
func (s *AsignaturaService) Delete(ctx context.Context, id string) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.NotFoundEntity("asignatura", "id", id)
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete asignatura")
	}
	return nil
}

// Restore revives a soft-deleted subject. A duplicate codigo created while
// the subject was deleted is not detected here.
func (s *AsignaturaService) Restore(ctx context.Context, id string) (*models.Asignatura, error) {
	if err := s.repo.Restore(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NotFoundEntity("asignatura eliminada", "id", id)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to restore asignatura")
	}
	return s.Get(ctx, id)
}
