package service

import (
	"context"
	"database/sql"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campusdev/gestion-escolar-api/internal/models"
	appErrors "github.com/campusdev/gestion-escolar-api/pkg/errors"
)

type rolRepository interface {
	List(ctx context.Context) ([]models.Rol, error)
	ListDeleted(ctx context.Context) ([]models.Rol, error)
	FindByID(ctx context.Context, id string) (*models.Rol, error)
	ExistsByNombre(ctx context.Context, nombre, excludeID string) (bool, error)
	Create(ctx context.Context, rol *models.Rol) error
	Update(ctx context.Context, rol *models.Rol) error
	SoftDelete(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) error
}

// CreateRolRequest holds payload for creating roles.
type CreateRolRequest struct {
	Nombre      string `json:"nombre" validate:"required,min=3,max=50"`
	Descripcion string `json:"descripcion" validate:"max=255"`
}

// UpdateRolRequest holds payload for updating roles.
type UpdateRolRequest struct {
	Nombre      string `json:"nombre" validate:"required,min=3,max=50"`
	Descripcion string `json:"descripcion" validate:"max=255"`
}

// RolService handles role use-cases.
type RolService struct {
	repo      rolRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewRolService constructs the role service.
func NewRolService(repo rolRepository, validate *validator.Validate, logger *zap.Logger) *RolService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RolService{repo: repo, validator: validate, logger: logger}
}

// List returns all active roles.
func (s *RolService) List(ctx context.Context) ([]models.Rol, error) {
	roles, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list roles")
	}
	return roles, nil
}

// ListDeleted returns logically deleted roles.
func (s *RolService) ListDeleted(ctx context.Context) ([]models.Rol, error) {
	roles, err := s.repo.ListDeleted(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list deleted roles")
	}
	return roles, nil
}

// Get returns one active role.
func (s *RolService) Get(ctx context.Context, id string) (*models.Rol, error) {
	rol, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NotFoundEntity("rol", "id", id)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load rol")
	}
	return rol, nil
}

// Create registers a new role. The name must be unique among active roles.
func (s *RolService) Create(ctx context.Context, req CreateRolRequest) (*models.Rol, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid rol payload")
	}
	exists, err := s.repo.ExistsByNombre(ctx, req.Nombre, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate rol nombre")
	}
	if exists {
		return nil, appErrors.DuplicateField("rol", "nombre", req.Nombre)
	}
	rol := &models.Rol{Nombre: req.Nombre, Descripcion: req.Descripcion}
	if err := s.repo.Create(ctx, rol); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create rol")
	}
	return rol, nil
}

// Update modifies a role.
func (s *RolService) Update(ctx context.Context, id string, req UpdateRolRequest) (*models.Rol, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid rol payload")
	}
	rol, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	exists, err := s.repo.ExistsByNombre(ctx, req.Nombre, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate rol nombre")
	}
	if exists {
		return nil, appErrors.DuplicateField("rol", "nombre", req.Nombre)
	}
	rol.Nombre = req.Nombre
	rol.Descripcion = req.Descripcion
	if err := s.repo.Update(ctx, rol); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update rol")
	}
	return rol, nil
}

// Delete soft-deletes a role.
func (s *RolService) Delete(ctx context.Context, id string) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.NotFoundEntity("rol", "id", id)
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete rol")
	}
	return nil
}

// Restore revives a soft-deleted role. Uniqueness against live names is not
// re-validated, matching delete-then-recreate-then-restore behavior.
func (s *RolService) Restore(ctx context.Context, id string) (*models.Rol, error) {
	if err := s.repo.Restore(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NotFoundEntity("rol eliminado", "id", id)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to restore rol")
	}
	return s.Get(ctx, id)
}
