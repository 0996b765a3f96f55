package service

import (
	"context"
	"database/sql"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/campusdev/gestion-escolar-api/internal/models"
	appErrors "github.com/campusdev/gestion-escolar-api/pkg/errors"
)

type usuarioRepository interface {
	List(ctx context.Context, filter models.UsuarioFilter) ([]models.UsuarioDetail, int, error)
	ListDeleted(ctx context.Context) ([]models.UsuarioDetail, error)
	FindByID(ctx context.Context, id string) (*models.UsuarioDetail, error)
	ExistsByUsername(ctx context.Context, username, excludeID string) (bool, error)
	ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error)
	Create(ctx context.Context, usuario *models.Usuario) error
	Update(ctx context.Context, usuario *models.Usuario) error
	SoftDelete(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) error
}

type usuarioRolLookup interface {
	FindByID(ctx context.Context, id string) (*models.Rol, error)
}

// CreateUsuarioRequest holds payload for creating accounts.
type CreateUsuarioRequest struct {
	Username       string `json:"username" validate:"required,min=3,max=50"`
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=8"`
	NombreCompleto string `json:"nombre_completo" validate:"required,min=3,max=150"`
	Telefono       string `json:"telefono" validate:"max=30"`
	RolID          string `json:"rol_id" validate:"required,uuid4"`
}

// UpdateUsuarioRequest holds payload for updating accounts. Password changes
// go through the auth endpoints.
type UpdateUsuarioRequest struct {
	Username       string `json:"username" validate:"required,min=3,max=50"`
	Email          string `json:"email" validate:"required,email"`
	NombreCompleto string `json:"nombre_completo" validate:"required,min=3,max=150"`
	Telefono       string `json:"telefono" validate:"max=30"`
	RolID          string `json:"rol_id" validate:"required,uuid4"`
}

// UsuarioService handles account use-cases.
type UsuarioService struct {
	repo      usuarioRepository
	roles     usuarioRolLookup
	validator *validator.Validate
	logger    *zap.Logger
}

// NewUsuarioService constructs the account service.
func NewUsuarioService(repo usuarioRepository, roles usuarioRolLookup, validate *validator.Validate, logger *zap.Logger) *UsuarioService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UsuarioService{repo: repo, roles: roles, validator: validate, logger: logger}
}

// List returns accounts and pagination metadata.
func (s *UsuarioService) List(ctx context.Context, filter models.UsuarioFilter) ([]models.UsuarioDetail, *models.Pagination, error) {
	usuarios, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list usuarios")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}
	return usuarios, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// ListDeleted returns logically deleted accounts.
func (s *UsuarioService) ListDeleted(ctx context.Context) ([]models.UsuarioDetail, error) {
	usuarios, err := s.repo.ListDeleted(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list deleted usuarios")
	}
	return usuarios, nil
}

// Get returns one active account.
func (s *UsuarioService) Get(ctx context.Context, id string) (*models.UsuarioDetail, error) {
	usuario, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NotFoundEntity("usuario", "id", id)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load usuario")
	}
	return usuario, nil
}

// Create registers an account. Username and email must be unique among
// active accounts and the role must exist.
func (s *UsuarioService) Create(ctx context.Context, req CreateUsuarioRequest) (*models.UsuarioDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid usuario payload")
	}
	if _, err := s.roles.FindByID(ctx, req.RolID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NotFoundEntity("rol", "id", req.RolID)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load rol")
	}
	if exists, err := s.repo.ExistsByUsername(ctx, req.Username, ""); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate username")
	} else if exists {
		return nil, appErrors.DuplicateField("usuario", "username", req.Username)
	}
	if exists, err := s.repo.ExistsByEmail(ctx, req.Email, ""); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate email")
	} else if exists {
		return nil, appErrors.DuplicateField("usuario", "email", req.Email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}
	usuario := &models.Usuario{
		Username:       req.Username,
		Email:          req.Email,
		PasswordHash:   string(hash),
		NombreCompleto: req.NombreCompleto,
		Telefono:       req.Telefono,
		RolID:          req.RolID,
	}
	if err := s.repo.Create(ctx, usuario); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create usuario")
	}
	return s.Get(ctx, usuario.ID)
}

// Update modifies an account.
func (s *UsuarioService) Update(ctx context.Context, id string, req UpdateUsuarioRequest) (*models.UsuarioDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid usuario payload")
	}
	detail, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.roles.FindByID(ctx, req.RolID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NotFoundEntity("rol", "id", req.RolID)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load rol")
	}
	if exists, err := s.repo.ExistsByUsername(ctx, req.Username, id); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate username")
	} else if exists {
		return nil, appErrors.DuplicateField("usuario", "username", req.Username)
	}
	if exists, err := s.repo.ExistsByEmail(ctx, req.Email, id); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate email")
	} else if exists {
		return nil, appErrors.DuplicateField("usuario", "email", req.Email)
	}

	usuario := detail.Usuario
	usuario.Username = req.Username
	usuario.Email = req.Email
	usuario.NombreCompleto = req.NombreCompleto
	usuario.Telefono = req.Telefono
	usuario.RolID = req.RolID
	if err := s.repo.Update(ctx, &usuario); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update usuario")
	}
	return s.Get(ctx, id)
}

// Delete soft-deletes an account.
func (s *UsuarioService) Delete(ctx context.Context, id string) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.NotFoundEntity("usuario", "id", id)
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete usuario")
	}
	return nil
}

// Restore revives a soft-deleted account without re-checking uniqueness.
func (s *UsuarioService) Restore(ctx context.Context, id string) (*models.UsuarioDetail, error) {
	if err := s.repo.Restore(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NotFoundEntity("usuario eliminado", "id", id)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to restore usuario")
	}
	return s.Get(ctx, id)
}
