package service

import (
	"context"
	"database/sql"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campusdev/gestion-escolar-api/internal/models"
	appErrors "github.com/campusdev/gestion-escolar-api/pkg/errors"
)

type profesorRepository interface {
	List(ctx context.Context, filter models.ProfesorFilter) ([]models.Profesor, int, error)
	ListDeleted(ctx context.Context) ([]models.Profesor, error)
	FindByID(ctx context.Context, id string) (*models.Profesor, error)
	Create(ctx context.Context, profesor *models.Profesor) error
	Update(ctx context.Context, profesor *models.Profesor) error
	SoftDelete(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) error
}

// CreateProfesorRequest holds payload for registering teachers.
type CreateProfesorRequest struct {
	UsuarioID      *string `json:"usuario_id"`
	NombreCompleto string  `json:"nombre_completo" validate:"required,min=3,max=150"`
	Especialidad   string  `json:"especialidad" validate:"max=100"`
	Telefono       string  `json:"telefono" validate:"max=30"`
}

// UpdateProfesorRequest holds payload for updating teachers.
type UpdateProfesorRequest struct {
	UsuarioID      *string `json:"usuario_id"`
	NombreCompleto string  `json:"nombre_completo" validate:"required,min=3,max=150"`
	Especialidad   string  `json:"especialidad" validate:"max=100"`
	Telefono       string  `json:"telefono" validate:"max=30"`
}

// ProfesorService handles teacher use-cases.
type ProfesorService struct {
	repo      profesorRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewProfesorService constructs the teacher service.
func NewProfesorService(repo profesorRepository, validate *validator.Validate, logger *zap.Logger) *ProfesorService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfesorService{repo: repo, validator: validate, logger: logger}
}

// List returns teachers and pagination metadata.
func (s *ProfesorService) List(ctx context.Context, filter models.ProfesorFilter) ([]models.Profesor, *models.Pagination, error) {
	profesores, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list profesores")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}
	return profesores, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// ListDeleted returns logically deleted teachers.
func (s *ProfesorService) ListDeleted(ctx context.Context) ([]models.Profesor, error) {
	profesores, err := s.repo.ListDeleted(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list deleted profesores")
	}
	return profesores, nil
}

// Get returns one active teacher.
func (s *ProfesorService) Get(ctx context.Context, id string) (*models.Profesor, error) {
	profesor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NotFoundEntity("profesor", "id", id)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load profesor")
	}
	return profesor, nil
}

// Create registers a new teacher.
func (s *ProfesorService) Create(ctx context.Context, req CreateProfesorRequest) (*models.Profesor, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid profesor payload")
	}
	profesor := &models.Profesor{
		UsuarioID:      req.UsuarioID,
		NombreCompleto: req.NombreCompleto,
		Especialidad:   req.Especialidad,
		Telefono:       req.Telefono,
	}
	if err := s.repo.Create(ctx, profesor); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create profesor")
	}
	return profesor, nil
}

// Update modifies a teacher.
func (s *ProfesorService) Update(ctx context.Context, id string, req UpdateProfesorRequest) (*models.Profesor, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid profesor payload")
	}
	profesor, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	profesor.UsuarioID = req.UsuarioID
	profesor.NombreCompleto = req.NombreCompleto
	profesor.Especialidad = req.Especialidad
	profesor.Telefono = req.Telefono
	if err := s.repo.Update(ctx, profesor); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update profesor")
	}
	return profesor, nil
}

// Delete soft-deletes a teacher. Offerings that reference the teacher keep
// their reference.
func (s *ProfesorService) Delete(ctx context.Context, id string) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.NotFoundEntity("profesor", "id", id)
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete profesor")
	}
	return nil
}

// Restore revives a soft-deleted teacher.
func (s *ProfesorService) Restore(ctx context.Context, id string) (*models.Profesor, error) {
	if err := s.repo.Restore(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NotFoundEntity("profesor eliminado", "id", id)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to restore profesor")
	}
	return s.Get(ctx, id)
}
