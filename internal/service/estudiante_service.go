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

type estudianteRepository interface {
	List(ctx context.Context, filter models.EstudianteFilter) ([]models.Estudiante, int, error)
	ListDeleted(ctx context.Context) ([]models.Estudiante, error)
	FindByID(ctx context.Context, id string) (*models.Estudiante, error)
	ExistsByCodigo(ctx context.Context, codigo, excludeID string) (bool, error)
	Create(ctx context.Context, estudiante *models.Estudiante) error
	Update(ctx context.Context, estudiante *models.Estudiante) error
	SoftDelete(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) error
}

// CreateEstudianteRequest holds payload for registering students.
type CreateEstudianteRequest struct {
	UsuarioID        *string   `json:"usuario_id"`
	CodigoEstudiante string    `json:"codigo_estudiante" validate:"required,min=3,max=30"`
	NombreCompleto   string    `json:"nombre_completo" validate:"required,min=3,max=150"`
	FechaNacimiento  time.Time `json:"fecha_nacimiento" validate:"required"`
	Direccion        string    `json:"direccion" validate:"max=255"`
	Telefono         string    `json:"telefono" validate:"max=30"`
}

// UpdateEstudianteRequest holds payload for updating students.
type UpdateEstudianteRequest struct {
	UsuarioID        *string   `json:"usuario_id"`
	CodigoEstudiante string    `json:"codigo_estudiante" validate:"required,min=3,max=30"`
	NombreCompleto   string    `json:"nombre_completo" validate:"required,min=3,max=150"`
	FechaNacimiento  time.Time `json:"fecha_nacimiento" validate:"required"`
	Direccion        string    `json:"direccion" validate:"max=255"`
	Telefono         string    `json:"telefono" validate:"max=30"`
}

// EstudianteService handles student use-cases.
type EstudianteService struct {
	repo      estudianteRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewEstudianteService constructs the student service.
func NewEstudianteService(repo estudianteRepository, validate *validator.Validate, logger *zap.Logger) *EstudianteService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EstudianteService{repo: repo, validator: validate, logger: logger}
}

// List returns students and pagination metadata.
func (s *EstudianteService) List(ctx context.Context, filter models.EstudianteFilter) ([]models.Estudiante, *models.Pagination, error) {
	estudiantes, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list estudiantes")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}
	return estudiantes, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// ListDeleted returns logically deleted students.
func (s *EstudianteService) ListDeleted(ctx context.Context) ([]models.Estudiante, error) {
	estudiantes, err := s.repo.ListDeleted(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list deleted estudiantes")
	}
	return estudiantes, nil
}

// Get returns one active student.
func (s *EstudianteService) Get(ctx context.Context, id string) (*models.Estudiante, error) {
	estudiante, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NotFoundEntity("estudiante", "id", id)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load estudiante")
	}
	return estudiante, nil
}

// Create registers a new student. The codigo must be unique among active
// students.
func (s *EstudianteService) Create(ctx context.Context, req CreateEstudianteRequest) (*models.Estudiante, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid estudiante payload")
	}
	exists, err := s.repo.ExistsByCodigo(ctx, req.CodigoEstudiante, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate codigo")
	}
	if exists {
		return nil, appErrors.DuplicateField("estudiante", "codigo", req.CodigoEstudiante)
	}
	estudiante := &models.Estudiante{
		UsuarioID:        req.UsuarioID,
		CodigoEstudiante: req.CodigoEstudiante,
		NombreCompleto:   req.NombreCompleto,
		FechaNacimiento:  req.FechaNacimiento,
		Direccion:        req.Direccion,
		Telefono:         req.Telefono,
	}
	if err := s.repo.Create(ctx, estudiante); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create estudiante")
	}
	return estudiante, nil
}

// Update modifies a student.
func (s *EstudianteService) Update(ctx context.Context, id string, req UpdateEstudianteRequest) (*models.Estudiante, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid estudiante payload")
	}
	estudiante, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	exists, err := s.repo.ExistsByCodigo(ctx, req.CodigoEstudiante, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate codigo")
	}
	if exists {
		return nil, appErrors.DuplicateField("estudiante", "codigo", req.CodigoEstudiante)
	}
	estudiante.UsuarioID = req.UsuarioID
	estudiante.CodigoEstudiante = req.CodigoEstudiante
	estudiante.NombreCompleto = req.NombreCompleto
	estudiante.FechaNacimiento = req.FechaNacimiento
	estudiante.Direccion = req.Direccion
	estudiante.Telefono = req.Telefono
	if err := s.repo.Update(ctx, estudiante); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update estudiante")
	}
	return estudiante, nil
}

// Delete soft-deletes a student. Enrollments, grades and attendance rows
// remain untouched for history.
func (s *EstudianteService) Delete(ctx context.Context, id string) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.NotFoundEntity("estudiante", "id", id)
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete estudiante")
	}
	return nil
}

// Restore revives a soft-deleted student without re-checking codigo
// uniqueness.
func (s *EstudianteService) Restore(ctx context.Context, id string) (*models.Estudiante, error) {
	if err := s.repo.Restore(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NotFoundEntity("estudiante eliminado", "id", id)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to restore estudiante")
	}
	return s.Get(ctx, id)
}
