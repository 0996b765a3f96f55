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

type periodoRepository interface {
	List(ctx context.Context) ([]models.Periodo, error)
	ListDeleted(ctx context.Context) ([]models.Periodo, error)
	FindByID(ctx context.Context, id string) (*models.Periodo, error)
	FindActual(ctx context.Context, ref time.Time) (*models.Periodo, error)
	Create(ctx context.Context, periodo *models.Periodo) error
	Update(ctx context.Context, periodo *models.Periodo) error
	SoftDelete(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) error
}

// CreatePeriodoRequest holds payload for creating academic terms.
type CreatePeriodoRequest struct {
	Nombre      string    `json:"nombre" validate:"required,min=3,max=50"`
	FechaInicio time.Time `json:"fecha_inicio" validate:"required"`
	FechaFin    time.Time `json:"fecha_fin" validate:"required"`
	Activo      bool      `json:"activo"`
}

// UpdatePeriodoRequest holds payload for updating academic terms.
type UpdatePeriodoRequest struct {
	Nombre      string    `json:"nombre" validate:"required,min=3,max=50"`
	FechaInicio time.Time `json:"fecha_inicio" validate:"required"`
	FechaFin    time.Time `json:"fecha_fin" validate:"required"`
	Activo      bool      `json:"activo"`
}

// PeriodoService handles academic term use-cases.
type PeriodoService struct {
	repo      periodoRepository
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewPeriodoService constructs the term service.
func NewPeriodoService(repo periodoRepository, validate *validator.Validate, logger *zap.Logger) *PeriodoService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PeriodoService{repo: repo, validator: validate, logger: logger, now: func() time.Time { return time.Now().UTC() }}
}

// List returns active terms.
func (s *PeriodoService) List(ctx context.Context) ([]models.Periodo, error) {
	periodos, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list periodos")
	}
	return periodos, nil
}

// ListDeleted returns logically deleted terms.
func (s *PeriodoService) ListDeleted(ctx context.Context) ([]models.Periodo, error) {
	periodos, err := s.repo.ListDeleted(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list deleted periodos")
	}
	return periodos, nil
}

// Get returns one active term.
func (s *PeriodoService) Get(ctx context.Context, id string) (*models.Periodo, error) {
	periodo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NotFoundEntity("periodo", "id", id)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load periodo")
	}
	return periodo, nil
}

// GetActual returns the term in course today. Nothing prevents overlapping
// active terms; when several match, one is returned.
func (s *PeriodoService) GetActual(ctx context.Context) (*models.Periodo, error) {
	periodo, err := s.repo.FindActual(ctx, s.now())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "no active periodo covers the current date")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load periodo actual")
	}
	return periodo, nil
}

// Create registers a new term. The end date must not precede the start date.
func (s *PeriodoService) Create(ctx context.Context, req CreatePeriodoRequest) (*models.Periodo, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid periodo payload")
	}
	if req.FechaFin.Before(req.FechaInicio) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "fecha_fin must not precede fecha_inicio")
	}
	periodo := &models.Periodo{
		Nombre:      req.Nombre,
		FechaInicio: req.FechaInicio,
		FechaFin:    req.FechaFin,
		Activo:      req.Activo,
	}
	if err := s.repo.Create(ctx, periodo); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create periodo")
	}
	return periodo, nil
}

// Update modifies a term.
func (s *PeriodoService) Update(ctx context.Context, id string, req UpdatePeriodoRequest) (*models.Periodo, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid periodo payload")
	}
	if req.FechaFin.Before(req.FechaInicio) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "fecha_fin must not precede fecha_inicio")
	}
	periodo, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	periodo.Nombre = req.Nombre
	periodo.FechaInicio = req.FechaInicio
	periodo.FechaFin = req.FechaFin
	periodo.Activo = req.Activo
	if err := s.repo.Update(ctx, periodo); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update periodo")
	}
	return periodo, nil
}

// Delete soft-deletes a term.
func (s *PeriodoService) Delete(ctx context.Context, id string) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.NotFoundEntity("periodo", "id", id)
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete periodo")
	}
	return nil
}

// Restore revives a soft-deleted term.
func (s *PeriodoService) Restore(ctx context.Context, id string) (*models.Periodo, error) {
	if err := s.repo.Restore(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NotFoundEntity("periodo eliminado", "id", id)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to restore periodo")
	}
	return s.Get(ctx, id)
}
