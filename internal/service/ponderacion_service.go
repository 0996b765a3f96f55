package service

import (
	"context"
	"database/sql"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campusdev/gestion-escolar-api/internal/models"
	appErrors "github.com/campusdev/gestion-escolar-api/pkg/errors"
)

type ponderacionRepository interface {
	ListByCurso(ctx context.Context, cursoID string) ([]models.TipoPonderacionCurso, error)
	FindByID(ctx context.Context, id string) (*models.TipoPonderacionCurso, error)
	SumaPesos(ctx context.Context, cursoID string) (float64, error)
	Create(ctx context.Context, ponderacion *models.TipoPonderacionCurso) error
	Update(ctx context.Context, ponderacion *models.TipoPonderacionCurso) error
	SoftDelete(ctx context.Context, id string) error
	ListDeleted(ctx context.Context) ([]models.TipoPonderacionCurso, error)
	Restore(ctx context.Context, id string) error
}

type ponderacionCursoLookup interface {
	FindByID(ctx context.Context, id string) (*models.CursoDetail, error)
}

// SavePonderacionRequest holds payload for weighting categories.
// PesoPorcentaje lives in the half-open interval (0,100].
type SavePonderacionRequest struct {
	Nombre         string  `json:"nombre" validate:"required,min=2,max=50"`
	PesoPorcentaje float64 `json:"peso_porcentaje" validate:"gt=0,lte=100"`
}

// PonderacionService handles per-course weighting use-cases. The weight sum
// is informational only: writes that leave the total away from 100 succeed.
type PonderacionService struct {
	repo      ponderacionRepository
	cursos    ponderacionCursoLookup
	validator *validator.Validate
	logger    *zap.Logger
}

// NewPonderacionService constructs the weighting service.
func NewPonderacionService(repo ponderacionRepository, cursos ponderacionCursoLookup, validate *validator.Validate, logger *zap.Logger) *PonderacionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PonderacionService{repo: repo, cursos: cursos, validator: validate, logger: logger}
}

// ListByCurso returns active weighting categories of an offering.
func (s *PonderacionService) ListByCurso(ctx context.Context, cursoID string) ([]models.TipoPonderacionCurso, error) {
	ponderaciones, err := s.repo.ListByCurso(ctx, cursoID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list ponderaciones")
	}
	return ponderaciones, nil
}

// Create adds a weighting category to an active offering. The resulting sum
// is not checked against 100.
func (s *PonderacionService) Create(ctx context.Context, cursoID string, req SavePonderacionRequest) (*models.TipoPonderacionCurso, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid ponderacion payload")
	}
	if _, err := s.cursos.FindByID(ctx, cursoID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NotFoundEntity("curso", "id", cursoID)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load curso")
	}
	ponderacion := &models.TipoPonderacionCurso{
		CursoID:        cursoID,
		Nombre:         req.Nombre,
		PesoPorcentaje: req.PesoPorcentaje,
	}
	if err := s.repo.Create(ctx, ponderacion); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create ponderacion")
	}
	return ponderacion, nil
}

// Update modifies a weighting category.
func (s *PonderacionService) Update(ctx context.Context, id string, req SavePonderacionRequest) (*models.TipoPonderacionCurso, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid ponderacion payload")
	}
	ponderacion, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NotFoundEntity("ponderacion", "id", id)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load ponderacion")
	}
	ponderacion.Nombre = req.Nombre
	ponderacion.PesoPorcentaje = req.PesoPorcentaje
	if err := s.repo.Update(ctx, ponderacion); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update ponderacion")
	}
	return ponderacion, nil
}

// Delete soft-deletes a weighting category.
func (s *PonderacionService) Delete(ctx context.Context, id string) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.NotFoundEntity("ponderacion", "id", id)
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete ponderacion")
	}
	return nil
}

// ListDeleted returns soft-deleted weighting categories.
func (s *PonderacionService) ListDeleted(ctx context.Context) ([]models.TipoPonderacionCurso, error) {
	ponderaciones, err := s.repo.ListDeleted(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list deleted ponderaciones")
	}
	return ponderaciones, nil
}

// Restore revives a soft-deleted weighting category. The restored weight goes
// back into the sum without any check against 100.
func (s *PonderacionService) Restore(ctx context.Context, id string) (*models.TipoPonderacionCurso, error) {
	if err := s.repo.Restore(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NotFoundEntity("ponderacion eliminada", "id", id)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to restore ponderacion")
	}
	ponderacion, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load ponderacion")
	}
	return ponderacion, nil
}

// Resumen reports the current weight total for an offering. Completo flags
// whether the total reaches exactly 100; it carries no enforcement.
func (s *PonderacionService) Resumen(ctx context.Context, cursoID string) (*models.ResumenPonderacion, error) {
	suma, err := s.repo.SumaPesos(ctx, cursoID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sum ponderaciones")
	}
	return &models.ResumenPonderacion{
		CursoID:   cursoID,
		SumaPesos: suma,
		Completo:  suma == 100,
	}, nil
}
