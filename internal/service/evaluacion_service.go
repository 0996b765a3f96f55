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

type evaluacionRepository interface {
	ListByCurso(ctx context.Context, cursoID string) ([]models.Evaluacion, error)
	ListProximas(ctx context.Context, desde time.Time, hasta *time.Time) ([]models.Evaluacion, error)
	ListDeleted(ctx context.Context) ([]models.Evaluacion, error)
	FindByID(ctx context.Context, id string) (*models.Evaluacion, error)
	Create(ctx context.Context, evaluacion *models.Evaluacion) error
	Update(ctx context.Context, evaluacion *models.Evaluacion) error
	SoftDelete(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) error
	ListTipos(ctx context.Context) ([]models.TipoEvaluacion, error)
	ListDeletedTipos(ctx context.Context) ([]models.TipoEvaluacion, error)
	FindTipoByID(ctx context.Context, id string) (*models.TipoEvaluacion, error)
	CreateTipo(ctx context.Context, tipo *models.TipoEvaluacion) error
	UpdateTipo(ctx context.Context, tipo *models.TipoEvaluacion) error
	SoftDeleteTipo(ctx context.Context, id string) error
	RestoreTipo(ctx context.Context, id string) error
}

type evaluacionCursoLookup interface {
	FindByID(ctx context.Context, id string) (*models.CursoDetail, error)
}

// CreateEvaluacionRequest holds payload for scheduling an assessment.
// Peso lives in the closed interval [0,100].
type CreateEvaluacionRequest struct {
	CursoID          string    `json:"curso_id" validate:"required,uuid4"`
	TipoEvaluacionID string    `json:"tipo_evaluacion_id" validate:"required,uuid4"`
	Titulo           string    `json:"titulo" validate:"required,min=3,max=150"`
	Descripcion      string    `json:"descripcion" validate:"max=500"`
	Fecha            time.Time `json:"fecha" validate:"required"`
	Peso             float64   `json:"peso" validate:"gte=0,lte=100"`
	Publicado        bool      `json:"publicado"`
}

// UpdateEvaluacionRequest holds payload for updating an assessment.
type UpdateEvaluacionRequest struct {
	TipoEvaluacionID string    `json:"tipo_evaluacion_id" validate:"required,uuid4"`
	Titulo           string    `json:"titulo" validate:"required,min=3,max=150"`
	Descripcion      string    `json:"descripcion" validate:"max=500"`
	Fecha            time.Time `json:"fecha" validate:"required"`
	Peso             float64   `json:"peso" validate:"gte=0,lte=100"`
	Publicado        bool      `json:"publicado"`
}

// SaveTipoEvaluacionRequest holds payload for assessment types.
type SaveTipoEvaluacionRequest struct {
	Nombre string  `json:"nombre" validate:"required,min=2,max=50"`
	Peso   float64 `json:"peso" validate:"gte=0,lte=100"`
}

// EvaluacionService handles assessment use-cases.
type EvaluacionService struct {
	repo      evaluacionRepository
	cursos    evaluacionCursoLookup
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewEvaluacionService constructs the assessment service.
func NewEvaluacionService(repo evaluacionRepository, cursos evaluacionCursoLookup, validate *validator.Validate, logger *zap.Logger) *EvaluacionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EvaluacionService{repo: repo, cursos: cursos, validator: validate, logger: logger, now: func() time.Time { return time.Now().UTC() }}
}

// ListByCurso returns active assessments of an offering.
func (s *EvaluacionService) ListByCurso(ctx context.Context, cursoID string) ([]models.Evaluacion, error) {
	evaluaciones, err := s.repo.ListByCurso(ctx, cursoID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list evaluaciones")
	}
	return evaluaciones, nil
}

// ListProximas returns published assessments dated today or later, ascending.
// A positive dias caps the horizon to that many days from today, inclusive;
// zero or negative means no cap.
func (s *EvaluacionService) ListProximas(ctx context.Context, dias int) ([]models.Evaluacion, error) {
	desde := s.now()
	var hasta *time.Time
	if dias > 0 {
		limite := desde.AddDate(0, 0, dias)
		hasta = &limite
	}
	evaluaciones, err := s.repo.ListProximas(ctx, desde, hasta)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list evaluaciones proximas")
	}
	return evaluaciones, nil
}

// ListDeleted returns soft-deleted assessments.
func (s *EvaluacionService) ListDeleted(ctx context.Context) ([]models.Evaluacion, error) {
	evaluaciones, err := s.repo.ListDeleted(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list deleted evaluaciones")
	}
	return evaluaciones, nil
}

// Get returns one active assessment.
func (s *EvaluacionService) Get(ctx context.Context, id string) (*models.Evaluacion, error) {
	evaluacion, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NotFoundEntity("evaluacion", "id", id)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load evaluacion")
	}
	return evaluacion, nil
}

// Create schedules an assessment in an active offering.
func (s *EvaluacionService) Create(ctx context.Context, req CreateEvaluacionRequest) (*models.Evaluacion, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid evaluacion payload")
	}
	if _, err := s.cursos.FindByID(ctx, req.CursoID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NotFoundEntity("curso", "id", req.CursoID)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load curso")
	}
	if _, err := s.repo.FindTipoByID(ctx, req.TipoEvaluacionID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NotFoundEntity("tipo de evaluacion", "id", req.TipoEvaluacionID)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load tipo de evaluacion")
	}
	evaluacion := &models.Evaluacion{
		CursoID:          req.CursoID,
		TipoEvaluacionID: req.TipoEvaluacionID,
		Titulo:           req.Titulo,
		Descripcion:      req.Descripcion,
		Fecha:            req.Fecha,
		Peso:             req.Peso,
		Publicado:        req.Publicado,
	}
	if err := s.repo.Create(ctx, evaluacion); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create evaluacion")
	}
	return evaluacion, nil
}

// Update modifies an assessment.
func (s *EvaluacionService) Update(ctx context.Context, id string, req UpdateEvaluacionRequest) (*models.Evaluacion, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid evaluacion payload")
	}
	evaluacion, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.FindTipoByID(ctx, req.TipoEvaluacionID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NotFoundEntity("tipo de evaluacion", "id", req.TipoEvaluacionID)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load tipo de evaluacion")
	}
	evaluacion.TipoEvaluacionID = req.TipoEvaluacionID
	evaluacion.Titulo = req.Titulo
	evaluacion.Descripcion = req.Descripcion
	evaluacion.Fecha = req.Fecha
	evaluacion.Peso = req.Peso
	evaluacion.Publicado = req.Publicado
	if err := s.repo.Update(ctx, evaluacion); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update evaluacion")
	}
	return evaluacion, nil
}

// Delete soft-deletes an assessment, which removes its grades from averages.
func (s *EvaluacionService) Delete(ctx context.Context, id string) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.NotFoundEntity("evaluacion", "id", id)
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete evaluacion")
	}
	return nil
}

// Restore revives a soft-deleted assessment, bringing its grades back into
// averages.
func (s *EvaluacionService) Restore(ctx context.Context, id string) (*models.Evaluacion, error) {
	if err := s.repo.Restore(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NotFoundEntity("evaluacion eliminada", "id", id)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to restore evaluacion")
	}
	return s.Get(ctx, id)
}

// ListTipos returns active assessment types.
func (s *EvaluacionService) ListTipos(ctx context.Context) ([]models.TipoEvaluacion, error) {
	tipos, err := s.repo.ListTipos(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list tipos de evaluacion")
	}
	return tipos, nil
}

// CreateTipo registers an assessment type.
func (s *EvaluacionService) CreateTipo(ctx context.Context, req SaveTipoEvaluacionRequest) (*models.TipoEvaluacion, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid tipo payload")
	}
	tipo := &models.TipoEvaluacion{Nombre: req.Nombre, Peso: req.Peso}
	if err := s.repo.CreateTipo(ctx, tipo); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create tipo")
	}
	return tipo, nil
}

// UpdateTipo modifies an assessment type.
func (s *EvaluacionService) UpdateTipo(ctx context.Context, id string, req SaveTipoEvaluacionRequest) (*models.TipoEvaluacion, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid tipo payload")
	}
	tipo, err := s.repo.FindTipoByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NotFoundEntity("tipo de evaluacion", "id", id)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load tipo")
	}
	tipo.Nombre = req.Nombre
	tipo.Peso = req.Peso
	if err := s.repo.UpdateTipo(ctx, tipo); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update tipo")
	}
	return tipo, nil
}

// DeleteTipo soft-deletes an assessment type.
func (s *EvaluacionService) DeleteTipo(ctx context.Context, id string) error {
	if err := s.repo.SoftDeleteTipo(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.NotFoundEntity("tipo de evaluacion", "id", id)
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete tipo")
	}
	return nil
}

// ListDeletedTipos returns soft-deleted assessment types.
func (s *EvaluacionService) ListDeletedTipos(ctx context.Context) ([]models.TipoEvaluacion, error) {
	tipos, err := s.repo.ListDeletedTipos(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list deleted tipos")
	}
	return tipos, nil
}

// RestoreTipo revives a soft-deleted assessment type.
func (s *EvaluacionService) RestoreTipo(ctx context.Context, id string) (*models.TipoEvaluacion, error) {
	if err := s.repo.RestoreTipo(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NotFoundEntity("tipo de evaluacion eliminado", "id", id)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to restore tipo")
	}
	tipo, err := s.repo.FindTipoByID(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load tipo")
	}
	return tipo, nil
}
