package service

import (
	"context"
	"database/sql"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campusdev/gestion-escolar-api/internal/models"
	appErrors "github.com/campusdev/gestion-escolar-api/pkg/errors"
)

type reporteRepository interface {
	List(ctx context.Context, filter models.ReporteFilter) ([]models.ReporteDetail, int, error)
	FindByID(ctx context.Context, id string) (*models.ReporteDetail, error)
	Create(ctx context.Context, reporte *models.Reporte) error
	Update(ctx context.Context, reporte *models.Reporte) error
	SoftDelete(ctx context.Context, id string) error
	ListDeleted(ctx context.Context) ([]models.ReporteDetail, error)
	Restore(ctx context.Context, id string) error
}

type reporteEstudianteLookup interface {
	FindByID(ctx context.Context, id string) (*models.Estudiante, error)
}

type reporteCursoLookup interface {
	FindByID(ctx context.Context, id string) (*models.CursoDetail, error)
}

type reporteUsuarioLookup interface {
	FindByID(ctx context.Context, id string) (*models.UsuarioDetail, error)
}

// CreateReporteRequest holds payload for raising a report. CursoID is
// optional; when present the report is scoped to that offering.
type CreateReporteRequest struct {
	EstudianteID string             `json:"estudiante_id" validate:"required,uuid4"`
	CursoID      *string            `json:"curso_id" validate:"omitempty,uuid4"`
	CreadorID    string             `json:"creador_id" validate:"required,uuid4"`
	Tipo         models.TipoReporte `json:"tipo" validate:"required"`
	Severidad    models.Severidad   `json:"severidad" validate:"required"`
	Titulo       string             `json:"titulo" validate:"required,min=3,max=150"`
	Descripcion  string             `json:"descripcion" validate:"required,max=2000"`
	ArchivoURL   string             `json:"archivo_url" validate:"max=500"`
}

// UpdateReporteRequest holds payload for amending a report.
type UpdateReporteRequest struct {
	Tipo        models.TipoReporte `json:"tipo" validate:"required"`
	Severidad   models.Severidad   `json:"severidad" validate:"required"`
	Titulo      string             `json:"titulo" validate:"required,min=3,max=150"`
	Descripcion string             `json:"descripcion" validate:"required,max=2000"`
	ArchivoURL  string             `json:"archivo_url" validate:"max=500"`
}

// ReporteService handles incident report use-cases.
type ReporteService struct {
	repo        reporteRepository
	estudiantes reporteEstudianteLookup
	cursos      reporteCursoLookup
	usuarios    reporteUsuarioLookup
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewReporteService constructs the report service.
func NewReporteService(repo reporteRepository, estudiantes reporteEstudianteLookup, cursos reporteCursoLookup, usuarios reporteUsuarioLookup, validate *validator.Validate, logger *zap.Logger) *ReporteService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReporteService{
		repo:        repo,
		estudiantes: estudiantes,
		cursos:      cursos,
		usuarios:    usuarios,
		validator:   validate,
		logger:      logger,
	}
}

// List returns active reports matching the filter.
func (s *ReporteService) List(ctx context.Context, filter models.ReporteFilter) ([]models.ReporteDetail, int, error) {
	reportes, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list reportes")
	}
	return reportes, total, nil
}

// Get returns one active report with display names.
func (s *ReporteService) Get(ctx context.Context, id string) (*models.ReporteDetail, error) {
	reporte, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NotFoundEntity("reporte", "id", id)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load reporte")
	}
	return reporte, nil
}

// Create raises a report about an active student.
func (s *ReporteService) Create(ctx context.Context, req CreateReporteRequest) (*models.ReporteDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid reporte payload")
	}
	if !req.Tipo.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown tipo de reporte")
	}
	if !req.Severidad.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown severidad")
	}
	if _, err := s.estudiantes.FindByID(ctx, req.EstudianteID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NotFoundEntity("estudiante", "id", req.EstudianteID)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load estudiante")
	}
	if req.CursoID != nil {
		if _, err := s.cursos.FindByID(ctx, *req.CursoID); err != nil {
			if err == sql.ErrNoRows {
				return nil, appErrors.NotFoundEntity("curso", "id", *req.CursoID)
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load curso")
		}
	}
	if _, err := s.usuarios.FindByID(ctx, req.CreadorID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NotFoundEntity("usuario", "id", req.CreadorID)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load usuario")
	}
	reporte := &models.Reporte{
		EstudianteID: req.EstudianteID,
		CursoID:      req.CursoID,
		CreadorID:    req.CreadorID,
		Tipo:         req.Tipo,
		Severidad:    req.Severidad,
		Titulo:       req.Titulo,
		Descripcion:  req.Descripcion,
		ArchivoURL:   req.ArchivoURL,
	}
	if err := s.repo.Create(ctx, reporte); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create reporte")
	}
	return s.Get(ctx, reporte.ID)
}

// Update amends a report. Student, course and creator bindings are fixed at
// creation time.
func (s *ReporteService) Update(ctx context.Context, id string, req UpdateReporteRequest) (*models.ReporteDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid reporte payload")
	}
	if !req.Tipo.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown tipo de reporte")
	}
	if !req.Severidad.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown severidad")
	}
	detalle, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	reporte := detalle.Reporte
	reporte.Tipo = req.Tipo
	reporte.Severidad = req.Severidad
	reporte.Titulo = req.Titulo
	reporte.Descripcion = req.Descripcion
	reporte.ArchivoURL = req.ArchivoURL
	if err := s.repo.Update(ctx, &reporte); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update reporte")
	}
	return s.Get(ctx, id)
}

// Delete soft-deletes a report.
func (s *ReporteService) Delete(ctx context.Context, id string) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.NotFoundEntity("reporte", "id", id)
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete reporte")
	}
	return nil
}

// ListDeleted returns soft-deleted reports.
func (s *ReporteService) ListDeleted(ctx context.Context) ([]models.ReporteDetail, error) {
	reportes, err := s.repo.ListDeleted(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list deleted reportes")
	}
	return reportes, nil
}

// Restore revives a soft-deleted report.
func (s *ReporteService) Restore(ctx context.Context, id string) (*models.ReporteDetail, error) {
	if err := s.repo.Restore(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NotFoundEntity("reporte eliminado", "id", id)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to restore reporte")
	}
	return s.Get(ctx, id)
}
