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

type actividadRepository interface {
	ListByAsignatura(ctx context.Context, asignaturaID string) ([]models.Actividad, error)
	ListAbiertas(ctx context.Context, ref time.Time) ([]models.Actividad, error)
	ListProximas(ctx context.Context, ref time.Time) ([]models.Actividad, error)
	FindByID(ctx context.Context, id string) (*models.Actividad, error)
	Create(ctx context.Context, actividad *models.Actividad) error
	Update(ctx context.Context, actividad *models.Actividad) error
	SoftDelete(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) error
	ListDeleted(ctx context.Context) ([]models.Actividad, error)
	ListEntregas(ctx context.Context, actividadID string) ([]models.EntregaActividad, error)
	FindEntregaByID(ctx context.Context, id string) (*models.EntregaActividad, error)
	ExistsEntrega(ctx context.Context, actividadID, estudianteID string) (bool, error)
	CreateEntrega(ctx context.Context, entrega *models.EntregaActividad) error
	UpdateEntregaNota(ctx context.Context, id string, nota float64) error
	SoftDeleteEntrega(ctx context.Context, id string) error
	ListDeletedEntregas(ctx context.Context) ([]models.EntregaActividad, error)
	RestoreEntrega(ctx context.Context, id string) error
}

type actividadAsignaturaLookup interface {
	FindByID(ctx context.Context, id string) (*models.Asignatura, error)
}

type actividadProfesorLookup interface {
	FindByID(ctx context.Context, id string) (*models.Profesor, error)
}

type actividadEstudianteLookup interface {
	FindByID(ctx context.Context, id string) (*models.Estudiante, error)
}

// CreateActividadRequest holds payload for publishing an assignment.
type CreateActividadRequest struct {
	AsignaturaID  string    `json:"asignatura_id" validate:"required,uuid4"`
	ProfesorID    string    `json:"profesor_id" validate:"required,uuid4"`
	Titulo        string    `json:"titulo" validate:"required,min=3,max=150"`
	Descripcion   string    `json:"descripcion" validate:"max=2000"`
	FechaApertura time.Time `json:"fecha_apertura" validate:"required"`
	FechaCierre   time.Time `json:"fecha_cierre" validate:"required"`
	Activo        bool      `json:"activo"`
}

// UpdateActividadRequest holds payload for updating an assignment.
type UpdateActividadRequest struct {
	Titulo        string    `json:"titulo" validate:"required,min=3,max=150"`
	Descripcion   string    `json:"descripcion" validate:"max=2000"`
	FechaApertura time.Time `json:"fecha_apertura" validate:"required"`
	FechaCierre   time.Time `json:"fecha_cierre" validate:"required"`
	Activo        bool      `json:"activo"`
}

// CrearEntregaRequest holds payload for submitting to an assignment.
type CrearEntregaRequest struct {
	ActividadID  string `json:"actividad_id" validate:"required,uuid4"`
	EstudianteID string `json:"estudiante_id" validate:"required,uuid4"`
	ArchivoURL   string `json:"archivo_url" validate:"max=500"`
	Comentario   string `json:"comentario" validate:"max=1000"`
}

// CalificarEntregaRequest holds payload for scoring a submission. Nota lives
// in the closed interval [0,10].
type CalificarEntregaRequest struct {
	Nota float64 `json:"nota" validate:"gte=0,lte=10"`
}

// ActividadService handles assignment and submission use-cases.
type ActividadService struct {
	repo        actividadRepository
	asignaturas actividadAsignaturaLookup
	profesores  actividadProfesorLookup
	estudiantes actividadEstudianteLookup
	validator   *validator.Validate
	logger      *zap.Logger
	now         func() time.Time
}

// NewActividadService constructs the assignment service.
func NewActividadService(repo actividadRepository, asignaturas actividadAsignaturaLookup, profesores actividadProfesorLookup, estudiantes actividadEstudianteLookup, validate *validator.Validate, logger *zap.Logger) *ActividadService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ActividadService{
		repo:        repo,
		asignaturas: asignaturas,
		profesores:  profesores,
		estudiantes: estudiantes,
		validator:   validate,
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// ListByAsignatura returns active assignments of a subject.
func (s *ActividadService) ListByAsignatura(ctx context.Context, asignaturaID string) ([]models.Actividad, error) {
	actividades, err := s.repo.ListByAsignatura(ctx, asignaturaID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list actividades")
	}
	return actividades, nil
}

// ListAbiertas returns assignments currently accepting submissions.
func (s *ActividadService) ListAbiertas(ctx context.Context) ([]models.Actividad, error) {
	actividades, err := s.repo.ListAbiertas(ctx, s.now())
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list actividades abiertas")
	}
	return actividades, nil
}

// ListProximas returns assignments that open in the future.
func (s *ActividadService) ListProximas(ctx context.Context) ([]models.Actividad, error) {
	actividades, err := s.repo.ListProximas(ctx, s.now())
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list actividades proximas")
	}
	return actividades, nil
}

// Get returns one active assignment.
func (s *ActividadService) Get(ctx context.Context, id string) (*models.Actividad, error) {
	actividad, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NotFoundEntity("actividad", "id", id)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load actividad")
	}
	return actividad, nil
}

// Create publishes an assignment. The close date must not precede the open
// date.
func (s *ActividadService) Create(ctx context.Context, req CreateActividadRequest) (*models.Actividad, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid actividad payload")
	}
	if req.FechaCierre.Before(req.FechaApertura) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "fecha_cierre must not precede fecha_apertura")
	}
	if _, err := s.asignaturas.FindByID(ctx, req.AsignaturaID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NotFoundEntity("asignatura", "id", req.AsignaturaID)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load asignatura")
	}
	if _, err := s.profesores.FindByID(ctx, req.ProfesorID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NotFoundEntity("profesor", "id", req.ProfesorID)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load profesor")
	}
	actividad := &models.Actividad{
		AsignaturaID:  req.AsignaturaID,
		ProfesorID:    req.ProfesorID,
		Titulo:        req.Titulo,
		Descripcion:   req.Descripcion,
		FechaApertura: req.FechaApertura,
		FechaCierre:   req.FechaCierre,
		Activo:        req.Activo,
	}
	if err := s.repo.Create(ctx, actividad); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create actividad")
	}
	return actividad, nil
}

// Update modifies an assignment.
func (s *ActividadService) Update(ctx context.Context, id string, req UpdateActividadRequest) (*models.Actividad, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid actividad payload")
	}
	if req.FechaCierre.Before(req.FechaApertura) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "fecha_cierre must not precede fecha_apertura")
	}
	actividad, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	actividad.Titulo = req.Titulo
	actividad.Descripcion = req.Descripcion
	actividad.FechaApertura = req.FechaApertura
	actividad.FechaCierre = req.FechaCierre
	actividad.Activo = req.Activo
	if err := s.repo.Update(ctx, actividad); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update actividad")
	}
	return actividad, nil
}

// Delete soft-deletes an assignment.
func (s *ActividadService) Delete(ctx context.Context, id string) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.NotFoundEntity("actividad", "id", id)
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete actividad")
	}
	return nil
}

// Restore revives a soft-deleted assignment.
func (s *ActividadService) Restore(ctx context.Context, id string) (*models.Actividad, error) {
	if err := s.repo.Restore(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NotFoundEntity("actividad eliminada", "id", id)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to restore actividad")
	}
	return s.Get(ctx, id)
}

// ListDeleted returns soft-deleted assignments.
func (s *ActividadService) ListDeleted(ctx context.Context) ([]models.Actividad, error) {
	actividades, err := s.repo.ListDeleted(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list deleted actividades")
	}
	return actividades, nil
}

// ListEntregas returns active submissions of one assignment.
func (s *ActividadService) ListEntregas(ctx context.Context, actividadID string) ([]models.EntregaActividad, error) {
	entregas, err := s.repo.ListEntregas(ctx, actividadID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list entregas")
	}
	return entregas, nil
}

// CrearEntrega submits to an assignment. The window must be open at the time
// of the call, both bounds inclusive, and the student must not already hold
// an active submission.
func (s *ActividadService) CrearEntrega(ctx context.Context, req CrearEntregaRequest) (*models.EntregaActividad, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid entrega payload")
	}
	actividad, err := s.Get(ctx, req.ActividadID)
	if err != nil {
		return nil, err
	}
	if _, err := s.estudiantes.FindByID(ctx, req.EstudianteID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NotFoundEntity("estudiante", "id", req.EstudianteID)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load estudiante")
	}
	now := s.now()
	if !actividad.EstaAbierta(now) {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "actividad is not open for entregas")
	}
	exists, err := s.repo.ExistsEntrega(ctx, req.ActividadID, req.EstudianteID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check entrega")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "entrega already submitted for actividad")
	}
	entrega := &models.EntregaActividad{
		ActividadID:  req.ActividadID,
		EstudianteID: req.EstudianteID,
		ArchivoURL:   req.ArchivoURL,
		Comentario:   req.Comentario,
		FechaEntrega: now,
	}
	if err := s.repo.CreateEntrega(ctx, entrega); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create entrega")
	}
	return entrega, nil
}

// CalificarEntrega stores or replaces a submission score.
func (s *ActividadService) CalificarEntrega(ctx context.Context, id string, req CalificarEntregaRequest) (*models.EntregaActividad, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid nota payload")
	}
	if err := s.repo.UpdateEntregaNota(ctx, id, req.Nota); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NotFoundEntity("entrega", "id", id)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update nota")
	}
	entrega, err := s.repo.FindEntregaByID(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load entrega")
	}
	return entrega, nil
}

// DeleteEntrega soft-deletes a submission, freeing the slot for a new one.
func (s *ActividadService) DeleteEntrega(ctx context.Context, id string) error {
	if err := s.repo.SoftDeleteEntrega(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.NotFoundEntity("entrega", "id", id)
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete entrega")
	}
	return nil
}

// ListDeletedEntregas returns soft-deleted submissions.
func (s *ActividadService) ListDeletedEntregas(ctx context.Context) ([]models.EntregaActividad, error) {
	entregas, err := s.repo.ListDeletedEntregas(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list deleted entregas")
	}
	return entregas, nil
}

// RestoreEntrega revives a soft-deleted submission. The (actividad,
// estudiante) slot is not re-checked on restore.
func (s *ActividadService) RestoreEntrega(ctx context.Context, id string) (*models.EntregaActividad, error) {
	if err := s.repo.RestoreEntrega(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NotFoundEntity("entrega eliminada", "id", id)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to restore entrega")
	}
	entrega, err := s.repo.FindEntregaByID(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load entrega")
	}
	return entrega, nil
}
