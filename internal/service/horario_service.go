package service

import (
	"context"
	"database/sql"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campusdev/gestion-escolar-api/internal/models"
	appErrors "github.com/campusdev/gestion-escolar-api/pkg/errors"
)

type horarioRepository interface {
	ListByCurso(ctx context.Context, cursoID string) ([]models.HorarioCurso, error)
	FindByID(ctx context.Context, id string) (*models.HorarioCurso, error)
	ExistsSlot(ctx context.Context, cursoID, bloqueID string, dia models.DiaSemana, excludeID string) (bool, error)
	FindConflictos(ctx context.Context) ([]models.ConflictoHorario, error)
	Create(ctx context.Context, horario *models.HorarioCurso) error
	Update(ctx context.Context, horario *models.HorarioCurso) error
	SoftDelete(ctx context.Context, id string) error
	ListDeleted(ctx context.Context) ([]models.HorarioCurso, error)
	Restore(ctx context.Context, id string) error
	ListBloques(ctx context.Context) ([]models.BloqueHorario, error)
	FindBloqueByID(ctx context.Context, id string) (*models.BloqueHorario, error)
	CreateBloque(ctx context.Context, bloque *models.BloqueHorario) error
	UpdateBloque(ctx context.Context, bloque *models.BloqueHorario) error
	SoftDeleteBloque(ctx context.Context, id string) error
	ListDeletedBloques(ctx context.Context) ([]models.BloqueHorario, error)
	RestoreBloque(ctx context.Context, id string) error
}

type horarioCursoLookup interface {
	FindByID(ctx context.Context, id string) (*models.CursoDetail, error)
}

// SaveHorarioRequest holds payload for placing a course into a slot.
type SaveHorarioRequest struct {
	BloqueID string             `json:"bloque_id" validate:"required,uuid4"`
	Dia      models.DiaSemana   `json:"dia" validate:"required"`
	Aula     string             `json:"aula" validate:"required,max=50"`
	Tipo     models.TipoHorario `json:"tipo" validate:"required"`
}

// SaveBloqueRequest holds payload for timetable blocks. Times use HH:MM.
type SaveBloqueRequest struct {
	Nombre     string `json:"nombre" validate:"required,min=2,max=50"`
	HoraInicio string `json:"hora_inicio" validate:"required,len=5"`
	HoraFin    string `json:"hora_fin" validate:"required,len=5"`
}

// HorarioService handles timetable use-cases. A course may hold at most one
// active slot per (bloque, dia); room collisions across courses are
// reported, not prevented.
type HorarioService struct {
	repo      horarioRepository
	cursos    horarioCursoLookup
	validator *validator.Validate
	logger    *zap.Logger
}

// NewHorarioService constructs the timetable service.
func NewHorarioService(repo horarioRepository, cursos horarioCursoLookup, validate *validator.Validate, logger *zap.Logger) *HorarioService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HorarioService{repo: repo, cursos: cursos, validator: validate, logger: logger}
}

// ListByCurso returns active slots of an offering.
func (s *HorarioService) ListByCurso(ctx context.Context, cursoID string) ([]models.HorarioCurso, error) {
	horarios, err := s.repo.ListByCurso(ctx, cursoID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list horarios")
	}
	return horarios, nil
}

// Create places an offering into a slot. The (bloque, dia) pair must be free
// for the course.
func (s *HorarioService) Create(ctx context.Context, cursoID string, req SaveHorarioRequest) (*models.HorarioCurso, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid horario payload")
	}
	if !req.Dia.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown dia")
	}
	if !req.Tipo.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown tipo de horario")
	}
	if _, err := s.cursos.FindByID(ctx, cursoID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NotFoundEntity("curso", "id", cursoID)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load curso")
	}
	if _, err := s.repo.FindBloqueByID(ctx, req.BloqueID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NotFoundEntity("bloque", "id", req.BloqueID)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load bloque")
	}
	ocupado, err := s.repo.ExistsSlot(ctx, cursoID, req.BloqueID, req.Dia, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check slot")
	}
	if ocupado {
		return nil, appErrors.Clone(appErrors.ErrConflict, "curso already occupies the slot")
	}
	horario := &models.HorarioCurso{
		CursoID:  cursoID,
		BloqueID: req.BloqueID,
		Dia:      req.Dia,
		Aula:     req.Aula,
		Tipo:     req.Tipo,
	}
	if err := s.repo.Create(ctx, horario); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create horario")
	}
	return horario, nil
}

// Update moves a slot, re-checking that the destination (bloque, dia) pair
// is free for the course.
func (s *HorarioService) Update(ctx context.Context, id string, req SaveHorarioRequest) (*models.HorarioCurso, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid horario payload")
	}
	if !req.Dia.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown dia")
	}
	if !req.Tipo.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown tipo de horario")
	}
	horario, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NotFoundEntity("horario", "id", id)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load horario")
	}
	if _, err := s.repo.FindBloqueByID(ctx, req.BloqueID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NotFoundEntity("bloque", "id", req.BloqueID)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load bloque")
	}
	ocupado, err := s.repo.ExistsSlot(ctx, horario.CursoID, req.BloqueID, req.Dia, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check slot")
	}
	if ocupado {
		return nil, appErrors.Clone(appErrors.ErrConflict, "curso already occupies the slot")
	}
	horario.BloqueID = req.BloqueID
	horario.Dia = req.Dia
	horario.Aula = req.Aula
	horario.Tipo = req.Tipo
	if err := s.repo.Update(ctx, horario); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update horario")
	}
	return horario, nil
}

// Delete soft-deletes a slot, removing it from conflict scans.
func (s *HorarioService) Delete(ctx context.Context, id string) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.NotFoundEntity("horario", "id", id)
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete horario")
	}
	return nil
}

// ListDeleted returns soft-deleted slots.
func (s *HorarioService) ListDeleted(ctx context.Context) ([]models.HorarioCurso, error) {
	horarios, err := s.repo.ListDeleted(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list deleted horarios")
	}
	return horarios, nil
}

// Restore revives a soft-deleted slot. The slot pairing is not re-checked; a
// restored slot may collide with one created after its deletion.
func (s *HorarioService) Restore(ctx context.Context, id string) (*models.HorarioCurso, error) {
	if err := s.repo.Restore(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NotFoundEntity("horario eliminado", "id", id)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to restore horario")
	}
	horario, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load horario")
	}
	return horario, nil
}

// Conflictos returns groups of active slots colliding on (dia, bloque,
// aula). The report is advisory; conflicting writes are not blocked.
func (s *HorarioService) Conflictos(ctx context.Context) ([]models.ConflictoHorario, error) {
	conflictos, err := s.repo.FindConflictos(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to find conflictos")
	}
	return conflictos, nil
}

// ListBloques returns active timetable blocks.
func (s *HorarioService) ListBloques(ctx context.Context) ([]models.BloqueHorario, error) {
	bloques, err := s.repo.ListBloques(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list bloques")
	}
	return bloques, nil
}

// CreateBloque registers a timetable block.
func (s *HorarioService) CreateBloque(ctx context.Context, req SaveBloqueRequest) (*models.BloqueHorario, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid bloque payload")
	}
	bloque := &models.BloqueHorario{Nombre: req.Nombre, HoraInicio: req.HoraInicio, HoraFin: req.HoraFin}
	if err := s.repo.CreateBloque(ctx, bloque); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create bloque")
	}
	return bloque, nil
}

// UpdateBloque modifies a timetable block.
func (s *HorarioService) UpdateBloque(ctx context.Context, id string, req SaveBloqueRequest) (*models.BloqueHorario, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid bloque payload")
	}
	bloque, err := s.repo.FindBloqueByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NotFoundEntity("bloque", "id", id)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load bloque")
	}
	bloque.Nombre = req.Nombre
	bloque.HoraInicio = req.HoraInicio
	bloque.HoraFin = req.HoraFin
	if err := s.repo.UpdateBloque(ctx, bloque); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update bloque")
	}
	return bloque, nil
}

// DeleteBloque soft-deletes a timetable block.
func (s *HorarioService) DeleteBloque(ctx context.Context, id string) error {
	if err := s.repo.SoftDeleteBloque(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.NotFoundEntity("bloque", "id", id)
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete bloque")
	}
	return nil
}

// ListDeletedBloques returns soft-deleted timetable blocks.
func (s *HorarioService) ListDeletedBloques(ctx context.Context) ([]models.BloqueHorario, error) {
	bloques, err := s.repo.ListDeletedBloques(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list deleted bloques")
	}
	return bloques, nil
}

// RestoreBloque revives a soft-deleted timetable block.
func (s *HorarioService) RestoreBloque(ctx context.Context, id string) (*models.BloqueHorario, error) {
	if err := s.repo.RestoreBloque(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NotFoundEntity("bloque eliminado", "id", id)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to restore bloque")
	}
	bloque, err := s.repo.FindBloqueByID(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load bloque")
	}
	return bloque, nil
}
