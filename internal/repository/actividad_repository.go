package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/campusdev/gestion-escolar-api/internal/models"
)

// ActividadRepository manages persistence for assignments and submissions.
type ActividadRepository struct {
	db *sqlx.DB
}

// NewActividadRepository constructs an ActividadRepository.
func NewActividadRepository(db *sqlx.DB) *ActividadRepository {
	return &ActividadRepository{db: db}
}

const actividadColumns = `id, asignatura_id, profesor_id, titulo, descripcion, fecha_apertura, fecha_cierre, activo, created_at, updated_at, deleted_at`

// ListByAsignatura returns active assignments of a subject.
func (r *ActividadRepository) ListByAsignatura(ctx context.Context, asignaturaID string) ([]models.Actividad, error) {
	query := fmt.Sprintf("SELECT %s FROM actividades WHERE asignatura_id = $1 AND deleted_at IS NULL ORDER BY fecha_cierre DESC", actividadColumns)
	var actividades []models.Actividad
	if err := r.db.SelectContext(ctx, &actividades, query, asignaturaID); err != nil {
		return nil, fmt.Errorf("list actividades: %w", err)
	}
	return actividades, nil
}

// ListAbiertas returns assignments whose submission window covers ref, both
// bounds inclusive, excluding inactive and deleted rows.
func (r *ActividadRepository) ListAbiertas(ctx context.Context, ref time.Time) ([]models.Actividad, error) {
	query := fmt.Sprintf(`SELECT %s FROM actividades
        WHERE activo = true AND fecha_apertura <= $1 AND fecha_cierre >= $1 AND deleted_at IS NULL
        ORDER BY fecha_cierre ASC`, actividadColumns)
	var actividades []models.Actividad
	if err := r.db.SelectContext(ctx, &actividades, query, ref); err != nil {
		return nil, fmt.Errorf("list actividades abiertas: %w", err)
	}
	return actividades, nil
}

// ListProximas returns active assignments opening after ref.
func (r *ActividadRepository) ListProximas(ctx context.Context, ref time.Time) ([]models.Actividad, error) {
	query := fmt.Sprintf(`SELECT %s FROM actividades
        WHERE activo = true AND fecha_apertura > $1 AND deleted_at IS NULL
        ORDER BY fecha_apertura ASC`, actividadColumns)
	var actividades []models.Actividad
	if err := r.db.SelectContext(ctx, &actividades, query, ref); err != nil {
		return nil, fmt.Errorf("list actividades proximas: %w", err)
	}
	return actividades, nil
}

// FindByID loads an active assignment by id.
func (r *ActividadRepository) FindByID(ctx context.Context, id string) (*models.Actividad, error) {
	query := fmt.Sprintf("SELECT %s FROM actividades WHERE id = $1 AND deleted_at IS NULL", actividadColumns)
	var actividad models.Actividad
	if err := r.db.GetContext(ctx, &actividad, query, id); err != nil {
		return nil, err
	}
	return &actividad, nil
}

// Create inserts a new assignment.
func (r *ActividadRepository) Create(ctx context.Context, actividad *models.Actividad) error {
	if actividad.ID == "" {
		actividad.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if actividad.CreatedAt.IsZero() {
		actividad.CreatedAt = now
	}
	actividad.UpdatedAt = now
	const query = `INSERT INTO actividades (id, asignatura_id, profesor_id, titulo, descripcion, fecha_apertura, fecha_cierre, activo, created_at, updated_at)
        VALUES (:id, :asignatura_id, :profesor_id, :titulo, :descripcion, :fecha_apertura, :fecha_cierre, :activo, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, actividad); err != nil {
		return fmt.Errorf("create actividad: %w", err)
	}
	return nil
}

// Update modifies an existing assignment.
func (r *ActividadRepository) Update(ctx context.Context, actividad *models.Actividad) error {
	actividad.UpdatedAt = time.Now().UTC()
	const query = `UPDATE actividades SET titulo = :titulo, descripcion = :descripcion, fecha_apertura = :fecha_apertura, fecha_cierre = :fecha_cierre, activo = :activo, updated_at = :updated_at WHERE id = :id AND deleted_at IS NULL`
	if _, err := r.db.NamedExecContext(ctx, query, actividad); err != nil {
		return fmt.Errorf("update actividad: %w", err)
	}
	return nil
}

// SoftDelete stamps the assignment as deleted.
func (r *ActividadRepository) SoftDelete(ctx context.Context, id string) error {
	const query = `UPDATE actividades SET deleted_at = $2, updated_at = $2 WHERE id = $1 AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, query, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("soft delete actividad: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListDeleted returns soft-deleted assignments, most recently deleted first.
func (r *ActividadRepository) ListDeleted(ctx context.Context) ([]models.Actividad, error) {
	query := fmt.Sprintf("SELECT %s FROM actividades WHERE deleted_at IS NOT NULL ORDER BY deleted_at DESC", actividadColumns)
	var actividades []models.Actividad
	if err := r.db.SelectContext(ctx, &actividades, query); err != nil {
		return nil, fmt.Errorf("list deleted actividades: %w", err)
	}
	return actividades, nil
}

// Restore clears the deletion stamp.
func (r *ActividadRepository) Restore(ctx context.Context, id string) error {
	const query = `UPDATE actividades SET deleted_at = NULL, updated_at = $2 WHERE id = $1 AND deleted_at IS NOT NULL`
	res, err := r.db.ExecContext(ctx, query, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("restore actividad: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

const entregaColumns = `id, actividad_id, estudiante_id, archivo_url, comentario, nota, fecha_entrega, created_at, updated_at, deleted_at`

// ListEntregas returns active submissions of one assignment.
func (r *ActividadRepository) ListEntregas(ctx context.Context, actividadID string) ([]models.EntregaActividad, error) {
	query := fmt.Sprintf("SELECT %s FROM entregas_actividad WHERE actividad_id = $1 AND deleted_at IS NULL ORDER BY fecha_entrega ASC", entregaColumns)
	var entregas []models.EntregaActividad
	if err := r.db.SelectContext(ctx, &entregas, query, actividadID); err != nil {
		return nil, fmt.Errorf("list entregas: %w", err)
	}
	return entregas, nil
}

// FindEntregaByID loads an active submission by id.
func (r *ActividadRepository) FindEntregaByID(ctx context.Context, id string) (*models.EntregaActividad, error) {
	query := fmt.Sprintf("SELECT %s FROM entregas_actividad WHERE id = $1 AND deleted_at IS NULL", entregaColumns)
	var entrega models.EntregaActividad
	if err := r.db.GetContext(ctx, &entrega, query, id); err != nil {
		return nil, err
	}
	return &entrega, nil
}

// ExistsEntrega reports whether the student already submitted to the
// assignment. One active submission per (actividad, estudiante).
func (r *ActividadRepository) ExistsEntrega(ctx context.Context, actividadID, estudianteID string) (bool, error) {
	const query = `SELECT 1 FROM entregas_actividad WHERE actividad_id = $1 AND estudiante_id = $2 AND deleted_at IS NULL LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, actividadID, estudianteID); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check entrega: %w", err)
	}
	return true, nil
}

// CreateEntrega inserts a new submission.
func (r *ActividadRepository) CreateEntrega(ctx context.Context, entrega *models.EntregaActividad) error {
	if entrega.ID == "" {
		entrega.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if entrega.CreatedAt.IsZero() {
		entrega.CreatedAt = now
	}
	entrega.UpdatedAt = now
	if entrega.FechaEntrega.IsZero() {
		entrega.FechaEntrega = now
	}
	const query = `INSERT INTO entregas_actividad (id, actividad_id, estudiante_id, archivo_url, comentario, nota, fecha_entrega, created_at, updated_at)
        VALUES (:id, :actividad_id, :estudiante_id, :archivo_url, :comentario, :nota, :fecha_entrega, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, entrega); err != nil {
		return fmt.Errorf("create entrega: %w", err)
	}
	return nil
}

// UpdateEntregaNota stores or replaces the submission score.
func (r *ActividadRepository) UpdateEntregaNota(ctx context.Context, id string, nota float64) error {
	const query = `UPDATE entregas_actividad SET nota = $2, updated_at = $3 WHERE id = $1 AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, query, id, nota, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update entrega nota: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// SoftDeleteEntrega stamps the submission as deleted, which frees the
// (actividad, estudiante) slot for a new submission.
func (r *ActividadRepository) SoftDeleteEntrega(ctx context.Context, id string) error {
	const query = `UPDATE entregas_actividad SET deleted_at = $2, updated_at = $2 WHERE id = $1 AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, query, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("soft delete entrega: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListDeletedEntregas returns soft-deleted submissions, most recently deleted
// first.
func (r *ActividadRepository) ListDeletedEntregas(ctx context.Context) ([]models.EntregaActividad, error) {
	query := fmt.Sprintf("SELECT %s FROM entregas_actividad WHERE deleted_at IS NOT NULL ORDER BY deleted_at DESC", entregaColumns)
	var entregas []models.EntregaActividad
	if err := r.db.SelectContext(ctx, &entregas, query); err != nil {
		return nil, fmt.Errorf("list deleted entregas: %w", err)
	}
	return entregas, nil
}

// RestoreEntrega clears the deletion stamp on a submission. Restoring may
// collide with a newer active submission for the same slot; the uniqueness
// check only guards creation.
func (r *ActividadRepository) RestoreEntrega(ctx context.Context, id string) error {
	const query = `UPDATE entregas_actividad SET deleted_at = NULL, updated_at = $2 WHERE id = $1 AND deleted_at IS NOT NULL`
	res, err := r.db.ExecContext(ctx, query, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("restore entrega: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
