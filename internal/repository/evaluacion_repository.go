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

// EvaluacionRepository manages persistence for assessments and their types.
type EvaluacionRepository struct {
	db *sqlx.DB
}

// NewEvaluacionRepository constructs an EvaluacionRepository.
func NewEvaluacionRepository(db *sqlx.DB) *EvaluacionRepository {
	return &EvaluacionRepository{db: db}
}

const evaluacionColumns = `id, curso_id, tipo_evaluacion_id, titulo, descripcion, fecha, peso, publicado, created_at, updated_at, deleted_at`

// ListByCurso returns active assessments of an offering ordered by date.
func (r *EvaluacionRepository) ListByCurso(ctx context.Context, cursoID string) ([]models.Evaluacion, error) {
	query := fmt.Sprintf("SELECT %s FROM evaluaciones WHERE curso_id = $1 AND deleted_at IS NULL ORDER BY fecha ASC", evaluacionColumns)
	var evaluaciones []models.Evaluacion
	if err := r.db.SelectContext(ctx, &evaluaciones, query, cursoID); err != nil {
		return nil, fmt.Errorf("list evaluaciones: %w", err)
	}
	return evaluaciones, nil
}

// ListProximas returns published active assessments dated on or after desde,
// ascending. A non-nil hasta caps the window, inclusive. Unpublished rows are
// never surfaced here.
func (r *EvaluacionRepository) ListProximas(ctx context.Context, desde time.Time, hasta *time.Time) ([]models.Evaluacion, error) {
	query := fmt.Sprintf("SELECT %s FROM evaluaciones WHERE publicado = true AND fecha >= $1 AND deleted_at IS NULL", evaluacionColumns)
	args := []interface{}{desde}
	if hasta != nil {
		query += " AND fecha <= $2"
		args = append(args, *hasta)
	}
	query += " ORDER BY fecha ASC"
	var evaluaciones []models.Evaluacion
	if err := r.db.SelectContext(ctx, &evaluaciones, query, args...); err != nil {
		return nil, fmt.Errorf("list evaluaciones proximas: %w", err)
	}
	return evaluaciones, nil
}

// FindByID loads an active assessment by id.
func (r *EvaluacionRepository) FindByID(ctx context.Context, id string) (*models.Evaluacion, error) {
	query := fmt.Sprintf("SELECT %s FROM evaluaciones WHERE id = $1 AND deleted_at IS NULL", evaluacionColumns)
	var evaluacion models.Evaluacion
	if err := r.db.GetContext(ctx, &evaluacion, query, id); err != nil {
		return nil, err
	}
	return &evaluacion, nil
}

// Create inserts a new assessment.
func (r *EvaluacionRepository) Create(ctx context.Context, evaluacion *models.Evaluacion) error {
	if evaluacion.ID == "" {
		evaluacion.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if evaluacion.CreatedAt.IsZero() {
		evaluacion.CreatedAt = now
	}
	evaluacion.UpdatedAt = now
	const query = `INSERT INTO evaluaciones (id, curso_id, tipo_evaluacion_id, titulo, descripcion, fecha, peso, publicado, created_at, updated_at)
        VALUES (:id, :curso_id, :tipo_evaluacion_id, :titulo, :descripcion, :fecha, :peso, :publicado, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, evaluacion); err != nil {
		return fmt.Errorf("create evaluacion: %w", err)
	}
	return nil
}

// Update modifies an existing assessment.
func (r *EvaluacionRepository) Update(ctx context.Context, evaluacion *models.Evaluacion) error {
	evaluacion.UpdatedAt = time.Now().UTC()
	const query = `UPDATE evaluaciones SET tipo_evaluacion_id = :tipo_evaluacion_id, titulo = :titulo, descripcion = :descripcion, fecha = :fecha, peso = :peso, publicado = :publicado, updated_at = :updated_at WHERE id = :id AND deleted_at IS NULL`
	if _, err := r.db.NamedExecContext(ctx, query, evaluacion); err != nil {
		return fmt.Errorf("update evaluacion: %w", err)
	}
	return nil
}

// SoftDelete stamps the assessment as deleted. Grades referencing it stop
// counting toward averages because averages join on non-deleted assessments.
func (r *EvaluacionRepository) SoftDelete(ctx context.Context, id string) error {
	const query = `UPDATE evaluaciones SET deleted_at = $2, updated_at = $2 WHERE id = $1 AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, query, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("soft delete evaluacion: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Restore clears the deletion stamp.
func (r *EvaluacionRepository) Restore(ctx context.Context, id string) error {
	const query = `UPDATE evaluaciones SET deleted_at = NULL, updated_at = $2 WHERE id = $1 AND deleted_at IS NOT NULL`
	res, err := r.db.ExecContext(ctx, query, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("restore evaluacion: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListDeleted returns soft-deleted assessments, most recently deleted first.
func (r *EvaluacionRepository) ListDeleted(ctx context.Context) ([]models.Evaluacion, error) {
	query := fmt.Sprintf("SELECT %s FROM evaluaciones WHERE deleted_at IS NOT NULL ORDER BY deleted_at DESC", evaluacionColumns)
	var evaluaciones []models.Evaluacion
	if err := r.db.SelectContext(ctx, &evaluaciones, query); err != nil {
		return nil, fmt.Errorf("list deleted evaluaciones: %w", err)
	}
	return evaluaciones, nil
}

// ListTipos returns active assessment types.
func (r *EvaluacionRepository) ListTipos(ctx context.Context) ([]models.TipoEvaluacion, error) {
	const query = `SELECT id, nombre, peso, created_at, updated_at, deleted_at FROM tipos_evaluacion WHERE deleted_at IS NULL ORDER BY nombre ASC`
	var tipos []models.TipoEvaluacion
	if err := r.db.SelectContext(ctx, &tipos, query); err != nil {
		return nil, fmt.Errorf("list tipos evaluacion: %w", err)
	}
	return tipos, nil
}

// FindTipoByID loads an active assessment type by id.
func (r *EvaluacionRepository) FindTipoByID(ctx context.Context, id string) (*models.TipoEvaluacion, error) {
	const query = `SELECT id, nombre, peso, created_at, updated_at, deleted_at FROM tipos_evaluacion WHERE id = $1 AND deleted_at IS NULL`
	var tipo models.TipoEvaluacion
	if err := r.db.GetContext(ctx, &tipo, query, id); err != nil {
		return nil, err
	}
	return &tipo, nil
}

// CreateTipo inserts a new assessment type.
func (r *EvaluacionRepository) CreateTipo(ctx context.Context, tipo *models.TipoEvaluacion) error {
	if tipo.ID == "" {
		tipo.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if tipo.CreatedAt.IsZero() {
		tipo.CreatedAt = now
	}
	tipo.UpdatedAt = now
	const query = `INSERT INTO tipos_evaluacion (id, nombre, peso, created_at, updated_at)
        VALUES (:id, :nombre, :peso, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, tipo); err != nil {
		return fmt.Errorf("create tipo evaluacion: %w", err)
	}
	return nil
}

// UpdateTipo modifies an existing assessment type.
func (r *EvaluacionRepository) UpdateTipo(ctx context.Context, tipo *models.TipoEvaluacion) error {
	tipo.UpdatedAt = time.Now().UTC()
	const query = `UPDATE tipos_evaluacion SET nombre = :nombre, peso = :peso, updated_at = :updated_at WHERE id = :id AND deleted_at IS NULL`
	if _, err := r.db.NamedExecContext(ctx, query, tipo); err != nil {
		return fmt.Errorf("update tipo evaluacion: %w", err)
	}
	return nil
}

// SoftDeleteTipo stamps the assessment type as deleted.
func (r *EvaluacionRepository) SoftDeleteTipo(ctx context.Context, id string) error {
	const query = `UPDATE tipos_evaluacion SET deleted_at = $2, updated_at = $2 WHERE id = $1 AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, query, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("soft delete tipo evaluacion: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListDeletedTipos returns soft-deleted assessment types, most recently
// deleted first.
func (r *EvaluacionRepository) ListDeletedTipos(ctx context.Context) ([]models.TipoEvaluacion, error) {
	const query = `SELECT id, nombre, peso, created_at, updated_at, deleted_at FROM tipos_evaluacion WHERE deleted_at IS NOT NULL ORDER BY deleted_at DESC`
	var tipos []models.TipoEvaluacion
	if err := r.db.SelectContext(ctx, &tipos, query); err != nil {
		return nil, fmt.Errorf("list deleted tipos evaluacion: %w", err)
	}
	return tipos, nil
}

// RestoreTipo clears the deletion stamp on an assessment type.
func (r *EvaluacionRepository) RestoreTipo(ctx context.Context, id string) error {
	const query = `UPDATE tipos_evaluacion SET deleted_at = NULL, updated_at = $2 WHERE id = $1 AND deleted_at IS NOT NULL`
	res, err := r.db.ExecContext(ctx, query, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("restore tipo evaluacion: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
