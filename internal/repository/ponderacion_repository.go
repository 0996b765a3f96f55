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

// PonderacionRepository manages persistence for per-course weighting
// categories.
type PonderacionRepository struct {
	db *sqlx.DB
}

// NewPonderacionRepository constructs a PonderacionRepository.
func NewPonderacionRepository(db *sqlx.DB) *PonderacionRepository {
	return &PonderacionRepository{db: db}
}

const ponderacionColumns = `id, curso_id, nombre, peso_porcentaje, created_at, updated_at, deleted_at`

// ListByCurso returns active weighting categories of an offering.
func (r *PonderacionRepository) ListByCurso(ctx context.Context, cursoID string) ([]models.TipoPonderacionCurso, error) {
	query := fmt.Sprintf("SELECT %s FROM tipos_ponderacion_curso WHERE curso_id = $1 AND deleted_at IS NULL ORDER BY nombre ASC", ponderacionColumns)
	var ponderaciones []models.TipoPonderacionCurso
	if err := r.db.SelectContext(ctx, &ponderaciones, query, cursoID); err != nil {
		return nil, fmt.Errorf("list ponderaciones: %w", err)
	}
	return ponderaciones, nil
}

// FindByID loads an active weighting category by id.
func (r *PonderacionRepository) FindByID(ctx context.Context, id string) (*models.TipoPonderacionCurso, error) {
	query := fmt.Sprintf("SELECT %s FROM tipos_ponderacion_curso WHERE id = $1 AND deleted_at IS NULL", ponderacionColumns)
	var ponderacion models.TipoPonderacionCurso
	if err := r.db.GetContext(ctx, &ponderacion, query, id); err != nil {
		return nil, err
	}
	return &ponderacion, nil
}

// SumaPesos totals the active weights of an offering. The caller reports the
// total as-is; nothing enforces that it reaches 100.
func (r *PonderacionRepository) SumaPesos(ctx context.Context, cursoID string) (float64, error) {
	const query = `SELECT COALESCE(SUM(peso_porcentaje), 0) FROM tipos_ponderacion_curso WHERE curso_id = $1 AND deleted_at IS NULL`
	var suma float64
	if err := r.db.GetContext(ctx, &suma, query, cursoID); err != nil {
		return 0, fmt.Errorf("suma ponderaciones: %w", err)
	}
	return suma, nil
}

// Create inserts a new weighting category.
func (r *PonderacionRepository) Create(ctx context.Context, ponderacion *models.TipoPonderacionCurso) error {
	if ponderacion.ID == "" {
		ponderacion.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if ponderacion.CreatedAt.IsZero() {
		ponderacion.CreatedAt = now
	}
	ponderacion.UpdatedAt = now
	const query = `INSERT INTO tipos_ponderacion_curso (id, curso_id, nombre, peso_porcentaje, created_at, updated_at)
        VALUES (:id, :curso_id, :nombre, :peso_porcentaje, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, ponderacion); err != nil {
		return fmt.Errorf("create ponderacion: %w", err)
	}
	return nil
}

// Update modifies an existing weighting category.
func (r *PonderacionRepository) Update(ctx context.Context, ponderacion *models.TipoPonderacionCurso) error {
	ponderacion.UpdatedAt = time.Now().UTC()
	const query = `UPDATE tipos_ponderacion_curso SET nombre = :nombre, peso_porcentaje = :peso_porcentaje, updated_at = :updated_at WHERE id = :id AND deleted_at IS NULL`
	if _, err := r.db.NamedExecContext(ctx, query, ponderacion); err != nil {
		return fmt.Errorf("update ponderacion: %w", err)
	}
	return nil
}

// SoftDelete stamps the weighting category as deleted.
func (r *PonderacionRepository) SoftDelete(ctx context.Context, id string) error {
	const query = `UPDATE tipos_ponderacion_curso SET deleted_at = $2, updated_at = $2 WHERE id = $1 AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, query, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("soft delete ponderacion: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListDeleted returns soft-deleted weighting categories, most recently
// deleted first.
func (r *PonderacionRepository) ListDeleted(ctx context.Context) ([]models.TipoPonderacionCurso, error) {
	query := fmt.Sprintf("SELECT %s FROM tipos_ponderacion_curso WHERE deleted_at IS NOT NULL ORDER BY deleted_at DESC", ponderacionColumns)
	var ponderaciones []models.TipoPonderacionCurso
	if err := r.db.SelectContext(ctx, &ponderaciones, query); err != nil {
		return nil, fmt.Errorf("list deleted ponderaciones: %w", err)
	}
	return ponderaciones, nil
}

// Restore clears the deletion stamp on a weighting category.
func (r *PonderacionRepository) Restore(ctx context.Context, id string) error {
	const query = `UPDATE tipos_ponderacion_curso SET deleted_at = NULL, updated_at = $2 WHERE id = $1 AND deleted_at IS NOT NULL`
	res, err := r.db.ExecContext(ctx, query, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("restore ponderacion: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
