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

// UnidadRepository manages persistence for course units and their topics.
type UnidadRepository struct {
	db *sqlx.DB
}

// NewUnidadRepository constructs a UnidadRepository.
func NewUnidadRepository(db *sqlx.DB) *UnidadRepository {
	return &UnidadRepository{db: db}
}

// ListByCurso returns active units of an offering ordered by orden.
func (r *UnidadRepository) ListByCurso(ctx context.Context, cursoID string) ([]models.Unidad, error) {
	const query = `SELECT id, curso_id, titulo, orden, created_at, updated_at, deleted_at FROM unidades WHERE curso_id = $1 AND deleted_at IS NULL ORDER BY orden ASC`
	var unidades []models.Unidad
	if err := r.db.SelectContext(ctx, &unidades, query, cursoID); err != nil {
		return nil, fmt.Errorf("list unidades: %w", err)
	}
	return unidades, nil
}

// FindByID loads an active unit by id.
func (r *UnidadRepository) FindByID(ctx context.Context, id string) (*models.Unidad, error) {
	const query = `SELECT id, curso_id, titulo, orden, created_at, updated_at, deleted_at FROM unidades WHERE id = $1 AND deleted_at IS NULL`
	var unidad models.Unidad
	if err := r.db.GetContext(ctx, &unidad, query, id); err != nil {
		return nil, err
	}
	return &unidad, nil
}

// Create inserts a new unit.
func (r *UnidadRepository) Create(ctx context.Context, unidad *models.Unidad) error {
	if unidad.ID == "" {
		unidad.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if unidad.CreatedAt.IsZero() {
		unidad.CreatedAt = now
	}
	unidad.UpdatedAt = now
	const query = `INSERT INTO unidades (id, curso_id, titulo, orden, created_at, updated_at)
        VALUES (:id, :curso_id, :titulo, :orden, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, unidad); err != nil {
		return fmt.Errorf("create unidad: %w", err)
	}
	return nil
}

// Update modifies an existing unit.
func (r *UnidadRepository) Update(ctx context.Context, unidad *models.Unidad) error {
	unidad.UpdatedAt = time.Now().UTC()
	const query = `UPDATE unidades SET titulo = :titulo, orden = :orden, updated_at = :updated_at WHERE id = :id AND deleted_at IS NULL`
	if _, err := r.db.NamedExecContext(ctx, query, unidad); err != nil {
		return fmt.Errorf("update unidad: %w", err)
	}
	return nil
}

// SoftDelete stamps the unit as deleted.
func (r *UnidadRepository) SoftDelete(ctx context.Context, id string) error {
	const query = `UPDATE unidades SET deleted_at = $2, updated_at = $2 WHERE id = $1 AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, query, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("soft delete unidad: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListDeleted returns soft-deleted units, most recently deleted first.
func (r *UnidadRepository) ListDeleted(ctx context.Context) ([]models.Unidad, error) {
	const query = `SELECT id, curso_id, titulo, orden, created_at, updated_at, deleted_at FROM unidades WHERE deleted_at IS NOT NULL ORDER BY deleted_at DESC`
	var unidades []models.Unidad
	if err := r.db.SelectContext(ctx, &unidades, query); err != nil {
		return nil, fmt.Errorf("list deleted unidades: %w", err)
	}
	return unidades, nil
}

// Restore clears the deletion stamp on a unit.
func (r *UnidadRepository) Restore(ctx context.Context, id string) error {
	const query = `UPDATE unidades SET deleted_at = NULL, updated_at = $2 WHERE id = $1 AND deleted_at IS NOT NULL`
	res, err := r.db.ExecContext(ctx, query, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("restore unidad: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListTemas returns active topics of a unit ordered by orden.
func (r *UnidadRepository) ListTemas(ctx context.Context, unidadID string) ([]models.Tema, error) {
	const query = `SELECT id, unidad_id, titulo, orden, created_at, updated_at, deleted_at FROM temas WHERE unidad_id = $1 AND deleted_at IS NULL ORDER BY orden ASC`
	var temas []models.Tema
	if err := r.db.SelectContext(ctx, &temas, query, unidadID); err != nil {
		return nil, fmt.Errorf("list temas: %w", err)
	}
	return temas, nil
}

// FindTemaByID loads an active topic by id.
func (r *UnidadRepository) FindTemaByID(ctx context.Context, id string) (*models.Tema, error) {
	const query = `SELECT id, unidad_id, titulo, orden, created_at, updated_at, deleted_at FROM temas WHERE id = $1 AND deleted_at IS NULL`
	var tema models.Tema
	if err := r.db.GetContext(ctx, &tema, query, id); err != nil {
		return nil, err
	}
	return &tema, nil
}

// CreateTema inserts a new topic.
func (r *UnidadRepository) CreateTema(ctx context.Context, tema *models.Tema) error {
	if tema.ID == "" {
		tema.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if tema.CreatedAt.IsZero() {
		tema.CreatedAt = now
	}
	tema.UpdatedAt = now
	const query = `INSERT INTO temas (id, unidad_id, titulo, orden, created_at, updated_at)
        VALUES (:id, :unidad_id, :titulo, :orden, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, tema); err != nil {
		return fmt.Errorf("create tema: %w", err)
	}
	return nil
}

// UpdateTema modifies an existing topic.
func (r *UnidadRepository) UpdateTema(ctx context.Context, tema *models.Tema) error {
	tema.UpdatedAt = time.Now().UTC()
	const query = `UPDATE temas SET titulo = :titulo, orden = :orden, updated_at = :updated_at WHERE id = :id AND deleted_at IS NULL`
	if _, err := r.db.NamedExecContext(ctx, query, tema); err != nil {
		return fmt.Errorf("update tema: %w", err)
	}
	return nil
}

// SoftDeleteTema stamps the topic as deleted.
func (r *UnidadRepository) SoftDeleteTema(ctx context.Context, id string) error {
	const query = `UPDATE temas SET deleted_at = $2, updated_at = $2 WHERE id = $1 AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, query, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("soft delete tema: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListDeletedTemas returns soft-deleted topics, most recently deleted first.
func (r *UnidadRepository) ListDeletedTemas(ctx context.Context) ([]models.Tema, error) {
	const query = `SELECT id, unidad_id, titulo, orden, created_at, updated_at, deleted_at FROM temas WHERE deleted_at IS NOT NULL ORDER BY deleted_at DESC`
	var temas []models.Tema
	if err := r.db.SelectContext(ctx, &temas, query); err != nil {
		return nil, fmt.Errorf("list deleted temas: %w", err)
	}
	return temas, nil
}

// RestoreTema clears the deletion stamp on a topic.
func (r *UnidadRepository) RestoreTema(ctx context.Context, id string) error {
	const query = `UPDATE temas SET deleted_at = NULL, updated_at = $2 WHERE id = $1 AND deleted_at IS NOT NULL`
	res, err := r.db.ExecContext(ctx, query, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("restore tema: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
