package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/campusdev/gestion-escolar-api/internal/models"
)

// AsignaturaRepository manages persistence for catalogue subjects.
type AsignaturaRepository struct {
	db *sqlx.DB
}

// NewAsignaturaRepository constructs an AsignaturaRepository.
func NewAsignaturaRepository(db *sqlx.DB) *AsignaturaRepository {
	return &AsignaturaRepository{db: db}
}

const asignaturaColumns = `id, codigo, nombre, descripcion, creditos, created_at, updated_at, deleted_at`

// List returns active subjects, optionally filtered by a name/code search.
func (r *AsignaturaRepository) List(ctx context.Context, search string) ([]models.Asignatura, error) {
	query := fmt.Sprintf("SELECT %s FROM asignaturas WHERE deleted_at IS NULL", asignaturaColumns)
	var args []interface{}
	if search != "" {
		query += " AND (LOWER(nombre) LIKE $1 OR LOWER(codigo) LIKE $1)"
		args = append(args, "%"+strings.ToLower(search)+"%")
	}
	query += " ORDER BY codigo ASC"

	var asignaturas []models.Asignatura
	if err := r.db.SelectContext(ctx, &asignaturas, query, args...); err != nil {
		return nil, fmt.Errorf("list asignaturas: %w", err)
	}
	return asignaturas, nil
}

// ListDeleted returns logically deleted subjects.
func (r *AsignaturaRepository) ListDeleted(ctx context.Context) ([]models.Asignatura, error) {
	query := fmt.Sprintf("SELECT %s FROM asignaturas WHERE deleted_at IS NOT NULL ORDER BY deleted_at DESC", asignaturaColumns)
	var asignaturas []models.Asignatura
	if err := r.db.SelectContext(ctx, &asignaturas, query); err != nil {
		return nil, fmt.Errorf("list deleted asignaturas: %w", err)
	}
	return asignaturas, nil
}

// FindByID loads an active subject by id.
func (r *AsignaturaRepository) FindByID(ctx context.Context, id string) (*models.Asignatura, error) {
	query := fmt.Sprintf("SELECT %s FROM asignaturas WHERE id = $1 AND deleted_at IS NULL", asignaturaColumns)
	var asignatura models.Asignatura
	if err := r.db.GetContext(ctx, &asignatura, query, id); err != nil {
		return nil, err
	}
	return &asignatura, nil
}

// ExistsByCodigo checks codigo uniqueness among active rows.
func (r *AsignaturaRepository) ExistsByCodigo(ctx context.Context, codigo, excludeID string) (bool, error) {
	query := "SELECT 1 FROM asignaturas WHERE codigo = $1 AND deleted_at IS NULL"
	args := []interface{}{codigo}
	if excludeID != "" {
		query += " AND id <> $2"
		args = append(args, excludeID)
	}
	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check asignatura codigo: %w", err)
	}
	return true, nil
}

// Create inserts a new subject.
func (r *AsignaturaRepository) Create(ctx context.Context, asignatura *models.Asignatura) error {
	if asignatura.ID == "" {
		asignatura.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if asignatura.CreatedAt.IsZero() {
		asignatura.CreatedAt = now
	}
	asignatura.UpdatedAt = now
	const query = `INSERT INTO asignaturas (id, codigo, nombre, descripcion, creditos, created_at, updated_at)
        VALUES (:id, :codigo, :nombre, :descripcion, :creditos, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, asignatura); err != nil {
		return fmt.Errorf("create asignatura: %w", err)
	}
	return nil
}

// Update modifies an existing subject.
func (r *AsignaturaRepository) Update(ctx context.Context, asignatura *models.Asignatura) error {
	asignatura.UpdatedAt = time.Now().UTC()
	const query = `UPDATE asignaturas SET codigo = :codigo, nombre = :nombre, descripcion = :descripcion, creditos = :creditos, updated_at = :updated_at WHERE id = :id AND deleted_at IS NULL`
	if _, err := r.db.NamedExecContext(ctx, query, asignatura); err != nil {
		return fmt.Errorf("update asignatura: %w", err)
	}
	return nil
}

// SoftDelete stamps the subject as deleted.
func (r *AsignaturaRepository) SoftDelete(ctx context.Context, id string) error {
	const query = `UPDATE asignaturas SET deleted_at = $2, updated_at = $2 WHERE id = $1 AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, query, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("soft delete asignatura: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Restore clears the deletion stamp without re-checking codigo uniqueness.
func (r *AsignaturaRepository) Restore(ctx context.Context, id string) error {
	const query = `UPDATE asignaturas SET deleted_at = NULL, updated_at = $2 WHERE id = $1 AND deleted_at IS NOT NULL`
	res, err := r.db.ExecContext(ctx, query, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("restore asignatura: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
