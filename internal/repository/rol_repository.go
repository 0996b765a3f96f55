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

// RolRepository manages persistence for roles.
type RolRepository struct {
	db *sqlx.DB
}

// NewRolRepository constructs a RolRepository.
func NewRolRepository(db *sqlx.DB) *RolRepository {
	return &RolRepository{db: db}
}

// List returns all active roles.
func (r *RolRepository) List(ctx context.Context) ([]models.Rol, error) {
	const query = `SELECT id, nombre, descripcion, created_at, updated_at, deleted_at FROM roles WHERE deleted_at IS NULL ORDER BY nombre ASC`
	var roles []models.Rol
	if err := r.db.SelectContext(ctx, &roles, query); err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	return roles, nil
}

// ListDeleted returns logically deleted roles.
func (r *RolRepository) ListDeleted(ctx context.Context) ([]models.Rol, error) {
	const query = `SELECT id, nombre, descripcion, created_at, updated_at, deleted_at FROM roles WHERE deleted_at IS NOT NULL ORDER BY deleted_at DESC`
	var roles []models.Rol
	if err := r.db.SelectContext(ctx, &roles, query); err != nil {
		return nil, fmt.Errorf("list deleted roles: %w", err)
	}
	return roles, nil
}

// FindByID loads an active role by id.
func (r *RolRepository) FindByID(ctx context.Context, id string) (*models.Rol, error) {
	const query = `SELECT id, nombre, descripcion, created_at, updated_at, deleted_at FROM roles WHERE id = $1 AND deleted_at IS NULL`
	var rol models.Rol
	if err := r.db.GetContext(ctx, &rol, query, id); err != nil {
		return nil, err
	}
	return &rol, nil
}

// ExistsByNombre checks whether an active role uses the given name,
// optionally excluding an id.
func (r *RolRepository) ExistsByNombre(ctx context.Context, nombre, excludeID string) (bool, error) {
	query := "SELECT 1 FROM roles WHERE nombre = $1 AND deleted_at IS NULL"
	args := []interface{}{nombre}
	if excludeID != "" {
		query += " AND id <> $2"
		args = append(args, excludeID)
	}
	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check rol nombre: %w", err)
	}
	return true, nil
}

// Create inserts a new role.
func (r *RolRepository) Create(ctx context.Context, rol *models.Rol) error {
	if rol.ID == "" {
		rol.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if rol.CreatedAt.IsZero() {
		rol.CreatedAt = now
	}
	rol.UpdatedAt = now
	const query = `INSERT INTO roles (id, nombre, descripcion, created_at, updated_at)
        VALUES (:id, :nombre, :descripcion, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, rol); err != nil {
		return fmt.Errorf("create rol: %w", err)
	}
	return nil
}

// Update modifies an existing role.
func (r *RolRepository) Update(ctx context.Context, rol *models.Rol) error {
	rol.UpdatedAt = time.Now().UTC()
	const query = `UPDATE roles SET nombre = :nombre, descripcion = :descripcion, updated_at = :updated_at WHERE id = :id AND deleted_at IS NULL`
	if _, err := r.db.NamedExecContext(ctx, query, rol); err != nil {
		return fmt.Errorf("update rol: %w", err)
	}
	return nil
}

// SoftDelete stamps the role as deleted.
func (r *RolRepository) SoftDelete(ctx context.Context, id string) error {
	const query = `UPDATE roles SET deleted_at = $2, updated_at = $2 WHERE id = $1 AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, query, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("soft delete rol: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Restore clears the deletion stamp. Name uniqueness against active rows is
// not re-checked here.
func (r *RolRepository) Restore(ctx context.Context, id string) error {
	const query = `UPDATE roles SET deleted_at = NULL, updated_at = $2 WHERE id = $1 AND deleted_at IS NOT NULL`
	res, err := r.db.ExecContext(ctx, query, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("restore rol: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
