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

// ClaseRepository manages persistence for dictated class sessions.
type ClaseRepository struct {
	db *sqlx.DB
}

// NewClaseRepository constructs a ClaseRepository.
func NewClaseRepository(db *sqlx.DB) *ClaseRepository {
	return &ClaseRepository{db: db}
}

const claseColumns = `id, curso_id, unidad_id, tema_id, fecha, observaciones, created_at, updated_at, deleted_at`

// List returns active sessions matching the filter.
func (r *ClaseRepository) List(ctx context.Context, filter models.ClaseFilter) ([]models.Clase, int, error) {
	base := "FROM clases WHERE deleted_at IS NULL"
	var args []interface{}

	if filter.CursoID != "" {
		base += fmt.Sprintf(" AND curso_id = $%d", len(args)+1)
		args = append(args, filter.CursoID)
	}
	if filter.Desde != nil {
		base += fmt.Sprintf(" AND fecha >= $%d", len(args)+1)
		args = append(args, *filter.Desde)
	}
	if filter.Hasta != nil {
		base += fmt.Sprintf(" AND fecha <= $%d", len(args)+1)
		args = append(args, *filter.Hasta)
	}

	order := strings.ToUpper(filter.SortOrder)
	if order != "ASC" && order != "DESC" {
		order = "DESC"
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}

	query := fmt.Sprintf("SELECT %s %s ORDER BY fecha %s LIMIT %d OFFSET %d", claseColumns, base, order, size, (page-1)*size)
	var clases []models.Clase
	if err := r.db.SelectContext(ctx, &clases, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list clases: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, fmt.Sprintf("SELECT COUNT(*) %s", base), args...); err != nil {
		return nil, 0, fmt.Errorf("count clases: %w", err)
	}
	return clases, total, nil
}

// FindByID loads an active session by id.
func (r *ClaseRepository) FindByID(ctx context.Context, id string) (*models.Clase, error) {
	query := fmt.Sprintf("SELECT %s FROM clases WHERE id = $1 AND deleted_at IS NULL", claseColumns)
	var clase models.Clase
	if err := r.db.GetContext(ctx, &clase, query, id); err != nil {
		return nil, err
	}
	return &clase, nil
}

// Create inserts a new session.
func (r *ClaseRepository) Create(ctx context.Context, clase *models.Clase) error {
	if clase.ID == "" {
		clase.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if clase.CreatedAt.IsZero() {
		clase.CreatedAt = now
	}
	clase.UpdatedAt = now
	const query = `INSERT INTO clases (id, curso_id, unidad_id, tema_id, fecha, observaciones, created_at, updated_at)
        VALUES (:id, :curso_id, :unidad_id, :tema_id, :fecha, :observaciones, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, clase); err != nil {
		return fmt.Errorf("create clase: %w", err)
	}
	return nil
}

// Update modifies an existing session.
func (r *ClaseRepository) Update(ctx context.Context, clase *models.Clase) error {
	clase.UpdatedAt = time.Now().UTC()
	const query = `UPDATE clases SET unidad_id = :unidad_id, tema_id = :tema_id, fecha = :fecha, observaciones = :observaciones, updated_at = :updated_at WHERE id = :id AND deleted_at IS NULL`
	if _, err := r.db.NamedExecContext(ctx, query, clase); err != nil {
		return fmt.Errorf("update clase: %w", err)
	}
	return nil
}

// SoftDelete stamps the session as deleted. Attendance rows referencing it
// are left in place.
func (r *ClaseRepository) SoftDelete(ctx context.Context, id string) error {
	const query = `UPDATE clases SET deleted_at = $2, updated_at = $2 WHERE id = $1 AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, query, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("soft delete clase: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListDeleted returns soft-deleted sessions, most recently deleted first.
func (r *ClaseRepository) ListDeleted(ctx context.Context) ([]models.Clase, error) {
	query := fmt.Sprintf("SELECT %s FROM clases WHERE deleted_at IS NOT NULL ORDER BY deleted_at DESC", claseColumns)
	var clases []models.Clase
	if err := r.db.SelectContext(ctx, &clases, query); err != nil {
		return nil, fmt.Errorf("list deleted clases: %w", err)
	}
	return clases, nil
}

// Restore clears the deletion stamp on a session.
func (r *ClaseRepository) Restore(ctx context.Context, id string) error {
	const query = `UPDATE clases SET deleted_at = NULL, updated_at = $2 WHERE id = $1 AND deleted_at IS NOT NULL`
	res, err := r.db.ExecContext(ctx, query, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("restore clase: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
