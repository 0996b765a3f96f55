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

// ProfesorRepository manages persistence for teachers.
type ProfesorRepository struct {
	db *sqlx.DB
}

// NewProfesorRepository constructs a ProfesorRepository.
func NewProfesorRepository(db *sqlx.DB) *ProfesorRepository {
	return &ProfesorRepository{db: db}
}

const profesorColumns = `p.id, p.usuario_id, p.nombre_completo, p.especialidad, p.telefono, p.created_at, p.updated_at, p.deleted_at`

// List returns active teachers matching the filter.
func (r *ProfesorRepository) List(ctx context.Context, filter models.ProfesorFilter) ([]models.Profesor, int, error) {
	base := "FROM profesores p WHERE p.deleted_at IS NULL"
	var args []interface{}

	if filter.Search != "" {
		base += fmt.Sprintf(" AND (LOWER(p.nombre_completo) LIKE $%d OR LOWER(p.especialidad) LIKE $%d)", len(args)+1, len(args)+1)
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}

	allowedSorts := map[string]string{
		"nombre_completo": "p.nombre_completo",
		"especialidad":    "p.especialidad",
		"created_at":      "p.created_at",
	}
	column, ok := allowedSorts[filter.SortBy]
	if !ok {
		column = "p.nombre_completo"
	}
	order := strings.ToUpper(filter.SortOrder)
	if order != "ASC" && order != "DESC" {
		order = "ASC"
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}

	query := fmt.Sprintf("SELECT %s %s ORDER BY %s %s LIMIT %d OFFSET %d", profesorColumns, base, column, order, size, (page-1)*size)
	var profesores []models.Profesor
	if err := r.db.SelectContext(ctx, &profesores, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list profesores: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, fmt.Sprintf("SELECT COUNT(*) %s", base), args...); err != nil {
		return nil, 0, fmt.Errorf("count profesores: %w", err)
	}
	return profesores, total, nil
}

// ListDeleted returns logically deleted teachers.
func (r *ProfesorRepository) ListDeleted(ctx context.Context) ([]models.Profesor, error) {
	query := fmt.Sprintf("SELECT %s FROM profesores p WHERE p.deleted_at IS NOT NULL ORDER BY p.deleted_at DESC", profesorColumns)
	var profesores []models.Profesor
	if err := r.db.SelectContext(ctx, &profesores, query); err != nil {
		return nil, fmt.Errorf("list deleted profesores: %w", err)
	}
	return profesores, nil
}

// FindByID loads an active teacher by id.
func (r *ProfesorRepository) FindByID(ctx context.Context, id string) (*models.Profesor, error) {
	query := fmt.Sprintf("SELECT %s FROM profesores p WHERE p.id = $1 AND p.deleted_at IS NULL", profesorColumns)
	var profesor models.Profesor
	if err := r.db.GetContext(ctx, &profesor, query, id); err != nil {
		return nil, err
	}
	return &profesor, nil
}

// Create inserts a new teacher.
func (r *ProfesorRepository) Create(ctx context.Context, profesor *models.Profesor) error {
	if profesor.ID == "" {
		profesor.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if profesor.CreatedAt.IsZero() {
		profesor.CreatedAt = now
	}
	profesor.UpdatedAt = now
	const query = `INSERT INTO profesores (id, usuario_id, nombre_completo, especialidad, telefono, created_at, updated_at)
        VALUES (:id, :usuario_id, :nombre_completo, :especialidad, :telefono, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, profesor); err != nil {
		return fmt.Errorf("create profesor: %w", err)
	}
	return nil
}

// Update modifies an existing teacher.
func (r *ProfesorRepository) Update(ctx context.Context, profesor *models.Profesor) error {
	profesor.UpdatedAt = time.Now().UTC()
	const query = `UPDATE profesores SET usuario_id = :usuario_id, nombre_completo = :nombre_completo, especialidad = :especialidad, telefono = :telefono, updated_at = :updated_at WHERE id = :id AND deleted_at IS NULL`
	if _, err := r.db.NamedExecContext(ctx, query, profesor); err != nil {
		return fmt.Errorf("update profesor: %w", err)
	}
	return nil
}

// SoftDelete stamps the teacher as deleted. Courses referencing the teacher
// are not cascaded.
func (r *ProfesorRepository) SoftDelete(ctx context.Context, id string) error {
	const query = `UPDATE profesores SET deleted_at = $2, updated_at = $2 WHERE id = $1 AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, query, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("soft delete profesor: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Restore clears the deletion stamp.
func (r *ProfesorRepository) Restore(ctx context.Context, id string) error {
	const query = `UPDATE profesores SET deleted_at = NULL, updated_at = $2 WHERE id = $1 AND deleted_at IS NOT NULL`
	res, err := r.db.ExecContext(ctx, query, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("restore profesor: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
