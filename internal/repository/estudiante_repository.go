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

// EstudianteRepository manages persistence for students.
type EstudianteRepository struct {
	db *sqlx.DB
}

// NewEstudianteRepository constructs an EstudianteRepository.
func NewEstudianteRepository(db *sqlx.DB) *EstudianteRepository {
	return &EstudianteRepository{db: db}
}

const estudianteColumns = `e.id, e.usuario_id, e.codigo_estudiante, e.nombre_completo, e.fecha_nacimiento, e.direccion, e.telefono, e.created_at, e.updated_at, e.deleted_at`

// List returns active students matching the filter. When CursoID is set the
// result is restricted to students with an active enrollment in that course.
func (r *EstudianteRepository) List(ctx context.Context, filter models.EstudianteFilter) ([]models.Estudiante, int, error) {
	base := "FROM estudiantes e WHERE e.deleted_at IS NULL"
	var args []interface{}

	if filter.Search != "" {
		base += fmt.Sprintf(" AND (LOWER(e.nombre_completo) LIKE $%d OR LOWER(e.codigo_estudiante) LIKE $%d)", len(args)+1, len(args)+1)
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}
	if filter.CursoID != "" {
		base += fmt.Sprintf(` AND EXISTS (
            SELECT 1 FROM inscripciones i
            WHERE i.estudiante_id = e.id AND i.curso_id = $%d AND i.estado = 'inscrito' AND i.deleted_at IS NULL)`, len(args)+1)
		args = append(args, filter.CursoID)
	}

	allowedSorts := map[string]string{
		"nombre_completo":   "e.nombre_completo",
		"codigo_estudiante": "e.codigo_estudiante",
		"created_at":        "e.created_at",
	}
	column, ok := allowedSorts[filter.SortBy]
	if !ok {
		column = "e.nombre_completo"
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

	query := fmt.Sprintf("SELECT %s %s ORDER BY %s %s LIMIT %d OFFSET %d", estudianteColumns, base, column, order, size, (page-1)*size)
	var estudiantes []models.Estudiante
	if err := r.db.SelectContext(ctx, &estudiantes, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list estudiantes: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, fmt.Sprintf("SELECT COUNT(*) %s", base), args...); err != nil {
		return nil, 0, fmt.Errorf("count estudiantes: %w", err)
	}
	return estudiantes, total, nil
}

// ListDeleted returns logically deleted students.
func (r *EstudianteRepository) ListDeleted(ctx context.Context) ([]models.Estudiante, error) {
	query := fmt.Sprintf("SELECT %s FROM estudiantes e WHERE e.deleted_at IS NOT NULL ORDER BY e.deleted_at DESC", estudianteColumns)
	var estudiantes []models.Estudiante
	if err := r.db.SelectContext(ctx, &estudiantes, query); err != nil {
		return nil, fmt.Errorf("list deleted estudiantes: %w", err)
	}
	return estudiantes, nil
}

// FindByID loads an active student by id.
func (r *EstudianteRepository) FindByID(ctx context.Context, id string) (*models.Estudiante, error) {
	query := fmt.Sprintf("SELECT %s FROM estudiantes e WHERE e.id = $1 AND e.deleted_at IS NULL", estudianteColumns)
	var estudiante models.Estudiante
	if err := r.db.GetContext(ctx, &estudiante, query, id); err != nil {
		return nil, err
	}
	return &estudiante, nil
}

// ExistsByCodigo checks codigo_estudiante uniqueness among active rows.
func (r *EstudianteRepository) ExistsByCodigo(ctx context.Context, codigo, excludeID string) (bool, error) {
	query := "SELECT 1 FROM estudiantes WHERE codigo_estudiante = $1 AND deleted_at IS NULL"
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
		return false, fmt.Errorf("check estudiante codigo: %w", err)
	}
	return true, nil
}

// Create inserts a new student.
func (r *EstudianteRepository) Create(ctx context.Context, estudiante *models.Estudiante) error {
	if estudiante.ID == "" {
		estudiante.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if estudiante.CreatedAt.IsZero() {
		estudiante.CreatedAt = now
	}
	estudiante.UpdatedAt = now
	const query = `INSERT INTO estudiantes (id, usuario_id, codigo_estudiante, nombre_completo, fecha_nacimiento, direccion, telefono, created_at, updated_at)
        VALUES (:id, :usuario_id, :codigo_estudiante, :nombre_completo, :fecha_nacimiento, :direccion, :telefono, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, estudiante); err != nil {
		return fmt.Errorf("create estudiante: %w", err)
	}
	return nil
}

// Update modifies an existing student.
func (r *EstudianteRepository) Update(ctx context.Context, estudiante *models.Estudiante) error {
	estudiante.UpdatedAt = time.Now().UTC()
	const query = `UPDATE estudiantes SET usuario_id = :usuario_id, codigo_estudiante = :codigo_estudiante, nombre_completo = :nombre_completo, fecha_nacimiento = :fecha_nacimiento, direccion = :direccion, telefono = :telefono, updated_at = :updated_at WHERE id = :id AND deleted_at IS NULL`
	if _, err := r.db.NamedExecContext(ctx, query, estudiante); err != nil {
		return fmt.Errorf("update estudiante: %w", err)
	}
	return nil
}

// SoftDelete stamps the student as deleted. Historical enrollments, grades
// and attendance rows stay untouched.
func (r *EstudianteRepository) SoftDelete(ctx context.Context, id string) error {
	const query = `UPDATE estudiantes SET deleted_at = $2, updated_at = $2 WHERE id = $1 AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, query, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("soft delete estudiante: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Restore clears the deletion stamp without re-checking codigo uniqueness.
func (r *EstudianteRepository) Restore(ctx context.Context, id string) error {
	const query = `UPDATE estudiantes SET deleted_at = NULL, updated_at = $2 WHERE id = $1 AND deleted_at IS NOT NULL`
	res, err := r.db.ExecContext(ctx, query, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("restore estudiante: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
