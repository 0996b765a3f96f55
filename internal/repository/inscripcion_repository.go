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

// InscripcionRepository manages persistence for enrollments.
type InscripcionRepository struct {
	db *sqlx.DB
}

// NewInscripcionRepository constructs an InscripcionRepository.
func NewInscripcionRepository(db *sqlx.DB) *InscripcionRepository {
	return &InscripcionRepository{db: db}
}

const inscripcionColumns = `i.id, i.curso_id, i.estudiante_id, i.estado, i.fecha_inscripcion, i.created_at, i.updated_at, i.deleted_at`

const inscripcionDetailColumns = inscripcionColumns + `, e.nombre_completo AS estudiante_nombre, a.nombre AS asignatura_nombre`

const inscripcionJoins = ` JOIN estudiantes e ON e.id = i.estudiante_id
    JOIN cursos c ON c.id = i.curso_id
    JOIN asignaturas a ON a.id = c.asignatura_id`

// List returns active enrollments matching the filter, with display names.
func (r *InscripcionRepository) List(ctx context.Context, filter models.InscripcionFilter) ([]models.InscripcionDetail, int, error) {
	base := "FROM inscripciones i" + inscripcionJoins + " WHERE i.deleted_at IS NULL"
	var args []interface{}

	if filter.CursoID != "" {
		base += fmt.Sprintf(" AND i.curso_id = $%d", len(args)+1)
		args = append(args, filter.CursoID)
	}
	if filter.EstudianteID != "" {
		base += fmt.Sprintf(" AND i.estudiante_id = $%d", len(args)+1)
		args = append(args, filter.EstudianteID)
	}
	if filter.Estado != "" {
		base += fmt.Sprintf(" AND i.estado = $%d", len(args)+1)
		args = append(args, filter.Estado)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}

	query := fmt.Sprintf("SELECT %s %s ORDER BY i.fecha_inscripcion DESC LIMIT %d OFFSET %d", inscripcionDetailColumns, base, size, (page-1)*size)
	var inscripciones []models.InscripcionDetail
	if err := r.db.SelectContext(ctx, &inscripciones, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list inscripciones: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, fmt.Sprintf("SELECT COUNT(*) %s", base), args...); err != nil {
		return nil, 0, fmt.Errorf("count inscripciones: %w", err)
	}
	return inscripciones, total, nil
}

// FindByID loads an active enrollment by id.
func (r *InscripcionRepository) FindByID(ctx context.Context, id string) (*models.InscripcionDetail, error) {
	query := fmt.Sprintf("SELECT %s FROM inscripciones i%s WHERE i.id = $1 AND i.deleted_at IS NULL", inscripcionDetailColumns, inscripcionJoins)
	var inscripcion models.InscripcionDetail
	if err := r.db.GetContext(ctx, &inscripcion, query, id); err != nil {
		return nil, err
	}
	return &inscripcion, nil
}

// Exists reports whether the student already holds an active enrollment row
// in the course, regardless of state.
func (r *InscripcionRepository) Exists(ctx context.Context, cursoID, estudianteID string) (bool, error) {
	const query = `SELECT 1 FROM inscripciones WHERE curso_id = $1 AND estudiante_id = $2 AND deleted_at IS NULL LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, cursoID, estudianteID); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check inscripcion: %w", err)
	}
	return true, nil
}

// CountActivas counts non-deleted enrollment rows for a course. Every row
// holds a seat regardless of estado; only soft deletion frees it. The count
// is always taken at call time against the live table.
func (r *InscripcionRepository) CountActivas(ctx context.Context, cursoID string) (int, error) {
	const query = `SELECT COUNT(*) FROM inscripciones WHERE curso_id = $1 AND deleted_at IS NULL`
	var total int
	if err := r.db.GetContext(ctx, &total, query, cursoID); err != nil {
		return 0, fmt.Errorf("count inscripciones activas: %w", err)
	}
	return total, nil
}

// Create inserts a new enrollment.
func (r *InscripcionRepository) Create(ctx context.Context, inscripcion *models.Inscripcion) error {
	if inscripcion.ID == "" {
		inscripcion.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if inscripcion.CreatedAt.IsZero() {
		inscripcion.CreatedAt = now
	}
	inscripcion.UpdatedAt = now
	if inscripcion.FechaInscripcion.IsZero() {
		inscripcion.FechaInscripcion = now
	}
	const query = `INSERT INTO inscripciones (id, curso_id, estudiante_id, estado, fecha_inscripcion, created_at, updated_at)
        VALUES (:id, :curso_id, :estudiante_id, :estado, :fecha_inscripcion, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, inscripcion); err != nil {
		return fmt.Errorf("create inscripcion: %w", err)
	}
	return nil
}

// UpdateEstado moves the enrollment to a new state. Transitions are
// unrestricted.
func (r *InscripcionRepository) UpdateEstado(ctx context.Context, id string, estado models.EstadoInscripcion) error {
	const query = `UPDATE inscripciones SET estado = $2, updated_at = $3 WHERE id = $1 AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, query, id, estado, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update inscripcion estado: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// SoftDelete stamps the enrollment as deleted, which also removes it from
// the active-count used for cupo checks.
func (r *InscripcionRepository) SoftDelete(ctx context.Context, id string) error {
	const query = `UPDATE inscripciones SET deleted_at = $2, updated_at = $2 WHERE id = $1 AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, query, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("soft delete inscripcion: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListDeleted returns soft-deleted enrollments with display names, most
// recently deleted first.
func (r *InscripcionRepository) ListDeleted(ctx context.Context) ([]models.InscripcionDetail, error) {
	query := fmt.Sprintf("SELECT %s FROM inscripciones i%s WHERE i.deleted_at IS NOT NULL ORDER BY i.deleted_at DESC", inscripcionDetailColumns, inscripcionJoins)
	var inscripciones []models.InscripcionDetail
	if err := r.db.SelectContext(ctx, &inscripciones, query); err != nil {
		return nil, fmt.Errorf("list deleted inscripciones: %w", err)
	}
	return inscripciones, nil
}

// Restore clears the deletion stamp, putting the row back into the cupo
// count.
func (r *InscripcionRepository) Restore(ctx context.Context, id string) error {
	const query = `UPDATE inscripciones SET deleted_at = NULL, updated_at = $2 WHERE id = $1 AND deleted_at IS NOT NULL`
	res, err := r.db.ExecContext(ctx, query, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("restore inscripcion: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
