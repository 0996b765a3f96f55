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

// CalificacionRepository manages persistence for grades.
type CalificacionRepository struct {
	db *sqlx.DB
}

// NewCalificacionRepository constructs a CalificacionRepository.
func NewCalificacionRepository(db *sqlx.DB) *CalificacionRepository {
	return &CalificacionRepository{db: db}
}

const calificacionColumns = `c.id, c.evaluacion_id, c.estudiante_id, c.nota, c.observacion, c.created_at, c.updated_at, c.deleted_at`

// ListByEvaluacion returns active grades of one assessment.
func (r *CalificacionRepository) ListByEvaluacion(ctx context.Context, evaluacionID string) ([]models.Calificacion, error) {
	const query = `SELECT id, evaluacion_id, estudiante_id, nota, observacion, created_at, updated_at, deleted_at FROM calificaciones WHERE evaluacion_id = $1 AND deleted_at IS NULL ORDER BY created_at ASC`
	var calificaciones []models.Calificacion
	if err := r.db.SelectContext(ctx, &calificaciones, query, evaluacionID); err != nil {
		return nil, fmt.Errorf("list calificaciones: %w", err)
	}
	return calificaciones, nil
}

// ListByEstudianteCurso returns a student's grades across one course with the
// assessment titles.
func (r *CalificacionRepository) ListByEstudianteCurso(ctx context.Context, estudianteID, cursoID string) ([]models.CalificacionDetail, error) {
	query := fmt.Sprintf(`SELECT %s, e.titulo AS evaluacion_titulo
        FROM calificaciones c JOIN evaluaciones e ON e.id = c.evaluacion_id
        WHERE c.estudiante_id = $1 AND e.curso_id = $2 AND c.deleted_at IS NULL AND e.deleted_at IS NULL
        ORDER BY e.fecha ASC`, calificacionColumns)
	var calificaciones []models.CalificacionDetail
	if err := r.db.SelectContext(ctx, &calificaciones, query, estudianteID, cursoID); err != nil {
		return nil, fmt.Errorf("list calificaciones por estudiante: %w", err)
	}
	return calificaciones, nil
}

// ListByRango returns active grades whose nota falls inside [min, max], both
// bounds inclusive, highest first.
func (r *CalificacionRepository) ListByRango(ctx context.Context, cursoID string, min, max float64) ([]models.CalificacionDetail, error) {
	query := fmt.Sprintf(`SELECT %s, e.titulo AS evaluacion_titulo
        FROM calificaciones c JOIN evaluaciones e ON e.id = c.evaluacion_id
        WHERE e.curso_id = $1 AND c.nota >= $2 AND c.nota <= $3 AND c.deleted_at IS NULL AND e.deleted_at IS NULL
        ORDER BY c.nota DESC`, calificacionColumns)
	var calificaciones []models.CalificacionDetail
	if err := r.db.SelectContext(ctx, &calificaciones, query, cursoID, min, max); err != nil {
		return nil, fmt.Errorf("list calificaciones por rango: %w", err)
	}
	return calificaciones, nil
}

// FindByID loads an active grade by id.
func (r *CalificacionRepository) FindByID(ctx context.Context, id string) (*models.Calificacion, error) {
	const query = `SELECT id, evaluacion_id, estudiante_id, nota, observacion, created_at, updated_at, deleted_at FROM calificaciones WHERE id = $1 AND deleted_at IS NULL`
	var calificacion models.Calificacion
	if err := r.db.GetContext(ctx, &calificacion, query, id); err != nil {
		return nil, err
	}
	return &calificacion, nil
}

// Exists reports whether the student already has an active grade for the
// assessment.
func (r *CalificacionRepository) Exists(ctx context.Context, evaluacionID, estudianteID string) (bool, error) {
	const query = `SELECT 1 FROM calificaciones WHERE evaluacion_id = $1 AND estudiante_id = $2 AND deleted_at IS NULL LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, evaluacionID, estudianteID); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check calificacion: %w", err)
	}
	return true, nil
}

// PromedioEstudiante computes the unweighted average of a student's active
// grades, counting only non-deleted assessments. A non-empty cursoID narrows
// the average to that offering; empty spans every course. Returns nil when no
// grade exists, which is distinct from an average of zero.
func (r *CalificacionRepository) PromedioEstudiante(ctx context.Context, estudianteID, cursoID string) (*float64, error) {
	query := `SELECT AVG(c.nota)
        FROM calificaciones c JOIN evaluaciones e ON e.id = c.evaluacion_id
        WHERE c.estudiante_id = $1 AND c.deleted_at IS NULL AND e.deleted_at IS NULL`
	args := []interface{}{estudianteID}
	if cursoID != "" {
		query += ` AND e.curso_id = $2`
		args = append(args, cursoID)
	}
	var promedio sql.NullFloat64
	if err := r.db.GetContext(ctx, &promedio, query, args...); err != nil {
		return nil, fmt.Errorf("promedio estudiante: %w", err)
	}
	if !promedio.Valid {
		return nil, nil
	}
	return &promedio.Float64, nil
}

// Create inserts a new grade.
func (r *CalificacionRepository) Create(ctx context.Context, calificacion *models.Calificacion) error {
	if calificacion.ID == "" {
		calificacion.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if calificacion.CreatedAt.IsZero() {
		calificacion.CreatedAt = now
	}
	calificacion.UpdatedAt = now
	const query = `INSERT INTO calificaciones (id, evaluacion_id, estudiante_id, nota, observacion, created_at, updated_at)
        VALUES (:id, :evaluacion_id, :estudiante_id, :nota, :observacion, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, calificacion); err != nil {
		return fmt.Errorf("create calificacion: %w", err)
	}
	return nil
}

// Update replaces the score and note.
func (r *CalificacionRepository) Update(ctx context.Context, calificacion *models.Calificacion) error {
	calificacion.UpdatedAt = time.Now().UTC()
	const query = `UPDATE calificaciones SET nota = :nota, observacion = :observacion, updated_at = :updated_at WHERE id = :id AND deleted_at IS NULL`
	if _, err := r.db.NamedExecContext(ctx, query, calificacion); err != nil {
		return fmt.Errorf("update calificacion: %w", err)
	}
	return nil
}

// SoftDelete stamps the grade as deleted, removing it from averages.
func (r *CalificacionRepository) SoftDelete(ctx context.Context, id string) error {
	const query = `UPDATE calificaciones SET deleted_at = $2, updated_at = $2 WHERE id = $1 AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, query, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("soft delete calificacion: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListDeleted returns soft-deleted grades, most recently deleted first.
func (r *CalificacionRepository) ListDeleted(ctx context.Context) ([]models.Calificacion, error) {
	const query = `SELECT id, evaluacion_id, estudiante_id, nota, observacion, created_at, updated_at, deleted_at FROM calificaciones WHERE deleted_at IS NOT NULL ORDER BY deleted_at DESC`
	var calificaciones []models.Calificacion
	if err := r.db.SelectContext(ctx, &calificaciones, query); err != nil {
		return nil, fmt.Errorf("list deleted calificaciones: %w", err)
	}
	return calificaciones, nil
}

// Restore clears the deletion stamp, putting the grade back into averages.
func (r *CalificacionRepository) Restore(ctx context.Context, id string) error {
	const query = `UPDATE calificaciones SET deleted_at = NULL, updated_at = $2 WHERE id = $1 AND deleted_at IS NOT NULL`
	res, err := r.db.ExecContext(ctx, query, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("restore calificacion: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
