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

// AsistenciaRepository manages persistence for attendance records.
type AsistenciaRepository struct {
	db *sqlx.DB
}

// NewAsistenciaRepository constructs an AsistenciaRepository.
func NewAsistenciaRepository(db *sqlx.DB) *AsistenciaRepository {
	return &AsistenciaRepository{db: db}
}

const asistenciaColumns = `a.id, a.clase_id, a.estudiante_id, a.estado, a.observacion, a.created_at, a.updated_at, a.deleted_at`

// ListByClase returns active attendance rows of one session with student names.
func (r *AsistenciaRepository) ListByClase(ctx context.Context, claseID string) ([]models.AsistenciaDetail, error) {
	query := fmt.Sprintf(`SELECT %s, e.nombre_completo AS estudiante_nombre
        FROM asistencias a JOIN estudiantes e ON e.id = a.estudiante_id
        WHERE a.clase_id = $1 AND a.deleted_at IS NULL
        ORDER BY e.nombre_completo ASC`, asistenciaColumns)
	var asistencias []models.AsistenciaDetail
	if err := r.db.SelectContext(ctx, &asistencias, query, claseID); err != nil {
		return nil, fmt.Errorf("list asistencias: %w", err)
	}
	return asistencias, nil
}

// ListByEstudianteCurso returns a student's attendance across all sessions of
// one course, newest session first.
func (r *AsistenciaRepository) ListByEstudianteCurso(ctx context.Context, estudianteID, cursoID string) ([]models.AsistenciaDetail, error) {
	query := fmt.Sprintf(`SELECT %s, e.nombre_completo AS estudiante_nombre
        FROM asistencias a
        JOIN estudiantes e ON e.id = a.estudiante_id
        JOIN clases c ON c.id = a.clase_id
        WHERE a.estudiante_id = $1 AND c.curso_id = $2 AND a.deleted_at IS NULL AND c.deleted_at IS NULL
        ORDER BY c.fecha DESC`, asistenciaColumns)
	var asistencias []models.AsistenciaDetail
	if err := r.db.SelectContext(ctx, &asistencias, query, estudianteID, cursoID); err != nil {
		return nil, fmt.Errorf("list asistencias por estudiante: %w", err)
	}
	return asistencias, nil
}

// FindByID loads an active attendance row by id.
func (r *AsistenciaRepository) FindByID(ctx context.Context, id string) (*models.Asistencia, error) {
	const query = `SELECT id, clase_id, estudiante_id, estado, observacion, created_at, updated_at, deleted_at FROM asistencias WHERE id = $1 AND deleted_at IS NULL`
	var asistencia models.Asistencia
	if err := r.db.GetContext(ctx, &asistencia, query, id); err != nil {
		return nil, err
	}
	return &asistencia, nil
}

// Exists reports whether the student already has an active row for the session.
func (r *AsistenciaRepository) Exists(ctx context.Context, claseID, estudianteID string) (bool, error) {
	const query = `SELECT 1 FROM asistencias WHERE clase_id = $1 AND estudiante_id = $2 AND deleted_at IS NULL LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, claseID, estudianteID); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check asistencia: %w", err)
	}
	return true, nil
}

// Create inserts a new attendance row.
func (r *AsistenciaRepository) Create(ctx context.Context, asistencia *models.Asistencia) error {
	if asistencia.ID == "" {
		asistencia.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if asistencia.CreatedAt.IsZero() {
		asistencia.CreatedAt = now
	}
	asistencia.UpdatedAt = now
	const query = `INSERT INTO asistencias (id, clase_id, estudiante_id, estado, observacion, created_at, updated_at)
        VALUES (:id, :clase_id, :estudiante_id, :estado, :observacion, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, asistencia); err != nil {
		return fmt.Errorf("create asistencia: %w", err)
	}
	return nil
}

// Update replaces the state and note. Any state may overwrite any other.
func (r *AsistenciaRepository) Update(ctx context.Context, asistencia *models.Asistencia) error {
	asistencia.UpdatedAt = time.Now().UTC()
	const query = `UPDATE asistencias SET estado = :estado, observacion = :observacion, updated_at = :updated_at WHERE id = :id AND deleted_at IS NULL`
	if _, err := r.db.NamedExecContext(ctx, query, asistencia); err != nil {
		return fmt.Errorf("update asistencia: %w", err)
	}
	return nil
}

// SoftDelete stamps the attendance row as deleted.
func (r *AsistenciaRepository) SoftDelete(ctx context.Context, id string) error {
	const query = `UPDATE asistencias SET deleted_at = $2, updated_at = $2 WHERE id = $1 AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, query, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("soft delete asistencia: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListDeleted returns soft-deleted attendance rows, most recently deleted
// first.
func (r *AsistenciaRepository) ListDeleted(ctx context.Context) ([]models.Asistencia, error) {
	const query = `SELECT id, clase_id, estudiante_id, estado, observacion, created_at, updated_at, deleted_at FROM asistencias WHERE deleted_at IS NOT NULL ORDER BY deleted_at DESC`
	var asistencias []models.Asistencia
	if err := r.db.SelectContext(ctx, &asistencias, query); err != nil {
		return nil, fmt.Errorf("list deleted asistencias: %w", err)
	}
	return asistencias, nil
}

// Restore clears the deletion stamp on an attendance row.
func (r *AsistenciaRepository) Restore(ctx context.Context, id string) error {
	const query = `UPDATE asistencias SET deleted_at = NULL, updated_at = $2 WHERE id = $1 AND deleted_at IS NOT NULL`
	res, err := r.db.ExecContext(ctx, query, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("restore asistencia: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ResumenEstudianteCurso counts a student's attendance rows per state for one
// course.
func (r *AsistenciaRepository) ResumenEstudianteCurso(ctx context.Context, estudianteID, cursoID string) (map[models.EstadoAsistencia]int, error) {
	const query = `SELECT a.estado, COUNT(*) AS total
        FROM asistencias a JOIN clases c ON c.id = a.clase_id
        WHERE a.estudiante_id = $1 AND c.curso_id = $2 AND a.deleted_at IS NULL AND c.deleted_at IS NULL
        GROUP BY a.estado`
	rows, err := r.db.QueryxContext(ctx, query, estudianteID, cursoID)
	if err != nil {
		return nil, fmt.Errorf("resumen asistencia: %w", err)
	}
	defer rows.Close()

	resumen := make(map[models.EstadoAsistencia]int)
	for rows.Next() {
		var estado models.EstadoAsistencia
		var total int
		if err := rows.Scan(&estado, &total); err != nil {
			return nil, fmt.Errorf("scan resumen asistencia: %w", err)
		}
		resumen[estado] = total
	}
	return resumen, rows.Err()
}
