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

// CursoRepository manages persistence for course offerings.
type CursoRepository struct {
	db *sqlx.DB
}

// NewCursoRepository constructs a CursoRepository.
func NewCursoRepository(db *sqlx.DB) *CursoRepository {
	return &CursoRepository{db: db}
}

const cursoColumns = `c.id, c.asignatura_id, c.profesor_id, c.periodo_id, c.grupo, c.cupo, c.aula, c.created_at, c.updated_at, c.deleted_at`

const cursoDetailColumns = cursoColumns + `, a.nombre AS asignatura_nombre, pr.nombre_completo AS profesor_nombre, pe.nombre AS periodo_nombre`

const cursoJoins = ` JOIN asignaturas a ON a.id = c.asignatura_id
    JOIN profesores pr ON pr.id = c.profesor_id
    JOIN periodos pe ON pe.id = c.periodo_id`

// List returns active offerings matching the filter, with display names.
func (r *CursoRepository) List(ctx context.Context, filter models.CursoFilter) ([]models.CursoDetail, int, error) {
	base := "FROM cursos c" + cursoJoins + " WHERE c.deleted_at IS NULL"
	var args []interface{}

	if filter.AsignaturaID != "" {
		base += fmt.Sprintf(" AND c.asignatura_id = $%d", len(args)+1)
		args = append(args, filter.AsignaturaID)
	}
	if filter.ProfesorID != "" {
		base += fmt.Sprintf(" AND c.profesor_id = $%d", len(args)+1)
		args = append(args, filter.ProfesorID)
	}
	if filter.PeriodoID != "" {
		base += fmt.Sprintf(" AND c.periodo_id = $%d", len(args)+1)
		args = append(args, filter.PeriodoID)
	}

	allowedSorts := map[string]string{
		"grupo":      "c.grupo",
		"created_at": "c.created_at",
		"asignatura": "a.nombre",
	}
	column, ok := allowedSorts[filter.SortBy]
	if !ok {
		column = "c.created_at"
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

	query := fmt.Sprintf("SELECT %s %s ORDER BY %s %s LIMIT %d OFFSET %d", cursoDetailColumns, base, column, order, size, (page-1)*size)
	var cursos []models.CursoDetail
	if err := r.db.SelectContext(ctx, &cursos, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list cursos: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, fmt.Sprintf("SELECT COUNT(*) %s", base), args...); err != nil {
		return nil, 0, fmt.Errorf("count cursos: %w", err)
	}
	return cursos, total, nil
}

// ListDeleted returns logically deleted offerings.
func (r *CursoRepository) ListDeleted(ctx context.Context) ([]models.CursoDetail, error) {
	query := fmt.Sprintf("SELECT %s FROM cursos c%s WHERE c.deleted_at IS NOT NULL ORDER BY c.deleted_at DESC", cursoDetailColumns, cursoJoins)
	var cursos []models.CursoDetail
	if err := r.db.SelectContext(ctx, &cursos, query); err != nil {
		return nil, fmt.Errorf("list deleted cursos: %w", err)
	}
	return cursos, nil
}

// ListConCupo returns active offerings of a term with their current
// enrollment count. Every non-deleted enrollment row occupies a seat
// regardless of estado. The count is computed inside the query, never cached.
func (r *CursoRepository) ListConCupo(ctx context.Context, periodoID string) ([]models.CursoConCupo, error) {
	query := fmt.Sprintf(`SELECT %s, (
            SELECT COUNT(*) FROM inscripciones i
            WHERE i.curso_id = c.id AND i.deleted_at IS NULL
        ) AS inscritos
        FROM cursos c WHERE c.periodo_id = $1 AND c.deleted_at IS NULL
        ORDER BY c.grupo ASC`, cursoColumns)
	var cursos []models.CursoConCupo
	if err := r.db.SelectContext(ctx, &cursos, query, periodoID); err != nil {
		return nil, fmt.Errorf("list cursos con cupo: %w", err)
	}
	return cursos, nil
}

// FindByID loads an active offering by id, with display names.
func (r *CursoRepository) FindByID(ctx context.Context, id string) (*models.CursoDetail, error) {
	query := fmt.Sprintf("SELECT %s FROM cursos c%s WHERE c.id = $1 AND c.deleted_at IS NULL", cursoDetailColumns, cursoJoins)
	var curso models.CursoDetail
	if err := r.db.GetContext(ctx, &curso, query, id); err != nil {
		return nil, err
	}
	return &curso, nil
}

// ExistsGrupo checks that no other active offering of the same asignatura and
// periodo uses the group label.
func (r *CursoRepository) ExistsGrupo(ctx context.Context, asignaturaID, periodoID, grupo, excludeID string) (bool, error) {
	query := "SELECT 1 FROM cursos WHERE asignatura_id = $1 AND periodo_id = $2 AND grupo = $3 AND deleted_at IS NULL"
	args := []interface{}{asignaturaID, periodoID, grupo}
	if excludeID != "" {
		query += " AND id <> $4"
		args = append(args, excludeID)
	}
	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check curso grupo: %w", err)
	}
	return true, nil
}

// Create inserts a new offering.
func (r *CursoRepository) Create(ctx context.Context, curso *models.Curso) error {
	if curso.ID == "" {
		curso.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if curso.CreatedAt.IsZero() {
		curso.CreatedAt = now
	}
	curso.UpdatedAt = now
	const query = `INSERT INTO cursos (id, asignatura_id, profesor_id, periodo_id, grupo, cupo, aula, created_at, updated_at)
        VALUES (:id, :asignatura_id, :profesor_id, :periodo_id, :grupo, :cupo, :aula, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, curso); err != nil {
		return fmt.Errorf("create curso: %w", err)
	}
	return nil
}

// Update modifies an existing offering.
func (r *CursoRepository) Update(ctx context.Context, curso *models.Curso) error {
	curso.UpdatedAt = time.Now().UTC()
	const query = `UPDATE cursos SET asignatura_id = :asignatura_id, profesor_id = :profesor_id, periodo_id = :periodo_id, grupo = :grupo, cupo = :cupo, aula = :aula, updated_at = :updated_at WHERE id = :id AND deleted_at IS NULL`
	if _, err := r.db.NamedExecContext(ctx, query, curso); err != nil {
		return fmt.Errorf("update curso: %w", err)
	}
	return nil
}

// SoftDelete stamps the offering as deleted.
func (r *CursoRepository) SoftDelete(ctx context.Context, id string) error {
	const query = `UPDATE cursos SET deleted_at = $2, updated_at = $2 WHERE id = $1 AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, query, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("soft delete curso: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Restore clears the deletion stamp.
func (r *CursoRepository) Restore(ctx context.Context, id string) error {
	const query = `UPDATE cursos SET deleted_at = NULL, updated_at = $2 WHERE id = $1 AND deleted_at IS NOT NULL`
	res, err := r.db.ExecContext(ctx, query, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("restore curso: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
