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

// ReporteRepository manages persistence for incident reports.
type ReporteRepository struct {
	db *sqlx.DB
}

// NewReporteRepository constructs a ReporteRepository.
func NewReporteRepository(db *sqlx.DB) *ReporteRepository {
	return &ReporteRepository{db: db}
}

const reporteColumns = `r.id, r.estudiante_id, r.curso_id, r.creador_id, r.tipo, r.severidad, r.titulo, r.descripcion, r.archivo_url, r.created_at, r.updated_at, r.deleted_at`

const reporteDetailColumns = reporteColumns + `, e.nombre_completo AS estudiante_nombre, u.nombre_completo AS creador_nombre`

const reporteJoins = ` JOIN estudiantes e ON e.id = r.estudiante_id
    JOIN usuarios u ON u.id = r.creador_id`

// List returns active reports matching the filter, newest first.
func (r *ReporteRepository) List(ctx context.Context, filter models.ReporteFilter) ([]models.ReporteDetail, int, error) {
	base := "FROM reportes r" + reporteJoins + " WHERE r.deleted_at IS NULL"
	var args []interface{}

	if filter.EstudianteID != "" {
		base += fmt.Sprintf(" AND r.estudiante_id = $%d", len(args)+1)
		args = append(args, filter.EstudianteID)
	}
	if filter.CursoID != "" {
		base += fmt.Sprintf(" AND r.curso_id = $%d", len(args)+1)
		args = append(args, filter.CursoID)
	}
	if filter.Tipo != "" {
		base += fmt.Sprintf(" AND r.tipo = $%d", len(args)+1)
		args = append(args, filter.Tipo)
	}
	if filter.Severidad != "" {
		base += fmt.Sprintf(" AND r.severidad = $%d", len(args)+1)
		args = append(args, filter.Severidad)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}

	query := fmt.Sprintf("SELECT %s %s ORDER BY r.created_at DESC LIMIT %d OFFSET %d", reporteDetailColumns, base, size, (page-1)*size)
	var reportes []models.ReporteDetail
	if err := r.db.SelectContext(ctx, &reportes, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list reportes: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, fmt.Sprintf("SELECT COUNT(*) %s", base), args...); err != nil {
		return nil, 0, fmt.Errorf("count reportes: %w", err)
	}
	return reportes, total, nil
}

// FindByID loads an active report by id.
func (r *ReporteRepository) FindByID(ctx context.Context, id string) (*models.ReporteDetail, error) {
	query := fmt.Sprintf("SELECT %s FROM reportes r%s WHERE r.id = $1 AND r.deleted_at IS NULL", reporteDetailColumns, reporteJoins)
	var reporte models.ReporteDetail
	if err := r.db.GetContext(ctx, &reporte, query, id); err != nil {
		return nil, err
	}
	return &reporte, nil
}

// Create inserts a new report.
func (r *ReporteRepository) Create(ctx context.Context, reporte *models.Reporte) error {
	if reporte.ID == "" {
		reporte.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if reporte.CreatedAt.IsZero() {
		reporte.CreatedAt = now
	}
	reporte.UpdatedAt = now
	const query = `INSERT INTO reportes (id, estudiante_id, curso_id, creador_id, tipo, severidad, titulo, descripcion, archivo_url, created_at, updated_at)
        VALUES (:id, :estudiante_id, :curso_id, :creador_id, :tipo, :severidad, :titulo, :descripcion, :archivo_url, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, reporte); err != nil {
		return fmt.Errorf("create reporte: %w", err)
	}
	return nil
}

// Update modifies an existing report.
func (r *ReporteRepository) Update(ctx context.Context, reporte *models.Reporte) error {
	reporte.UpdatedAt = time.Now().UTC()
	const query = `UPDATE reportes SET tipo = :tipo, severidad = :severidad, titulo = :titulo, descripcion = :descripcion, archivo_url = :archivo_url, updated_at = :updated_at WHERE id = :id AND deleted_at IS NULL`
	if _, err := r.db.NamedExecContext(ctx, query, reporte); err != nil {
		return fmt.Errorf("update reporte: %w", err)
	}
	return nil
}

// SoftDelete stamps the report as deleted.
func (r *ReporteRepository) SoftDelete(ctx context.Context, id string) error {
	const query = `UPDATE reportes SET deleted_at = $2, updated_at = $2 WHERE id = $1 AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, query, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("soft delete reporte: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListDeleted returns soft-deleted reports with display names, most recently
// deleted first.
func (r *ReporteRepository) ListDeleted(ctx context.Context) ([]models.ReporteDetail, error) {
	query := fmt.Sprintf("SELECT %s FROM reportes r%s WHERE r.deleted_at IS NOT NULL ORDER BY r.deleted_at DESC", reporteDetailColumns, reporteJoins)
	var reportes []models.ReporteDetail
	if err := r.db.SelectContext(ctx, &reportes, query); err != nil {
		return nil, fmt.Errorf("list deleted reportes: %w", err)
	}
	return reportes, nil
}

// Restore clears the deletion stamp on a report.
func (r *ReporteRepository) Restore(ctx context.Context, id string) error {
	const query = `UPDATE reportes SET deleted_at = NULL, updated_at = $2 WHERE id = $1 AND deleted_at IS NOT NULL`
	res, err := r.db.ExecContext(ctx, query, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("restore reporte: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
