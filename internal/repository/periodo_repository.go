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

// PeriodoRepository manages persistence for academic terms.
type PeriodoRepository struct {
	db *sqlx.DB
}

// NewPeriodoRepository constructs a PeriodoRepository.
func NewPeriodoRepository(db *sqlx.DB) *PeriodoRepository {
	return &PeriodoRepository{db: db}
}

const periodoColumns = `id, nombre, fecha_inicio, fecha_fin, activo, created_at, updated_at, deleted_at`

// List returns active terms, most recent first.
func (r *PeriodoRepository) List(ctx context.Context) ([]models.Periodo, error) {
	query := fmt.Sprintf("SELECT %s FROM periodos WHERE deleted_at IS NULL ORDER BY fecha_inicio DESC", periodoColumns)
	var periodos []models.Periodo
	if err := r.db.SelectContext(ctx, &periodos, query); err != nil {
		return nil, fmt.Errorf("list periodos: %w", err)
	}
	return periodos, nil
}

// ListDeleted returns logically deleted terms.
func (r *PeriodoRepository) ListDeleted(ctx context.Context) ([]models.Periodo, error) {
	query := fmt.Sprintf("SELECT %s FROM periodos WHERE deleted_at IS NOT NULL ORDER BY deleted_at DESC", periodoColumns)
	var periodos []models.Periodo
	if err := r.db.SelectContext(ctx, &periodos, query); err != nil {
		return nil, fmt.Errorf("list deleted periodos: %w", err)
	}
	return periodos, nil
}

// FindByID loads an active term by id.
func (r *PeriodoRepository) FindByID(ctx context.Context, id string) (*models.Periodo, error) {
	query := fmt.Sprintf("SELECT %s FROM periodos WHERE id = $1 AND deleted_at IS NULL", periodoColumns)
	var periodo models.Periodo
	if err := r.db.GetContext(ctx, &periodo, query, id); err != nil {
		return nil, err
	}
	return &periodo, nil
}

// FindActual returns the term flagged active whose date range covers ref.
// Overlapping active terms are not prevented on write, so LIMIT 1 picks one
// arbitrarily.
func (r *PeriodoRepository) FindActual(ctx context.Context, ref time.Time) (*models.Periodo, error) {
	query := fmt.Sprintf(`SELECT %s FROM periodos
        WHERE activo = true AND fecha_inicio <= $1 AND fecha_fin >= $1 AND deleted_at IS NULL
        ORDER BY fecha_inicio DESC LIMIT 1`, periodoColumns)
	var periodo models.Periodo
	if err := r.db.GetContext(ctx, &periodo, query, ref); err != nil {
		return nil, err
	}
	return &periodo, nil
}

// Create inserts a new term.
func (r *PeriodoRepository) Create(ctx context.Context, periodo *models.Periodo) error {
	if periodo.ID == "" {
		periodo.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if periodo.CreatedAt.IsZero() {
		periodo.CreatedAt = now
	}
	periodo.UpdatedAt = now
	const query = `INSERT INTO periodos (id, nombre, fecha_inicio, fecha_fin, activo, created_at, updated_at)
        VALUES (:id, :nombre, :fecha_inicio, :fecha_fin, :activo, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, periodo); err != nil {
		return fmt.Errorf("create periodo: %w", err)
	}
	return nil
}

// Update modifies an existing term.
func (r *PeriodoRepository) Update(ctx context.Context, periodo *models.Periodo) error {
	periodo.UpdatedAt = time.Now().UTC()
	const query = `UPDATE periodos SET nombre = :nombre, fecha_inicio = :fecha_inicio, fecha_fin = :fecha_fin, activo = :activo, updated_at = :updated_at WHERE id = :id AND deleted_at IS NULL`
	if _, err := r.db.NamedExecContext(ctx, query, periodo); err != nil {
		return fmt.Errorf("update periodo: %w", err)
	}
	return nil
}

// SoftDelete stamps the term as deleted.
func (r *PeriodoRepository) SoftDelete(ctx context.Context, id string) error {
	const query = `UPDATE periodos SET deleted_at = $2, updated_at = $2 WHERE id = $1 AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, query, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("soft delete periodo: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Restore clears the deletion stamp.
func (r *PeriodoRepository) Restore(ctx context.Context, id string) error {
	const query = `UPDATE periodos SET deleted_at = NULL, updated_at = $2 WHERE id = $1 AND deleted_at IS NOT NULL`
	res, err := r.db.ExecContext(ctx, query, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("restore periodo: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
