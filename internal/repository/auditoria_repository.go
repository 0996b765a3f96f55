package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/campusdev/gestion-escolar-api/internal/models"
)

// AuditoriaRepository appends audit events. Events are immutable once
// written; there is no update or delete path.
type AuditoriaRepository struct {
	db *sqlx.DB
}

// NewAuditoriaRepository constructs an AuditoriaRepository.
func NewAuditoriaRepository(db *sqlx.DB) *AuditoriaRepository {
	return &AuditoriaRepository{db: db}
}

// Create appends one audit event.
func (r *AuditoriaRepository) Create(ctx context.Context, registro *models.RegistroAuditoria) error {
	if registro.ID == "" {
		registro.ID = uuid.NewString()
	}
	if registro.CreatedAt.IsZero() {
		registro.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO auditoria (id, usuario_id, accion, endpoint, ip_address, dispositivo, cuerpo, created_at)
        VALUES (:id, :usuario_id, :accion, :endpoint, :ip_address, :dispositivo, :cuerpo, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, registro); err != nil {
		return fmt.Errorf("create registro auditoria: %w", err)
	}
	return nil
}

// List returns recent audit events for operators, newest first.
func (r *AuditoriaRepository) List(ctx context.Context, usuarioID string, limit int) ([]models.RegistroAuditoria, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	query := "SELECT id, usuario_id, accion, endpoint, ip_address, dispositivo, cuerpo, created_at FROM auditoria"
	var args []interface{}
	if usuarioID != "" {
		query += " WHERE usuario_id = $1"
		args = append(args, usuarioID)
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT %d", limit)

	var registros []models.RegistroAuditoria
	if err := r.db.SelectContext(ctx, &registros, query, args...); err != nil {
		return nil, fmt.Errorf("list auditoria: %w", err)
	}
	return registros, nil
}
