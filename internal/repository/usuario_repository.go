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

// UsuarioRepository manages persistence for accounts and refresh tokens.
type UsuarioRepository struct {
	db *sqlx.DB
}

// NewUsuarioRepository constructs a UsuarioRepository.
func NewUsuarioRepository(db *sqlx.DB) *UsuarioRepository {
	return &UsuarioRepository{db: db}
}

const usuarioColumns = `u.id, u.username, u.email, u.password_hash, u.nombre_completo, u.telefono, u.rol_id, u.created_at, u.updated_at, u.deleted_at, r.nombre AS rol_nombre`

// List returns active accounts matching the filter.
func (r *UsuarioRepository) List(ctx context.Context, filter models.UsuarioFilter) ([]models.UsuarioDetail, int, error) {
	base := "FROM usuarios u JOIN roles r ON r.id = u.rol_id WHERE u.deleted_at IS NULL"
	var args []interface{}

	if filter.RolID != "" {
		base += fmt.Sprintf(" AND u.rol_id = $%d", len(args)+1)
		args = append(args, filter.RolID)
	}
	if filter.Search != "" {
		base += fmt.Sprintf(" AND (LOWER(u.username) LIKE $%d OR LOWER(u.email) LIKE $%d OR LOWER(u.nombre_completo) LIKE $%d)", len(args)+1, len(args)+1, len(args)+1)
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}

	sortBy := filter.SortBy
	allowedSorts := map[string]string{
		"username":   "u.username",
		"email":      "u.email",
		"created_at": "u.created_at",
	}
	column, ok := allowedSorts[sortBy]
	if !ok {
		column = "u.created_at"
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
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s %s ORDER BY %s %s LIMIT %d OFFSET %d", usuarioColumns, base, column, order, size, offset)
	var usuarios []models.UsuarioDetail
	if err := r.db.SelectContext(ctx, &usuarios, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list usuarios: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count usuarios: %w", err)
	}
	return usuarios, total, nil
}

// ListDeleted returns logically deleted accounts.
func (r *UsuarioRepository) ListDeleted(ctx context.Context) ([]models.UsuarioDetail, error) {
	query := fmt.Sprintf("SELECT %s FROM usuarios u JOIN roles r ON r.id = u.rol_id WHERE u.deleted_at IS NOT NULL ORDER BY u.deleted_at DESC", usuarioColumns)
	var usuarios []models.UsuarioDetail
	if err := r.db.SelectContext(ctx, &usuarios, query); err != nil {
		return nil, fmt.Errorf("list deleted usuarios: %w", err)
	}
	return usuarios, nil
}

// FindByID loads an active account by id.
func (r *UsuarioRepository) FindByID(ctx context.Context, id string) (*models.UsuarioDetail, error) {
	query := fmt.Sprintf("SELECT %s FROM usuarios u JOIN roles r ON r.id = u.rol_id WHERE u.id = $1 AND u.deleted_at IS NULL", usuarioColumns)
	var usuario models.UsuarioDetail
	if err := r.db.GetContext(ctx, &usuario, query, id); err != nil {
		return nil, err
	}
	return &usuario, nil
}

// FindByUsername loads an active account by username for login.
func (r *UsuarioRepository) FindByUsername(ctx context.Context, username string) (*models.UsuarioDetail, error) {
	query := fmt.Sprintf("SELECT %s FROM usuarios u JOIN roles r ON r.id = u.rol_id WHERE u.username = $1 AND u.deleted_at IS NULL", usuarioColumns)
	var usuario models.UsuarioDetail
	if err := r.db.GetContext(ctx, &usuario, query, username); err != nil {
		return nil, err
	}
	return &usuario, nil
}

// ExistsByUsername checks username uniqueness among active rows.
func (r *UsuarioRepository) ExistsByUsername(ctx context.Context, username, excludeID string) (bool, error) {
	return r.existsBy(ctx, "username", username, excludeID)
}

// ExistsByEmail checks email uniqueness among active rows.
func (r *UsuarioRepository) ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error) {
	return r.existsBy(ctx, "email", email, excludeID)
}

func (r *UsuarioRepository) existsBy(ctx context.Context, field, value, excludeID string) (bool, error) {
	query := fmt.Sprintf("SELECT 1 FROM usuarios WHERE %s = $1 AND deleted_at IS NULL", field)
	args := []interface{}{value}
	if excludeID != "" {
		query += " AND id <> $2"
		args = append(args, excludeID)
	}
	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check usuario %s: %w", field, err)
	}
	return true, nil
}

// Create inserts a new account.
func (r *UsuarioRepository) Create(ctx context.Context, usuario *models.Usuario) error {
	if usuario.ID == "" {
		usuario.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if usuario.CreatedAt.IsZero() {
		usuario.CreatedAt = now
	}
	usuario.UpdatedAt = now
	const query = `INSERT INTO usuarios (id, username, email, password_hash, nombre_completo, telefono, rol_id, created_at, updated_at)
        VALUES (:id, :username, :email, :password_hash, :nombre_completo, :telefono, :rol_id, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, usuario); err != nil {
		return fmt.Errorf("create usuario: %w", err)
	}
	return nil
}

// Update modifies an existing account.
func (r *UsuarioRepository) Update(ctx context.Context, usuario *models.Usuario) error {
	usuario.UpdatedAt = time.Now().UTC()
	const query = `UPDATE usuarios SET username = :username, email = :email, nombre_completo = :nombre_completo, telefono = :telefono, rol_id = :rol_id, updated_at = :updated_at WHERE id = :id AND deleted_at IS NULL`
	if _, err := r.db.NamedExecContext(ctx, query, usuario); err != nil {
		return fmt.Errorf("update usuario: %w", err)
	}
	return nil
}

// UpdatePassword replaces the stored password hash.
func (r *UsuarioRepository) UpdatePassword(ctx context.Context, id, passwordHash string, updatedAt time.Time) error {
	const query = `UPDATE usuarios SET password_hash = $2, updated_at = $3 WHERE id = $1 AND deleted_at IS NULL`
	if _, err := r.db.ExecContext(ctx, query, id, passwordHash, updatedAt); err != nil {
		return fmt.Errorf("update usuario password: %w", err)
	}
	return nil
}

// SoftDelete stamps the account as deleted.
func (r *UsuarioRepository) SoftDelete(ctx context.Context, id string) error {
	const query = `UPDATE usuarios SET deleted_at = $2, updated_at = $2 WHERE id = $1 AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, query, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("soft delete usuario: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Restore clears the deletion stamp without re-checking uniqueness.
func (r *UsuarioRepository) Restore(ctx context.Context, id string) error {
	const query = `UPDATE usuarios SET deleted_at = NULL, updated_at = $2 WHERE id = $1 AND deleted_at IS NOT NULL`
	res, err := r.db.ExecContext(ctx, query, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("restore usuario: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// CreateRefreshToken persists a refresh token.
func (r *UsuarioRepository) CreateRefreshToken(ctx context.Context, token *models.RefreshToken) error {
	if token.ID == "" {
		token.ID = uuid.NewString()
	}
	if token.CreatedAt.IsZero() {
		token.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO refresh_tokens (id, usuario_id, token, expires_at, created_at, revoked, ip_address, user_agent)
        VALUES (:id, :usuario_id, :token, :expires_at, :created_at, :revoked, :ip_address, :user_agent)`
	if _, err := r.db.NamedExecContext(ctx, query, token); err != nil {
		return fmt.Errorf("create refresh token: %w", err)
	}
	return nil
}

// FindRefreshToken loads a refresh token by its value.
func (r *UsuarioRepository) FindRefreshToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	const query = `SELECT id, usuario_id, token, expires_at, created_at, revoked, revoked_at, ip_address, user_agent FROM refresh_tokens WHERE token = $1`
	var stored models.RefreshToken
	if err := r.db.GetContext(ctx, &stored, query, token); err != nil {
		return nil, err
	}
	return &stored, nil
}

// RevokeRefreshToken marks one token revoked.
func (r *UsuarioRepository) RevokeRefreshToken(ctx context.Context, id string, revokedAt time.Time) error {
	const query = `UPDATE refresh_tokens SET revoked = true, revoked_at = $2 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, revokedAt); err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	return nil
}

// RevokeUsuarioRefreshTokens revokes every live token of one account.
func (r *UsuarioRepository) RevokeUsuarioRefreshTokens(ctx context.Context, usuarioID string) error {
	const query = `UPDATE refresh_tokens SET revoked = true, revoked_at = $2 WHERE usuario_id = $1 AND revoked = false`
	if _, err := r.db.ExecContext(ctx, query, usuarioID, time.Now().UTC()); err != nil {
		return fmt.Errorf("revoke usuario refresh tokens: %w", err)
	}
	return nil
}
