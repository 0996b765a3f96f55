package service

import (
	"context"
	"database/sql"
	"net/http"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/campusdev/gestion-escolar-api/internal/models"
	appErrors "github.com/campusdev/gestion-escolar-api/pkg/errors"
)

type mockAuthRepo struct {
	usuarios      map[string]*models.UsuarioDetail
	tokens        map[string]*models.RefreshToken
	revokedAll    []string
	passwordStore map[string]string
}

func (m *mockAuthRepo) FindByUsername(ctx context.Context, username string) (*models.UsuarioDetail, error) {
	for _, u := range m.usuarios {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockAuthRepo) FindByID(ctx context.Context, id string) (*models.UsuarioDetail, error) {
	if u, ok := m.usuarios[id]; ok {
		return u, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockAuthRepo) UpdatePassword(ctx context.Context, id, passwordHash string, updatedAt time.Time) error {
	if m.passwordStore == nil {
		m.passwordStore = make(map[string]string)
	}
	m.passwordStore[id] = passwordHash
	return nil
}

func (m *mockAuthRepo) RevokeUsuarioRefreshTokens(ctx context.Context, usuarioID string) error {
	m.revokedAll = append(m.revokedAll, usuarioID)
	return nil
}

func (m *mockAuthRepo) CreateRefreshToken(ctx context.Context, token *models.RefreshToken) error {
	if m.tokens == nil {
		m.tokens = make(map[string]*models.RefreshToken)
	}
	m.tokens[token.Token] = token
	return nil
}

func (m *mockAuthRepo) FindRefreshToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	if t, ok := m.tokens[token]; ok {
		return t, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockAuthRepo) RevokeRefreshToken(ctx context.Context, id string, revokedAt time.Time) error {
	for _, t := range m.tokens {
		if t.ID == id {
			t.Revoked = true
			t.RevokedAt = &revokedAt
		}
	}
	return nil
}

func testAuthConfig() AuthConfig {
	return AuthConfig{
		AccessTokenSecret:  "super-secret-for-tests",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 24 * time.Hour,
		Issuer:             "gestion-escolar",
	}
}

func repoConUsuario(t *testing.T, password string) (*mockAuthRepo, *models.UsuarioDetail) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	usuario := &models.UsuarioDetail{RolNombre: "admin"}
	usuario.ID = "u1"
	usuario.Username = "director"
	usuario.Email = "director@colegio.edu"
	usuario.PasswordHash = string(hash)
	return &mockAuthRepo{usuarios: map[string]*models.UsuarioDetail{"u1": usuario}}, usuario
}

func TestAuthServiceLogin(t *testing.T) {
	repo, _ := repoConUsuario(t, "contrasena-segura")
	svc := NewAuthService(repo, validator.New(), zap.NewNop(), testAuthConfig())

	resp, err := svc.Login(context.Background(), models.LoginRequest{Username: "director", Password: "contrasena-segura"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "admin", resp.Usuario.Rol)

	claims, err := svc.ParseToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UsuarioID)
	assert.Equal(t, "director", claims.Username)
}

func TestAuthServiceLoginPasswordIncorrecta(t *testing.T) {
	repo, _ := repoConUsuario(t, "contrasena-segura")
	svc := NewAuthService(repo, validator.New(), zap.NewNop(), testAuthConfig())

	_, err := svc.Login(context.Background(), models.LoginRequest{Username: "director", Password: "otra-contrasena"})
	require.Error(t, err)
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusUnauthorized, appErr.Status)
}

func TestAuthServiceLoginUsuarioDesconocido(t *testing.T) {
	repo, _ := repoConUsuario(t, "contrasena-segura")
	svc := NewAuthService(repo, validator.New(), zap.NewNop(), testAuthConfig())

	// An unknown account yields the same generic error as a bad password.
	_, err := svc.Login(context.Background(), models.LoginRequest{Username: "intruso", Password: "contrasena-segura"})
	require.Error(t, err)
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusUnauthorized, appErr.Status)
}

func TestAuthServiceRefreshRotatesToken(t *testing.T) {
	repo, _ := repoConUsuario(t, "contrasena-segura")
	svc := NewAuthService(repo, validator.New(), zap.NewNop(), testAuthConfig())

	login, err := svc.Login(context.Background(), models.LoginRequest{Username: "director", Password: "contrasena-segura"})
	require.NoError(t, err)

	resp, err := svc.RefreshToken(context.Background(), models.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, resp.RefreshToken)
	assert.True(t, repo.tokens[login.RefreshToken].Revoked)

	// The rotated-out token must not be accepted again.
	_, err = svc.RefreshToken(context.Background(), models.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	require.Error(t, err)
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusUnauthorized, appErr.Status)
}

func TestAuthServiceChangePassword(t *testing.T) {
	repo, _ := repoConUsuario(t, "contrasena-segura")
	svc := NewAuthService(repo, validator.New(), zap.NewNop(), testAuthConfig())

	err := svc.ChangePassword(context.Background(), "u1", models.ChangePasswordRequest{
		OldPassword: "contrasena-segura",
		NewPassword: "contrasena-nueva",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, repo.passwordStore["u1"])
	assert.Contains(t, repo.revokedAll, "u1")
}

func TestAuthServiceChangePasswordActualIncorrecta(t *testing.T) {
	repo, _ := repoConUsuario(t, "contrasena-segura")
	svc := NewAuthService(repo, validator.New(), zap.NewNop(), testAuthConfig())

	err := svc.ChangePassword(context.Background(), "u1", models.ChangePasswordRequest{
		OldPassword: "equivocada",
		NewPassword: "contrasena-nueva",
	})
	require.Error(t, err)
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusUnauthorized, appErr.Status)
	assert.Empty(t, repo.passwordStore)
}
