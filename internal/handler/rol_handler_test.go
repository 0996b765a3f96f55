package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/campusdev/gestion-escolar-api/internal/models"
	"github.com/campusdev/gestion-escolar-api/internal/service"
)

type rolRepoMock struct {
	roles map[string]models.Rol
}

func newRolRepoMock() *rolRepoMock {
	return &rolRepoMock{roles: map[string]models.Rol{}}
}

func (m *rolRepoMock) List(ctx context.Context) ([]models.Rol, error) {
	out := make([]models.Rol, 0, len(m.roles))
	for _, rol := range m.roles {
		out = append(out, rol)
	}
	return out, nil
}

func (m *rolRepoMock) ListDeleted(ctx context.Context) ([]models.Rol, error) {
	return nil, nil
}

func (m *rolRepoMock) FindByID(ctx context.Context, id string) (*models.Rol, error) {
	rol, ok := m.roles[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &rol, nil
}

func (m *rolRepoMock) ExistsByNombre(ctx context.Context, nombre, excludeID string) (bool, error) {
	return false, nil
}

func (m *rolRepoMock) Create(ctx context.Context, rol *models.Rol) error {
	m.roles[rol.ID] = *rol
	return nil
}

func (m *rolRepoMock) Update(ctx context.Context, rol *models.Rol) error {
	m.roles[rol.ID] = *rol
	return nil
}

func (m *rolRepoMock) SoftDelete(ctx context.Context, id string) error {
	delete(m.roles, id)
	return nil
}

func (m *rolRepoMock) Restore(ctx context.Context, id string) error {
	return nil
}

func newGinContext(method, path string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c, w
}

func TestRolHandlerCreate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := service.NewRolService(newRolRepoMock(), nil, nil)
	h := NewRolHandler(svc)

	payload, _ := json.Marshal(service.CreateRolRequest{Nombre: "docente", Descripcion: "Cuerpo docente"})
	c, w := newGinContext(http.MethodPost, "/roles", payload)

	h.Create(c)
	require.Equal(t, http.StatusCreated, w.Code)
}

func TestRolHandlerCreateInvalidPayload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := service.NewRolService(newRolRepoMock(), nil, nil)
	h := NewRolHandler(svc)

	c, w := newGinContext(http.MethodPost, "/roles", []byte("{no es json"))

	h.Create(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRolHandlerGetNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := service.NewRolService(newRolRepoMock(), nil, nil)
	h := NewRolHandler(svc)

	c, w := newGinContext(http.MethodGet, "/roles/desconocido", nil)
	c.Params = gin.Params{{Key: "id", Value: "desconocido"}}

	h.Get(c)
	require.Equal(t, http.StatusNotFound, w.Code)
}
