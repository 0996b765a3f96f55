package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/campusdev/gestion-escolar-api/internal/models"
	"github.com/campusdev/gestion-escolar-api/internal/service"
)

const (
	handlerTestCursoID      = "0b0fcf2a-9d1e-4b3a-9c2d-7e8f6a5b4c3d"
	handlerTestEstudianteID = "1a2b3c4d-5e6f-4a1b-8c2d-3e4f5a6b7c8d"
)

type inscripcionRepoMock struct {
	rows    map[string]models.InscripcionDetail
	existe  bool
	activas int
}

func (m *inscripcionRepoMock) List(ctx context.Context, filter models.InscripcionFilter) ([]models.InscripcionDetail, int, error) {
	return nil, 0, nil
}

func (m *inscripcionRepoMock) FindByID(ctx context.Context, id string) (*models.InscripcionDetail, error) {
	row := m.rows[id]
	return &row, nil
}

func (m *inscripcionRepoMock) Exists(ctx context.Context, cursoID, estudianteID string) (bool, error) {
	return m.existe, nil
}

func (m *inscripcionRepoMock) CountActivas(ctx context.Context, cursoID string) (int, error) {
	return m.activas, nil
}

func (m *inscripcionRepoMock) Create(ctx context.Context, inscripcion *models.Inscripcion) error {
	inscripcion.ID = "i1"
	m.rows[inscripcion.ID] = models.InscripcionDetail{Inscripcion: *inscripcion}
	return nil
}

func (m *inscripcionRepoMock) UpdateEstado(ctx context.Context, id string, estado models.EstadoInscripcion) error {
	return nil
}

func (m *inscripcionRepoMock) SoftDelete(ctx context.Context, id string) error {
	return nil
}

func (m *inscripcionRepoMock) ListDeleted(ctx context.Context) ([]models.InscripcionDetail, error) {
	return nil, nil
}

func (m *inscripcionRepoMock) Restore(ctx context.Context, id string) error {
	if _, ok := m.rows[id]; !ok {
		return sql.ErrNoRows
	}
	return nil
}

type cursoLookupMock struct{ cupo int }

func (m *cursoLookupMock) FindByID(ctx context.Context, id string) (*models.CursoDetail, error) {
	detail := &models.CursoDetail{}
	detail.ID = id
	detail.Cupo = m.cupo
	return detail, nil
}

type estudianteLookupMock struct{}

func (m *estudianteLookupMock) FindByID(ctx context.Context, id string) (*models.Estudiante, error) {
	return &models.Estudiante{}, nil
}

func newInscripcionHandlerForTest(repo *inscripcionRepoMock, cupo int) *InscripcionHandler {
	svc := service.NewInscripcionService(repo, &cursoLookupMock{cupo: cupo}, &estudianteLookupMock{}, nil, nil)
	return NewInscripcionHandler(svc)
}

func TestInscripcionHandlerCreate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &inscripcionRepoMock{rows: map[string]models.InscripcionDetail{}}
	h := newInscripcionHandlerForTest(repo, 30)

	payload, _ := json.Marshal(service.CreateInscripcionRequest{
		CursoID:      handlerTestCursoID,
		EstudianteID: handlerTestEstudianteID,
	})
	c, w := newGinContext(http.MethodPost, "/inscripciones", payload)

	h.Create(c)
	require.Equal(t, http.StatusCreated, w.Code)
}

func TestInscripcionHandlerCreateSinCupo(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &inscripcionRepoMock{rows: map[string]models.InscripcionDetail{}, activas: 30}
	h := newInscripcionHandlerForTest(repo, 30)

	payload, _ := json.Marshal(service.CreateInscripcionRequest{
		CursoID:      handlerTestCursoID,
		EstudianteID: handlerTestEstudianteID,
	})
	c, w := newGinContext(http.MethodPost, "/inscripciones", payload)

	h.Create(c)
	require.Equal(t, http.StatusConflict, w.Code)
}
