package service

import (
	"context"
	"database/sql"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campusdev/gestion-escolar-api/internal/models"
	appErrors "github.com/campusdev/gestion-escolar-api/pkg/errors"
)

const (
	testCursoID      = "0b0fcf2a-9d1e-4b3a-9c2d-7e8f6a5b4c3d"
	testEstudianteID = "1a2b3c4d-5e6f-4a1b-8c2d-3e4f5a6b7c8d"
)

type mockInscripcionRepo struct {
	rows     map[string]models.InscripcionDetail
	deleted  map[string]models.InscripcionDetail
	existe   bool
	activas  int
	created  *models.Inscripcion
	restored string
}

func (m *mockInscripcionRepo) List(ctx context.Context, filter models.InscripcionFilter) ([]models.InscripcionDetail, int, error) {
	return nil, 0, nil
}

func (m *mockInscripcionRepo) FindByID(ctx context.Context, id string) (*models.InscripcionDetail, error) {
	if d, ok := m.rows[id]; ok {
		return &d, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockInscripcionRepo) Exists(ctx context.Context, cursoID, estudianteID string) (bool, error) {
	return m.existe, nil
}

func (m *mockInscripcionRepo) CountActivas(ctx context.Context, cursoID string) (int, error) {
	return m.activas, nil
}

func (m *mockInscripcionRepo) Create(ctx context.Context, inscripcion *models.Inscripcion) error {
	if inscripcion.ID == "" {
		inscripcion.ID = "nueva-inscripcion"
	}
	if m.rows == nil {
		m.rows = make(map[string]models.InscripcionDetail)
	}
	m.rows[inscripcion.ID] = models.InscripcionDetail{Inscripcion: *inscripcion}
	m.created = inscripcion
	return nil
}

func (m *mockInscripcionRepo) UpdateEstado(ctx context.Context, id string, estado models.EstadoInscripcion) error {
	d, ok := m.rows[id]
	if !ok {
		return sql.ErrNoRows
	}
	d.Estado = estado
	m.rows[id] = d
	return nil
}

func (m *mockInscripcionRepo) SoftDelete(ctx context.Context, id string) error {
	if _, ok := m.rows[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.rows, id)
	return nil
}

func (m *mockInscripcionRepo) ListDeleted(ctx context.Context) ([]models.InscripcionDetail, error) {
	out := make([]models.InscripcionDetail, 0, len(m.deleted))
	for _, d := range m.deleted {
		out = append(out, d)
	}
	return out, nil
}

func (m *mockInscripcionRepo) Restore(ctx context.Context, id string) error {
	d, ok := m.deleted[id]
	if !ok {
		return sql.ErrNoRows
	}
	delete(m.deleted, id)
	if m.rows == nil {
		m.rows = make(map[string]models.InscripcionDetail)
	}
	m.rows[id] = d
	m.restored = id
	return nil
}

type mockCursoLookup struct {
	cursos map[string]*models.CursoDetail
}

func (m *mockCursoLookup) FindByID(ctx context.Context, id string) (*models.CursoDetail, error) {
	if c, ok := m.cursos[id]; ok {
		return c, nil
	}
	return nil, sql.ErrNoRows
}

type mockEstudianteLookup struct {
	estudiantes map[string]*models.Estudiante
}

func (m *mockEstudianteLookup) FindByID(ctx context.Context, id string) (*models.Estudiante, error) {
	if e, ok := m.estudiantes[id]; ok {
		return e, nil
	}
	return nil, sql.ErrNoRows
}

func cursoConCupo(cupo int) *mockCursoLookup {
	curso := &models.CursoDetail{}
	curso.ID = testCursoID
	curso.Cupo = cupo
	return &mockCursoLookup{cursos: map[string]*models.CursoDetail{testCursoID: curso}}
}

func unEstudiante() *mockEstudianteLookup {
	est := &models.Estudiante{}
	est.ID = testEstudianteID
	return &mockEstudianteLookup{estudiantes: map[string]*models.Estudiante{testEstudianteID: est}}
}

func TestInscripcionServiceCreate(t *testing.T) {
	repo := &mockInscripcionRepo{activas: 10}
	svc := NewInscripcionService(repo, cursoConCupo(30), unEstudiante(), validator.New(), zap.NewNop())

	detail, err := svc.Create(context.Background(), CreateInscripcionRequest{CursoID: testCursoID, EstudianteID: testEstudianteID})
	require.NoError(t, err)
	assert.Equal(t, models.InscripcionInscrita, detail.Estado)
	require.NotNil(t, repo.created)
	assert.Equal(t, testCursoID, repo.created.CursoID)
}

func TestInscripcionServiceCreateSinCupo(t *testing.T) {
	repo := &mockInscripcionRepo{activas: 30}
	svc := NewInscripcionService(repo, cursoConCupo(30), unEstudiante(), validator.New(), zap.NewNop())

	_, err := svc.Create(context.Background(), CreateInscripcionRequest{CursoID: testCursoID, EstudianteID: testEstudianteID})
	require.Error(t, err)
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusConflict, appErr.Status)
	assert.Nil(t, repo.created)
}

func TestInscripcionServiceCreateDuplicada(t *testing.T) {
	repo := &mockInscripcionRepo{existe: true, activas: 0}
	svc := NewInscripcionService(repo, cursoConCupo(30), unEstudiante(), validator.New(), zap.NewNop())

	_, err := svc.Create(context.Background(), CreateInscripcionRequest{CursoID: testCursoID, EstudianteID: testEstudianteID})
	require.Error(t, err)
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusConflict, appErr.Status)
}

func TestInscripcionServiceRestore(t *testing.T) {
	detail := models.InscripcionDetail{}
	detail.ID = "borrada"
	repo := &mockInscripcionRepo{deleted: map[string]models.InscripcionDetail{"borrada": detail}}
	svc := NewInscripcionService(repo, cursoConCupo(30), unEstudiante(), validator.New(), zap.NewNop())

	restored, err := svc.Restore(context.Background(), "borrada")
	require.NoError(t, err)
	assert.Equal(t, "borrada", restored.ID)
	assert.Equal(t, "borrada", repo.restored)
}

func TestInscripcionServiceRestoreInexistente(t *testing.T) {
	repo := &mockInscripcionRepo{}
	svc := NewInscripcionService(repo, cursoConCupo(30), unEstudiante(), validator.New(), zap.NewNop())

	_, err := svc.Restore(context.Background(), "no-existe")
	require.Error(t, err)
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusNotFound, appErr.Status)
}

func TestInscripcionServiceCreateCursoInexistente(t *testing.T) {
	repo := &mockInscripcionRepo{}
	svc := NewInscripcionService(repo, &mockCursoLookup{}, unEstudiante(), validator.New(), zap.NewNop())

	_, err := svc.Create(context.Background(), CreateInscripcionRequest{CursoID: testCursoID, EstudianteID: testEstudianteID})
	require.Error(t, err)
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusNotFound, appErr.Status)
}
