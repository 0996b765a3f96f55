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

const testEvaluacionID = "4e5f6a7b-8c9d-4e0f-9a1b-2c3d4e5f6a7b"

type mockCalificacionRepo struct {
	existe        bool
	promedio      *float64
	created       *models.Calificacion
	promedioCurso string
}

func (m *mockCalificacionRepo) ListByEvaluacion(ctx context.Context, evaluacionID string) ([]models.Calificacion, error) {
	return nil, nil
}

func (m *mockCalificacionRepo) ListByEstudianteCurso(ctx context.Context, estudianteID, cursoID string) ([]models.CalificacionDetail, error) {
	return nil, nil
}

func (m *mockCalificacionRepo) ListByRango(ctx context.Context, cursoID string, min, max float64) ([]models.CalificacionDetail, error) {
	return nil, nil
}

func (m *mockCalificacionRepo) FindByID(ctx context.Context, id string) (*models.Calificacion, error) {
	return nil, sql.ErrNoRows
}

func (m *mockCalificacionRepo) Exists(ctx context.Context, evaluacionID, estudianteID string) (bool, error) {
	return m.existe, nil
}

func (m *mockCalificacionRepo) PromedioEstudiante(ctx context.Context, estudianteID, cursoID string) (*float64, error) {
	m.promedioCurso = cursoID
	return m.promedio, nil
}

func (m *mockCalificacionRepo) Create(ctx context.Context, calificacion *models.Calificacion) error {
	m.created = calificacion
	return nil
}

func (m *mockCalificacionRepo) Update(ctx context.Context, calificacion *models.Calificacion) error {
	return nil
}

func (m *mockCalificacionRepo) SoftDelete(ctx context.Context, id string) error {
	return nil
}

func (m *mockCalificacionRepo) ListDeleted(ctx context.Context) ([]models.Calificacion, error) {
	return nil, nil
}

func (m *mockCalificacionRepo) Restore(ctx context.Context, id string) error {
	return sql.ErrNoRows
}

type mockEvaluacionLookup struct{}

func (m *mockEvaluacionLookup) FindByID(ctx context.Context, id string) (*models.Evaluacion, error) {
	if id == testEvaluacionID {
		return &models.Evaluacion{}, nil
	}
	return nil, sql.ErrNoRows
}

func newCalificacionService(repo *mockCalificacionRepo) *CalificacionService {
	return NewCalificacionService(repo, &mockEvaluacionLookup{}, unEstudiante(), validator.New(), zap.NewNop())
}

func TestCalificacionServiceRegistrar(t *testing.T) {
	repo := &mockCalificacionRepo{}
	svc := newCalificacionService(repo)

	calificacion, err := svc.Registrar(context.Background(), RegistrarCalificacionRequest{
		EvaluacionID: testEvaluacionID,
		EstudianteID: testEstudianteID,
		Nota:         85,
	})
	require.NoError(t, err)
	assert.Equal(t, 85.0, calificacion.Nota)
	assert.NotNil(t, repo.created)
}

func TestCalificacionServiceRegistrarDuplicada(t *testing.T) {
	repo := &mockCalificacionRepo{existe: true}
	svc := newCalificacionService(repo)

	_, err := svc.Registrar(context.Background(), RegistrarCalificacionRequest{
		EvaluacionID: testEvaluacionID,
		EstudianteID: testEstudianteID,
		Nota:         85,
	})
	require.Error(t, err)
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusConflict, appErr.Status)
}

func TestCalificacionServiceRegistrarNotaFueraDeRango(t *testing.T) {
	repo := &mockCalificacionRepo{}
	svc := newCalificacionService(repo)

	_, err := svc.Registrar(context.Background(), RegistrarCalificacionRequest{
		EvaluacionID: testEvaluacionID,
		EstudianteID: testEstudianteID,
		Nota:         101,
	})
	require.Error(t, err)
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
	assert.Nil(t, repo.created)
}

func TestCalificacionServicePromedio(t *testing.T) {
	promedio := 90.0
	repo := &mockCalificacionRepo{promedio: &promedio}
	svc := newCalificacionService(repo)

	resumen, err := svc.CalcularPromedioEstudiante(context.Background(), testEstudianteID, testCursoID)
	require.NoError(t, err)
	require.NotNil(t, resumen.Promedio)
	assert.Equal(t, 90.0, *resumen.Promedio)
}

func TestCalificacionServicePromedioGlobal(t *testing.T) {
	promedio := 78.5
	repo := &mockCalificacionRepo{promedio: &promedio}
	svc := newCalificacionService(repo)

	// Without a course the average covers every course the student has
	// grades in.
	resumen, err := svc.CalcularPromedioEstudiante(context.Background(), testEstudianteID, "")
	require.NoError(t, err)
	assert.Empty(t, repo.promedioCurso)
	assert.Empty(t, resumen.CursoID)
	require.NotNil(t, resumen.Promedio)
	assert.Equal(t, 78.5, *resumen.Promedio)
}

func TestCalificacionServicePromedioSinNotas(t *testing.T) {
	repo := &mockCalificacionRepo{}
	svc := newCalificacionService(repo)

	resumen, err := svc.CalcularPromedioEstudiante(context.Background(), testEstudianteID, testCursoID)
	require.NoError(t, err)
	// No grades means no average, not an average of zero.
	assert.Nil(t, resumen.Promedio)
}

func TestCalificacionServiceListByRangoInvalido(t *testing.T) {
	repo := &mockCalificacionRepo{}
	svc := newCalificacionService(repo)

	_, err := svc.ListByRango(context.Background(), testCursoID, 80, 60)
	require.Error(t, err)
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
}
