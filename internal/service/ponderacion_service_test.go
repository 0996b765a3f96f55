package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campusdev/gestion-escolar-api/internal/models"
)

type mockPonderacionRepo struct {
	suma    float64
	created *models.TipoPonderacionCurso
}

func (m *mockPonderacionRepo) ListByCurso(ctx context.Context, cursoID string) ([]models.TipoPonderacionCurso, error) {
	return nil, nil
}

func (m *mockPonderacionRepo) FindByID(ctx context.Context, id string) (*models.TipoPonderacionCurso, error) {
	return nil, sql.ErrNoRows
}

func (m *mockPonderacionRepo) SumaPesos(ctx context.Context, cursoID string) (float64, error) {
	return m.suma, nil
}

func (m *mockPonderacionRepo) Create(ctx context.Context, ponderacion *models.TipoPonderacionCurso) error {
	m.created = ponderacion
	m.suma += ponderacion.PesoPorcentaje
	return nil
}

func (m *mockPonderacionRepo) Update(ctx context.Context, ponderacion *models.TipoPonderacionCurso) error {
	return nil
}

func (m *mockPonderacionRepo) SoftDelete(ctx context.Context, id string) error {
	return nil
}

func (m *mockPonderacionRepo) ListDeleted(ctx context.Context) ([]models.TipoPonderacionCurso, error) {
	return nil, nil
}

func (m *mockPonderacionRepo) Restore(ctx context.Context, id string) error {
	return sql.ErrNoRows
}

func TestPonderacionServiceResumenCompleto(t *testing.T) {
	repo := &mockPonderacionRepo{suma: 100}
	svc := NewPonderacionService(repo, cursoConCupo(30), validator.New(), zap.NewNop())

	resumen, err := svc.Resumen(context.Background(), testCursoID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, resumen.SumaPesos)
	assert.True(t, resumen.Completo)
}

func TestPonderacionServiceResumenIncompleto(t *testing.T) {
	repo := &mockPonderacionRepo{suma: 80}
	svc := NewPonderacionService(repo, cursoConCupo(30), validator.New(), zap.NewNop())

	resumen, err := svc.Resumen(context.Background(), testCursoID)
	require.NoError(t, err)
	assert.False(t, resumen.Completo)
}

func TestPonderacionServiceCreateSumaExcedida(t *testing.T) {
	// The sum is advisory: a category pushing the total past 100 is accepted.
	repo := &mockPonderacionRepo{suma: 90}
	svc := NewPonderacionService(repo, cursoConCupo(30), validator.New(), zap.NewNop())

	ponderacion, err := svc.Create(context.Background(), testCursoID, SavePonderacionRequest{Nombre: "Talleres", PesoPorcentaje: 50})
	require.NoError(t, err)
	assert.Equal(t, 50.0, ponderacion.PesoPorcentaje)
	assert.NotNil(t, repo.created)

	resumen, err := svc.Resumen(context.Background(), testCursoID)
	require.NoError(t, err)
	assert.Equal(t, 140.0, resumen.SumaPesos)
	assert.False(t, resumen.Completo)
}
