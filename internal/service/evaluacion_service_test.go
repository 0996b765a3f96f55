package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campusdev/gestion-escolar-api/internal/models"
)

type mockEvaluacionRepo struct {
	proximas []models.Evaluacion
	desde    time.Time
	hasta    *time.Time
}

func (m *mockEvaluacionRepo) ListByCurso(ctx context.Context, cursoID string) ([]models.Evaluacion, error) {
	return nil, nil
}

func (m *mockEvaluacionRepo) ListProximas(ctx context.Context, desde time.Time, hasta *time.Time) ([]models.Evaluacion, error) {
	m.desde = desde
	m.hasta = hasta
	return m.proximas, nil
}

func (m *mockEvaluacionRepo) ListDeleted(ctx context.Context) ([]models.Evaluacion, error) {
	return nil, nil
}

func (m *mockEvaluacionRepo) FindByID(ctx context.Context, id string) (*models.Evaluacion, error) {
	return nil, sql.ErrNoRows
}

func (m *mockEvaluacionRepo) Create(ctx context.Context, evaluacion *models.Evaluacion) error {
	return nil
}

func (m *mockEvaluacionRepo) Update(ctx context.Context, evaluacion *models.Evaluacion) error {
	return nil
}

func (m *mockEvaluacionRepo) SoftDelete(ctx context.Context, id string) error {
	return nil
}

func (m *mockEvaluacionRepo) Restore(ctx context.Context, id string) error {
	return sql.ErrNoRows
}

func (m *mockEvaluacionRepo) ListTipos(ctx context.Context) ([]models.TipoEvaluacion, error) {
	return nil, nil
}

func (m *mockEvaluacionRepo) ListDeletedTipos(ctx context.Context) ([]models.TipoEvaluacion, error) {
	return nil, nil
}

func (m *mockEvaluacionRepo) FindTipoByID(ctx context.Context, id string) (*models.TipoEvaluacion, error) {
	return nil, sql.ErrNoRows
}

func (m *mockEvaluacionRepo) CreateTipo(ctx context.Context, tipo *models.TipoEvaluacion) error {
	return nil
}

func (m *mockEvaluacionRepo) UpdateTipo(ctx context.Context, tipo *models.TipoEvaluacion) error {
	return nil
}

func (m *mockEvaluacionRepo) SoftDeleteTipo(ctx context.Context, id string) error {
	return nil
}

func (m *mockEvaluacionRepo) RestoreTipo(ctx context.Context, id string) error {
	return sql.ErrNoRows
}

func newEvaluacionService(repo *mockEvaluacionRepo, ref time.Time) *EvaluacionService {
	svc := NewEvaluacionService(repo, cursoConCupo(30), validator.New(), zap.NewNop())
	svc.now = func() time.Time { return ref }
	return svc
}

func TestEvaluacionServiceListProximasSinHorizonte(t *testing.T) {
	ref := time.Date(2024, 5, 10, 8, 0, 0, 0, time.UTC)
	repo := &mockEvaluacionRepo{proximas: []models.Evaluacion{{Titulo: "Final"}}}
	svc := newEvaluacionService(repo, ref)

	// dias 0 means no cap: every published future assessment comes back.
	proximas, err := svc.ListProximas(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, proximas, 1)
	assert.Equal(t, ref, repo.desde)
	assert.Nil(t, repo.hasta)
}

func TestEvaluacionServiceListProximasConHorizonte(t *testing.T) {
	ref := time.Date(2024, 5, 10, 8, 0, 0, 0, time.UTC)
	repo := &mockEvaluacionRepo{}
	svc := newEvaluacionService(repo, ref)

	_, err := svc.ListProximas(context.Background(), 7)
	require.NoError(t, err)
	require.NotNil(t, repo.hasta)
	assert.Equal(t, ref.AddDate(0, 0, 7), *repo.hasta)
}
