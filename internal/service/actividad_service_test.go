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

	"github.com/campusdev/gestion-escolar-api/internal/models"
	appErrors "github.com/campusdev/gestion-escolar-api/pkg/errors"
)

const testActividadID = "2c3d4e5f-6a7b-4c8d-9e0f-1a2b3c4d5e6f"

type mockActividadRepo struct {
	actividades    map[string]models.Actividad
	entregaExiste  bool
	entregaCreated *models.EntregaActividad
	notas          map[string]float64
}

func (m *mockActividadRepo) ListByAsignatura(ctx context.Context, asignaturaID string) ([]models.Actividad, error) {
	return nil, nil
}

func (m *mockActividadRepo) ListAbiertas(ctx context.Context, ref time.Time) ([]models.Actividad, error) {
	var abiertas []models.Actividad
	for _, a := range m.actividades {
		if a.EstaAbierta(ref) {
			abiertas = append(abiertas, a)
		}
	}
	return abiertas, nil
}

func (m *mockActividadRepo) ListProximas(ctx context.Context, ref time.Time) ([]models.Actividad, error) {
	return nil, nil
}

func (m *mockActividadRepo) FindByID(ctx context.Context, id string) (*models.Actividad, error) {
	if a, ok := m.actividades[id]; ok {
		return &a, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockActividadRepo) Create(ctx context.Context, actividad *models.Actividad) error {
	if actividad.ID == "" {
		actividad.ID = "nueva-actividad"
	}
	if m.actividades == nil {
		m.actividades = make(map[string]models.Actividad)
	}
	m.actividades[actividad.ID] = *actividad
	return nil
}

func (m *mockActividadRepo) Update(ctx context.Context, actividad *models.Actividad) error {
	m.actividades[actividad.ID] = *actividad
	return nil
}

func (m *mockActividadRepo) SoftDelete(ctx context.Context, id string) error {
	if _, ok := m.actividades[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.actividades, id)
	return nil
}

func (m *mockActividadRepo) Restore(ctx context.Context, id string) error {
	return nil
}

func (m *mockActividadRepo) ListEntregas(ctx context.Context, actividadID string) ([]models.EntregaActividad, error) {
	return nil, nil
}

func (m *mockActividadRepo) FindEntregaByID(ctx context.Context, id string) (*models.EntregaActividad, error) {
	if m.entregaCreated != nil && m.entregaCreated.ID == id {
		return m.entregaCreated, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockActividadRepo) ExistsEntrega(ctx context.Context, actividadID, estudianteID string) (bool, error) {
	return m.entregaExiste, nil
}

func (m *mockActividadRepo) CreateEntrega(ctx context.Context, entrega *models.EntregaActividad) error {
	if entrega.ID == "" {
		entrega.ID = "nueva-entrega"
	}
	m.entregaCreated = entrega
	return nil
}

func (m *mockActividadRepo) UpdateEntregaNota(ctx context.Context, id string, nota float64) error {
	if m.entregaCreated == nil || m.entregaCreated.ID != id {
		return sql.ErrNoRows
	}
	if m.notas == nil {
		m.notas = make(map[string]float64)
	}
	m.notas[id] = nota
	m.entregaCreated.Nota = &nota
	return nil
}

func (m *mockActividadRepo) SoftDeleteEntrega(ctx context.Context, id string) error {
	return nil
}

func (m *mockActividadRepo) ListDeleted(ctx context.Context) ([]models.Actividad, error) {
	return nil, nil
}

func (m *mockActividadRepo) ListDeletedEntregas(ctx context.Context) ([]models.EntregaActividad, error) {
	return nil, nil
}

func (m *mockActividadRepo) RestoreEntrega(ctx context.Context, id string) error {
	return sql.ErrNoRows
}

type mockAsignaturaLookup struct{}

func (m *mockAsignaturaLookup) FindByID(ctx context.Context, id string) (*models.Asignatura, error) {
	return &models.Asignatura{}, nil
}

type mockProfesorLookup struct{}

func (m *mockProfesorLookup) FindByID(ctx context.Context, id string) (*models.Profesor, error) {
	return &models.Profesor{}, nil
}

func actividadConVentana(apertura, cierre time.Time) *mockActividadRepo {
	actividad := models.Actividad{
		AsignaturaID:  "a1",
		FechaApertura: apertura,
		FechaCierre:   cierre,
		Activo:        true,
	}
	actividad.ID = testActividadID
	return &mockActividadRepo{actividades: map[string]models.Actividad{testActividadID: actividad}}
}

func newActividadService(repo *mockActividadRepo, ref time.Time) *ActividadService {
	svc := NewActividadService(repo, &mockAsignaturaLookup{}, &mockProfesorLookup{}, unEstudiante(), validator.New(), zap.NewNop())
	svc.now = func() time.Time { return ref }
	return svc
}

func TestActividadServiceCrearEntrega(t *testing.T) {
	ref := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	repo := actividadConVentana(ref.AddDate(0, 0, -1), ref.AddDate(0, 0, 1))
	svc := newActividadService(repo, ref)

	entrega, err := svc.CrearEntrega(context.Background(), CrearEntregaRequest{ActividadID: testActividadID, EstudianteID: testEstudianteID})
	require.NoError(t, err)
	assert.Equal(t, ref, entrega.FechaEntrega)
	assert.Nil(t, entrega.Nota)
}

func TestActividadServiceCrearEntregaVentanaCerrada(t *testing.T) {
	ref := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	repo := actividadConVentana(ref.AddDate(0, 0, -5), ref.AddDate(0, 0, -1))
	svc := newActividadService(repo, ref)

	_, err := svc.CrearEntrega(context.Background(), CrearEntregaRequest{ActividadID: testActividadID, EstudianteID: testEstudianteID})
	require.Error(t, err)
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusPreconditionFailed, appErr.Status)
	assert.Nil(t, repo.entregaCreated)
}

func TestActividadServiceCrearEntregaEnElCierre(t *testing.T) {
	// The close instant itself still admits submissions.
	ref := time.Date(2024, 5, 10, 23, 59, 0, 0, time.UTC)
	repo := actividadConVentana(ref.AddDate(0, 0, -5), ref)
	svc := newActividadService(repo, ref)

	_, err := svc.CrearEntrega(context.Background(), CrearEntregaRequest{ActividadID: testActividadID, EstudianteID: testEstudianteID})
	require.NoError(t, err)
}

func TestActividadServiceCrearEntregaDuplicada(t *testing.T) {
	ref := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	repo := actividadConVentana(ref.AddDate(0, 0, -1), ref.AddDate(0, 0, 1))
	repo.entregaExiste = true
	svc := newActividadService(repo, ref)

	_, err := svc.CrearEntrega(context.Background(), CrearEntregaRequest{ActividadID: testActividadID, EstudianteID: testEstudianteID})
	require.Error(t, err)
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusConflict, appErr.Status)
}

func TestActividadServiceCalificarEntrega(t *testing.T) {
	ref := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	repo := actividadConVentana(ref.AddDate(0, 0, -1), ref.AddDate(0, 0, 1))
	svc := newActividadService(repo, ref)

	entrega, err := svc.CrearEntrega(context.Background(), CrearEntregaRequest{ActividadID: testActividadID, EstudianteID: testEstudianteID})
	require.NoError(t, err)

	calificada, err := svc.CalificarEntrega(context.Background(), entrega.ID, CalificarEntregaRequest{Nota: 8.5})
	require.NoError(t, err)
	require.NotNil(t, calificada.Nota)
	assert.Equal(t, 8.5, *calificada.Nota)
}

func TestActividadServiceCalificarEntregaNotaFueraDeRango(t *testing.T) {
	repo := &mockActividadRepo{}
	svc := newActividadService(repo, time.Now())

	_, err := svc.CalificarEntrega(context.Background(), "e1", CalificarEntregaRequest{Nota: 11})
	require.Error(t, err)
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
}
