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

const testBloqueID = "3d4e5f6a-7b8c-4d9e-8f0a-1b2c3d4e5f6a"

type mockHorarioRepo struct {
	horarios   map[string]models.HorarioCurso
	ocupado    bool
	excludeIDs []string
	conflictos []models.ConflictoHorario
	created    *models.HorarioCurso
}

func (m *mockHorarioRepo) ListByCurso(ctx context.Context, cursoID string) ([]models.HorarioCurso, error) {
	return nil, nil
}

func (m *mockHorarioRepo) FindByID(ctx context.Context, id string) (*models.HorarioCurso, error) {
	if h, ok := m.horarios[id]; ok {
		return &h, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockHorarioRepo) ExistsSlot(ctx context.Context, cursoID, bloqueID string, dia models.DiaSemana, excludeID string) (bool, error) {
	m.excludeIDs = append(m.excludeIDs, excludeID)
	return m.ocupado, nil
}

func (m *mockHorarioRepo) FindConflictos(ctx context.Context) ([]models.ConflictoHorario, error) {
	return m.conflictos, nil
}

func (m *mockHorarioRepo) Create(ctx context.Context, horario *models.HorarioCurso) error {
	if horario.ID == "" {
		horario.ID = "nuevo-horario"
	}
	if m.horarios == nil {
		m.horarios = make(map[string]models.HorarioCurso)
	}
	m.horarios[horario.ID] = *horario
	m.created = horario
	return nil
}

func (m *mockHorarioRepo) Update(ctx context.Context, horario *models.HorarioCurso) error {
	m.horarios[horario.ID] = *horario
	return nil
}

func (m *mockHorarioRepo) SoftDelete(ctx context.Context, id string) error {
	if _, ok := m.horarios[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.horarios, id)
	return nil
}

func (m *mockHorarioRepo) ListBloques(ctx context.Context) ([]models.BloqueHorario, error) {
	return nil, nil
}

func (m *mockHorarioRepo) FindBloqueByID(ctx context.Context, id string) (*models.BloqueHorario, error) {
	if id == testBloqueID {
		bloque := &models.BloqueHorario{Nombre: "Bloque 1", HoraInicio: "07:00", HoraFin: "07:45"}
		bloque.ID = id
		return bloque, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockHorarioRepo) CreateBloque(ctx context.Context, bloque *models.BloqueHorario) error {
	return nil
}

func (m *mockHorarioRepo) UpdateBloque(ctx context.Context, bloque *models.BloqueHorario) error {
	return nil
}

func (m *mockHorarioRepo) SoftDeleteBloque(ctx context.Context, id string) error {
	return nil
}

func (m *mockHorarioRepo) ListDeleted(ctx context.Context) ([]models.HorarioCurso, error) {
	return nil, nil
}

func (m *mockHorarioRepo) Restore(ctx context.Context, id string) error {
	return sql.ErrNoRows
}

func (m *mockHorarioRepo) ListDeletedBloques(ctx context.Context) ([]models.BloqueHorario, error) {
	return nil, nil
}

func (m *mockHorarioRepo) RestoreBloque(ctx context.Context, id string) error {
	return sql.ErrNoRows
}

func TestHorarioServiceCreate(t *testing.T) {
	repo := &mockHorarioRepo{}
	svc := NewHorarioService(repo, cursoConCupo(30), validator.New(), zap.NewNop())

	horario, err := svc.Create(context.Background(), testCursoID, SaveHorarioRequest{
		BloqueID: testBloqueID,
		Dia:      models.DiaLunes,
		Aula:     "A-101",
		Tipo:     models.HorarioRegular,
	})
	require.NoError(t, err)
	assert.Equal(t, testCursoID, horario.CursoID)
	assert.Equal(t, models.DiaLunes, horario.Dia)
}

func TestHorarioServiceCreateSlotOcupado(t *testing.T) {
	repo := &mockHorarioRepo{ocupado: true}
	svc := NewHorarioService(repo, cursoConCupo(30), validator.New(), zap.NewNop())

	_, err := svc.Create(context.Background(), testCursoID, SaveHorarioRequest{
		BloqueID: testBloqueID,
		Dia:      models.DiaLunes,
		Aula:     "A-101",
		Tipo:     models.HorarioRegular,
	})
	require.Error(t, err)
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusConflict, appErr.Status)
	assert.Nil(t, repo.created)
}

func TestHorarioServiceUpdateExcluyeElPropio(t *testing.T) {
	existente := models.HorarioCurso{CursoID: testCursoID, BloqueID: testBloqueID, Dia: models.DiaLunes, Aula: "A-101", Tipo: models.HorarioRegular}
	existente.ID = "h1"
	repo := &mockHorarioRepo{horarios: map[string]models.HorarioCurso{"h1": existente}}
	svc := NewHorarioService(repo, cursoConCupo(30), validator.New(), zap.NewNop())

	_, err := svc.Update(context.Background(), "h1", SaveHorarioRequest{
		BloqueID: testBloqueID,
		Dia:      models.DiaMartes,
		Aula:     "A-102",
		Tipo:     models.HorarioRegular,
	})
	require.NoError(t, err)
	// The slot check must not count the row being moved.
	assert.Contains(t, repo.excludeIDs, "h1")
}

func TestHorarioServiceCreateDiaInvalido(t *testing.T) {
	repo := &mockHorarioRepo{}
	svc := NewHorarioService(repo, cursoConCupo(30), validator.New(), zap.NewNop())

	_, err := svc.Create(context.Background(), testCursoID, SaveHorarioRequest{
		BloqueID: testBloqueID,
		Dia:      models.DiaSemana("FUNDAY"),
		Aula:     "A-101",
		Tipo:     models.HorarioRegular,
	})
	require.Error(t, err)
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
}

func TestHorarioServiceConflictos(t *testing.T) {
	repo := &mockHorarioRepo{conflictos: []models.ConflictoHorario{{Dia: models.DiaLunes, BloqueID: testBloqueID, Aula: "A-101"}}}
	svc := NewHorarioService(repo, cursoConCupo(30), validator.New(), zap.NewNop())

	conflictos, err := svc.Conflictos(context.Background())
	require.NoError(t, err)
	require.Len(t, conflictos, 1)
	assert.Equal(t, "A-101", conflictos[0].Aula)
}
