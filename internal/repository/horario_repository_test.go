package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusdev/gestion-escolar-api/internal/models"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "postgres"), mock
}

func TestHorarioRepositoryFindConflictos(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewHorarioRepository(db)

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "curso_id", "bloque_id", "dia", "aula", "tipo", "created_at", "updated_at", "deleted_at"}).
		AddRow("h1", "c1", "b1", "LUN", "A-101", "regular", now, now, nil).
		AddRow("h2", "c2", "b1", "LUN", "A-101", "regular", now, now, nil).
		AddRow("h3", "c3", "b2", "MAR", "B-202", "laboratorio", now, now, nil).
		AddRow("h4", "c4", "b2", "MAR", "B-202", "laboratorio", now, now, nil).
		AddRow("h5", "c5", "b2", "MAR", "B-202", "laboratorio", now, now, nil)

	mock.ExpectQuery(`SELECT .+ FROM horarios_curso h\s+WHERE deleted_at IS NULL AND EXISTS`).WillReturnRows(rows)

	conflictos, err := repo.FindConflictos(context.Background())
	require.NoError(t, err)
	require.Len(t, conflictos, 2)

	assert.Equal(t, models.DiaLunes, conflictos[0].Dia)
	assert.Equal(t, "b1", conflictos[0].BloqueID)
	assert.Equal(t, "A-101", conflictos[0].Aula)
	assert.Len(t, conflictos[0].Horarios, 2)

	assert.Equal(t, models.DiaMartes, conflictos[1].Dia)
	assert.Len(t, conflictos[1].Horarios, 3)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHorarioRepositoryFindConflictosVacio(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewHorarioRepository(db)

	rows := sqlmock.NewRows([]string{"id", "curso_id", "bloque_id", "dia", "aula", "tipo", "created_at", "updated_at", "deleted_at"})
	mock.ExpectQuery(`SELECT .+ FROM horarios_curso h\s+WHERE deleted_at IS NULL AND EXISTS`).WillReturnRows(rows)

	conflictos, err := repo.FindConflictos(context.Background())
	require.NoError(t, err)
	assert.Empty(t, conflictos)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHorarioRepositoryExistsSlot(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewHorarioRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT 1 FROM horarios_curso WHERE curso_id = $1 AND bloque_id = $2 AND dia = $3 AND deleted_at IS NULL LIMIT 1`)).
		WithArgs("c1", "b1", models.DiaLunes).
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	exists, err := repo.ExistsSlot(context.Background(), "c1", "b1", models.DiaLunes, "")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHorarioRepositoryExistsSlotLibre(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewHorarioRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT 1 FROM horarios_curso WHERE curso_id = $1 AND bloque_id = $2 AND dia = $3 AND deleted_at IS NULL LIMIT 1`)).
		WithArgs("c1", "b9", models.DiaViernes).
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}))

	exists, err := repo.ExistsSlot(context.Background(), "c1", "b9", models.DiaViernes, "")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}
