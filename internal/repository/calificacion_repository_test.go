package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalificacionRepositoryPromedioEstudiante(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCalificacionRepository(db)

	mock.ExpectQuery(`SELECT AVG\(c\.nota\)`).
		WithArgs("e1", "c1").
		WillReturnRows(sqlmock.NewRows([]string{"avg"}).AddRow(90.0))

	promedio, err := repo.PromedioEstudiante(context.Background(), "e1", "c1")
	require.NoError(t, err)
	require.NotNil(t, promedio)
	assert.InDelta(t, 90.0, *promedio, 0.0001)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCalificacionRepositoryPromedioGlobal(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCalificacionRepository(db)

	// Without a course the query takes every graded evaluation of the
	// student, so only the student id is bound.
	mock.ExpectQuery(`SELECT AVG\(c\.nota\)`).
		WithArgs("e1").
		WillReturnRows(sqlmock.NewRows([]string{"avg"}).AddRow(82.25))

	promedio, err := repo.PromedioEstudiante(context.Background(), "e1", "")
	require.NoError(t, err)
	require.NotNil(t, promedio)
	assert.InDelta(t, 82.25, *promedio, 0.0001)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCalificacionRepositoryPromedioSinNotas(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCalificacionRepository(db)

	mock.ExpectQuery(`SELECT AVG\(c\.nota\)`).
		WithArgs("e1", "c1").
		WillReturnRows(sqlmock.NewRows([]string{"avg"}).AddRow(nil))

	promedio, err := repo.PromedioEstudiante(context.Background(), "e1", "c1")
	require.NoError(t, err)
	assert.Nil(t, promedio, "no grades must yield nil, not zero")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCalificacionRepositoryListByRango(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCalificacionRepository(db)

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "evaluacion_id", "estudiante_id", "nota", "observacion", "created_at", "updated_at", "deleted_at", "evaluacion_titulo"}).
		AddRow("g1", "ev1", "e1", 95.0, "", now, now, nil, "Parcial 1").
		AddRow("g2", "ev1", "e2", 70.0, "", now, now, nil, "Parcial 1")

	mock.ExpectQuery(`c\.nota >= \$2 AND c\.nota <= \$3`).
		WithArgs("c1", 70.0, 95.0).
		WillReturnRows(rows)

	calificaciones, err := repo.ListByRango(context.Background(), "c1", 70, 95)
	require.NoError(t, err)
	require.Len(t, calificaciones, 2)
	assert.Equal(t, 95.0, calificaciones[0].Nota, "highest first")
	assert.Equal(t, "Parcial 1", calificaciones[0].EvaluacionTitulo)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCalificacionRepositoryExists(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCalificacionRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT 1 FROM calificaciones WHERE evaluacion_id = $1 AND estudiante_id = $2 AND deleted_at IS NULL LIMIT 1`)).
		WithArgs("ev1", "e1").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	exists, err := repo.Exists(context.Background(), "ev1", "e1")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}
