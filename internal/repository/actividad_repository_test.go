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

func TestActividadRepositoryListAbiertas(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewActividadRepository(db)

	ref := time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)
	apertura := time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC)
	cierre := time.Date(2024, 3, 22, 23, 59, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"id", "asignatura_id", "profesor_id", "titulo", "descripcion", "fecha_apertura", "fecha_cierre", "activo", "created_at", "updated_at", "deleted_at"}).
		AddRow("a1", "asig1", "p1", "Tarea 1", "", apertura, cierre, true, apertura, apertura, nil)

	mock.ExpectQuery(`activo = true AND fecha_apertura <= \$1 AND fecha_cierre >= \$1 AND deleted_at IS NULL`).
		WithArgs(ref).
		WillReturnRows(rows)

	actividades, err := repo.ListAbiertas(context.Background(), ref)
	require.NoError(t, err)
	require.Len(t, actividades, 1)
	assert.Equal(t, "Tarea 1", actividades[0].Titulo)
	assert.True(t, actividades[0].EstaAbierta(ref))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestActividadRepositoryExistsEntrega(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewActividadRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT 1 FROM entregas_actividad WHERE actividad_id = $1 AND estudiante_id = $2 AND deleted_at IS NULL LIMIT 1`)).
		WithArgs("a1", "e1").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	exists, err := repo.ExistsEntrega(context.Background(), "a1", "e1")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestActividadRepositoryExistsEntregaSinEntrega(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewActividadRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT 1 FROM entregas_actividad WHERE actividad_id = $1 AND estudiante_id = $2 AND deleted_at IS NULL LIMIT 1`)).
		WithArgs("a1", "e2").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}))

	exists, err := repo.ExistsEntrega(context.Background(), "a1", "e2")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}
