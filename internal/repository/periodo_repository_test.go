package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriodoRepositoryFindActual(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPeriodoRepository(db)

	ref := time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC)
	inicio := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	fin := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"id", "nombre", "fecha_inicio", "fecha_fin", "activo", "created_at", "updated_at", "deleted_at"}).
		AddRow("p1", "2024-I", inicio, fin, true, inicio, inicio, nil)

	mock.ExpectQuery(`activo = true AND fecha_inicio <= \$1 AND fecha_fin >= \$1 AND deleted_at IS NULL\s+ORDER BY fecha_inicio DESC LIMIT 1`).
		WithArgs(ref).
		WillReturnRows(rows)

	periodo, err := repo.FindActual(context.Background(), ref)
	require.NoError(t, err)
	assert.Equal(t, "2024-I", periodo.Nombre)
	assert.True(t, periodo.EnCurso(ref))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPeriodoRepositoryFindActualSinPeriodo(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPeriodoRepository(db)

	ref := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`activo = true AND fecha_inicio <= \$1 AND fecha_fin >= \$1`).
		WithArgs(ref).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindActual(context.Background(), ref)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
