package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusdev/gestion-escolar-api/internal/models"
)

func TestInscripcionRepositoryCountActivas(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewInscripcionRepository(db)

	// Retired and completed rows still hold their seat; the count only
	// skips soft-deleted rows.
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM inscripciones WHERE curso_id = $1 AND deleted_at IS NULL`)).
		WithArgs("c1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(29))

	total, err := repo.CountActivas(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, 29, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInscripcionRepositoryRestore(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewInscripcionRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE inscripciones SET deleted_at = NULL, updated_at = $2 WHERE id = $1 AND deleted_at IS NOT NULL`)).
		WithArgs("i1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Restore(context.Background(), "i1")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInscripcionRepositoryRestoreNoEliminada(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewInscripcionRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE inscripciones SET deleted_at = NULL, updated_at = $2 WHERE id = $1 AND deleted_at IS NOT NULL`)).
		WithArgs("activa", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Restore(context.Background(), "activa")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInscripcionRepositoryUpdateEstado(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewInscripcionRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE inscripciones SET estado = $2, updated_at = $3 WHERE id = $1 AND deleted_at IS NULL`)).
		WithArgs("i1", models.InscripcionRetirada, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateEstado(context.Background(), "i1", models.InscripcionRetirada)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInscripcionRepositoryUpdateEstadoNoEncontrada(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewInscripcionRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE inscripciones SET estado = $2, updated_at = $3 WHERE id = $1 AND deleted_at IS NULL`)).
		WithArgs("desconocida", models.InscripcionCompletada, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateEstado(context.Background(), "desconocida", models.InscripcionCompletada)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
