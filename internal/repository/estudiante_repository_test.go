package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstudianteRepositorySoftDelete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEstudianteRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE estudiantes SET deleted_at = $2, updated_at = $2 WHERE id = $1 AND deleted_at IS NULL`)).
		WithArgs("e1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SoftDelete(context.Background(), "e1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEstudianteRepositorySoftDeleteYaEliminado(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEstudianteRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE estudiantes SET deleted_at = $2, updated_at = $2 WHERE id = $1 AND deleted_at IS NULL`)).
		WithArgs("e1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SoftDelete(context.Background(), "e1")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEstudianteRepositoryRestore(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEstudianteRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE estudiantes SET deleted_at = NULL, updated_at = $2 WHERE id = $1 AND deleted_at IS NOT NULL`)).
		WithArgs("e1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Restore(context.Background(), "e1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEstudianteRepositoryExistsByCodigo(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEstudianteRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT 1 FROM estudiantes WHERE codigo_estudiante = $1 AND deleted_at IS NULL LIMIT 1`)).
		WithArgs("EST-001").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	exists, err := repo.ExistsByCodigo(context.Background(), "EST-001", "")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEstudianteRepositoryExistsByCodigoExcluyendoID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEstudianteRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT 1 FROM estudiantes WHERE codigo_estudiante = $1 AND deleted_at IS NULL AND id <> $2 LIMIT 1`)).
		WithArgs("EST-001", "e1").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}))

	exists, err := repo.ExistsByCodigo(context.Background(), "EST-001", "e1")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}
