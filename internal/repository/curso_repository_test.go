package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursoRepositoryListConCupo(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCursoRepository(db)

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "asignatura_id", "profesor_id", "periodo_id", "grupo", "cupo", "aula", "created_at", "updated_at", "deleted_at", "inscritos"}).
		AddRow("c1", "a1", "p1", "per1", "A", 30, "101", now, now, nil, 28).
		AddRow("c2", "a1", "p1", "per1", "B", 30, "102", now, now, nil, 30)

	// The seat count takes every non-deleted enrollment row; estado plays
	// no part in it.
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM inscripciones i\s+WHERE i\.curso_id = c\.id AND i\.deleted_at IS NULL`).
		WithArgs("per1").
		WillReturnRows(rows)

	cursos, err := repo.ListConCupo(context.Background(), "per1")
	require.NoError(t, err)
	require.Len(t, cursos, 2)
	assert.True(t, cursos[0].TieneCupo())
	assert.False(t, cursos[1].TieneCupo())
	assert.NoError(t, mock.ExpectationsWereMet())
}
