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

func evaluacionRows(now time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "curso_id", "tipo_evaluacion_id", "titulo", "descripcion", "fecha", "peso", "publicado", "created_at", "updated_at", "deleted_at"}).
		AddRow("ev1", "c1", "t1", "Parcial 1", "", now.AddDate(0, 0, 2), 20.0, true, now, now, nil).
		AddRow("ev2", "c1", "t1", "Parcial 2", "", now.AddDate(0, 1, 0), 20.0, true, now, now, nil)
}

func TestEvaluacionRepositoryListProximas(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEvaluacionRepository(db)

	desde := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	// No upper bound: every published future assessment comes back, only
	// desde is bound.
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, curso_id, tipo_evaluacion_id, titulo, descripcion, fecha, peso, publicado, created_at, updated_at, deleted_at FROM evaluaciones WHERE publicado = true AND fecha >= $1 AND deleted_at IS NULL ORDER BY fecha ASC`)).
		WithArgs(desde).
		WillReturnRows(evaluacionRows(desde))

	evaluaciones, err := repo.ListProximas(context.Background(), desde, nil)
	require.NoError(t, err)
	require.Len(t, evaluaciones, 2)
	assert.Equal(t, "Parcial 1", evaluaciones[0].Titulo)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEvaluacionRepositoryListProximasConLimite(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEvaluacionRepository(db)

	desde := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	hasta := desde.AddDate(0, 0, 7)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, curso_id, tipo_evaluacion_id, titulo, descripcion, fecha, peso, publicado, created_at, updated_at, deleted_at FROM evaluaciones WHERE publicado = true AND fecha >= $1 AND deleted_at IS NULL AND fecha <= $2 ORDER BY fecha ASC`)).
		WithArgs(desde, hasta).
		WillReturnRows(evaluacionRows(desde))

	_, err := repo.ListProximas(context.Background(), desde, &hasta)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
