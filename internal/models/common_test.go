package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistroSoftDeleteRestore(t *testing.T) {
	var r Registro
	assert.False(t, r.IsDeleted())

	now := time.Now().UTC()
	r.SoftDelete(now)
	assert.True(t, r.IsDeleted())
	require.NotNil(t, r.DeletedAt)
	assert.Equal(t, now, *r.DeletedAt)
	assert.Equal(t, now, r.UpdatedAt)

	later := now.Add(time.Minute)
	r.Restore(later)
	assert.False(t, r.IsDeleted())
	assert.Nil(t, r.DeletedAt)
	assert.Equal(t, later, r.UpdatedAt)
}

func TestPeriodoEnCurso(t *testing.T) {
	p := Periodo{
		FechaInicio: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		FechaFin:    time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC),
	}

	assert.True(t, p.EnCurso(p.FechaInicio), "start date is inclusive")
	assert.True(t, p.EnCurso(p.FechaFin), "end date is inclusive")
	assert.False(t, p.EnCurso(p.FechaFin.AddDate(0, 0, 1)))
}

func TestCursoConCupoDisponibilidad(t *testing.T) {
	lleno := CursoConCupo{Curso: Curso{Cupo: 30}, Inscritos: 30}
	assert.False(t, lleno.TieneCupo())

	abierto := CursoConCupo{Curso: Curso{Cupo: 30}, Inscritos: 29}
	assert.True(t, abierto.TieneCupo())
}
