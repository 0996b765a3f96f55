package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestActividadVentanaInclusiva(t *testing.T) {
	apertura := time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC)
	cierre := time.Date(2024, 3, 22, 23, 59, 0, 0, time.UTC)
	act := Actividad{FechaApertura: apertura, FechaCierre: cierre, Activo: true}

	assert.True(t, act.EstaAbierta(apertura), "lower bound is inclusive")
	assert.True(t, act.EstaAbierta(time.Date(2024, 3, 22, 23, 59, 0, 0, time.UTC)), "upper bound is inclusive")
	assert.False(t, act.EstaAbierta(time.Date(2024, 3, 23, 0, 0, 0, 0, time.UTC)))
	assert.True(t, act.EstaCerrada(time.Date(2024, 3, 23, 0, 0, 0, 0, time.UTC)))
	assert.False(t, act.EstaCerrada(cierre))
	assert.False(t, act.EstaAbierta(apertura.Add(-time.Second)))
}

func TestActividadInactivaNoAbre(t *testing.T) {
	apertura := time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC)
	cierre := time.Date(2024, 3, 22, 23, 59, 0, 0, time.UTC)
	act := Actividad{FechaApertura: apertura, FechaCierre: cierre, Activo: false}

	assert.False(t, act.EstaAbierta(apertura.Add(time.Hour)))
}

func TestActividadEliminadaNoAbre(t *testing.T) {
	apertura := time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC)
	cierre := time.Date(2024, 3, 22, 23, 59, 0, 0, time.UTC)
	act := Actividad{FechaApertura: apertura, FechaCierre: cierre, Activo: true}
	act.SoftDelete(time.Now().UTC())

	assert.False(t, act.EstaAbierta(apertura.Add(time.Hour)))
}
