package models

import "time"

// Periodo is an academic term bounded by inclusive start and end dates.
type Periodo struct {
	Registro
	Nombre      string    `db:"nombre" json:"nombre"`
	FechaInicio time.Time `db:"fecha_inicio" json:"fecha_inicio"`
	FechaFin    time.Time `db:"fecha_fin" json:"fecha_fin"`
	Activo      bool      `db:"activo" json:"activo"`
}

// EnCurso reports whether the reference date falls inside the term, both
// bounds inclusive.
func (p Periodo) EnCurso(ref time.Time) bool {
	return !ref.Before(p.FechaInicio) && !ref.After(p.FechaFin)
}
