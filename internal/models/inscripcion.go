package models

import "time"

// EstadoInscripcion enumerates enrollment lifecycle states. Transitions are
// unrestricted; any state is reachable from any other via explicit update.
type EstadoInscripcion string

const (
	InscripcionInscrita   EstadoInscripcion = "inscrito"
	InscripcionRetirada   EstadoInscripcion = "retirado"
	InscripcionCompletada EstadoInscripcion = "completado"
)

// Valid reports whether the value is a known enrollment state.
func (e EstadoInscripcion) Valid() bool {
	switch e {
	case InscripcionInscrita, InscripcionRetirada, InscripcionCompletada:
		return true
	}
	return false
}

// Inscripcion registers a student into a course offering.
type Inscripcion struct {
	Registro
	CursoID          string            `db:"curso_id" json:"curso_id"`
	EstudianteID     string            `db:"estudiante_id" json:"estudiante_id"`
	Estado           EstadoInscripcion `db:"estado" json:"estado"`
	FechaInscripcion time.Time         `db:"fecha_inscripcion" json:"fecha_inscripcion"`
}

// InscripcionDetail joins display names onto the enrollment.
type InscripcionDetail struct {
	Inscripcion
	EstudianteNombre string `db:"estudiante_nombre" json:"estudiante_nombre"`
	AsignaturaNombre string `db:"asignatura_nombre" json:"asignatura_nombre"`
}

// InscripcionFilter encapsulates search parameters for listing enrollments.
type InscripcionFilter struct {
	CursoID      string
	EstudianteID string
	Estado       string
	Page         int
	PageSize     int
}
