package models

// EstadoAsistencia enumerates the attendance states. Any state may be set to
// any other via update; there is no transition graph.
type EstadoAsistencia string

const (
	AsistenciaPresente    EstadoAsistencia = "PRESENTE"
	AsistenciaAusente     EstadoAsistencia = "AUSENTE"
	AsistenciaTarde       EstadoAsistencia = "TARDE"
	AsistenciaJustificado EstadoAsistencia = "JUSTIFICADO"
)

// Valid reports whether the value is a known attendance state.
func (e EstadoAsistencia) Valid() bool {
	switch e {
	case AsistenciaPresente, AsistenciaAusente, AsistenciaTarde, AsistenciaJustificado:
		return true
	}
	return false
}

// Asistencia records a student's attendance for one class session.
type Asistencia struct {
	Registro
	ClaseID      string           `db:"clase_id" json:"clase_id"`
	EstudianteID string           `db:"estudiante_id" json:"estudiante_id"`
	Estado       EstadoAsistencia `db:"estado" json:"estado"`
	Observacion  string           `db:"observacion" json:"observacion"`
}

// AsistenciaDetail joins the student name onto the record.
type AsistenciaDetail struct {
	Asistencia
	EstudianteNombre string `db:"estudiante_nombre" json:"estudiante_nombre"`
}
