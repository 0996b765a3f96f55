package models

// DiaSemana enumerates schedule weekdays.
type DiaSemana string

const (
	DiaLunes     DiaSemana = "LUN"
	DiaMartes    DiaSemana = "MAR"
	DiaMiercoles DiaSemana = "MIE"
	DiaJueves    DiaSemana = "JUE"
	DiaViernes   DiaSemana = "VIE"
	DiaSabado    DiaSemana = "SAB"
	DiaDomingo   DiaSemana = "DOM"
)

// Valid reports whether the value is a known weekday.
func (d DiaSemana) Valid() bool {
	switch d {
	case DiaLunes, DiaMartes, DiaMiercoles, DiaJueves, DiaViernes, DiaSabado, DiaDomingo:
		return true
	}
	return false
}

// TipoHorario enumerates schedule slot kinds.
type TipoHorario string

const (
	HorarioRegular     TipoHorario = "regular"
	HorarioLaboratorio TipoHorario = "laboratorio"
	HorarioTaller      TipoHorario = "taller"
	HorarioOtro        TipoHorario = "otro"
)

// Valid reports whether the value is a known slot kind.
func (t TipoHorario) Valid() bool {
	switch t {
	case HorarioRegular, HorarioLaboratorio, HorarioTaller, HorarioOtro:
		return true
	}
	return false
}

// BloqueHorario is a reusable time block of the institutional timetable.
type BloqueHorario struct {
	Registro
	Nombre     string `db:"nombre" json:"nombre"`
	HoraInicio string `db:"hora_inicio" json:"hora_inicio"`
	HoraFin    string `db:"hora_fin" json:"hora_fin"`
}

// HorarioCurso assigns a course to a (day, time block, room) slot.
// Two non-deleted rows with distinct IDs sharing dia, bloque and aula are in
// conflict.
type HorarioCurso struct {
	Registro
	CursoID  string      `db:"curso_id" json:"curso_id"`
	BloqueID string      `db:"bloque_id" json:"bloque_id"`
	Dia      DiaSemana   `db:"dia" json:"dia"`
	Aula     string      `db:"aula" json:"aula"`
	Tipo     TipoHorario `db:"tipo" json:"tipo"`
}

// ConflictoHorario pairs two slots that collide on (dia, bloque, aula).
type ConflictoHorario struct {
	Dia      DiaSemana      `json:"dia"`
	BloqueID string         `json:"bloque_id"`
	Aula     string         `json:"aula"`
	Horarios []HorarioCurso `json:"horarios"`
}
