package models

import "time"

// Actividad is an assignment published by a teacher for a subject, open for
// submissions during [FechaApertura, FechaCierre].
type Actividad struct {
	Registro
	AsignaturaID  string    `db:"asignatura_id" json:"asignatura_id"`
	ProfesorID    string    `db:"profesor_id" json:"profesor_id"`
	Titulo        string    `db:"titulo" json:"titulo"`
	Descripcion   string    `db:"descripcion" json:"descripcion"`
	FechaApertura time.Time `db:"fecha_apertura" json:"fecha_apertura"`
	FechaCierre   time.Time `db:"fecha_cierre" json:"fecha_cierre"`
	Activo        bool      `db:"activo" json:"activo"`
}

// EstaAbierta reports whether the activity accepts submissions at ref.
// Both window bounds are inclusive.
func (a Actividad) EstaAbierta(ref time.Time) bool {
	if !a.Activo || a.IsDeleted() {
		return false
	}
	return !ref.Before(a.FechaApertura) && !ref.After(a.FechaCierre)
}

// EstaCerrada reports whether the submission window has passed at ref.
func (a Actividad) EstaCerrada(ref time.Time) bool {
	return ref.After(a.FechaCierre)
}

// EntregaActividad is a student's submission for an activity, unique per
// (actividad, estudiante) among non-deleted rows. Nota lives in [0,10].
type EntregaActividad struct {
	Registro
	ActividadID  string    `db:"actividad_id" json:"actividad_id"`
	EstudianteID string    `db:"estudiante_id" json:"estudiante_id"`
	ArchivoURL   string    `db:"archivo_url" json:"archivo_url"`
	Comentario   string    `db:"comentario" json:"comentario"`
	Nota         *float64  `db:"nota" json:"nota,omitempty"`
	FechaEntrega time.Time `db:"fecha_entrega" json:"fecha_entrega"`
}
