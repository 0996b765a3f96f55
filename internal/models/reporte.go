package models

// TipoReporte enumerates incident report categories.
type TipoReporte string

const (
	ReporteConducta  TipoReporte = "conducta"
	ReporteAcademico TipoReporte = "academico"
	ReporteOtro      TipoReporte = "otro"
)

// Valid reports whether the value is a known report type.
func (t TipoReporte) Valid() bool {
	switch t {
	case ReporteConducta, ReporteAcademico, ReporteOtro:
		return true
	}
	return false
}

// Severidad enumerates incident severity levels.
type Severidad string

const (
	SeveridadLeve     Severidad = "LEVE"
	SeveridadModerado Severidad = "MODERADO"
	SeveridadGrave    Severidad = "GRAVE"
)

// Valid reports whether the value is a known severity.
func (s Severidad) Valid() bool {
	switch s {
	case SeveridadLeve, SeveridadModerado, SeveridadGrave:
		return true
	}
	return false
}

// Reporte is an incident or academic report raised about a student,
// optionally scoped to a course offering.
type Reporte struct {
	Registro
	EstudianteID string      `db:"estudiante_id" json:"estudiante_id"`
	CursoID      *string     `db:"curso_id" json:"curso_id,omitempty"`
	CreadorID    string      `db:"creador_id" json:"creador_id"`
	Tipo         TipoReporte `db:"tipo" json:"tipo"`
	Severidad    Severidad   `db:"severidad" json:"severidad"`
	Titulo       string      `db:"titulo" json:"titulo"`
	Descripcion  string      `db:"descripcion" json:"descripcion"`
	ArchivoURL   string      `db:"archivo_url" json:"archivo_url"`
}

// ReporteDetail joins display names onto the report.
type ReporteDetail struct {
	Reporte
	EstudianteNombre string `db:"estudiante_nombre" json:"estudiante_nombre"`
	CreadorNombre    string `db:"creador_nombre" json:"creador_nombre"`
}

// ReporteFilter encapsulates search parameters for listing reports.
type ReporteFilter struct {
	EstudianteID string
	CursoID      string
	Tipo         string
	Severidad    string
	Page         int
	PageSize     int
}
