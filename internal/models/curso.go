package models

// Curso is an offering of an asignatura taught by a profesor during a periodo.
type Curso struct {
	Registro
	AsignaturaID string `db:"asignatura_id" json:"asignatura_id"`
	ProfesorID   string `db:"profesor_id" json:"profesor_id"`
	PeriodoID    string `db:"periodo_id" json:"periodo_id"`
	Grupo        string `db:"grupo" json:"grupo"`
	Cupo         int    `db:"cupo" json:"cupo"`
	Aula         string `db:"aula" json:"aula"`
}

// CursoDetail joins the related display names onto the offering.
type CursoDetail struct {
	Curso
	AsignaturaNombre string `db:"asignatura_nombre" json:"asignatura_nombre"`
	ProfesorNombre   string `db:"profesor_nombre" json:"profesor_nombre"`
	PeriodoNombre    string `db:"periodo_nombre" json:"periodo_nombre"`
}

// CursoConCupo carries the derived active-enrollment count used by the
// availability query. The count is recomputed on every read, never stored.
type CursoConCupo struct {
	Curso
	Inscritos int `db:"inscritos" json:"inscritos"`
}

// TieneCupo reports whether the offering still admits enrollments.
func (c CursoConCupo) TieneCupo() bool {
	return c.Inscritos < c.Cupo
}

// CursoFilter encapsulates search parameters for listing offerings.
type CursoFilter struct {
	AsignaturaID string
	ProfesorID   string
	PeriodoID    string
	Page         int
	PageSize     int
	SortBy       string
	SortOrder    string
}

// Unidad is a content unit within a course offering.
type Unidad struct {
	Registro
	CursoID string `db:"curso_id" json:"curso_id"`
	Titulo  string `db:"titulo" json:"titulo"`
	Orden   int    `db:"orden" json:"orden"`
}

// Tema is a topic within a unidad.
type Tema struct {
	Registro
	UnidadID string `db:"unidad_id" json:"unidad_id"`
	Titulo   string `db:"titulo" json:"titulo"`
	Orden    int    `db:"orden" json:"orden"`
}
