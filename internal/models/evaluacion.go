package models

import "time"

// TipoEvaluacion is an assessment category carrying a default weight.
// Peso lives in the closed interval [0,100]; the boundary validates it before
// anything here runs.
type TipoEvaluacion struct {
	Registro
	Nombre string  `db:"nombre" json:"nombre"`
	Peso   float64 `db:"peso" json:"peso"`
}

// Evaluacion is a graded assessment scheduled within a course offering.
type Evaluacion struct {
	Registro
	CursoID          string    `db:"curso_id" json:"curso_id"`
	TipoEvaluacionID string    `db:"tipo_evaluacion_id" json:"tipo_evaluacion_id"`
	Titulo           string    `db:"titulo" json:"titulo"`
	Descripcion      string    `db:"descripcion" json:"descripcion"`
	Fecha            time.Time `db:"fecha" json:"fecha"`
	Peso             float64   `db:"peso" json:"peso"`
	Publicado        bool      `db:"publicado" json:"publicado"`
}

// Calificacion is a student's grade for one evaluacion. Nota lives in [0,100].
type Calificacion struct {
	Registro
	EvaluacionID string  `db:"evaluacion_id" json:"evaluacion_id"`
	EstudianteID string  `db:"estudiante_id" json:"estudiante_id"`
	Nota         float64 `db:"nota" json:"nota"`
	Observacion  string  `db:"observacion" json:"observacion"`
}

// CalificacionDetail joins the assessment title onto the grade.
type CalificacionDetail struct {
	Calificacion
	EvaluacionTitulo string `db:"evaluacion_titulo" json:"evaluacion_titulo"`
}

// TipoPonderacionCurso is a per-course weighting category. PesoPorcentaje
// lives in (0,100].
type TipoPonderacionCurso struct {
	Registro
	CursoID        string  `db:"curso_id" json:"curso_id"`
	Nombre         string  `db:"nombre" json:"nombre"`
	PesoPorcentaje float64 `db:"peso_porcentaje" json:"peso_porcentaje"`
}

// ResumenPonderacion reports the weight total for a course. The sum is
// advisory: writes never enforce that it reaches 100.
type ResumenPonderacion struct {
	CursoID   string  `json:"curso_id"`
	SumaPesos float64 `json:"suma_pesos"`
	Completo  bool    `json:"completo"`
}
