package models

import "time"

// Clase is a dictated class session of a course, optionally pinned to the
// unit and topic covered.
type Clase struct {
	Registro
	CursoID       string    `db:"curso_id" json:"curso_id"`
	UnidadID      *string   `db:"unidad_id" json:"unidad_id,omitempty"`
	TemaID        *string   `db:"tema_id" json:"tema_id,omitempty"`
	Fecha         time.Time `db:"fecha" json:"fecha"`
	Observaciones string    `db:"observaciones" json:"observaciones"`
}

// ClaseFilter encapsulates search parameters for listing class sessions.
type ClaseFilter struct {
	CursoID   string
	Desde     *time.Time
	Hasta     *time.Time
	Page      int
	PageSize  int
	SortOrder string
}
