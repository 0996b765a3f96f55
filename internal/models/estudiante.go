package models

import "time"

// Estudiante represents a learner registered in the institution.
type Estudiante struct {
	Registro
	UsuarioID        *string   `db:"usuario_id" json:"usuario_id,omitempty"`
	CodigoEstudiante string    `db:"codigo_estudiante" json:"codigo_estudiante"`
	NombreCompleto   string    `db:"nombre_completo" json:"nombre_completo"`
	FechaNacimiento  time.Time `db:"fecha_nacimiento" json:"fecha_nacimiento"`
	Direccion        string    `db:"direccion" json:"direccion"`
	Telefono         string    `db:"telefono" json:"telefono"`
}

// EstudianteFilter encapsulates search parameters for listing students.
type EstudianteFilter struct {
	Search    string
	CursoID   string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
