package models

// Profesor represents a teacher assigned to course offerings.
type Profesor struct {
	Registro
	UsuarioID      *string `db:"usuario_id" json:"usuario_id,omitempty"`
	NombreCompleto string  `db:"nombre_completo" json:"nombre_completo"`
	Especialidad   string  `db:"especialidad" json:"especialidad"`
	Telefono       string  `db:"telefono" json:"telefono"`
}

// ProfesorFilter encapsulates search parameters for listing teachers.
type ProfesorFilter struct {
	Search    string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
