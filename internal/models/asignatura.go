package models

// Asignatura is a subject in the academic catalogue. Its codigo is unique
// among non-deleted rows.
type Asignatura struct {
	Registro
	Codigo      string `db:"codigo" json:"codigo"`
	Nombre      string `db:"nombre" json:"nombre"`
	Descripcion string `db:"descripcion" json:"descripcion"`
	Creditos    int    `db:"creditos" json:"creditos"`
}
