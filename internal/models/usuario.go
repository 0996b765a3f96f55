package models

// Rol groups users under a named role.
type Rol struct {
	Registro
	Nombre      string `db:"nombre" json:"nombre"`
	Descripcion string `db:"descripcion" json:"descripcion"`
}

// Usuario is an account able to sign in. It may optionally be linked to a
// student or teacher profile via their usuario_id columns.
type Usuario struct {
	Registro
	Username       string `db:"username" json:"username"`
	Email          string `db:"email" json:"email"`
	PasswordHash   string `db:"password_hash" json:"-"`
	NombreCompleto string `db:"nombre_completo" json:"nombre_completo"`
	Telefono       string `db:"telefono" json:"telefono"`
	RolID          string `db:"rol_id" json:"rol_id"`
}

// UsuarioDetail joins the role name onto the account.
type UsuarioDetail struct {
	Usuario
	RolNombre string `db:"rol_nombre" json:"rol_nombre"`
}

// UsuarioFilter encapsulates allowed search parameters for listing users.
type UsuarioFilter struct {
	Search    string
	RolID     string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
