package models

import "time"

// RegistroAuditoria is a write-only audit event. The core records these for
// mutating operations and never reads them back; a listing endpoint exists
// only for operators.
type RegistroAuditoria struct {
	ID          string    `db:"id" json:"id"`
	UsuarioID   *string   `db:"usuario_id" json:"usuario_id,omitempty"`
	Accion      string    `db:"accion" json:"accion"`
	Endpoint    string    `db:"endpoint" json:"endpoint"`
	IPAddress   string    `db:"ip_address" json:"ip_address"`
	Dispositivo string    `db:"dispositivo" json:"dispositivo"`
	Cuerpo      []byte    `db:"cuerpo" json:"cuerpo,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
