package models

import "time"

// Registro carries the audit and soft-delete columns shared by every entity.
// Entities embed it by value; there is no type hierarchy behind it.
type Registro struct {
	ID        string     `db:"id" json:"id"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at" json:"deleted_at,omitempty"`
}

// IsDeleted reports whether the record is logically deleted.
func (r Registro) IsDeleted() bool {
	return r.DeletedAt != nil
}

// SoftDelete stamps the record as logically deleted. Physical deletion never
// happens through this layer.
func (r *Registro) SoftDelete(now time.Time) {
	r.DeletedAt = &now
	r.UpdatedAt = now
}

// Restore clears the deletion stamp. Uniqueness against currently-active rows
// is not re-checked here; callers that need it must re-validate.
func (r *Registro) Restore(now time.Time) {
	r.DeletedAt = nil
	r.UpdatedAt = now
}

// Pagination describes list response metadata.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
