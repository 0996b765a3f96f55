package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/campusdev/gestion-escolar-api/internal/models"
)

// HorarioRepository manages persistence for timetable blocks and course
// slots.
type HorarioRepository struct {
	db *sqlx.DB
}

// NewHorarioRepository constructs a HorarioRepository.
func NewHorarioRepository(db *sqlx.DB) *HorarioRepository {
	return &HorarioRepository{db: db}
}

const horarioColumns = `id, curso_id, bloque_id, dia, aula, tipo, created_at, updated_at, deleted_at`

// ListByCurso returns active slots of one offering.
func (r *HorarioRepository) ListByCurso(ctx context.Context, cursoID string) ([]models.HorarioCurso, error) {
	query := fmt.Sprintf("SELECT %s FROM horarios_curso WHERE curso_id = $1 AND deleted_at IS NULL ORDER BY dia ASC, bloque_id ASC", horarioColumns)
	var horarios []models.HorarioCurso
	if err := r.db.SelectContext(ctx, &horarios, query, cursoID); err != nil {
		return nil, fmt.Errorf("list horarios: %w", err)
	}
	return horarios, nil
}

// FindByID loads an active slot by id.
func (r *HorarioRepository) FindByID(ctx context.Context, id string) (*models.HorarioCurso, error) {
	query := fmt.Sprintf("SELECT %s FROM horarios_curso WHERE id = $1 AND deleted_at IS NULL", horarioColumns)
	var horario models.HorarioCurso
	if err := r.db.GetContext(ctx, &horario, query, id); err != nil {
		return nil, err
	}
	return &horario, nil
}

// ExistsSlot reports whether the course already occupies the (bloque, dia)
// pair with an active slot.
func (r *HorarioRepository) ExistsSlot(ctx context.Context, cursoID, bloqueID string, dia models.DiaSemana, excludeID string) (bool, error) {
	query := "SELECT 1 FROM horarios_curso WHERE curso_id = $1 AND bloque_id = $2 AND dia = $3 AND deleted_at IS NULL"
	args := []interface{}{cursoID, bloqueID, dia}
	if excludeID != "" {
		query += " AND id <> $4"
		args = append(args, excludeID)
	}
	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check horario slot: %w", err)
	}
	return true, nil
}

// FindConflictos groups active slots that collide on (dia, bloque, aula).
// Only groups holding two or more distinct rows are returned.
func (r *HorarioRepository) FindConflictos(ctx context.Context) ([]models.ConflictoHorario, error) {
	query := fmt.Sprintf(`SELECT %s FROM horarios_curso h
        WHERE deleted_at IS NULL AND EXISTS (
            SELECT 1 FROM horarios_curso o
            WHERE o.dia = h.dia AND o.bloque_id = h.bloque_id AND o.aula = h.aula
              AND o.id <> h.id AND o.deleted_at IS NULL)
        ORDER BY dia ASC, bloque_id ASC, aula ASC`, horarioColumns)
	var horarios []models.HorarioCurso
	if err := r.db.SelectContext(ctx, &horarios, query); err != nil {
		return nil, fmt.Errorf("find conflictos: %w", err)
	}

	type clave struct {
		dia    models.DiaSemana
		bloque string
		aula   string
	}
	grupos := make(map[clave][]models.HorarioCurso)
	var orden []clave
	for _, h := range horarios {
		k := clave{dia: h.Dia, bloque: h.BloqueID, aula: h.Aula}
		if _, ok := grupos[k]; !ok {
			orden = append(orden, k)
		}
		grupos[k] = append(grupos[k], h)
	}

	conflictos := make([]models.ConflictoHorario, 0, len(orden))
	for _, k := range orden {
		conflictos = append(conflictos, models.ConflictoHorario{
			Dia:      k.dia,
			BloqueID: k.bloque,
			Aula:     k.aula,
			Horarios: grupos[k],
		})
	}
	return conflictos, nil
}

// Create inserts a new slot.
func (r *HorarioRepository) Create(ctx context.Context, horario *models.HorarioCurso) error {
	if horario.ID == "" {
		horario.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if horario.CreatedAt.IsZero() {
		horario.CreatedAt = now
	}
	horario.UpdatedAt = now
	const query = `INSERT INTO horarios_curso (id, curso_id, bloque_id, dia, aula, tipo, created_at, updated_at)
        VALUES (:id, :curso_id, :bloque_id, :dia, :aula, :tipo, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, horario); err != nil {
		return fmt.Errorf("create horario: %w", err)
	}
	return nil
}

// Update modifies an existing slot.
func (r *HorarioRepository) Update(ctx context.Context, horario *models.HorarioCurso) error {
	horario.UpdatedAt = time.Now().UTC()
	const query = `UPDATE horarios_curso SET bloque_id = :bloque_id, dia = :dia, aula = :aula, tipo = :tipo, updated_at = :updated_at WHERE id = :id AND deleted_at IS NULL`
	if _, err := r.db.NamedExecContext(ctx, query, horario); err != nil {
		return fmt.Errorf("update horario: %w", err)
	}
	return nil
}

// SoftDelete stamps the slot as deleted, removing it from conflict scans.
func (r *HorarioRepository) SoftDelete(ctx context.Context, id string) error {
	const query = `UPDATE horarios_curso SET deleted_at = $2, updated_at = $2 WHERE id = $1 AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, query, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("soft delete horario: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListDeleted returns soft-deleted slots, most recently deleted first.
func (r *HorarioRepository) ListDeleted(ctx context.Context) ([]models.HorarioCurso, error) {
	query := fmt.Sprintf("SELECT %s FROM horarios_curso WHERE deleted_at IS NOT NULL ORDER BY deleted_at DESC", horarioColumns)
	var horarios []models.HorarioCurso
	if err := r.db.SelectContext(ctx, &horarios, query); err != nil {
		return nil, fmt.Errorf("list deleted horarios: %w", err)
	}
	return horarios, nil
}

// Restore clears the deletion stamp on a slot.
func (r *HorarioRepository) Restore(ctx context.Context, id string) error {
	const query = `UPDATE horarios_curso SET deleted_at = NULL, updated_at = $2 WHERE id = $1 AND deleted_at IS NOT NULL`
	res, err := r.db.ExecContext(ctx, query, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("restore horario: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListBloques returns active timetable blocks.
func (r *HorarioRepository) ListBloques(ctx context.Context) ([]models.BloqueHorario, error) {
	const query = `SELECT id, nombre, hora_inicio, hora_fin, created_at, updated_at, deleted_at FROM bloques_horario WHERE deleted_at IS NULL ORDER BY hora_inicio ASC`
	var bloques []models.BloqueHorario
	if err := r.db.SelectContext(ctx, &bloques, query); err != nil {
		return nil, fmt.Errorf("list bloques: %w", err)
	}
	return bloques, nil
}

// FindBloqueByID loads an active timetable block by id.
func (r *HorarioRepository) FindBloqueByID(ctx context.Context, id string) (*models.BloqueHorario, error) {
	const query = `SELECT id, nombre, hora_inicio, hora_fin, created_at, updated_at, deleted_at FROM bloques_horario WHERE id = $1 AND deleted_at IS NULL`
	var bloque models.BloqueHorario
	if err := r.db.GetContext(ctx, &bloque, query, id); err != nil {
		return nil, err
	}
	return &bloque, nil
}

// CreateBloque inserts a new timetable block.
func (r *HorarioRepository) CreateBloque(ctx context.Context, bloque *models.BloqueHorario) error {
	if bloque.ID == "" {
		bloque.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if bloque.CreatedAt.IsZero() {
		bloque.CreatedAt = now
	}
	bloque.UpdatedAt = now
	const query = `INSERT INTO bloques_horario (id, nombre, hora_inicio, hora_fin, created_at, updated_at)
        VALUES (:id, :nombre, :hora_inicio, :hora_fin, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, bloque); err != nil {
		return fmt.Errorf("create bloque: %w", err)
	}
	return nil
}

// UpdateBloque modifies an existing timetable block.
func (r *HorarioRepository) UpdateBloque(ctx context.Context, bloque *models.BloqueHorario) error {
	bloque.UpdatedAt = time.Now().UTC()
	const query = `UPDATE bloques_horario SET nombre = :nombre, hora_inicio = :hora_inicio, hora_fin = :hora_fin, updated_at = :updated_at WHERE id = :id AND deleted_at IS NULL`
	if _, err := r.db.NamedExecContext(ctx, query, bloque); err != nil {
		return fmt.Errorf("update bloque: %w", err)
	}
	return nil
}

// SoftDeleteBloque stamps the timetable block as deleted.
func (r *HorarioRepository) SoftDeleteBloque(ctx context.Context, id string) error {
	const query = `UPDATE bloques_horario SET deleted_at = $2, updated_at = $2 WHERE id = $1 AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, query, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("soft delete bloque: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListDeletedBloques returns soft-deleted timetable blocks, most recently
// deleted first.
func (r *HorarioRepository) ListDeletedBloques(ctx context.Context) ([]models.BloqueHorario, error) {
	const query = `SELECT id, nombre, hora_inicio, hora_fin, created_at, updated_at, deleted_at FROM bloques_horario WHERE deleted_at IS NOT NULL ORDER BY deleted_at DESC`
	var bloques []models.BloqueHorario
	if err := r.db.SelectContext(ctx, &bloques, query); err != nil {
		return nil, fmt.Errorf("list deleted bloques: %w", err)
	}
	return bloques, nil
}

// RestoreBloque clears the deletion stamp on a timetable block.
func (r *HorarioRepository) RestoreBloque(ctx context.Context, id string) error {
	const query = `UPDATE bloques_horario SET deleted_at = NULL, updated_at = $2 WHERE id = $1 AND deleted_at IS NOT NULL`
	res, err := r.db.ExecContext(ctx, query, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("restore bloque: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
