package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"crportal/internal/model"
	"crportal/internal/repository"
)

// FieldNotePostgres is a PostgreSQL implementation of repository.FieldNoteRepository.
type FieldNotePostgres struct {
	db *sql.DB
}

// NewFieldNotePostgres creates a new FieldNotePostgres repository.
func NewFieldNotePostgres(db *sql.DB) *FieldNotePostgres {
	return &FieldNotePostgres{db: db}
}

var _ repository.FieldNoteRepository = (*FieldNotePostgres)(nil)

const fieldNoteColumns = `id, project_name, client_name, address, service_type,
		notes, measurements, materials_needed, estimated_cost, next_steps,
		photos, status, created_at, updated_at`

// Upsert inserts the field note or replaces it in place by ID.
func (r *FieldNotePostgres) Upsert(ctx context.Context, note *model.FieldNote) error {
	photos, err := json.Marshal(note.Photos)
	if err != nil {
		return fmt.Errorf("marshal photos: %w", err)
	}
	q := `
		INSERT INTO field_notes (` + fieldNoteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id) DO UPDATE SET
			project_name = EXCLUDED.project_name,
			client_name = EXCLUDED.client_name,
			address = EXCLUDED.address,
			service_type = EXCLUDED.service_type,
			notes = EXCLUDED.notes,
			measurements = EXCLUDED.measurements,
			materials_needed = EXCLUDED.materials_needed,
			estimated_cost = EXCLUDED.estimated_cost,
			next_steps = EXCLUDED.next_steps,
			photos = EXCLUDED.photos,
			status = EXCLUDED.status,
			updated_at = EXCLUDED.updated_at
	`
	_, err = r.db.ExecContext(ctx, q,
		note.ID, note.ProjectName, note.ClientName, note.Address, note.ServiceType,
		note.Notes, note.Measurements, note.MaterialsNeeded, note.EstimatedCost,
		note.NextSteps, photos, note.Status, note.CreatedAt, note.UpdatedAt,
	)
	return err
}

// List returns all field notes, newest first.
func (r *FieldNotePostgres) List(ctx context.Context) ([]model.FieldNote, error) {
	q := `SELECT ` + fieldNoteColumns + ` FROM field_notes ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.FieldNote, 0)
	for rows.Next() {
		var (
			n      model.FieldNote
			photos []byte
		)
		if err := rows.Scan(
			&n.ID, &n.ProjectName, &n.ClientName, &n.Address, &n.ServiceType,
			&n.Notes, &n.Measurements, &n.MaterialsNeeded, &n.EstimatedCost,
			&n.NextSteps, &photos, &n.Status, &n.CreatedAt, &n.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if len(photos) > 0 {
			if err := json.Unmarshal(photos, &n.Photos); err != nil {
				return nil, fmt.Errorf("unmarshal photos: %w", err)
			}
		}
		items = append(items, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Delete removes a field note by ID. It returns nil if the row did not exist.
func (r *FieldNotePostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM field_notes WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	_, _ = res.RowsAffected()
	return nil
}
