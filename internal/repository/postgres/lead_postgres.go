package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"crportal/internal/model"
	"crportal/internal/repository"
)

// LeadPostgres is a PostgreSQL implementation of repository.LeadRepository.
type LeadPostgres struct {
	db *sql.DB
}

// NewLeadPostgres creates a new LeadPostgres repository.
func NewLeadPostgres(db *sql.DB) *LeadPostgres {
	return &LeadPostgres{db: db}
}

var _ repository.LeadRepository = (*LeadPostgres)(nil)

const leadColumns = `id, name, email, phone, address, services,
		project_description, timeline, budget, message, source, status,
		created_at, updated_at`

// Create inserts a new lead row and returns the stored record.
func (r *LeadPostgres) Create(ctx context.Context, lead *model.Lead) (*model.Lead, error) {
	services, err := json.Marshal(lead.Services)
	if err != nil {
		return nil, fmt.Errorf("marshal services: %w", err)
	}
	q := `
		INSERT INTO leads (` + leadColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING ` + leadColumns
	row := r.db.QueryRowContext(ctx, q,
		lead.ID, lead.Name, lead.Email, lead.Phone, lead.Address, services,
		lead.ProjectDescription, lead.Timeline, lead.Budget, lead.Message,
		lead.Source, lead.Status, lead.CreatedAt, lead.UpdatedAt,
	)
	return scanLead(row)
}

// List returns leads newest first with a total count.
func (r *LeadPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Lead], error) {
	const qCount = `SELECT COUNT(*) FROM leads`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	q := `SELECT ` + leadColumns + `
		FROM leads
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, q, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Lead, 0)
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &repository.PageResult[model.Lead]{Items: items, Total: total}, nil
}

// UpdateStatus moves a lead through the follow-up pipeline.
func (r *LeadPostgres) UpdateStatus(ctx context.Context, id, status string) error {
	const q = `UPDATE leads SET status = $2, updated_at = now() WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id, status)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func scanLead(row rowScanner) (*model.Lead, error) {
	var (
		l        model.Lead
		services []byte
	)
	if err := row.Scan(
		&l.ID, &l.Name, &l.Email, &l.Phone, &l.Address, &services,
		&l.ProjectDescription, &l.Timeline, &l.Budget, &l.Message,
		&l.Source, &l.Status, &l.CreatedAt, &l.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if len(services) > 0 {
		if err := json.Unmarshal(services, &l.Services); err != nil {
			return nil, fmt.Errorf("unmarshal services: %w", err)
		}
	}
	return &l, nil
}
