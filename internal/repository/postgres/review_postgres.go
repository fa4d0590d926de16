package postgres

import (
	"context"
	"database/sql"

	"crportal/internal/model"
	"crportal/internal/repository"
)

// ReviewPostgres is a PostgreSQL implementation of repository.ReviewRepository.
type ReviewPostgres struct {
	db *sql.DB
}

// NewReviewPostgres creates a new ReviewPostgres repository.
func NewReviewPostgres(db *sql.DB) *ReviewPostgres {
	return &ReviewPostgres{db: db}
}

var _ repository.ReviewRepository = (*ReviewPostgres)(nil)

const reviewColumns = `id, name, email, location, service, rating, text,
		recommend, project_year, approved, created_at, updated_at`

// Create inserts a new review row and returns the stored record.
func (r *ReviewPostgres) Create(ctx context.Context, rev *model.Review) (*model.Review, error) {
	q := `
		INSERT INTO reviews (` + reviewColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + reviewColumns
	row := r.db.QueryRowContext(ctx, q,
		rev.ID, rev.Name, rev.Email, rev.Location, rev.Service, rev.Rating,
		rev.Text, rev.Recommend, rev.ProjectYear, rev.Approved,
		rev.CreatedAt, rev.UpdatedAt,
	)
	return scanReview(row)
}

// List returns reviews newest first, optionally only approved ones.
func (r *ReviewPostgres) List(ctx context.Context, approvedOnly bool) ([]model.Review, error) {
	q := `SELECT ` + reviewColumns + ` FROM reviews ORDER BY created_at DESC, id DESC`
	if approvedOnly {
		q = `SELECT ` + reviewColumns + ` FROM reviews WHERE approved = TRUE ORDER BY created_at DESC, id DESC`
	}
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Review, 0)
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *rv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// SetApproved toggles the public-visibility flag.
func (r *ReviewPostgres) SetApproved(ctx context.Context, id string, approved bool) error {
	const q = `UPDATE reviews SET approved = $2, updated_at = now() WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id, approved)
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

// Delete removes a review by ID. It returns nil if the row did not exist.
func (r *ReviewPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM reviews WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	_, _ = res.RowsAffected()
	return nil
}

func scanReview(row rowScanner) (*model.Review, error) {
	var rv model.Review
	if err := row.Scan(
		&rv.ID, &rv.Name, &rv.Email, &rv.Location, &rv.Service, &rv.Rating,
		&rv.Text, &rv.Recommend, &rv.ProjectYear, &rv.Approved,
		&rv.CreatedAt, &rv.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &rv, nil
}
