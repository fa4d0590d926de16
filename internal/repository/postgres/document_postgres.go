package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"crportal/internal/model"
	"crportal/internal/repository"
)

// DocumentPostgres is a PostgreSQL implementation of repository.DocumentRepository.
// It uses database/sql with parameterized queries and contains no business logic.
// Line items and the variant payload are stored as JSONB alongside the
// scalar envelope columns.
type DocumentPostgres struct {
	db *sql.DB
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

const documentColumns = `id, type, number, is_correction,
		client_name, client_email, client_phone, client_address, property_address,
		project_name, doc_date, items, notes, signature_data, status,
		subtotal, tax, tax_rate, total,
		signed_file_url, signed_file_name, details, created_at, updated_at`

// Upsert inserts the document row or replaces it in place by ID.
func (r *DocumentPostgres) Upsert(ctx context.Context, doc *model.Document) error {
	items, err := json.Marshal(doc.Items)
	if err != nil {
		return fmt.Errorf("marshal items: %w", err)
	}
	details, err := marshalDetails(doc)
	if err != nil {
		return err
	}

	q := `
		INSERT INTO documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
		        $16, $17, $18, $19, $20, $21, $22, $23, $24)
		ON CONFLICT (id) DO UPDATE SET
			type = EXCLUDED.type,
			number = EXCLUDED.number,
			is_correction = EXCLUDED.is_correction,
			client_name = EXCLUDED.client_name,
			client_email = EXCLUDED.client_email,
			client_phone = EXCLUDED.client_phone,
			client_address = EXCLUDED.client_address,
			property_address = EXCLUDED.property_address,
			project_name = EXCLUDED.project_name,
			doc_date = EXCLUDED.doc_date,
			items = EXCLUDED.items,
			notes = EXCLUDED.notes,
			signature_data = EXCLUDED.signature_data,
			status = EXCLUDED.status,
			subtotal = EXCLUDED.subtotal,
			tax = EXCLUDED.tax,
			tax_rate = EXCLUDED.tax_rate,
			total = EXCLUDED.total,
			signed_file_url = EXCLUDED.signed_file_url,
			signed_file_name = EXCLUDED.signed_file_name,
			details = EXCLUDED.details,
			updated_at = EXCLUDED.updated_at
	`
	_, err = r.db.ExecContext(ctx, q,
		doc.ID,
		string(doc.Type),
		doc.Number,
		doc.IsCorrection,
		doc.ClientName,
		doc.ClientEmail,
		doc.ClientPhone,
		doc.ClientAddress,
		doc.PropertyAddress,
		doc.ProjectName,
		doc.Date,
		items,
		doc.Notes,
		doc.SignatureData,
		string(doc.Status),
		doc.Subtotal,
		doc.Tax,
		doc.TaxRate,
		doc.Total,
		doc.SignedFileURL,
		doc.SignedFileName,
		details,
		doc.CreatedAt,
		doc.UpdatedAt,
	)
	return err
}

// FindByID fetches a single document by its ID.
func (r *DocumentPostgres) FindByID(ctx context.Context, id string) (*model.Document, error) {
	q := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`
	return scanDocument(r.db.QueryRowContext(ctx, q, id))
}

// List returns documents of every type using LIMIT/OFFSET pagination and a total count.
func (r *DocumentPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Document], error) {
	const qCount = `SELECT COUNT(*) FROM documents`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	q := `SELECT ` + documentColumns + `
		FROM documents
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, q, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items, err := collectDocuments(rows)
	if err != nil {
		return nil, err
	}
	return &repository.PageResult[model.Document]{Items: items, Total: total}, nil
}

// ListByType returns documents of one type, newest first, and a total count
// for that type.
func (r *DocumentPostgres) ListByType(ctx context.Context, t model.Type, pq repository.PageQuery) (*repository.PageResult[model.Document], error) {
	const qCount = `SELECT COUNT(*) FROM documents WHERE type = $1`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount, string(t)).Scan(&total); err != nil {
		return nil, err
	}

	q := `SELECT ` + documentColumns + `
		FROM documents
		WHERE type = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, q, string(t), pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items, err := collectDocuments(rows)
	if err != nil {
		return nil, err
	}
	return &repository.PageResult[model.Document]{Items: items, Total: total}, nil
}

// MarkSigned stores the signed-file reference and flips status to signed in
// one statement.
func (r *DocumentPostgres) MarkSigned(ctx context.Context, id, fileURL, fileName string) error {
	const q = `
		UPDATE documents
		SET signed_file_url = $2, signed_file_name = $3, status = $4, updated_at = now()
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, q, id, fileURL, fileName, string(model.StatusSigned))
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

// Delete removes a document by ID. It does not return an error if the row does not exist.
func (r *DocumentPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM documents WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	_, _ = res.RowsAffected()
	return nil
}

func marshalDetails(doc *model.Document) ([]byte, error) {
	var v any
	switch doc.Type {
	case model.TypeInvoice:
		v = doc.Invoice
	case model.TypeChangeOrder:
		v = doc.ChangeOrder
	case model.TypeContract:
		v = doc.Contract
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal details: %w", err)
	}
	return b, nil
}

func unmarshalDetails(doc *model.Document, b []byte) error {
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	switch doc.Type {
	case model.TypeInvoice:
		doc.Invoice = &model.InvoiceDetails{}
		return json.Unmarshal(b, doc.Invoice)
	case model.TypeChangeOrder:
		doc.ChangeOrder = &model.ChangeOrderDetails{}
		return json.Unmarshal(b, doc.ChangeOrder)
	case model.TypeContract:
		doc.Contract = &model.ContractDetails{}
		return json.Unmarshal(b, doc.Contract)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (*model.Document, error) {
	var (
		d       model.Document
		items   []byte
		details []byte
	)
	if err := row.Scan(
		&d.ID,
		&d.Type,
		&d.Number,
		&d.IsCorrection,
		&d.ClientName,
		&d.ClientEmail,
		&d.ClientPhone,
		&d.ClientAddress,
		&d.PropertyAddress,
		&d.ProjectName,
		&d.Date,
		&items,
		&d.Notes,
		&d.SignatureData,
		&d.Status,
		&d.Subtotal,
		&d.Tax,
		&d.TaxRate,
		&d.Total,
		&d.SignedFileURL,
		&d.SignedFileName,
		&details,
		&d.CreatedAt,
		&d.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &d.Items); err != nil {
			return nil, fmt.Errorf("unmarshal items: %w", err)
		}
	}
	if err := unmarshalDetails(&d, details); err != nil {
		return nil, fmt.Errorf("unmarshal details: %w", err)
	}
	return &d, nil
}

func collectDocuments(rows *sql.Rows) ([]model.Document, error) {
	items := make([]model.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
