package repository

import (
	"context"

	"crportal/internal/model"
)

// DocumentRepository is the persistence gateway for business documents.
// Strictly persistence operations, no business logic; writes are
// last-write-wins with no concurrency token (single operator).
type DocumentRepository interface {
	// Upsert writes the document under its ID, inserting or replacing in
	// place. The caller assigns the ID; saving twice with the same ID must
	// update the existing row, never create a duplicate.
	Upsert(ctx context.Context, doc *model.Document) error

	// FindByID returns a document by its ID.
	FindByID(ctx context.Context, id string) (*model.Document, error)

	// List returns documents of every type, newest first, with a total count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Document], error)

	// ListByType returns documents of one type, newest first, with a total count.
	ListByType(ctx context.Context, t model.Type, pq PageQuery) (*PageResult[model.Document], error)

	// MarkSigned records the signed-file reference and moves the row to the
	// signed status in one write.
	MarkSigned(ctx context.Context, id, fileURL, fileName string) error

	// Delete removes a document by ID. It returns nil if the row was deleted or did not exist.
	Delete(ctx context.Context, id string) error
}
