package repository

import (
	"context"

	"crportal/internal/model"
)

// LeadRepository persists captured leads.
type LeadRepository interface {
	Create(ctx context.Context, lead *model.Lead) (*model.Lead, error)
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Lead], error)
	UpdateStatus(ctx context.Context, id, status string) error
}

// ReviewRepository persists customer reviews and their approval flag.
type ReviewRepository interface {
	Create(ctx context.Context, rev *model.Review) (*model.Review, error)
	List(ctx context.Context, approvedOnly bool) ([]model.Review, error)
	SetApproved(ctx context.Context, id string, approved bool) error
	Delete(ctx context.Context, id string) error
}

// FieldNoteRepository persists on-site field notes.
type FieldNoteRepository interface {
	Upsert(ctx context.Context, note *model.FieldNote) error
	List(ctx context.Context) ([]model.FieldNote, error)
	Delete(ctx context.Context, id string) error
}
