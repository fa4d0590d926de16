package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"crportal/internal/model"
	"crportal/internal/repository"
)

// FieldNoteService defines the use cases for on-site field notes. Notes
// are upserted whole; saving an existing ID replaces the note.
type FieldNoteService interface {
	Save(ctx context.Context, note *model.FieldNote) (*model.FieldNote, error)
	List(ctx context.Context) ([]model.FieldNote, error)
	Delete(ctx context.Context, id string) error
}

type fieldNoteService struct {
	repo repository.FieldNoteRepository
}

// NewFieldNoteService constructs a new FieldNoteService.
func NewFieldNoteService(repo repository.FieldNoteRepository) FieldNoteService {
	return &fieldNoteService{repo: repo}
}

func (s *fieldNoteService) Save(ctx context.Context, note *model.FieldNote) (*model.FieldNote, error) {
	now := time.Now().UTC()
	if note.ID == "" {
		note.ID = uuid.New().String()
		note.CreatedAt = now
	}
	if note.Status == "" {
		note.Status = model.FieldNoteDraft
	}
	note.UpdatedAt = now
	if err := s.repo.Upsert(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *fieldNoteService) List(ctx context.Context) ([]model.FieldNote, error) {
	return s.repo.List(ctx)
}

func (s *fieldNoteService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	return s.repo.Delete(ctx, id)
}
