package mocks

import (
	"context"

	"crportal/internal/model"
	"crportal/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Create(ctx context.Context, lead *model.Lead) (*model.Lead, error) {
	args := m.Called(ctx, lead)
	if f, ok := args.Get(0).(func(context.Context, *model.Lead) *model.Lead); ok {
		return f(ctx, lead), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Lead), args.Error(1)
}

func (m *MockLeadRepository) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Lead], error) {
	args := m.Called(ctx, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Lead]), args.Error(1)
}

func (m *MockLeadRepository) UpdateStatus(ctx context.Context, id, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, rev *model.Review) (*model.Review, error) {
	args := m.Called(ctx, rev)
	if f, ok := args.Get(0).(func(context.Context, *model.Review) *model.Review); ok {
		return f(ctx, rev), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Review), args.Error(1)
}

func (m *MockReviewRepository) List(ctx context.Context, approvedOnly bool) ([]model.Review, error) {
	args := m.Called(ctx, approvedOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Review), args.Error(1)
}

func (m *MockReviewRepository) SetApproved(ctx context.Context, id string, approved bool) error {
	args := m.Called(ctx, id, approved)
	return args.Error(0)
}

func (m *MockReviewRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockFieldNoteRepository struct {
	mock.Mock
}

func (m *MockFieldNoteRepository) Upsert(ctx context.Context, note *model.FieldNote) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *MockFieldNoteRepository) List(ctx context.Context) ([]model.FieldNote, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FieldNote), args.Error(1)
}

func (m *MockFieldNoteRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
