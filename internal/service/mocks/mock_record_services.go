package mocks

import (
	"context"

	"crportal/internal/model"
	"crportal/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockLeadService struct {
	mock.Mock
}

func (m *MockLeadService) Capture(ctx context.Context, lead *model.Lead) (*service.LeadCapture, error) {
	args := m.Called(ctx, lead)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.LeadCapture), args.Error(1)
}

func (m *MockLeadService) List(ctx context.Context, limit, offset int) (*service.LeadListResult, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.LeadListResult), args.Error(1)
}

func (m *MockLeadService) UpdateStatus(ctx context.Context, id, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) Submit(ctx context.Context, rev *model.Review) (*model.Review, error) {
	args := m.Called(ctx, rev)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Review), args.Error(1)
}

func (m *MockReviewService) List(ctx context.Context, approvedOnly bool) ([]model.Review, error) {
	args := m.Called(ctx, approvedOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Review), args.Error(1)
}

func (m *MockReviewService) SetApproved(ctx context.Context, id string, approved bool) error {
	args := m.Called(ctx, id, approved)
	return args.Error(0)
}

func (m *MockReviewService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockFieldNoteService struct {
	mock.Mock
}

func (m *MockFieldNoteService) Save(ctx context.Context, note *model.FieldNote) (*model.FieldNote, error) {
	args := m.Called(ctx, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FieldNote), args.Error(1)
}

func (m *MockFieldNoteService) List(ctx context.Context) ([]model.FieldNote, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FieldNote), args.Error(1)
}

func (m *MockFieldNoteService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
