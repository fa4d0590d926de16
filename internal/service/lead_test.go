package service

import (
	"context"
	"errors"
	"testing"

	"crportal/internal/config"
	"crportal/internal/mail"
	"crportal/internal/model"
	"crportal/internal/repository"
	repoMocks "crportal/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newLeadService(repo repository.LeadRepository) LeadService {
	composer := mail.NewComposer(config.CompanyConfig{
		Brand: "CR Home Pros",
		Owner: "Carlos Hernandez",
		Phone: "(571) 237-7164",
		Email: "crhomepros@gmail.com",
	})
	return NewLeadService(repo, composer)
}

func TestLeadService_Capture(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		lead       *model.Lead
		setupMocks func(mRepo *repoMocks.MockLeadRepository)
		wantErr    error
	}{
		{
			name: "happy path",
			lead: &model.Lead{
				Name:     "Sam Ortiz",
				Email:    "sam@example.com",
				Phone:    "(703) 555-0100",
				Services: []string{"Roofing"},
				Source:   "get-started",
			},
			setupMocks: func(mRepo *repoMocks.MockLeadRepository) {
				mRepo.On("Create", ctx, mock.MatchedBy(func(l *model.Lead) bool {
					return l.ID != "" && l.Status == model.LeadStatusNew && !l.CreatedAt.IsZero()
				})).Return(func(ctx context.Context, l *model.Lead) *model.Lead { return l }, nil)
			},
		},
		{
			name:       "missing name",
			lead:       &model.Lead{Email: "sam@example.com"},
			setupMocks: func(mRepo *repoMocks.MockLeadRepository) {},
			wantErr:    ErrLeadNameRequired,
		},
		{
			name:       "missing email",
			lead:       &model.Lead{Name: "Sam Ortiz"},
			setupMocks: func(mRepo *repoMocks.MockLeadRepository) {},
			wantErr:    ErrLeadEmailRequired,
		},
		{
			name: "repository error",
			lead: &model.Lead{Name: "Sam Ortiz", Email: "sam@example.com"},
			setupMocks: func(mRepo *repoMocks.MockLeadRepository) {
				mRepo.On("Create", ctx, mock.Anything).Return(nil, errors.New("db fail"))
			},
			wantErr: errors.New("db fail"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockLeadRepository)
			svc := newLeadService(mRepo)

			tt.setupMocks(mRepo)

			res, err := svc.Capture(ctx, tt.lead)

			if tt.wantErr != nil {
				if errors.Is(tt.wantErr, ErrLeadNameRequired) || errors.Is(tt.wantErr, ErrLeadEmailRequired) {
					assert.ErrorIs(t, err, tt.wantErr)
				} else {
					assert.Error(t, err)
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "crhomepros@gmail.com", res.Mail.To)
				assert.Contains(t, res.Mail.Subject, "New Lead: Sam Ortiz")
			}
			mRepo.AssertExpectations(t)
		})
	}
}

func TestLeadService_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	mRepo := new(repoMocks.MockLeadRepository)
	svc := newLeadService(mRepo)

	mRepo.On("UpdateStatus", ctx, "lead-1", model.LeadStatusContacted).Return(nil)

	assert.NoError(t, svc.UpdateStatus(ctx, "lead-1", model.LeadStatusContacted))
	assert.ErrorIs(t, svc.UpdateStatus(ctx, "", model.LeadStatusContacted), ErrIDRequired)
	assert.ErrorIs(t, svc.UpdateStatus(ctx, "lead-1", "archived"), ErrInvalidLeadStatus)
	mRepo.AssertExpectations(t)
}

func TestLeadService_List(t *testing.T) {
	ctx := context.Background()
	mRepo := new(repoMocks.MockLeadRepository)
	svc := newLeadService(mRepo)

	mRepo.On("List", ctx, repository.PageQuery{Limit: 10, Offset: 0}).
		Return(&repository.PageResult[model.Lead]{Items: []model.Lead{{ID: "1"}}, Total: 1}, nil)

	res, err := svc.List(ctx, 0, 0)

	assert.NoError(t, err)
	assert.Equal(t, 1, res.Total)
	mRepo.AssertExpectations(t)
}
