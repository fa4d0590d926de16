package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"crportal/internal/mail"
	"crportal/internal/model"
	"crportal/internal/repository"
)

var (
	ErrLeadNameRequired  = errors.New("lead name is required")
	ErrLeadEmailRequired = errors.New("lead email is required")
	ErrInvalidLeadStatus = errors.New("invalid lead status")
)

var leadStatuses = map[string]bool{
	model.LeadStatusNew:       true,
	model.LeadStatusContacted: true,
	model.LeadStatusQuoted:    true,
	model.LeadStatusClosed:    true,
}

// LeadListResult is the service-level DTO for paginated leads.
type LeadListResult struct {
	Items []model.Lead `json:"data"`
	Total int          `json:"total"`
}

// LeadCapture is what a capture produces: the stored lead and the
// notification composed for the company inbox.
type LeadCapture struct {
	Lead *model.Lead  `json:"lead"`
	Mail mail.Message `json:"mail"`
}

// LeadService defines the use cases for prospect leads.
type LeadService interface {
	// Capture stores a new lead and composes the internal notification.
	// The notification is best effort; the lead is the record of truth.
	Capture(ctx context.Context, lead *model.Lead) (*LeadCapture, error)

	// List returns leads, newest first, using limit/offset and a total count.
	List(ctx context.Context, limit, offset int) (*LeadListResult, error)

	// UpdateStatus moves a lead along the follow-up pipeline.
	UpdateStatus(ctx context.Context, id, status string) error
}

type leadService struct {
	repo     repository.LeadRepository
	composer *mail.Composer
}

// NewLeadService constructs a new LeadService.
func NewLeadService(repo repository.LeadRepository, composer *mail.Composer) LeadService {
	return &leadService{repo: repo, composer: composer}
}

func (s *leadService) Capture(ctx context.Context, lead *model.Lead) (*LeadCapture, error) {
	if lead.Name == "" {
		return nil, ErrLeadNameRequired
	}
	if lead.Email == "" {
		return nil, ErrLeadEmailRequired
	}
	now := time.Now().UTC()
	lead.ID = uuid.New().String()
	lead.Status = model.LeadStatusNew
	lead.CreatedAt = now
	lead.UpdatedAt = now

	stored, err := s.repo.Create(ctx, lead)
	if err != nil {
		return nil, err
	}
	return &LeadCapture{Lead: stored, Mail: s.composer.LeadNotification(stored)}, nil
}

func (s *leadService) List(ctx context.Context, limit, offset int) (*LeadListResult, error) {
	res, err := s.repo.List(ctx, pageQuery(limit, offset))
	if err != nil {
		return nil, err
	}
	return &LeadListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *leadService) UpdateStatus(ctx context.Context, id, status string) error {
	if id == "" {
		return ErrIDRequired
	}
	if !leadStatuses[status] {
		return ErrInvalidLeadStatus
	}
	return s.repo.UpdateStatus(ctx, id, status)
}
