package sport

import (
	"context"
	"strings"
)

type CreateRequest struct {
	OrganizationID string
	Name           string
	Description    string
}

type UpdateRequest struct {
	Name        *string
	Description *string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Sport, error)
	GetByID(ctx context.Context, id string) (*Sport, error)
	List(ctx context.Context, filter Filter) ([]*Sport, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Sport, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Sport, error) {
	if req.OrganizationID == "" {
		return nil, ErrOrgIDRequired
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}

	sp := &Sport{
		OrganizationID: req.OrganizationID,
		Name:           req.Name,
		Description:    req.Description,
	}

	if err := s.repo.Create(ctx, sp); err != nil {
		return nil, err
	}
	return sp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Sport, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Sport, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Sport, error) {
	sp, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrNameRequired
		}
		sp.Name = *req.Name
	}
	if req.Description != nil {
		sp.Description = *req.Description
	}

	if err := s.repo.Update(ctx, sp); err != nil {
		return nil, err
	}
	return sp, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	// Check existence
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
