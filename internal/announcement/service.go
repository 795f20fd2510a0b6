package announcement

import (
	"context"
	"errors"
	"strings"

	"github.com/courtable/club-booking-backend/internal/club"
)

type CreateRequest struct {
	ClubID  *string
	Title   string
	Content string
}

type UpdateRequest struct {
	Title   *string
	Content *string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Announcement, error)
	GetByID(ctx context.Context, id string) (*Announcement, error)
	List(ctx context.Context, filter Filter) ([]*Announcement, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Announcement, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo        Repository
	clubService club.Service
}

func NewService(repo Repository, clubService club.Service) Service {
	return &service{repo: repo, clubService: clubService}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Announcement, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrTitleRequired
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, ErrContentRequired
	}

	if req.ClubID != nil {
		if _, err := s.clubService.GetByID(ctx, *req.ClubID); err != nil {
			if errors.Is(err, club.ErrNotFound) {
				return nil, ErrClubNotFound
			}
			return nil, err
		}
	}

	a := &Announcement{
		ClubID:  req.ClubID,
		Title:   req.Title,
		Content: req.Content,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Announcement, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Announcement, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Announcement, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, ErrTitleRequired
		}
		a.Title = *req.Title
	}

	if req.Content != nil {
		if strings.TrimSpace(*req.Content) == "" {
			return nil, ErrContentRequired
		}
		a.Content = *req.Content
	}

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	// Check existence first
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
