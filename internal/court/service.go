package court

import (
	"context"
	"errors"
	"strings"

	"github.com/courtable/club-booking-backend/internal/club"
	"github.com/courtable/club-booking-backend/internal/schedule"
	"github.com/courtable/club-booking-backend/internal/sport"
)

type CreateRequest struct {
	Name      string
	ClubID    string
	SportID   string
	OpenHour  *int
	CloseHour *int
}

type UpdateRequest struct {
	Name      *string
	SportID   *string
	OpenHour  *int
	CloseHour *int
	// ClearHours resets both hour overrides back to the club schedule.
	ClearHours bool
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Court, error)
	GetByID(ctx context.Context, id string) (*Court, error)
	List(ctx context.Context, filter Filter) ([]*Court, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Court, error)
	Delete(ctx context.Context, id string) error

	// HoursOverride implements schedule.CourtHoursLookup.
	HoursOverride(ctx context.Context, courtID string) (*schedule.CourtHours, error)
}

type service struct {
	repo         Repository
	clubService  club.Service
	sportService sport.Service
}

func NewService(repo Repository, clubService club.Service, sportService sport.Service) Service {
	return &service{
		repo:         repo,
		clubService:  clubService,
		sportService: sportService,
	}
}

// validHours checks a pair of optional hour overrides. Each side may be nil;
// when both are set the window must not be empty.
func validHours(open, close *int) bool {
	if open != nil && (*open < 0 || *open > 24) {
		return false
	}
	if close != nil && (*close < 0 || *close > 24) {
		return false
	}
	if open != nil && close != nil && *open >= *close {
		return false
	}
	return true
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Court, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEmptyName
	}
	if req.ClubID == "" {
		return nil, ErrInvalidClub
	}
	if req.SportID == "" {
		return nil, ErrInvalidSport
	}
	if !validHours(req.OpenHour, req.CloseHour) {
		return nil, ErrInvalidHours
	}

	// Validation: club and sport must exist
	if _, err := s.clubService.GetByID(ctx, req.ClubID); err != nil {
		return nil, ErrInvalidClub
	}
	if _, err := s.sportService.GetByID(ctx, req.SportID); err != nil {
		return nil, ErrInvalidSport
	}

	ct := &Court{
		Name:      strings.TrimSpace(req.Name),
		ClubID:    req.ClubID,
		SportID:   req.SportID,
		OpenHour:  req.OpenHour,
		CloseHour: req.CloseHour,
	}

	if err := s.repo.Create(ctx, ct); err != nil {
		return nil, err
	}
	return ct, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Court, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Court, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Court, error) {
	ct, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrEmptyName
		}
		ct.Name = strings.TrimSpace(*req.Name)
	}
	if req.SportID != nil {
		if _, err := s.sportService.GetByID(ctx, *req.SportID); err != nil {
			return nil, ErrInvalidSport
		}
		ct.SportID = *req.SportID
	}
	if req.ClearHours {
		ct.OpenHour = nil
		ct.CloseHour = nil
	}
	if req.OpenHour != nil {
		ct.OpenHour = req.OpenHour
	}
	if req.CloseHour != nil {
		ct.CloseHour = req.CloseHour
	}
	if !validHours(ct.OpenHour, ct.CloseHour) {
		return nil, ErrInvalidHours
	}

	if err := s.repo.Update(ctx, ct); err != nil {
		return nil, err
	}
	return ct, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// HoursOverride returns the court's hour overrides for business hour
// resolution. Unknown courts map to schedule.ErrCourtNotFound.
func (s *service) HoursOverride(ctx context.Context, courtID string) (*schedule.CourtHours, error) {
	ct, err := s.repo.GetByID(ctx, courtID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, schedule.ErrCourtNotFound
		}
		return nil, err
	}
	return &schedule.CourtHours{OpenHour: ct.OpenHour, CloseHour: ct.CloseHour}, nil
}
