package club

import (
	"context"
	"strings"
	"time"

	"github.com/courtable/club-booking-backend/internal/organization"
	"github.com/courtable/club-booking-backend/internal/schedule"
)

// CreateClubRequest carries data to create a club.
type CreateClubRequest struct {
	OrganizationID string
	Name           string
	Timezone       string
	Address        string
	Description    string
	Rules          string
	Facilities     string
	Capacity       int64
	IsOpen         bool
	Longitude      float64
	Latitude       float64
}

// UpdateClubRequest carries data for partial updates.
type UpdateClubRequest struct {
	Name        *string
	Timezone    *string
	Address     *string
	Description *string
	Rules       *string
	Facilities  *string
	Capacity    *int64
	IsOpen      *bool
	Longitude   *float64
	Latitude    *float64
}

type Service interface {
	Create(ctx context.Context, req CreateClubRequest) (*Club, error)
	GetByID(ctx context.Context, id string) (*Club, error)
	List(ctx context.Context, filter ClubFilter) ([]*Club, int, error)
	Update(ctx context.Context, id string, req UpdateClubRequest) (*Club, error)
	Delete(ctx context.Context, id string) error
	UpdatePhoto(ctx context.Context, id string, fileID string) error
	RemovePhoto(ctx context.Context, id string) error

	// Timezone implements schedule.ClubLookup.
	Timezone(ctx context.Context, clubID string) (*time.Location, error)
}

type service struct {
	repo       Repository
	orgService organization.Service
}

func NewService(repo Repository, orgService organization.Service) Service {
	return &service{repo: repo, orgService: orgService}
}

// validateClub checks the logical rules for a Club struct.
func validateClub(c *Club) error {
	if c.Capacity <= 0 {
		return ErrInvalidCapacity
	}

	// Latitude: -90 to 90, Longitude: -180 to 180
	if c.Latitude < -90 || c.Latitude > 90 || c.Longitude < -180 || c.Longitude > 180 {
		return ErrInvalidGeo
	}

	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return ErrInvalidTimezone
	}

	return nil
}

func (s *service) Create(ctx context.Context, req CreateClubRequest) (*Club, error) {
	if req.OrganizationID == "" {
		return nil, ErrOrgIDRequired
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}

	// Verify that the organization exists.
	if _, err := s.orgService.GetByID(ctx, req.OrganizationID); err != nil {
		return nil, ErrOrgNotFound
	}

	tz := strings.TrimSpace(req.Timezone)
	if tz == "" {
		tz = "UTC"
	}

	c := &Club{
		OrganizationID: req.OrganizationID,
		Name:           strings.TrimSpace(req.Name),
		Timezone:       tz,
		Address:        req.Address,
		Description:    req.Description,
		Rules:          req.Rules,
		Facilities:     req.Facilities,
		Capacity:       req.Capacity,
		IsOpen:         req.IsOpen,
		Longitude:      req.Longitude,
		Latitude:       req.Latitude,
	}

	if err := validateClub(c); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Club, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter ClubFilter) ([]*Club, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateClubRequest) (*Club, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Apply non-nil fields
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrNameRequired
		}
		c.Name = strings.TrimSpace(*req.Name)
	}
	if req.Timezone != nil {
		c.Timezone = strings.TrimSpace(*req.Timezone)
	}
	if req.Address != nil {
		c.Address = *req.Address
	}
	if req.Description != nil {
		c.Description = *req.Description
	}
	if req.Rules != nil {
		c.Rules = *req.Rules
	}
	if req.Facilities != nil {
		c.Facilities = *req.Facilities
	}
	if req.Capacity != nil {
		c.Capacity = *req.Capacity
	}
	if req.IsOpen != nil {
		c.IsOpen = *req.IsOpen
	}
	if req.Longitude != nil {
		c.Longitude = *req.Longitude
	}
	if req.Latitude != nil {
		c.Latitude = *req.Latitude
	}

	if err := validateClub(c); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	// Check existence
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) UpdatePhoto(ctx context.Context, id string, fileID string) error {
	return s.repo.SetPhotoID(ctx, id, &fileID)
}

func (s *service) RemovePhoto(ctx context.Context, id string) error {
	return s.repo.SetPhotoID(ctx, id, nil)
}

// Timezone resolves a club's timezone for schedule and availability math.
// Unknown clubs map to schedule.ErrClubNotFound so callers can turn the
// condition into a 404.
func (s *service) Timezone(ctx context.Context, clubID string) (*time.Location, error) {
	tz, err := s.repo.GetTimezone(ctx, clubID)
	if err != nil {
		if err == ErrNotFound {
			return nil, schedule.ErrClubNotFound
		}
		return nil, err
	}

	loc, err := time.LoadLocation(tz)
	if err != nil {
		// Bad data in the column; fall back to UTC rather than failing reads.
		return time.UTC, nil
	}
	return loc, nil
}
