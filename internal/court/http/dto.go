package http

import (
	"errors"
	"time"

	"github.com/courtable/club-booking-backend/internal/court"
	"github.com/courtable/club-booking-backend/internal/pkg/request"
)

type CourtResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ClubID    string    `json:"club_id"`
	SportID   string    `json:"sport_id"`
	OpenHour  *int      `json:"open_hour"`
	CloseHour *int      `json:"close_hour"`
	CreatedAt time.Time `json:"created_at"`
}

func NewResponse(ct *court.Court) CourtResponse {
	return CourtResponse{
		ID:        ct.ID,
		Name:      ct.Name,
		ClubID:    ct.ClubID,
		SportID:   ct.SportID,
		OpenHour:  ct.OpenHour,
		CloseHour: ct.CloseHour,
		CreatedAt: ct.CreatedAt,
	}
}

type ListCourtsRequest struct {
	request.ListParams
	ClubID  string `form:"club_id" binding:"omitempty,uuid"`
	SportID string `form:"sport_id" binding:"omitempty,uuid"`
	SortBy  string `form:"sort_by" binding:"omitempty,oneof=name created_at"`
}

func (r *ListCourtsRequest) Validate() error {
	return nil
}

type CreateRequest struct {
	Name      string `json:"name" binding:"required"`
	ClubID    string `json:"club_id" binding:"required,uuid"`
	SportID   string `json:"sport_id" binding:"required,uuid"`
	OpenHour  *int   `json:"open_hour" binding:"omitempty,min=0,max=24"`
	CloseHour *int   `json:"close_hour" binding:"omitempty,min=0,max=24"`
}

func (r *CreateRequest) Validate() error {
	if r.OpenHour != nil && r.CloseHour != nil && *r.OpenHour >= *r.CloseHour {
		return errors.New("open_hour must be before close_hour")
	}
	return nil
}

type UpdateRequest struct {
	Name       *string `json:"name" binding:"omitempty"`
	SportID    *string `json:"sport_id" binding:"omitempty,uuid"`
	OpenHour   *int    `json:"open_hour" binding:"omitempty,min=0,max=24"`
	CloseHour  *int    `json:"close_hour" binding:"omitempty,min=0,max=24"`
	ClearHours bool    `json:"clear_hours"`
}

func (r *UpdateRequest) Validate() error {
	if r.OpenHour != nil && r.CloseHour != nil && *r.OpenHour >= *r.CloseHour {
		return errors.New("open_hour must be before close_hour")
	}
	return nil
}

// CourtTag is a brief representation of a court for embedding in other responses.
type CourtTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
