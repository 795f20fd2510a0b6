package http

import (
	"time"

	"github.com/courtable/club-booking-backend/internal/pkg/request"
	"github.com/courtable/club-booking-backend/internal/sport"
)

// ListSportsRequest defines query parameters for listing sports.
type ListSportsRequest struct {
	request.ListParams
	OrganizationID string `form:"organization_id" binding:"omitempty,uuid"`
	SortBy         string `form:"sort_by" binding:"omitempty,oneof=name created_at"`
}

// Validate performs custom validation for ListSportsRequest.
func (r *ListSportsRequest) Validate() error {
	return nil
}

type SportResponse struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	CreatedAt      time.Time `json:"created_at"`
}

func NewResponse(sp *sport.Sport) SportResponse {
	return SportResponse{
		ID:             sp.ID,
		OrganizationID: sp.OrganizationID,
		Name:           sp.Name,
		Description:    sp.Description,
		CreatedAt:      sp.CreatedAt,
	}
}

type CreateRequest struct {
	OrganizationID string `json:"organization_id" binding:"required,uuid"`
	Name           string `json:"name" binding:"required,min=1,max=100"`
	Description    string `json:"description"`
}

// Validate performs custom validation for CreateRequest.
func (r *CreateRequest) Validate() error {
	return nil
}

type UpdateRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=100"`
	Description *string `json:"description"`
}

// Validate performs custom validation for UpdateRequest.
func (r *UpdateRequest) Validate() error {
	return nil
}
