package http

import (
	"time"

	"github.com/courtable/club-booking-backend/internal/club"
)

type ClubResponse struct {
	ID               string    `json:"id"`
	OrganizationID   string    `json:"organization_id"`
	OrganizationName string    `json:"organization_name"`
	Name             string    `json:"name"`
	Timezone         string    `json:"timezone"`
	Address          string    `json:"address"`
	Description      string    `json:"description"`
	Rules            string    `json:"rules"`
	Facilities       string    `json:"facilities"`
	Capacity         int64     `json:"capacity"`
	IsOpen           bool      `json:"is_open"`
	PhotoID          *string   `json:"photo_id"`
	Longitude        float64   `json:"longitude"`
	Latitude         float64   `json:"latitude"`
	CreatedAt        time.Time `json:"created_at"`
}

func NewClubResponse(c *club.Club) ClubResponse {
	return ClubResponse{
		ID:               c.ID,
		OrganizationID:   c.OrganizationID,
		OrganizationName: c.OrganizationName,
		Name:             c.Name,
		Timezone:         c.Timezone,
		Address:          c.Address,
		Description:      c.Description,
		Rules:            c.Rules,
		Facilities:       c.Facilities,
		Capacity:         c.Capacity,
		IsOpen:           c.IsOpen,
		PhotoID:          c.PhotoID,
		Longitude:        c.Longitude,
		Latitude:         c.Latitude,
		CreatedAt:        c.CreatedAt,
	}
}

type CreateClubRequest struct {
	OrganizationID string  `json:"organization_id" binding:"required,uuid"`
	Name           string  `json:"name" binding:"required"`
	Timezone       string  `json:"timezone"`
	Address        string  `json:"address"`
	Description    string  `json:"description"`
	Rules          string  `json:"rules"`
	Facilities     string  `json:"facilities"`
	Capacity       int64   `json:"capacity" binding:"required,min=1"`
	IsOpen         bool    `json:"is_open"`
	Longitude      float64 `json:"longitude" binding:"omitempty,min=-180,max=180"`
	Latitude       float64 `json:"latitude" binding:"omitempty,min=-90,max=90"`
}

// ClubTag is a brief representation of a club for embedding in other responses.
type ClubTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type UpdateClubRequest struct {
	Name        *string  `json:"name"`
	Timezone    *string  `json:"timezone"`
	Address     *string  `json:"address"`
	Description *string  `json:"description"`
	Rules       *string  `json:"rules"`
	Facilities  *string  `json:"facilities"`
	Capacity    *int64   `json:"capacity" binding:"omitempty,min=1"`
	IsOpen      *bool    `json:"is_open"`
	Longitude   *float64 `json:"longitude" binding:"omitempty,min=-180,max=180"`
	Latitude    *float64 `json:"latitude" binding:"omitempty,min=-90,max=90"`
}
