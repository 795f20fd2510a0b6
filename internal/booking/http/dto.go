package http

import (
	"time"

	"github.com/courtable/club-booking-backend/internal/booking"
	clubHttp "github.com/courtable/club-booking-backend/internal/club/http"
	courtHttp "github.com/courtable/club-booking-backend/internal/court/http"
	orgHttp "github.com/courtable/club-booking-backend/internal/organization/http"
	"github.com/courtable/club-booking-backend/internal/pkg/request"
	userHttp "github.com/courtable/club-booking-backend/internal/user/http"
)

// ListBookingsRequest defines query parameters for listing bookings.
type ListBookingsRequest struct {
	request.ListParams
	CourtID       string     `form:"court_id" binding:"omitempty,uuid"`
	ClubID        string     `form:"club_id" binding:"omitempty,uuid"`
	Status        string     `form:"status" binding:"omitempty,oneof=pending confirmed cancelled"`
	UserID        string     `form:"user_id" binding:"omitempty,uuid"`
	StartTimeFrom *time.Time `form:"start_time_from" time_format:"2006-01-02T15:04:05Z07:00"`
	StartTimeTo   *time.Time `form:"start_time_to" time_format:"2006-01-02T15:04:05Z07:00"`
	SortBy        string     `form:"sort_by" binding:"omitempty,oneof=start_time end_time created_at status"`
}

// Validate performs custom validation for ListBookingsRequest.
func (r *ListBookingsRequest) Validate() error {
	if r.StartTimeFrom != nil && r.StartTimeTo != nil {
		if r.StartTimeFrom.After(*r.StartTimeTo) {
			return booking.ErrInvalidTimeRange
		}
	}
	return nil
}

type BookingResponse struct {
	ID           string                  `json:"id"`
	Court        courtHttp.CourtTag      `json:"court"`
	User         userHttp.UserTag        `json:"user"`
	Club         clubHttp.ClubTag        `json:"club"`
	Organization orgHttp.OrganizationTag `json:"organization"`
	StartTime    time.Time               `json:"start_time"`
	EndTime      time.Time               `json:"end_time"`
	Status       string                  `json:"status"`
	CreatedAt    time.Time               `json:"created_at"`
	UpdatedAt    time.Time               `json:"updated_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:           b.ID,
		Court:        courtHttp.CourtTag{ID: b.CourtID, Name: b.CourtName},
		User:         userHttp.UserTag{ID: b.UserID, Name: b.UserName},
		Club:         clubHttp.ClubTag{ID: b.ClubID, Name: b.ClubName},
		Organization: orgHttp.OrganizationTag{ID: b.OrganizationID, Name: b.OrganizationName},
		StartTime:    b.StartTime,
		EndTime:      b.EndTime,
		Status:       string(b.Status),
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

type CreateBookingRequest struct {
	CourtID   string    `json:"court_id" binding:"required,uuid"`
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
}

// Validate performs custom validation for CreateBookingRequest.
func (r *CreateBookingRequest) Validate() error {
	if !r.StartTime.Before(r.EndTime) {
		return booking.ErrInvalidTimeRange
	}
	return nil
}

type UpdateBookingRequest struct {
	StartTime *time.Time `json:"start_time"`
	EndTime   *time.Time `json:"end_time"`
	Status    *string    `json:"status" binding:"omitempty,oneof=pending confirmed cancelled"`
}

// Validate performs custom validation for UpdateBookingRequest.
func (r *UpdateBookingRequest) Validate() error {
	if r.StartTime != nil && r.EndTime != nil {
		if !r.StartTime.Before(*r.EndTime) {
			return booking.ErrInvalidTimeRange
		}
	}
	return nil
}
