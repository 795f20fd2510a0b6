package http

import (
	"time"

	"github.com/courtable/club-booking-backend/internal/announcement"
	clubHttp "github.com/courtable/club-booking-backend/internal/club/http"
	"github.com/courtable/club-booking-backend/internal/pkg/request"
)

// ListAnnouncementsRequest defines query parameters for listing announcements.
type ListAnnouncementsRequest struct {
	request.ListParams
	ClubID  string `form:"club_id" binding:"omitempty,uuid"`
	Keyword string `form:"keyword" binding:"omitempty,max=100"`
	SortBy  string `form:"sort_by" binding:"omitempty,oneof=created_at updated_at title"`
}

// Validate performs custom validation for ListAnnouncementsRequest.
func (r *ListAnnouncementsRequest) Validate() error {
	return nil
}

type AnnouncementResponse struct {
	ID        string            `json:"id"`
	Club      *clubHttp.ClubTag `json:"club,omitempty"`
	Title     string            `json:"title"`
	Content   string            `json:"content"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

func NewResponse(a *announcement.Announcement) AnnouncementResponse {
	resp := AnnouncementResponse{
		ID:        a.ID,
		Title:     a.Title,
		Content:   a.Content,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
	if a.ClubID != nil {
		resp.Club = &clubHttp.ClubTag{ID: *a.ClubID, Name: a.ClubName}
	}
	return resp
}

type CreateRequest struct {
	ClubID  *string `json:"club_id" binding:"omitempty,uuid"`
	Title   string  `json:"title" binding:"required"`
	Content string  `json:"content" binding:"required"`
}

type UpdateRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}
