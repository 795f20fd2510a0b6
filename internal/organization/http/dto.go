package http

import (
	"errors"
	"time"

	"github.com/courtable/club-booking-backend/internal/organization"
	"github.com/courtable/club-booking-backend/internal/pkg/request"
)

// ListOrganizationsRequest holds query parameters for GET /organizations.
type ListOrganizationsRequest struct {
	request.ListParams
	SortBy string `form:"sort_by" binding:"omitempty,oneof=name created_at"`
}

func (r *ListOrganizationsRequest) Validate() error {
	return nil
}

// CreateOrganizationRequest is the payload for POST /organizations.
type CreateOrganizationRequest struct {
	Name    string `json:"name" binding:"required"`
	OwnerID string `json:"owner_id" binding:"required,uuid"`
}

func (r *CreateOrganizationRequest) Validate() error {
	if r.Name == "" {
		return errors.New("name is required")
	}
	return nil
}

// UpdateOrganizationRequest is the payload for PATCH /organizations/:id.
// All fields are optional; only present fields are applied.
type UpdateOrganizationRequest struct {
	Name     *string `json:"name"`
	IsActive *bool   `json:"is_active"`
	OwnerID  *string `json:"owner_id" binding:"omitempty,uuid"`
}

func (r *UpdateOrganizationRequest) Validate() error {
	if r.Name != nil && *r.Name == "" {
		return errors.New("name cannot be empty")
	}
	return nil
}

// ListManagerRequest holds query parameters for GET /organizations/:id/managers.
type ListManagerRequest struct {
	request.ListParams
	SortBy string `form:"sort_by" binding:"omitempty,oneof=name email role"`
}

func (r *ListManagerRequest) Validate() error {
	return nil
}

// ListMemberRequest holds query parameters for GET /organizations/:id/members.
type ListMemberRequest struct {
	request.ListParams
	SortBy string `form:"sort_by" binding:"omitempty,oneof=name email role"`
}

func (r *ListMemberRequest) Validate() error {
	return nil
}

// OrgMemberRequest binds /organizations/:id/.../:userId URIs.
type OrgMemberRequest struct {
	ID     string `uri:"id" binding:"required,uuid"`
	UserID string `uri:"userId" binding:"required,uuid"`
}

// ClubManagerURIRequest binds /clubs/:id/managers URIs.
type ClubManagerURIRequest struct {
	ClubID string `uri:"id" binding:"required,uuid"`
}

// ClubManagerMemberRequest binds /clubs/:id/managers/:userId URIs.
type ClubManagerMemberRequest struct {
	ClubID string `uri:"id" binding:"required,uuid"`
	UserID string `uri:"userId" binding:"required,uuid"`
}

// AddOrganizationManagerRequest is the payload for POST /organizations/:id/managers.
type AddOrganizationManagerRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

func (r *AddOrganizationManagerRequest) Validate() error {
	if r.UserID == "" {
		return errors.New("user_id is required")
	}
	return nil
}

// AddOrganizationMemberRequest is the payload for POST /organizations/:id/members.
// Members are invited by email rather than by user ID.
type AddOrganizationMemberRequest struct {
	Email string `json:"email" binding:"required,email"`
}

func (r *AddOrganizationMemberRequest) Validate() error {
	if r.Email == "" {
		return errors.New("email is required")
	}
	return nil
}

// AddClubManagerRequest is the payload for POST /clubs/:clubId/managers.
type AddClubManagerRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

// OrganizationResponse is the public view of an organization.
type OrganizationResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// OrganizationTag is the compact form embedded in other responses.
type OrganizationTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ManagerResponse represents a manager entry in list responses.
type ManagerResponse struct {
	UserID      string  `json:"user_id"`
	Email       string  `json:"email"`
	DisplayName *string `json:"display_name"`
}

// MemberResponse represents a member entry in list responses.
type MemberResponse struct {
	UserID      string  `json:"user_id"`
	Email       string  `json:"email"`
	DisplayName *string `json:"display_name"`
	Role        string  `json:"role"`
}

func NewOrganizationResponse(o *organization.Organization) OrganizationResponse {
	return OrganizationResponse{
		ID:        o.ID,
		Name:      o.Name,
		IsActive:  o.IsActive,
		CreatedAt: o.CreatedAt,
	}
}

func NewManagerResponse(m *organization.Member) ManagerResponse {
	return ManagerResponse{
		UserID:      m.UserID,
		Email:       m.Email,
		DisplayName: m.DisplayName,
	}
}

func NewMemberResponse(m *organization.Member) MemberResponse {
	return MemberResponse{
		UserID:      m.UserID,
		Email:       m.Email,
		DisplayName: m.DisplayName,
		Role:        m.Role,
	}
}
