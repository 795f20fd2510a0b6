package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/courtable/club-booking-backend/internal/auth"
	"github.com/courtable/club-booking-backend/internal/club"
	filehttp "github.com/courtable/club-booking-backend/internal/file/http"
	"github.com/courtable/club-booking-backend/internal/organization"
	"github.com/courtable/club-booking-backend/internal/pkg/response"
)

type ClubHandler struct {
	service     club.Service
	orgService  organization.Service
	fileHandler *filehttp.Handler
}

func NewHandler(service club.Service, orgService organization.Service, fileHandler *filehttp.Handler) *ClubHandler {
	return &ClubHandler{
		service:     service,
		orgService:  orgService,
		fileHandler: fileHandler,
	}
}

// canManageClub verifies the authenticated user may administer the given
// club: organization owners and managers, assigned club managers, and
// system admins qualify.
func (h *ClubHandler) canManageClub(c *gin.Context, orgID, clubID string) bool {
	userID := auth.GetUserID(c)
	if userID == "" {
		return false
	}

	ok, err := h.orgService.CheckClubPermission(c.Request.Context(), orgID, clubID, userID)
	if err != nil {
		return false
	}
	return ok
}

// List retrieves a paginated list of clubs with optional filtering.
func (h *ClubHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	filter := club.ClubFilter{
		OrganizationID: c.Query("organization_id"),
		Name:           c.Query("q"),
		Page:           page,
		PageSize:       pageSize,
	}

	clubs, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list clubs"})
		return
	}

	items := make([]ClubResponse, len(clubs))
	for i, cl := range clubs {
		items[i] = NewClubResponse(cl)
	}

	resp := response.NewPageResponse(items, page, pageSize, total)
	c.JSON(http.StatusOK, resp)
}

// Create adds a new club.
// Access Control: Organization Managers, Owners or System Admins.
func (h *ClubHandler) Create(c *gin.Context) {
	var body CreateClubRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	userID := auth.GetUserID(c)
	allowed, err := h.orgService.IsManagerOrAbove(c.Request.Context(), body.OrganizationID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !allowed {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden: only organization staff can create clubs"})
		return
	}

	req := club.CreateClubRequest{
		OrganizationID: body.OrganizationID,
		Name:           body.Name,
		Timezone:       body.Timezone,
		Address:        body.Address,
		Description:    body.Description,
		Rules:          body.Rules,
		Facilities:     body.Facilities,
		Capacity:       body.Capacity,
		IsOpen:         body.IsOpen,
		Longitude:      body.Longitude,
		Latitude:       body.Latitude,
	}

	cl, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewClubResponse(cl))
}

// Get retrieves specific club details.
func (h *ClubHandler) Get(c *gin.Context) {
	id := c.Param("id")

	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	cl, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewClubResponse(cl))
}

// Update modifies specific attributes of a club.
func (h *ClubHandler) Update(c *gin.Context) {
	id := c.Param("id")

	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	existing, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	if !h.canManageClub(c, existing.OrganizationID, id) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden: you do not have permission to update this club"})
		return
	}

	var body UpdateClubRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	req := club.UpdateClubRequest{
		Name:        body.Name,
		Timezone:    body.Timezone,
		Address:     body.Address,
		Description: body.Description,
		Rules:       body.Rules,
		Facilities:  body.Facilities,
		Capacity:    body.Capacity,
		IsOpen:      body.IsOpen,
		Longitude:   body.Longitude,
		Latitude:    body.Latitude,
	}

	cl, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewClubResponse(cl))
}

// Delete removes a club.
// Access Control: Organization Managers, Owners or System Admins.
func (h *ClubHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	existing, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	userID := auth.GetUserID(c)
	allowed, err := h.orgService.IsManagerOrAbove(c.Request.Context(), existing.OrganizationID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !allowed {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden: only organization staff can delete clubs"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// UploadPhoto uploads a photo for a club.
func (h *ClubHandler) UploadPhoto(c *gin.Context) {
	id := c.Param("id")

	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	existing, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	if !h.canManageClub(c, existing.OrganizationID, id) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden: you do not have permission to manage this club"})
		return
	}

	h.fileHandler.HandleFileUpload(c, filehttp.FileUploadConfig{
		MaxSizeBytes: 5 * 1024 * 1024, // 5MB
		AllowedTypes: []string{"image/jpeg", "image/png"},
		ResizeImage:  true,
		AfterUpload: func(ctx context.Context, fileID string) error {
			return h.service.UpdatePhoto(ctx, id, fileID)
		},
	})
}

// RemovePhoto removes the photo from a club.
func (h *ClubHandler) RemovePhoto(c *gin.Context) {
	id := c.Param("id")

	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	existing, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	if !h.canManageClub(c, existing.OrganizationID, id) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden: you do not have permission to manage this club"})
		return
	}

	if err := h.service.RemovePhoto(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
