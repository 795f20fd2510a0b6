package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/courtable/club-booking-backend/internal/announcement"
	"github.com/courtable/club-booking-backend/internal/auth"
	"github.com/courtable/club-booking-backend/internal/organization"
	"github.com/courtable/club-booking-backend/internal/pkg/request"
	"github.com/courtable/club-booking-backend/internal/pkg/response"
	"github.com/courtable/club-booking-backend/internal/user"
)

type Handler struct {
	service     announcement.Service
	userService user.Service
	orgService  organization.Service
}

func NewHandler(service announcement.Service, userService user.Service, orgService organization.Service) *Handler {
	return &Handler{
		service:     service,
		userService: userService,
		orgService:  orgService,
	}
}

// checkIsSysAdmin helper checks if the current user is a system admin
func (h *Handler) checkIsSysAdmin(c *gin.Context, userID string) bool {
	u, err := h.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		return false
	}
	return u.IsSystemAdmin
}

// canManage reports whether the user may create or modify an
// announcement with the given club scope. Platform-wide posts are
// reserved for system admins; club notices also allow club staff.
func (h *Handler) canManage(c *gin.Context, clubID *string) bool {
	userID := auth.GetUserID(c)
	if userID == "" {
		return false
	}
	if h.checkIsSysAdmin(c, userID) {
		return true
	}
	if clubID == nil {
		return false
	}

	orgID, err := h.orgService.GetOrgIDByClubID(c.Request.Context(), *clubID)
	if err != nil {
		return false
	}
	ok, err := h.orgService.CheckClubPermission(c.Request.Context(), orgID, *clubID, userID)
	if err != nil {
		return false
	}
	return ok
}

func (h *Handler) List(c *gin.Context) {
	var req ListAnnouncementsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	filter := announcement.Filter{
		ClubID:    req.ClubID,
		Keyword:   req.Keyword,
		Page:      req.Page,
		PageSize:  req.PageSize,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
	}

	if filter.SortBy == "" {
		filter.SortBy = "created_at"
	}
	if filter.SortOrder == "" {
		filter.SortOrder = "DESC"
	} else {
		filter.SortOrder = strings.ToUpper(filter.SortOrder)
	}

	list, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list announcements"})
		return
	}

	items := make([]AnnouncementResponse, len(list))
	for i, a := range list {
		items[i] = NewResponse(a)
	}

	resp := response.NewPageResponse(items, req.Page, req.PageSize, total)
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	a, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		switch {
		case errors.Is(err, announcement.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "announcement not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get announcement"})
		}
		return
	}

	c.JSON(http.StatusOK, NewResponse(a))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	if !h.canManage(c, body.ClubID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		return
	}

	req := announcement.CreateRequest{
		ClubID:  body.ClubID,
		Title:   body.Title,
		Content: body.Content,
	}

	a, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, announcement.ErrTitleRequired),
			errors.Is(err, announcement.ErrContentRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, announcement.ErrClubNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create announcement"})
		}
		return
	}

	c.JSON(http.StatusCreated, NewResponse(a))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var body UpdateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	existing, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		if errors.Is(err, announcement.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "announcement not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update announcement"})
		return
	}

	if !h.canManage(c, existing.ClubID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		return
	}

	req := announcement.UpdateRequest{
		Title:   body.Title,
		Content: body.Content,
	}

	a, err := h.service.Update(c.Request.Context(), uri.ID, req)
	if err != nil {
		switch {
		case errors.Is(err, announcement.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "announcement not found"})
		case errors.Is(err, announcement.ErrTitleRequired),
			errors.Is(err, announcement.ErrContentRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update announcement"})
		}
		return
	}

	c.JSON(http.StatusOK, NewResponse(a))
}

func (h *Handler) Delete(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	existing, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		if errors.Is(err, announcement.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "announcement not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete announcement"})
		return
	}

	if !h.canManage(c, existing.ClubID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), req.ID); err != nil {
		switch {
		case errors.Is(err, announcement.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "announcement not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete announcement"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
