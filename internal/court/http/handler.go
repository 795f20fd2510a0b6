package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/courtable/club-booking-backend/internal/auth"
	"github.com/courtable/club-booking-backend/internal/club"
	"github.com/courtable/club-booking-backend/internal/court"
	"github.com/courtable/club-booking-backend/internal/organization"
	"github.com/courtable/club-booking-backend/internal/pkg/request"
	"github.com/courtable/club-booking-backend/internal/pkg/response"
)

type Handler struct {
	service     court.Service
	clubService club.Service
	orgService  organization.Service
}

func NewHandler(service court.Service, clubService club.Service, orgService organization.Service) *Handler {
	return &Handler{
		service:     service,
		clubService: clubService,
		orgService:  orgService,
	}
}

// checkPermission verifies the user may administer the club that owns
// the court.
func (h *Handler) checkPermission(c *gin.Context, orgID, clubID string) bool {
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

func (h *Handler) List(c *gin.Context) {
	var req ListCourtsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	filter := court.Filter{
		ClubID:    req.ClubID,
		SportID:   req.SportID,
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

	courts, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]CourtResponse, len(courts))
	for i, ct := range courts {
		items[i] = NewResponse(ct)
	}

	resp := response.NewPageResponse(items, req.Page, req.PageSize, total)
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	if err := body.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Permission Check Flow:
	// 1. Get Club to find OrganizationID
	cl, err := h.clubService.GetByID(c.Request.Context(), body.ClubID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid club"})
		return
	}

	// 2. Check User Permission for that club
	if !h.checkPermission(c, cl.OrganizationID, cl.ID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden: only club staff can create courts"})
		return
	}

	req := court.CreateRequest{
		Name:      body.Name,
		ClubID:    body.ClubID,
		SportID:   body.SportID,
		OpenHour:  body.OpenHour,
		CloseHour: body.CloseHour,
	}

	ct, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewResponse(ct))
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	ct, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewResponse(ct))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	// Permission Check Flow:
	// 1. Get Court to find Club
	existing, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	// 2. Get Club to find Org
	cl, err := h.clubService.GetByID(c.Request.Context(), existing.ClubID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "associated club not found"})
		return
	}

	// 3. Check Permissions
	if !h.checkPermission(c, cl.OrganizationID, cl.ID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden: permission denied"})
		return
	}

	var body UpdateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	if err := body.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req := court.UpdateRequest{
		Name:       body.Name,
		SportID:    body.SportID,
		OpenHour:   body.OpenHour,
		CloseHour:  body.CloseHour,
		ClearHours: body.ClearHours,
	}

	ct, err := h.service.Update(c.Request.Context(), uri.ID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewResponse(ct))
}

func (h *Handler) Delete(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	// Permission Check Flow
	existing, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	cl, err := h.clubService.GetByID(c.Request.Context(), existing.ClubID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "associated club not found"})
		return
	}

	if !h.checkPermission(c, cl.OrganizationID, cl.ID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden: permission denied"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), req.ID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
