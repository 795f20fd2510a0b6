package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/courtable/club-booking-backend/internal/auth"
	"github.com/courtable/club-booking-backend/internal/booking"
	"github.com/courtable/club-booking-backend/internal/organization"
	"github.com/courtable/club-booking-backend/internal/pkg/response"
	"github.com/courtable/club-booking-backend/internal/user"
)

type Handler struct {
	service     booking.Service
	userService user.Service
	orgService  organization.Service
}

func NewHandler(service booking.Service, userService user.Service, orgService organization.Service) *Handler {
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

// checkIsClubStaff helper checks if the current user may administer the club the booking belongs to
func (h *Handler) checkIsClubStaff(c *gin.Context, b *booking.Booking, userID string) bool {
	ok, err := h.orgService.CheckClubPermission(c.Request.Context(), b.OrganizationID, b.ClubID, userID)
	if err != nil {
		return false
	}
	return ok
}

func (h *Handler) List(c *gin.Context) {
	var req ListBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	if err := req.Validate(); err != nil {
		response.Error(c, err)
		return
	}

	// Access Control Logic
	currentUserID := auth.GetUserID(c)
	isSysAdmin := h.checkIsSysAdmin(c, currentUserID)

	filterUserID := currentUserID

	// If Admin, they can see all or filter by specific user
	if isSysAdmin {
		filterUserID = req.UserID // can be empty to show all
	}
	// If Normal User, forced to see only their own

	filter := booking.Filter{
		UserID:    filterUserID,
		CourtID:   req.CourtID,
		ClubID:    req.ClubID,
		Status:    req.Status,
		StartTime: req.StartTimeFrom,
		EndTime:   req.StartTimeTo,
		Page:      req.Page,
		PageSize:  req.PageSize,
		SortBy:    req.SortBy,
	}
	if req.SortOrder != "" {
		filter.SortOrder = strings.ToUpper(req.SortOrder)
	}

	bookings, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}

	resp := response.NewPageResponse(items, req.Page, req.PageSize, total)
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	if err := body.Validate(); err != nil {
		response.Error(c, err)
		return
	}

	userID := auth.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	req := booking.CreateRequest{
		UserID:    userID,
		CourtID:   body.CourtID,
		StartTime: body.StartTime,
		EndTime:   body.EndTime,
	}

	b, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	// Access Check: User owns booking OR SysAdmin OR club staff
	userID := auth.GetUserID(c)

	isOwner := userID == b.UserID
	isSysAdmin := h.checkIsSysAdmin(c, userID)

	if !isOwner && !isSysAdmin && !h.checkIsClubStaff(c, b, userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdateBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	if err := body.Validate(); err != nil {
		response.Error(c, err)
		return
	}

	userID := auth.GetUserID(c)
	isSysAdmin := h.checkIsSysAdmin(c, userID)

	req := booking.UpdateRequest{
		StartTime: body.StartTime,
		EndTime:   body.EndTime,
		Status:    body.Status,
	}

	b, err := h.service.Update(c.Request.Context(), id, req, userID, isSysAdmin)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	userID := auth.GetUserID(c)
	isSysAdmin := h.checkIsSysAdmin(c, userID)

	if err := h.service.Delete(c.Request.Context(), id, userID, isSysAdmin); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
