package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/courtable/club-booking-backend/internal/auth"
	"github.com/courtable/club-booking-backend/internal/organization"
	"github.com/courtable/club-booking-backend/internal/pkg/request"
	"github.com/courtable/club-booking-backend/internal/pkg/response"
	"github.com/courtable/club-booking-backend/internal/schedule"
)

type Handler struct {
	service    schedule.Service
	resolver   *schedule.Resolver
	orgService organization.Service
}

func NewHandler(service schedule.Service, resolver *schedule.Resolver, orgService organization.Service) *Handler {
	return &Handler{
		service:    service,
		resolver:   resolver,
		orgService: orgService,
	}
}

// checkPermission verifies the user may administer the club's schedule.
func (h *Handler) checkPermission(c *gin.Context, clubID string) bool {
	userID := auth.GetUserID(c)
	if userID == "" {
		return false
	}

	orgID, err := h.orgService.GetOrgIDByClubID(c.Request.Context(), clubID)
	if err != nil {
		return false
	}

	ok, err := h.orgService.CheckClubPermission(c.Request.Context(), orgID, clubID, userID)
	if err != nil {
		return false
	}
	return ok
}

// GetWeekly returns the club's weekly schedule. Days without an entry are
// reported with nil hours, meaning the platform default applies.
func (h *Handler) GetWeekly(c *gin.Context) {
	var uri ClubURIRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	ws, err := h.service.GetWeekly(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewWeeklyScheduleResponse(ws))
}

// SetWeeklyDay upserts one weekday entry of the club's weekly schedule.
func (h *Handler) SetWeeklyDay(c *gin.Context) {
	var uri ClubURIRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	if !h.checkPermission(c, uri.ID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden: you do not have permission to manage this club's schedule"})
		return
	}

	var body struct {
		Weekday int `json:"weekday" binding:"min=0,max=6"`
		SetWeeklyDayRequest
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}
	if err := body.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req := schedule.SetWeeklyDayRequest{
		Weekday:   body.Weekday,
		OpenHour:  body.OpenHour,
		CloseHour: body.CloseHour,
	}

	if err := h.service.SetWeeklyDay(c.Request.Context(), uri.ID, req); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListSpecialDates lists per-date overrides in an optional [from, to] range.
func (h *Handler) ListSpecialDates(c *gin.Context) {
	var uri ClubURIRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	from, err := request.ParseDate(c.DefaultQuery("from", "0001-01-01"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	to, err := request.ParseDate(c.DefaultQuery("to", "9999-12-31"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dates, err := h.service.ListSpecialDates(c.Request.Context(), uri.ID, from, to)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]SpecialDateResponse, len(dates))
	for i, sd := range dates {
		items[i] = NewSpecialDateResponse(sd)
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// CreateSpecialDate adds a per-date override for the club.
func (h *Handler) CreateSpecialDate(c *gin.Context) {
	var uri ClubURIRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	if !h.checkPermission(c, uri.ID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden: you do not have permission to manage this club's schedule"})
		return
	}

	var body CreateSpecialDateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	date, err := request.ParseDate(body.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req := schedule.CreateSpecialDateRequest{
		ClubID:    uri.ID,
		Date:      date,
		OpenHour:  body.OpenHour,
		CloseHour: body.CloseHour,
		IsClosed:  body.IsClosed,
		Reason:    body.Reason,
	}

	sd, err := h.service.CreateSpecialDate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewSpecialDateResponse(sd))
}

// UpdateSpecialDate partially updates one per-date override.
func (h *Handler) UpdateSpecialDate(c *gin.Context) {
	var uri SpecialDateURIRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	date, err := request.ParseDate(uri.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !h.checkPermission(c, uri.ID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden: you do not have permission to manage this club's schedule"})
		return
	}

	var body UpdateSpecialDateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	req := schedule.UpdateSpecialDateRequest{
		OpenHour:  body.OpenHour,
		CloseHour: body.CloseHour,
		IsClosed:  body.IsClosed,
		Reason:    body.Reason,
	}

	sd, err := h.service.UpdateSpecialDate(c.Request.Context(), uri.ID, date, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewSpecialDateResponse(sd))
}

// DeleteSpecialDate removes one per-date override.
func (h *Handler) DeleteSpecialDate(c *gin.Context) {
	var uri SpecialDateURIRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	date, err := request.ParseDate(uri.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !h.checkPermission(c, uri.ID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden: you do not have permission to manage this club's schedule"})
		return
	}

	if err := h.service.DeleteSpecialDate(c.Request.Context(), uri.ID, date); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetHours resolves the effective business hours for the club (optionally
// narrowed to one court) on a given date.
func (h *Handler) GetHours(c *gin.Context) {
	var uri ClubURIRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	date, err := request.ParseDate(c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bh, err := h.resolver.Resolve(c.Request.Context(), uri.ID, date, c.Query("court_id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBusinessHoursResponse(date, bh))
}
