package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/courtable/club-booking-backend/internal/auth"
	"github.com/courtable/club-booking-backend/internal/organization"
	"github.com/courtable/club-booking-backend/internal/pkg/request"
	"github.com/courtable/club-booking-backend/internal/pkg/response"
	"github.com/courtable/club-booking-backend/internal/stats"
)

type Handler struct {
	service    stats.Service
	orgService organization.Service
}

func NewHandler(service stats.Service, orgService organization.Service) *Handler {
	return &Handler{
		service:    service,
		orgService: orgService,
	}
}

// checkPermission verifies the user may read the club's statistics.
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

// GetStatistics returns per-day booking statistics for a club. Defaults
// to the last 30 days when no range is given.
func (h *Handler) GetStatistics(c *gin.Context) {
	var uri ClubURIRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	if !h.checkPermission(c, uri.ID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		return
	}

	to := time.Now().UTC().Truncate(24 * time.Hour)
	from := to.AddDate(0, 0, -29)

	if v := c.Query("from"); v != "" {
		t, err := request.ParseDate(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		from = t
	}
	if v := c.Query("to"); v != "" {
		t, err := request.ParseDate(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		to = t
	}

	items, err := h.service.GetRange(c.Request.Context(), uri.ID, from, to)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := NewStatisticsResponse(uri.ID, from.Format("2006-01-02"), to.Format("2006-01-02"), items)
	c.JSON(http.StatusOK, resp)
}
