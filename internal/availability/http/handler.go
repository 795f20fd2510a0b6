package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/courtable/club-booking-backend/internal/availability"
	"github.com/courtable/club-booking-backend/internal/pkg/request"
	"github.com/courtable/club-booking-backend/internal/pkg/response"
)

type Handler struct {
	service availability.Service
}

func NewHandler(service availability.Service) *Handler {
	return &Handler{service: service}
}

// ForCourt returns the classified hourly slots of one court for a date.
func (h *Handler) ForCourt(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	date, err := request.ParseDate(c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ca, err := h.service.ForCourt(c.Request.Context(), uri.ID, date)
	if err != nil {
		if errors.Is(err, availability.ErrCourtNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "court not found"})
			return
		}
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewCourtAvailabilityResponse(ca))
}

// ForClub returns the classified hourly slots of every court in a club.
func (h *Handler) ForClub(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	date, err := request.ParseDate(c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cas, err := h.service.ForClub(c.Request.Context(), uri.ID, date)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]CourtAvailabilityResponse, len(cas))
	for i, ca := range cas {
		items[i] = NewCourtAvailabilityResponse(ca)
	}

	c.JSON(http.StatusOK, gin.H{"date": date.Format("2006-01-02"), "courts": items})
}
