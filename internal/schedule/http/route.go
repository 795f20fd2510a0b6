package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers schedule routes under /clubs/:id.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/clubs/:id")

	// Hours resolution is public; schedule administration requires auth.
	group.GET("/hours", h.GetHours)

	group.GET("/schedule", h.GetWeekly)

	authed := group.Group("")
	authed.Use(authMiddleware)
	{
		authed.PUT("/schedule", h.SetWeeklyDay)

		authed.GET("/special-dates", h.ListSpecialDates)
		authed.POST("/special-dates", h.CreateSpecialDate)
		authed.PATCH("/special-dates/:date", h.UpdateSpecialDate)
		authed.DELETE("/special-dates/:date", h.DeleteSpecialDate)
	}
}
