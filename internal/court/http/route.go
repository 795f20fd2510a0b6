package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers court-related routes.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/courts")

	// === Authenticated Routes ===
	group.Use(authMiddleware)
	{
		group.GET("", h.List)          // List courts
		group.GET("/:id", h.Get)       // Get court details
		group.POST("", h.Create)       // Create court
		group.PATCH("/:id", h.Update)  // Update court
		group.DELETE("/:id", h.Delete) // Delete court
	}
}
