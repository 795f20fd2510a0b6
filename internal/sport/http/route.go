package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers sport related routes.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/sports")

	// === Authenticated Routes ===
	group.Use(authMiddleware)
	{
		group.GET("", h.List)          // List sports
		group.GET("/:id", h.Get)       // Get sport details
		group.POST("", h.Create)       // Create sport
		group.PATCH("/:id", h.Update)  // Update sport
		group.DELETE("/:id", h.Delete) // Delete sport
	}
}
