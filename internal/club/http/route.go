package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *ClubHandler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/clubs")

	// === Authenticated Routes ===
	group.Use(authMiddleware)
	{
		group.GET("", h.List)          // List clubs
		group.GET("/:id", h.Get)       // Get club details
		group.POST("", h.Create)       // Create club
		group.PATCH("/:id", h.Update)  // Update club
		group.DELETE("/:id", h.Delete) // Delete club

		group.POST("/:id/photo", h.UploadPhoto)
		group.DELETE("/:id/photo", h.RemovePhoto)
	}
}
