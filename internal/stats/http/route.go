package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers statistics routes under /clubs/:id.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/clubs/:id")
	group.Use(authMiddleware)
	{
		group.GET("/statistics", h.GetStatistics)
	}
}
