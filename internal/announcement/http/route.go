package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/announcements")

	// Reading is public; managing requires auth and a per-announcement
	// permission check in the handler.
	group.GET("", h.List)
	group.GET("/:id", h.Get)

	authed := group.Group("")
	authed.Use(authMiddleware)
	{
		authed.POST("", h.Create)
		authed.PATCH("/:id", h.Update)
		authed.DELETE("/:id", h.Delete)
	}
}
