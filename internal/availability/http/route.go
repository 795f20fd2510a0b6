package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers availability routes. They are public: anyone can
// inspect free slots before signing in.
func RegisterRoutes(g *gin.RouterGroup, h *Handler) {
	g.GET("/courts/:id/availability", h.ForCourt)
	g.GET("/clubs/:id/availability", h.ForClub)
}
