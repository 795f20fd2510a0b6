package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers organization-related routes.
func RegisterRoutes(g *gin.RouterGroup, h *OrganizationHandler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	orgGroup := g.Group("/organizations")

	// === Authenticated Routes ===
	orgGroup.Use(authMiddleware)
	{
		orgGroup.GET("", h.List)    // List active organizations
		orgGroup.GET("/:id", h.Get) // Get organization details

		// Permission checks live in the handlers (owner or above).
		orgGroup.GET("/:id/managers", h.ListManagers)
		orgGroup.POST("/:id/managers", h.AddManager)
		orgGroup.DELETE("/:id/managers/:userId", h.RemoveManager)

		orgGroup.GET("/:id/members", h.ListMembers)
		orgGroup.POST("/:id/members", h.AddMember)
		orgGroup.DELETE("/:id/members/:userId", h.RemoveMember)
	}

	// === Administration Routes (System Admin Only) ===
	adminGroup := orgGroup.Group("")
	adminGroup.Use(adminMiddleware)
	{
		adminGroup.POST("", h.Create)       // Create organization
		adminGroup.PATCH("/:id", h.Update)  // Update organization info
		adminGroup.DELETE("/:id", h.Delete) // Soft delete organization
	}

	// === Club Manager Assignment ===
	// Param name must match the club module's /clubs/:id routes.
	clubGroup := g.Group("/clubs")
	clubGroup.Use(authMiddleware)
	{
		clubGroup.GET("/:id/managers", h.ListClubManagers)
		clubGroup.POST("/:id/managers", h.AddClubManager)
		clubGroup.DELETE("/:id/managers/:userId", h.RemoveClubManager)
	}
}
