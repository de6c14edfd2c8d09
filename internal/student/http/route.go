package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/students")

	// === Authenticated Routes ===
	// Roster data carries contact details, so even reads require a login.
	group.GET("", authMiddleware, h.List)
	group.GET("/by-email/:email", authMiddleware, h.GetByEmail)
	group.GET("/by-registration/:number", authMiddleware, h.GetByRegistration)
	group.GET("/:id", authMiddleware, h.Get)

	// === Admin Routes ===
	group.POST("", authMiddleware, adminMiddleware, h.Create)
	group.PATCH("/:id", authMiddleware, adminMiddleware, h.Update)
	group.DELETE("/:id", authMiddleware, adminMiddleware, h.Delete)
}
