package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, optionalAuth gin.HandlerFunc) {
	group := g.Group("/schedules")

	// === Public (guest-readable) Routes ===
	group.GET("", optionalAuth, h.List)
	group.GET("/availability", optionalAuth, h.Availability)
	group.GET("/by-lab/:nickname", optionalAuth, h.ListByLab)
	group.GET("/:id", optionalAuth, h.Get)

	// === Authenticated Routes ===
	group.POST("", authMiddleware, h.Create)
	group.PATCH("/:id", authMiddleware, h.Update)
}
