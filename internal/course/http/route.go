package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/courses")

	// === Public Routes ===
	group.GET("", h.List)
	group.GET("/:code", h.Get)

	// === Admin Routes ===
	group.POST("", authMiddleware, adminMiddleware, h.Create)
	group.PATCH("/:code", authMiddleware, adminMiddleware, h.Update)
	group.DELETE("/:code", authMiddleware, adminMiddleware, h.Delete)
}
