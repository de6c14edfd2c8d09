package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/labs")

	// === Public Routes ===
	group.GET("", h.List)
	group.GET("/:nickname", h.Get)

	// === Admin Routes ===
	group.POST("", authMiddleware, adminMiddleware, h.Create)
	group.PATCH("/:nickname", authMiddleware, adminMiddleware, h.Update)
	group.DELETE("/:nickname", authMiddleware, adminMiddleware, h.Delete)
	group.POST("/:nickname/photo", authMiddleware, adminMiddleware, h.UploadPhoto)
}
