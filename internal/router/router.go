package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/user/novelle/internal/handler"
	"github.com/user/novelle/internal/middleware"
)

// RegisterRoutes 注册所有路由
func RegisterRoutes(r *gin.Engine, h *handler.Handler) {
	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ==================== 公开 API ====================
	api := r.Group("/api")
	api.Use(middleware.OptionalAuth(h.Config.AppSecret))
	{
		api.GET("/config", h.AppConfig)

		api.GET("/items", h.ListItems)
		api.GET("/items/featured", h.FeaturedItems)
		api.GET("/items/:id", h.GetItem)
		api.GET("/items/:id/similar", h.SimilarItems)
		api.GET("/canvas-items", h.CanvasItems)
		api.GET("/rankings", h.Rankings)

		api.GET("/points/packages", h.ListPackages)

		// 阅读会话日志（end 是 sendBeacon 兜底上报的目标）
		api.POST("/logs/start", h.StartViewLog)
		api.POST("/logs/heartbeat", h.HeartbeatViewLog)
		api.POST("/logs/end", h.EndViewLog)
	}

	// ==================== 认证 ====================
	auth := r.Group("/api/auth")
	auth.Use(middleware.OptionalAuth(h.Config.AppSecret))
	{
		auth.GET("/google", h.GoogleLogin)
		auth.GET("/google/callback", h.GoogleCallback)
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.GET("/me", h.Me)
		auth.POST("/logout", h.Logout)
	}

	// ==================== 需要登录的 API ====================
	user := r.Group("/api")
	user.Use(middleware.RequireAuth(h.Config.AppSecret))
	{
		user.GET("/user", h.GetUser)
		user.POST("/items/:id/like", h.LikeItem)
		user.DELETE("/items/:id/like", h.UnlikeItem)
		user.GET("/history", h.ListHistory)
		user.POST("/history/sync", h.SyncHistory)

		user.POST("/create-payment-intent", h.CreatePaymentIntent)
		user.POST("/points/purchase", h.PurchasePoints)
	}
}
