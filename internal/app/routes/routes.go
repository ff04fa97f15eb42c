package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/uniadvisor/internal/app/controllers"
	"github.com/yigit/uniadvisor/internal/app/models/dto"
	"github.com/yigit/uniadvisor/internal/middleware"
	"github.com/yigit/uniadvisor/internal/pkg/ratelimit"
	"github.com/yigit/uniadvisor/internal/pkg/websocket"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	chatController *controllers.ChatController,
	profileController *controllers.ProfileController,
	catalogController *controllers.CatalogController,
	visualizationController *controllers.VisualizationController,
	wsHandler *websocket.Handler,
	authMiddleware *middleware.AuthMiddleware,
	loginLimiter ratelimit.Limiter,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", middleware.RateLimit(loginLimiter), authController.Login)
	}

	// --- Public Catalog routes ---
	catalogs := v1.Group("/catalog")
	{
		catalogs.GET("/universities", catalogController.ListUniversities)
		catalogs.GET("/courses", catalogController.LookupCourses)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/chat", chatController.Chat)
		authenticated.GET("/chat/ws", wsHandler.HandleConnection)
		authenticated.GET("/chat/:chat_id", profileController.GetChat)
		authenticated.POST("/onboard", chatController.Onboard)

		authenticated.GET("/profile", profileController.GetProfile)
		authenticated.PATCH("/profile", profileController.UpdateProfile)

		authenticated.POST("/visualization/tree", visualizationController.BuildTree)
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})
}
