package http

import (
	"github.com/gin-gonic/gin"

	"github.com/cardcompass/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))
	router.Use(RateLimitMiddleware(cfg.RateLimit.PerIP))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		chat := v1.Group("/chat")
		{
			chat.POST("/start", handler.StartChat)
			chat.POST("/message", handler.SendMessage)
			chat.GET("/:sessionId", handler.GetConversation)
			chat.POST("/:sessionId/reset", handler.ResetConversation)
		}

		recommendations := v1.Group("/recommendations")
		{
			recommendations.POST("", handler.GetRecommendations)
			recommendations.GET("/:sessionId", handler.GetRecommendationsBySession)
			recommendations.POST("/simulate", handler.SimulateRewards)
		}

		cards := v1.Group("/cards")
		{
			cards.GET("", handler.ListCards)
			cards.GET("/:id", handler.GetCard)
			cards.GET("/:id/explain", handler.ExplainCard)
		}

		v1.POST("/compare", handler.CompareCards)
	}

	return router
}
