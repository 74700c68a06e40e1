package routes

import (
	"log"

	"github.com/gin-gonic/gin"

	"restorebot/internal/apis/middlewares"
	"restorebot/internal/di"
)

func SetupAuthRoutes(router *gin.Engine) {
	authHandler, err := di.GetAuthHandler()
	if err != nil {
		log.Fatalf("Failed to get auth handler: %v", err)
	}

	// Auth routes
	auth := router.Group("/api/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.GET("/refresh-token", authHandler.RefreshToken)
	}

	protected := router.Group("/api/auth")
	protected.Use(middlewares.AuthMiddleware())
	{
		protected.POST("/logout", authHandler.Logout)
	}
}
