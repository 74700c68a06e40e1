package routes

import (
	"log"

	"github.com/gin-gonic/gin"

	"restorebot/internal/apis/middlewares"
	"restorebot/internal/di"
)

func SetupRestoreRoutes(router *gin.Engine) {
	restoreHandler, err := di.GetRestoreHandler()
	if err != nil {
		log.Fatalf("Failed to get restore handler: %v", err)
	}

	// Restoration runs write into the target store; everything is protected.
	restore := router.Group("/api/restore")
	restore.Use(middlewares.AuthMiddleware())
	{
		restore.POST("/runs", restoreHandler.StartRun)
		restore.GET("/runs", restoreHandler.ListRuns)
		restore.GET("/runs/:id", restoreHandler.GetRun)
		restore.DELETE("/runs/:id", restoreHandler.CancelRun)
	}
}
