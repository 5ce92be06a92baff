package http

import (
	"github.com/gin-gonic/gin"

	"github.com/pantryscan/backend/config"
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

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		items := v1.Group("/items")
		{
			items.GET("", handler.ListItems)
			items.POST("", handler.AddItem)
			items.DELETE("/:index", handler.DeleteItem)
			items.POST("/bulk-delete", handler.BulkDeleteItems)
		}

		v1.POST("/recipes/search", handler.SearchRecipes)

		scan := v1.Group("/scan/sessions")
		{
			scan.POST("", handler.StartScan)
			scan.POST("/:id/frames", handler.SubmitScanFrame)
			scan.GET("/:id", handler.ScanStatus)
			scan.DELETE("/:id", handler.StopScan)
		}
	}

	return router
}
