package routes

import (
	"github.com/labstack/echo/v4"

	"smartexpiry/internal/auth"
	"smartexpiry/internal/handlers"
)

func SetupRoutes(api *echo.Group) {
	// Public routes
	api.GET("/health", handlers.HealthCheck)

	// Auth routes with rate limiting
	api.POST("/register", handlers.Register, auth.RateLimitMiddleware)
	api.POST("/login", handlers.Login, auth.RateLimitMiddleware)

	// Protected routes
	api.Use(auth.JWTMiddleware)

	// Item routes
	items := api.Group("/items")
	items.POST("", handlers.CreateItem)
	items.GET("", handlers.GetItems)
	items.DELETE("/:id", handlers.DeleteItem)

	api.GET("/categories", handlers.GetCategories)

	// Notification routes
	notifications := api.Group("/notifications")
	notifications.GET("", handlers.GetNotifications)
	notifications.PUT("/read-all", handlers.MarkAllNotificationsRead)
	notifications.PUT("/:id/read", handlers.MarkNotificationRead)

	// Expiry engine routes
	api.GET("/check-expiring-items", handlers.CheckExpiringItems)
	api.POST("/trigger-background-jobs", handlers.TriggerBackgroundJobs)
	api.POST("/refresh-statuses", handlers.RefreshStatuses)

	// Job routes
	jobs := api.Group("/jobs")
	jobs.POST("/pipeline", handlers.EnqueuePipelineJob)
	jobs.GET("/:id", handlers.GetJobStatus)

	// User settings routes
	api.GET("/user/settings", handlers.GetUserSettings)
	api.PUT("/user/settings", handlers.UpdateUserSettings)
}
