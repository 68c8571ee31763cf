package api

import (
	"net/http"

	"meetingmate-backend/internal/auth/delivery"
	authUsecase "meetingmate-backend/internal/auth/usecase"
	meetingDelivery "meetingmate-backend/internal/meeting/delivery"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, authUc authUsecase.AuthUsecase, meetingHandler *meetingDelivery.MeetingHandler) {
	authHandler := delivery.NewAuthHandler(authUc)

	api := r.Group("/api/v1")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.GET("/google", authHandler.GoogleLogin)
			auth.GET("/google/callback", authHandler.GoogleCallback)
			auth.GET("/me", delivery.AuthMiddleware(authUc), authHandler.Me)
		}

		// Drive push notifications (no auth: Google identifies itself
		// via the channel token header)
		api.POST("/webhooks/drive", meetingHandler.DriveWebhook)

		// Meeting routes (protected)
		meetings := api.Group("/meetings")
		meetings.Use(delivery.AuthMiddleware(authUc))
		{
			meetings.GET("/summaries", meetingHandler.ListSummaries)
			meetings.GET("/summaries/:id", meetingHandler.GetSummary)
			meetings.POST("/sync", meetingHandler.RunIngestion)
			meetings.POST("/scan-gmail", meetingHandler.ScanGmail)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(delivery.AuthMiddleware(authUc))
		{
			tasks.GET("", meetingHandler.ListTasks)
			tasks.GET("/google-tasks", meetingHandler.ListGoogleTasks)
			tasks.POST("/sync/:id", meetingHandler.SyncTasks)
			tasks.POST("/sync-all", meetingHandler.SyncAllTasks)
			tasks.PATCH("/:summaryId/:taskId/status", meetingHandler.UpdateTaskStatus)
		}

		// Calendar routes (protected)
		calendar := api.Group("/calendar")
		calendar.Use(delivery.AuthMiddleware(authUc))
		{
			calendar.GET("/events", meetingHandler.ListCalendarEvents)
			calendar.POST("/events", meetingHandler.CreateCalendarEvent)
			calendar.GET("/events/:id", meetingHandler.GetCalendarEvent)
		}

		// Notification routes (protected)
		notifications := api.Group("/notifications")
		notifications.Use(delivery.AuthMiddleware(authUc))
		{
			notifications.GET("", meetingHandler.ListNotifications)
			notifications.POST("/:id/mark-read", meetingHandler.MarkNotificationRead)
			notifications.GET("/unread-count", meetingHandler.UnreadCount)
		}
	}
}
