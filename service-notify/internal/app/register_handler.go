package app

import (
	"flows-notify/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func (a *appServer) RegisterHandlers() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	handler := gin.New()

	// middlewares
	logger.Debugf("allowing CORS origins: %v", a.config.CORS.AllowedOrigins)
	logger.Debugf("allowing CORS methods: %v", a.config.CORS.AllowedMethods)
	logger.Debugf("allowing CORS headers: %v", a.config.CORS.AllowedHeaders)

	// cors middleware
	corsConfig := cors.Config{
		AllowOrigins:     a.config.CORS.AllowedOrigins,
		AllowMethods:     a.config.CORS.AllowedMethods,
		AllowHeaders:     a.config.CORS.AllowedHeaders,
		AllowCredentials: true,
		AllowOriginFunc: func(origin string) bool {
			for _, allowedOrigin := range a.config.CORS.AllowedOrigins {
				if origin == allowedOrigin {
					return true
				}
			}
			return false
		},
	}
	handler.Use(cors.New(corsConfig))
	handler.Use(gin.Logger())
	handler.Use(gin.Recovery())

	// health check
	handler.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy"})
	})

	adminAuth := a.middleware.AdminAuth()

	// api routes
	api := handler.Group("/api/v1")

	// public routes (no authentication required)
	{
		invitations := api.Group("/invitations")
		{
			invitations.POST("/resolve", a.inviteController.ResolveInvitation)
		}
	}

	// admin-only routes (API key required)
	emails := api.Group("/emails")
	emails.Use(adminAuth)
	{
		emails.POST("/send", a.emailController.SendEmail)
		emails.GET("/health", a.emailController.EmailHealth)
		emails.POST("/test", a.notificationController.SendTestEmail)
	}

	notifications := api.Group("/notifications")
	notifications.Use(adminAuth)
	{
		notifications.POST("/:id/send", a.notificationController.SendNotification)
		notifications.POST("/process", a.notificationController.ProcessNotifications)
	}

	// local development helpers, never exposed in production
	if a.config.IsDevelopment() {
		dev := handler.Group("/dev")
		{
			dev.POST("/error-reports", a.errorReportController.HandleErrorReport)
		}
	}

	return handler
}
