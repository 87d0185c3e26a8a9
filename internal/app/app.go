package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	apiHTTP "barangay-egov/internal/controller/http"
	"barangay-egov/internal/repo/persistent"
	"barangay-egov/internal/usecase"
	"barangay-egov/pkg/config"
	"barangay-egov/pkg/jwt"
	"barangay-egov/pkg/logger"
	"barangay-egov/pkg/middleware"
	"barangay-egov/pkg/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "barangay-egov/docs" // Swagger docs
)

func Run(cfg *config.Config, log *logger.Logger, db *gorm.DB, redisClient *redis.Client) {
	jwtService := jwt.NewService(cfg.JWTSecret)

	// Offsite backup copies are optional; without credentials backups stay local
	var offsiteClient *storage.Client
	if cfg.AWSAccessKeyID != "" && cfg.S3BucketName != "" {
		client, err := storage.NewClient(cfg)
		if err != nil {
			log.Warn("Offsite backup storage unavailable: %v", err)
		} else {
			offsiteClient = client
		}
	}

	// Initialize Repositories
	notificationRepo := persistent.NewNotificationRepository(db)
	residentRepo := persistent.NewResidentRepository(db)
	announcementRepo := persistent.NewAnnouncementRepository(db)
	activityLogRepo := persistent.NewActivityLogRepository(db)
	staffRepo := persistent.NewStaffRepository(db)

	// Initialize UseCases
	notificationUseCase := usecase.NewNotificationUseCase(notificationRepo, residentRepo)
	activityLogUseCase := usecase.NewActivityLogUseCase(activityLogRepo, residentRepo, log)
	announcementUseCase := usecase.NewAnnouncementUseCase(announcementRepo, notificationRepo, log)
	backupUseCase := usecase.NewBackupUseCase(cfg, offsiteClient, log)
	permissionUseCase := usecase.NewPermissionUseCase(staffRepo)

	// Initialize HTTP handlers
	notificationHandler := apiHTTP.NewNotificationHandler(notificationUseCase, log)
	announcementHandler := apiHTTP.NewAnnouncementHandler(announcementUseCase, activityLogUseCase, log)
	activityLogHandler := apiHTTP.NewActivityLogHandler(activityLogUseCase, log)
	backupHandler := apiHTTP.NewBackupHandler(backupUseCase, activityLogUseCase, log)
	permissionHandler := apiHTTP.NewPermissionHandler(permissionUseCase, log)

	// Setup router
	r := gin.Default()

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000", "*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	rateLimit := middleware.RateLimitMiddleware(redisClient, cfg.RateLimitPerMinute, time.Minute)

	api := r.Group("/api/v1")
	// Protected routes - require authentication
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(jwtService))
	{
		notifications := protected.Group("/notifications")
		notifications.Use(rateLimit)
		{
			notifications.GET("", notificationHandler.GetNotifications)
			notifications.POST("/:id/read", notificationHandler.MarkAsRead)
			notifications.PATCH("/:id/read", notificationHandler.MarkAsRead)
			notifications.POST("/read-all", notificationHandler.MarkAllAsRead)
			notifications.PATCH("/read-all", notificationHandler.MarkAllAsRead)
		}

		protected.GET("/announcements", announcementHandler.GetAnnouncementsForResidents)
		protected.GET("/user/permissions", permissionHandler.GetModulePermissions)

		// Admin routes - restricted to back-office roles
		admin := protected.Group("/admin")
		admin.Use(middleware.RequireRole("admin", "staff"))
		{
			admin.GET("/announcements", announcementHandler.ListAnnouncements)
			admin.POST("/announcements", announcementHandler.CreateAnnouncement)
			admin.GET("/announcements/:id", announcementHandler.GetAnnouncement)
			admin.PUT("/announcements/:id", announcementHandler.UpdateAnnouncement)
			admin.DELETE("/announcements/:id", announcementHandler.DeleteAnnouncement)
			admin.POST("/announcements/:id/publish", announcementHandler.PublishAnnouncement)

			admin.GET("/activity-logs", activityLogHandler.ListLogs)
			admin.GET("/activity-logs/statistics", activityLogHandler.GetStatistics)
			admin.GET("/activity-logs/filter-options", activityLogHandler.GetFilterOptions)
			admin.GET("/activity-logs/export", activityLogHandler.ExportLogs)
			admin.POST("/activity-logs/cleanup", activityLogHandler.CleanupLogs)
			admin.GET("/activity-logs/inactive-residents", activityLogHandler.GetInactiveResidents)
			admin.POST("/activity-logs/flag-inactive", activityLogHandler.FlagInactiveResidents)
			admin.GET("/activity-logs/flagged-count", activityLogHandler.GetFlaggedCount)
			admin.GET("/activity-logs/:id", activityLogHandler.GetLog)

			admin.GET("/backups", backupHandler.ListBackups)
			admin.POST("/backups", backupHandler.CreateBackup)
			admin.GET("/backups/statistics", backupHandler.GetStatistics)
			admin.GET("/backups/:filename/download", backupHandler.DownloadBackup)
			admin.DELETE("/backups/:filename", backupHandler.DeleteBackup)
		}
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		log.Info("Barangay e-governance service starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down service...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Close(); err != nil {
		log.Error("Error closing Redis: %v", err)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
		panic(err)
	}

	log.Info("Service exited")
}
