package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/NguemsPrince/experience-tech-plateforme-sub002/config"
	"github.com/NguemsPrince/experience-tech-plateforme-sub002/controllers"
	"github.com/NguemsPrince/experience-tech-plateforme-sub002/middleware"
	"github.com/NguemsPrince/experience-tech-plateforme-sub002/models"
	"github.com/NguemsPrince/experience-tech-plateforme-sub002/services"
)

func main() {
	log.Println("Starting Experience Tech API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	db := config.GetDB()
	if err := db.AutoMigrate(&models.User{}, &models.Service{}, &models.QuoteRequest{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Initialize the mail transport and the notification worker
	mailer, err := services.NewMailer(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize mailer: %v", err)
	}
	notifications := services.InitNotificationService(mailer, cfg.AdminEmail)

	// Initialize attachment storage when a bucket is configured
	if cfg.AWSS3Bucket != "" {
		s3Service, err := services.InitS3Service()
		if err != nil {
			log.Fatalf("Failed to initialize S3 service: %v", err)
		}
		services.InitAttachmentService(s3Service)
	} else {
		log.Println("AWS_S3_BUCKET not set, attachment uploads are disabled")
	}

	router := setupRouter(cfg)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server is running on http://localhost:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for a shutdown signal, then stop accepting requests and drain the
	// notification queue
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	notifications.Close()
	log.Println("Server stopped")
}

// setupRouter builds the full route table
func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()

	// CORS for the public website frontend
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(corsConfig))

	v1 := router.Group("/api/v1")
	{
		// Health check endpoint
		v1.GET("/health", healthCheck)

		// Database status endpoint
		v1.GET("/database/status", databaseStatus)

		// Public service catalog
		v1.GET("/services", controllers.ListServices)
		v1.GET("/services/:serviceId", controllers.GetService)

		// Public quote intake; a bearer token is used when present but never
		// required
		v1.POST("/services/:serviceId/quote",
			middleware.OptionalAuth(cfg),
			controllers.SubmitQuoteRequest,
		)

		// Authenticated user profile routes
		authenticated := v1.Group("")
		authenticated.Use(middleware.EnsureValidToken(cfg))
		{
			authenticated.POST("/users", controllers.CreateUser)
			authenticated.GET("/users/me", controllers.GetMyProfile)
			authenticated.PUT("/users/me", controllers.UpdateMyProfile)
			authenticated.POST("/uploads", controllers.UploadAttachment)
		}

		// Staff moderation routes
		admin := v1.Group("/admin")
		admin.Use(middleware.EnsureValidToken(cfg), middleware.RequireScope("manage:quotes"))
		{
			admin.GET("/quote-requests", controllers.ListQuoteRequests)
			admin.POST("/quote-requests", controllers.CreateQuoteRequest)
			admin.GET("/quote-requests/:id", controllers.GetQuoteRequest)
			admin.PUT("/quote-requests/:id", controllers.UpdateQuoteRequest)

			admin.POST("/services", controllers.CreateService)
			admin.PUT("/services/:serviceId", controllers.UpdateService)
		}
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Experience Tech API is running",
	})
}

// databaseStatus checks database connectivity and returns table information
func databaseStatus(c *gin.Context) {
	db := config.GetDB()

	// Get the underlying SQL database to check connection
	sqlDB, err := db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to get database instance",
			},
		})
		return
	}

	// Ping the database to verify connection
	if err := sqlDB.Ping(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_CONNECTION_ERROR",
				"message": "Database connection failed",
			},
		})
		return
	}

	// Get list of tables
	var tables []string
	if err := db.Raw("SELECT tablename FROM pg_tables WHERE schemaname = 'public'").Scan(&tables).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_QUERY_ERROR",
				"message": "Failed to query tables",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database connected",
		"tables":  tables,
	})
}
