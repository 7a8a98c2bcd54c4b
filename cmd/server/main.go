package main

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/velinpetkov/task-tracker-api/internal/config"
	"github.com/velinpetkov/task-tracker-api/internal/database"
	"github.com/velinpetkov/task-tracker-api/internal/handlers"
	"github.com/velinpetkov/task-tracker-api/internal/logger"
	"github.com/velinpetkov/task-tracker-api/internal/middleware"
	"github.com/velinpetkov/task-tracker-api/internal/repository"
	"github.com/velinpetkov/task-tracker-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log := logger.New(cfg.GinMode)
	defer log.Sync()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	// Wire repositories, services, and handlers
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	tokenService := services.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	authService := services.NewAuthService(userRepo, tokenService)
	taskService := services.NewTaskService(taskRepo)

	authHandler := handlers.NewAuthHandler(authService)
	taskHandler := handlers.NewTaskHandler(taskService)

	// Initialize Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Metrics())

	// Health check and metrics endpoints
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Task Tracker API is running",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public routes
	r.POST("/register", authHandler.Register)
	r.POST("/login", authHandler.Login)

	// Protected routes
	authed := r.Group("/")
	authed.Use(middleware.RequireAuth(tokenService))
	{
		authed.GET("/me", authHandler.GetCurrentUser)
		authed.PUT("/profile/:user_id", authHandler.UpdateProfile)
		authed.GET("/tasks", taskHandler.ListTasks)
		authed.POST("/tasks", taskHandler.CreateTask)
		authed.PUT("/tasks/:task_id", taskHandler.UpdateTask)
		authed.DELETE("/tasks/:task_id", taskHandler.DeleteTask)
		authed.GET("/task-statistics", taskHandler.TaskStatistics)
	}

	// Start server
	log.Info("server starting", zap.String("port", cfg.HTTPPort))
	if err := r.Run(":" + cfg.HTTPPort); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}
