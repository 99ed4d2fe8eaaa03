package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/habitquest/habit-quest-api/internal/config"
	"github.com/habitquest/habit-quest-api/internal/constants"
	"github.com/habitquest/habit-quest-api/internal/database"
	"github.com/habitquest/habit-quest-api/internal/handlers"
	"github.com/habitquest/habit-quest-api/internal/middleware"
	"github.com/habitquest/habit-quest-api/internal/repository"
	"github.com/habitquest/habit-quest-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // username (empty for default user)
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction, // true in production (HTTPS), false in development
		SameSite: 2,            // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Initialize repositories
	db := database.GetDB()
	taskRepo := repository.NewTaskRepository(db)
	userRepo := repository.NewUserRepository(db)
	creatureRepo := repository.NewCreatureRepository(db)

	// Initialize services
	progressionService := services.NewProgressionService(userRepo, creatureRepo)
	taskService := services.NewTaskService(taskRepo, progressionService)
	authService := services.NewAuthService(userRepo, creatureRepo)
	regenService := services.NewRegenerationService(taskRepo, cfg.RegenerationBatchSize, cfg.RegenerationPause)
	scheduler := services.NewRegenerationScheduler(regenService, cfg.RegenerationCronSpec)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	taskHandler := handlers.NewTaskHandler(taskService)
	pokedexHandler := handlers.NewPokedexHandler(creatureRepo)
	regenHandler := handlers.NewRegenerationHandler(scheduler, taskRepo)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Habit Quest API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth())
		{
			tasks.GET("/my-tasks", taskHandler.MyTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.PATCH("/:id/complete", taskHandler.CompleteTask)
			tasks.PATCH("/:id/edit", taskHandler.UpdateTask)
			tasks.DELETE("/:id/delete", taskHandler.DeleteTask)
		}

		// Pokedex routes (protected)
		pokedex := api.Group("/pokedex")
		pokedex.Use(middleware.RequireAuth())
		{
			pokedex.GET("", pokedexHandler.ListOwned)
		}

		// Regeneration status (protected)
		regeneration := api.Group("/regeneration")
		regeneration.Use(middleware.RequireAuth())
		{
			regeneration.GET("/status", regenHandler.Status)
		}
	}

	// Start the hourly regeneration scheduler
	if err := scheduler.Start(); err != nil {
		log.Fatalf("Failed to start regeneration scheduler: %v", err)
	}

	// Stop the scheduler cleanly on shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		scheduler.Stop()
		os.Exit(0)
	}()

	// Start server
	log.Println("Server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
