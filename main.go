package main

import (
	"log"
	"net/http"
	"time"

	"fridgely-be/internal/ai"
	"fridgely-be/internal/cache"
	"fridgely-be/internal/config"
	"fridgely-be/internal/controllers"
	"fridgely-be/internal/database"
	"fridgely-be/internal/imagefetch"
	"fridgely-be/internal/logger"
	"fridgely-be/internal/mealdb"
	"fridgely-be/internal/metrics"
	"fridgely-be/internal/middleware"
	"fridgely-be/internal/repository"
	"fridgely-be/internal/service"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func main() {
	// Load configuration
	cfg := config.Load()

	slogger := logger.SetupDefault(nil)

	// Connect to database
	db, err := database.NewConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Run database migrations
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Redis cache (optional - continue if Redis is unavailable)
	var cacheClient cache.Cache
	cacheClient, err = cache.NewRedisCache(cfg.RedisURL)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis (%v). Continuing without cache.", err)
		cacheClient = nil
	} else {
		log.Println("Connected to Redis cache")
	}

	// Initialize repository
	userRepo := repository.NewUserRepository(db)

	// Upstream clients share one timeout-bounded HTTP client
	upstreamTimeout := time.Duration(cfg.UpstreamTimeout) * time.Second
	httpClient := &http.Client{Timeout: upstreamTimeout}
	geminiClient := ai.NewClient(httpClient, slogger, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiBaseURL)
	mealdbClient := mealdb.NewClient(httpClient, slogger, cfg.MealDBBaseURL)
	imageFetcher := imagefetch.NewFetcher(upstreamTimeout, cfg.MaxImageBytes)

	// Initialize services
	userService := service.NewUserService(userRepo, cacheClient, slogger, time.Duration(cfg.UserCacheTTL)*time.Minute)
	recipeService := service.NewRecipeService(userService, geminiClient, mealdbClient, cacheClient, slogger, time.Duration(cfg.SearchCacheTTL)*time.Minute)
	visionService := service.NewVisionService(geminiClient, imageFetcher, userService, slogger)

	// Initialize controllers
	userController := controllers.NewUserController(userService)
	recipeController := controllers.NewRecipeController(recipeService)
	visionController := controllers.NewVisionController(visionService)
	qrcodeController := controllers.NewQRCodeController()

	// Initialize rate limiters
	generalRateLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	aiRateLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimitAIRPS), cfg.RateLimitAIBurst)

	// Create a Gin router
	router := gin.Default()
	router.Use(metrics.GinMiddleware())

	// Health check and metrics endpoints (no rate limiting)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})
	router.GET("/metrics", metrics.Handler())

	// User record endpoints, paths kept compatible with the mobile client
	user := router.Group("")
	user.Use(generalRateLimiter.LimitMiddleware())
	{
		user.POST("/user", userController.EnsureUser)
		user.POST("/updateuser", userController.AppendItems)
		user.POST("/updateItem", userController.UpdateItem)
		user.POST("/deleteItem", userController.DeleteItem)
	}

	// API v1 routes group
	api := router.Group("/api/v1")
	api.Use(generalRateLimiter.LimitMiddleware())
	{
		// AI-backed endpoints with stricter rate limiting
		aiRoutes := api.Group("")
		aiRoutes.Use(aiRateLimiter.LimitMiddleware())
		{
			aiRoutes.GET("/recipes/suggest", recipeController.SuggestRecipes)
			aiRoutes.POST("/items/analyze", visionController.AnalyzeImage)
		}

		api.GET("/recipes/search", recipeController.SearchRecipes)
		api.GET("/recipes/qr", qrcodeController.ShareRecipe)
	}

	// Start the server
	log.Printf("Server starting on http://localhost:%s", cfg.Port)
	router.Run(":" + cfg.Port)
}
