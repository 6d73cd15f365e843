package api

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/runmacros/backend/config"
	"github.com/runmacros/backend/internal/middleware"
	"github.com/runmacros/backend/internal/service"
)

// SetupAPI wires services, handlers and route groups under /api/v1. The
// Redis client and S3 config may be nil; the features backed by them
// degrade instead of blocking startup.
func SetupAPI(router *gin.Engine, db *gorm.DB, redisClient *redis.Client, s3cfg *config.S3Config, cfg *config.Config) {
	authService := service.NewAuthService(db, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	goalService := service.NewGoalService(db)
	mealService := service.NewMealService(db, goalService)
	recipeService := service.NewRecipeService(db)
	foodService := service.NewFoodSearchService(cfg.FatSecret)
	llmService := service.NewLLMService(cfg.DeepSeek, redisClient)

	var images ImageStore
	if s3cfg != nil {
		images = service.NewImageService(s3cfg)
	}

	authHandler := NewAuthHandler(authService)
	mealHandler := NewMealHandler(mealService)
	goalHandler := NewGoalHandler(goalService)
	recipeHandler := NewRecipeHandler(recipeService, images)
	foodHandler := NewFoodHandler(foodService)
	aiHandler := NewAIHandler(llmService)

	v1 := router.Group("/api/v1")
	{
		authHandler.RegisterRoutes(v1)
		foodHandler.RegisterRoutes(v1)
	}

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authService))
	{
		authHandler.RegisterProtectedRoutes(protected)
		mealHandler.RegisterRoutes(protected)
		goalHandler.RegisterRoutes(protected)
		recipeHandler.RegisterRoutes(protected)
	}

	chat := v1.Group("")
	chat.Use(middleware.AuthMiddleware(authService))
	if redisClient != nil {
		chat.Use(middleware.NewChatRateLimiter(redisClient).RateLimitMiddleware())
	}
	aiHandler.RegisterRoutes(chat)
}
