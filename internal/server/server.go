package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/runmacros/backend/config"
	"github.com/runmacros/backend/internal/api"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	cfg    *config.Config
}

// New builds the router with all middleware and routes registered.
func New(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, s3cfg *config.S3Config) *Server {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api.SetupAPI(router, db, redisClient, s3cfg, cfg)

	// The http.Server is built here, not in Start, so a Shutdown racing a
	// Start running in another goroutine always sees it.
	return &Server{
		router: router,
		cfg:    cfg,
		http: &http.Server{
			Addr:    cfg.Server.Host + ":" + cfg.Server.Port,
			Handler: router,
		},
	}
}

// Start runs the HTTP server until it fails or is shut down.
func (s *Server) Start() error {
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
