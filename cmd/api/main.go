package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/runmacros/backend/config"
	"github.com/runmacros/backend/internal/database"
	"github.com/runmacros/backend/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Redis is optional: without it the AI chat cache and rate limiting
	// are disabled, everything else keeps working.
	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Printf("Warning: Redis unavailable, continuing without it: %v", err)
		redisClient = nil
	}

	s3cfg, err := config.NewS3Config(context.Background(), cfg.S3)
	if err != nil {
		log.Printf("Warning: S3 unavailable, image uploads disabled: %v", err)
		s3cfg = nil
	}

	srv := server.New(cfg, db, redisClient, s3cfg)

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)

	go func() {
		log.Printf("Starting server on %s:%s...", cfg.Server.Host, cfg.Server.Port)
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
