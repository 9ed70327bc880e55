package main

import (
	"context"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sumsori/sumsori-api/internal/api"
	"github.com/sumsori/sumsori-api/internal/auth"
	"github.com/sumsori/sumsori-api/internal/cache"
	"github.com/sumsori/sumsori-api/internal/config"
	"github.com/sumsori/sumsori-api/internal/db"
	"github.com/sumsori/sumsori-api/internal/demo"
	"github.com/sumsori/sumsori-api/internal/pipeline"
	"github.com/sumsori/sumsori-api/internal/services"
	"github.com/sumsori/sumsori-api/internal/storage"
)

func main() {
	log.Println("Starting Sumsori API...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database
	database, err := db.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()
	log.Println("Connected to database")

	// Connect to Redis — optional, the API degrades to uncached reads and
	// unlimited generation when it is not configured
	var shareCache *cache.Cache
	if cfg.RedisURL != "" {
		shareCache, err = cache.New(cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to connect to redis: %v", err)
		}
		defer shareCache.Close()
	} else {
		log.Println("WARNING: No REDIS_URL set — share cache and rate limiting disabled")
	}

	// Initialize storage
	stor := storage.New(cfg.SupabaseURL, cfg.SupabaseServiceKey)
	log.Println("Initialized Supabase storage")

	// Initialize generation services
	gemini := services.NewGeminiService(cfg.GeminiKey)

	var moderator api.Moderator
	if cfg.OpenAIKey != "" {
		moderator = services.NewModerationService(cfg.OpenAIKey)
		log.Println("Personal message moderation enabled")
	} else {
		log.Println("WARNING: No OPENAI_API_KEY set — message moderation disabled")
	}

	sessions := auth.NewResolver(cfg.SessionSecret)
	if cfg.SessionSecret == "" {
		log.Println("WARNING: No SESSION_SECRET set — all requests are anonymous")
	}

	// Build pipelines
	demos := demo.NewRegistry(rand.New(rand.NewSource(time.Now().UnixNano())))
	timeout := time.Duration(cfg.PipelineTimeoutSeconds) * time.Second
	voicePipeline := pipeline.NewVoicePipeline(gemini, gemini, stor, database, demos, cfg.ImageBucket, timeout)
	textPipeline := pipeline.NewTextPipeline(gemini, gemini, gemini, stor, database, demos, cfg.ImageBucket, cfg.AudioBucket, timeout)

	// Create API handler
	var handlerCache api.ShareCache
	var limiter api.Limiter
	if shareCache != nil {
		handlerCache = shareCache
		limiter = shareCache
	}
	handler := api.NewHandler(voicePipeline, textPipeline, database, handlerCache, moderator, sessions)
	router := api.NewRouter(handler, api.RouterConfig{
		CorsAllowedOrigins:  cfg.CorsAllowedOrigins,
		Limiter:             limiter,
		Sessions:            sessions,
		GenerationRateLimit: cfg.GenerationRateLimit,
	})

	// Start HTTP server
	server := &http.Server{
		Addr:    ":" + cfg.APIPort,
		Handler: router,
	}

	go func() {
		log.Printf("API server listening on :%s", cfg.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
