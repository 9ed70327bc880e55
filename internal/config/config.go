package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	APIPort            string
	CorsAllowedOrigins string // Comma-separated allowed origins (empty = *, dev mode)

	// Database
	DatabaseURL string

	// Redis (optional — share-view cache and rate limiting are skipped when empty)
	RedisURL string

	// Supabase storage
	SupabaseURL        string
	SupabaseServiceKey string
	ImageBucket        string
	AudioBucket        string

	// Gemini (analysis, TTS, image generation)
	GeminiKey string

	// OpenAI (optional — personal message moderation is skipped when empty)
	OpenAIKey string

	// Sessions
	SessionSecret string

	// Pipeline
	PipelineTimeoutSeconds int

	// Rate limiting (per caller, per minute; 0 disables)
	GenerationRateLimit int
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	_ = godotenv.Load()

	cfg := &Config{
		APIPort:                getEnv("API_PORT", "8080"),
		CorsAllowedOrigins:     getEnv("CORS_ALLOWED_ORIGINS", ""),
		DatabaseURL:            getEnv("DATABASE_URL", ""),
		RedisURL:               getEnv("REDIS_URL", ""),
		SupabaseURL:            getEnv("SUPABASE_URL", ""),
		SupabaseServiceKey:     getEnv("SUPABASE_SERVICE_KEY", ""),
		ImageBucket:            getEnv("IMAGE_BUCKET", "card-images"),
		AudioBucket:            getEnv("AUDIO_BUCKET", "card-audio"),
		GeminiKey:              getEnv("GEMINI_API_KEY", ""),
		OpenAIKey:              getEnv("OPENAI_API_KEY", ""),
		SessionSecret:          getEnv("SESSION_SECRET", ""),
		PipelineTimeoutSeconds: getEnvInt("PIPELINE_TIMEOUT_SECONDS", 60),
		GenerationRateLimit:    getEnvInt("GENERATION_RATE_LIMIT", 10),
	}

	// Validate required fields
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if cfg.GeminiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}

	if cfg.SupabaseURL == "" || cfg.SupabaseServiceKey == "" {
		return nil, fmt.Errorf("SUPABASE_URL and SUPABASE_SERVICE_KEY are required")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		i, err := strconv.Atoi(value)
		if err == nil {
			return i
		}
	}
	return defaultValue
}
