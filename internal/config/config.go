package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             string
	DatabaseURL      string
	RedisURL         string
	GeminiAPIKey     string  // API key for the generative AI endpoint
	GeminiModel      string  // Model name, e.g. gemini-1.5-flash
	GeminiBaseURL    string  // Override for tests / regional endpoints
	MealDBBaseURL    string  // Public recipe database base URL
	UpstreamTimeout  int     // Timeout in seconds for AI and recipe calls
	SearchCacheTTL   int     // Recipe search cache TTL in minutes
	UserCacheTTL     int     // User record cache TTL in minutes
	RateLimitRPS     float64 // Rate limit for general API endpoints (requests per second)
	RateLimitBurst   int     // Burst size for rate limiting
	RateLimitAIRPS   float64 // Rate limit for AI endpoints (stricter)
	RateLimitAIBurst int     // Burst size for AI endpoints
	MaxImageBytes    int64   // Maximum accepted image size for analysis
}

func Load() *Config {
	// Try to load .env file (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables or defaults")
	}

	return &Config{
		Port:             getEnv("PORT", "3000"),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		RedisURL:         getEnv("REDIS_URL", ""),
		GeminiAPIKey:     getEnv("GEMINI_API_KEY", ""),
		GeminiModel:      getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		GeminiBaseURL:    getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
		MealDBBaseURL:    getEnv("MEALDB_BASE_URL", "https://www.themealdb.com/api/json/v1/1"),
		UpstreamTimeout:  getEnvInt("UPSTREAM_TIMEOUT_SECONDS", 30),
		SearchCacheTTL:   getEnvInt("SEARCH_CACHE_TTL_MINUTES", 60),
		UserCacheTTL:     getEnvInt("USER_CACHE_TTL_MINUTES", 10),
		RateLimitRPS:     getEnvFloat("RATE_LIMIT_RPS", 10),
		RateLimitBurst:   getEnvInt("RATE_LIMIT_BURST", 20),
		RateLimitAIRPS:   getEnvFloat("RATE_LIMIT_AI_RPS", 1),
		RateLimitAIBurst: getEnvInt("RATE_LIMIT_AI_BURST", 3),
		MaxImageBytes:    int64(getEnvInt("MAX_IMAGE_BYTES", 8<<20)),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
