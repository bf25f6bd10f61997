package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort int

	// Database configuration
	DatabaseHost     string
	DatabasePort     string
	DatabaseName     string
	DatabaseUser     string
	DatabasePassword string

	// Redis configuration
	RedisHost     string
	RedisPassword string
	RedisPort     string

	// LLM configuration
	LLM LLMConfig

	// Engine configuration
	Engine EngineConfig
}

// LLMConfig holds the external insight/explanation service configuration
type LLMConfig struct {
	Enabled        bool
	Endpoint       string
	APIKey         string
	Model          string
	TimeoutSeconds int
}

// EngineConfig holds deterministic pipeline parameters
type EngineConfig struct {
	// DemoSeed seeds the demo transaction generator. 0 means derive
	// from the wall clock, any other value makes demo output
	// reproducible.
	DemoSeed int64

	// InsightCacheTTLMinutes bounds the LLM explanation cache.
	InsightCacheTTLMinutes int
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() *Config {
	// Load .env file if exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		ServerPort: getEnvInt("SERVER_PORT", 8080),

		// Database configuration
		DatabaseHost:     getEnvOrDefault("DB_HOST", "localhost"),
		DatabasePort:     getEnvOrDefault("DB_PORT", "5432"),
		DatabaseName:     getEnvOrDefault("DB_NAME", "finpulse"),
		DatabaseUser:     getEnvOrDefault("DB_USER", "finpulse"),
		DatabasePassword: getEnvOrDefault("DB_PASSWORD", "finpulse123"),

		// Redis configuration
		RedisHost:     getEnvOrDefault("REDIS_HOST", "localhost"),
		RedisPort:     getEnvOrDefault("REDIS_PORT", "6379"),
		RedisPassword: getEnvOrDefault("REDIS_PASSWORD", ""),

		// LLM configuration
		LLM: LLMConfig{
			Enabled:        getEnvOrDefault("LLM_ENABLED", "false") == "true",
			Endpoint:       getEnvOrDefault("LLM_ENDPOINT", "https://api.mistral.ai/v1"),
			APIKey:         getEnvOrDefault("LLM_API_KEY", ""),
			Model:          getEnvOrDefault("LLM_MODEL", "mistral-small-latest"),
			TimeoutSeconds: getEnvInt("LLM_TIMEOUT_SECONDS", 20),
		},

		// Engine configuration
		Engine: EngineConfig{
			DemoSeed:               int64(getEnvInt("ENGINE_DEMO_SEED", 0)),
			InsightCacheTTLMinutes: getEnvInt("ENGINE_INSIGHT_CACHE_TTL", 60),
		},
	}
}

// getEnvInt gets environment variable as int or returns default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var intValue int
	if _, err := fmt.Sscanf(value, "%d", &intValue); err != nil {
		return defaultValue
	}
	return intValue
}

// getEnvOrDefault gets environment variable or returns default value
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
