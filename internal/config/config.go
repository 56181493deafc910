package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Env          string
	LogLevel     string
	Port         string
	ClientOrigin string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Sessions
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	SessionSecret string
	SessionTTL    time.Duration

	// Google OAuth
	GoogleClientID     string
	GoogleClientSecret string
	GoogleCallbackURL  string

	// Quotes
	FinnhubAPIKey string
	QuoteTimeout  time.Duration
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		// Server
		Env:          getEnv("ENV", "development"),
		LogLevel:     getEnv("LOG_LEVEL", ""),
		Port:         getEnv("PORT", "4000"),
		ClientOrigin: getEnv("CLIENT_ORIGIN", "http://localhost:5173"),

		// Database
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "investmate"),
		DBPassword: getEnv("DB_PASSWORD", "investmate"),
		DBName:     getEnv("DB_NAME", "investmate"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		// Sessions
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		SessionSecret: getEnv("SESSION_SECRET", "secret"),

		// Google OAuth
		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleCallbackURL:  getEnv("GOOGLE_CALLBACK_URL", "http://localhost:4000/auth/google/callback"),

		// Quotes
		FinnhubAPIKey: getEnv("FINNHUB_API_KEY", ""),
	}

	dbStr := getEnv("REDIS_DB", "0")
	redisDB, err := strconv.Atoi(dbStr)
	if err != nil {
		log.Printf("Warning: invalid REDIS_DB value '%s', falling back to 0\n", dbStr)
		redisDB = 0
	}
	config.RedisDB = redisDB

	config.SessionTTL = getDuration("SESSION_TTL", 7*24*time.Hour)
	config.QuoteTimeout = getDuration("QUOTE_TIMEOUT", 10*time.Second)

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDuration parses a duration variable, falling back on missing or
// non-positive values.
func getDuration(key string, defaultValue time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Printf("Warning: invalid %s value '%s', falling back to %s\n", key, raw, defaultValue)
		return defaultValue
	}
	return d
}
