package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string

	// Database
	DatabaseURL string

	// Redis
	RedisURL string

	// JWT
	JWTSecret string

	// Learner account
	AdminEmail        string
	AdminPasswordHash string

	// Review sessions
	SessionTTLMinutes int

	// Workers
	WorkerCount int

	// Dictionary proxy
	DictionaryAPIURL string

	// Frontend
	FrontendURL string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:              getEnvOrDefault("PORT", "8080"),
		Env:               getEnvOrDefault("ENV", "development"),
		DatabaseURL:       mustGetEnv("DATABASE_URL"),
		RedisURL:          mustGetEnv("REDIS_URL"),
		JWTSecret:         mustGetEnv("JWT_SECRET"),
		AdminEmail:        mustGetEnv("ADMIN_EMAIL"),
		AdminPasswordHash: mustGetEnv("ADMIN_PASSWORD_HASH"),
		SessionTTLMinutes: getEnvAsIntOrDefault("SESSION_TTL_MINUTES", 60),
		WorkerCount:       getEnvAsIntOrDefault("WORKER_COUNT", 2),
		DictionaryAPIURL:  getEnvOrDefault("DICTIONARY_API_URL", "https://api.dictionaryapi.dev/api/v2/entries/en"),
		FrontendURL:       getEnvOrDefault("FRONTEND_URL", "http://localhost:5173"),
	}

	return cfg
}

func mustGetEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return val
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
