package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// defaultJWTSecret is a development fallback; deployments must set JWT_SECRET.
const defaultJWTSecret = "dev-secret-key-change-this"

// Config holds the application configuration.
type Config struct {
	ServerPort     int
	AppEnv         string
	JWTSecret      string
	GeminiAPIKey   string // empty means the remix endpoint degrades to 500, never a crash
	GeminiModel    string
	AllowedOrigins []string
	DatabasePath   string // empty selects the in-memory user store
	DigestSchedule string
	AdminEmail     string
	AdminPassword  string
}

// Load loads configuration from environment variables or sets defaults.
// A .env file is honored when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, err
	}

	origins := strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5000"), ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}

	return &Config{
		ServerPort:     port,
		AppEnv:         getEnv("APP_ENV", "development"),
		JWTSecret:      getEnv("JWT_SECRET", defaultJWTSecret),
		GeminiAPIKey:   getEnv("GEMINI_API_KEY", ""),
		GeminiModel:    getEnv("GEMINI_MODEL", "gemini-2.0-flash-exp"),
		AllowedOrigins: origins,
		DatabasePath:   getEnv("DATABASE_PATH", ""),
		DigestSchedule: getEnv("DIGEST_SCHEDULE", "@every 10m"),
		AdminEmail:     getEnv("ADMIN_EMAIL", "admin@nextlogicai.com"),
		AdminPassword:  getEnv("ADMIN_PASSWORD", "admin123"),
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
