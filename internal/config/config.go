package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var AppEnv Config

type Config struct {
	MongoURI       string
	DBName         string
	JWTSecret      string
	AccessTokenTTL time.Duration

	// BaseURL is the externally reachable address used in verification links.
	BaseURL string

	AdminEmail    string
	AdminPassword string

	GoogleClientID string

	LLMAPIKey  string
	LLMBaseURL string
	LLMModel   string

	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string

	RedisAddr     string
	RedisPassword string

	ExternalCallTimeout time.Duration
	RecommendCacheTTL   time.Duration

	SigninMaxAttempts int
	SigninWindow      time.Duration
}

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}
	AppEnv = Config{
		MongoURI:       getEnvOrDefault("MONGO_URI", ""),
		DBName:         getEnvOrDefault("DB_NAME", "solarmarket"),
		JWTSecret:      getEnvOrDefault("JWT_SECRET", ""),
		AccessTokenTTL: getDurationEnv("ACCESS_TOKEN_TTL", 20, time.Minute),

		BaseURL: getEnvOrDefault("BASE_URL", "http://localhost:8080"),

		AdminEmail:    getEnvOrDefault("ADMIN_EMAIL", ""),
		AdminPassword: getEnvOrDefault("ADMIN_PASSWORD", ""),

		GoogleClientID: getEnvOrDefault("GOOGLE_CLIENT_ID", ""),

		LLMAPIKey:  getEnvOrDefault("LLM_API_KEY", ""),
		LLMBaseURL: getEnvOrDefault("LLM_BASE_URL", "https://generativelanguage.googleapis.com/v1beta/openai"),
		LLMModel:   getEnvOrDefault("LLM_MODEL", "gemini-2.0-flash"),

		SMTPHost: getEnvOrDefault("SMTP_HOST", ""),
		SMTPPort: getEnvOrDefault("SMTP_PORT", "465"),
		SMTPUser: getEnvOrDefault("SMTP_USER", ""),
		SMTPPass: getEnvOrDefault("SMTP_PASS", ""),

		RedisAddr:     getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnvOrDefault("REDIS_PASSWORD", ""),

		ExternalCallTimeout: getDurationEnv("EXTERNAL_CALL_TIMEOUT", 5, time.Second),
		RecommendCacheTTL:   getDurationEnv("RECOMMEND_CACHE_TTL", 6, time.Hour),

		SigninMaxAttempts: getIntEnv("SIGNIN_MAX_ATTEMPTS", 10),
		SigninWindow:      getDurationEnv("SIGNIN_WINDOW", 15, time.Minute),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue int, unit time.Duration) time.Duration {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return time.Duration(parsed) * unit
		}
	}
	return time.Duration(defaultValue) * unit
}

func getIntEnv(key string, defaultValue int) int {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}
