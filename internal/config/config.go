package config

import (
	"os"
	"strconv"

	"lingua_webapp/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort     string
	DatabaseURL string

	// JWTSecret signs the service session tokens; IdentitySecret verifies
	// assertions issued by the external identity provider.
	JWTSecret      string
	IdentitySecret string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	LogLevel string
	LogJSON  bool

	// Rate limits
	APIRateLimit      int
	APIRateWindow     int // seconds
	WebhookRateLimit  int
	WebhookRateWindow int // seconds

	// Leaderboard
	LeaderboardMaxLimit    int
	LeaderboardConcurrency int
}

// Load reads configuration from the environment (.env is honored in dev).
func Load() *Config {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logger.Fatal("DATABASE_URL is not set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	identitySecret := os.Getenv("IDENTITY_JWT_SECRET")
	if identitySecret == "" {
		// Fall back to the session secret for single-secret deployments.
		identitySecret = jwtSecret
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	return &Config{
		AppPort:        port,
		DatabaseURL:    dbURL,
		JWTSecret:      jwtSecret,
		IdentitySecret: identitySecret,

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       envInt("REDIS_DB", 0),

		LogLevel: envDefault("LOG_LEVEL", "info"),
		LogJSON:  os.Getenv("LOG_JSON") == "true",

		APIRateLimit:      envInt("API_RATE_LIMIT", 60),
		APIRateWindow:     envInt("API_RATE_WINDOW_SECONDS", 60),
		WebhookRateLimit:  envInt("WEBHOOK_RATE_LIMIT", 120),
		WebhookRateWindow: envInt("WEBHOOK_RATE_WINDOW_SECONDS", 60),

		LeaderboardMaxLimit:    envInt("LEADERBOARD_MAX_LIMIT", 100),
		LeaderboardConcurrency: envInt("LEADERBOARD_CONCURRENCY", 8),
	}
}

func envDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return def
}
