package app

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/calendar-couple/couple/pkg/httpx"
	"github.com/calendar-couple/couple/pkg/jwtx"
)

type Config struct {
	JWTSecret     string        // Required: base64 HS256 secret, at least 32 bytes decoded
	JWTIssuer     string        // Optional: "iss" claim (default: couple-api)
	JWTAudience   string        // Optional: "aud" claim of access tokens (default: couple-app)
	JWTAccessTTL  time.Duration // Optional: access token lifetime (default: 30m)
	JWTRefreshTTL time.Duration // Optional: refresh token lifetime (default: 14 days)

	RedisAddr     string // Redis address (default: localhost:6379)
	RedisPassword string
	RedisDB       int

	DatabaseFile string // Path to SQLite database file (default: ./couple.db)

	GoogleClientID     string // Google sign-in is disabled when empty
	GoogleClientSecret string
	GoogleRedirectURI  string
	GoogleTokenURI     string
	GoogleUserInfoURI  string

	KakaoClientID    string
	KakaoRedirectURI string
	KakaoAPIURI      string

	AllowedOrigins []string // CORS origins, comma separated in CORS_ALLOWED_ORIGINS (default: *)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

// LoadConfig reads the environment. Variables from a .env file in the
// working directory are loaded first without overriding the real
// environment.
func LoadConfig() Config {
	_ = godotenv.Load()

	return Config{
		JWTSecret:     os.Getenv("JWT_SECRET"),
		JWTIssuer:     getEnvOrDefault("JWT_ISSUER", "couple-api"),
		JWTAudience:   getEnvOrDefault("JWT_AUDIENCE", "couple-app"),
		JWTAccessTTL:  getEnvDurationOrDefault("JWT_ACCESS_TTL", jwtx.DefaultAccessTokenTTL),
		JWTRefreshTTL: getEnvDurationOrDefault("JWT_REFRESH_TTL", jwtx.DefaultRefreshTokenTTL),

		RedisAddr:     getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getEnvIntOrDefault("REDIS_DB", 0),

		DatabaseFile: getEnvOrDefault("DATABASE_FILE", "couple.db"),

		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURI:  os.Getenv("GOOGLE_REDIRECT_URI"),
		GoogleTokenURI:     os.Getenv("GOOGLE_TOKEN_URI"),
		GoogleUserInfoURI:  os.Getenv("GOOGLE_USERINFO_URI"),

		KakaoClientID:    os.Getenv("KAKAO_CLIENT_ID"),
		KakaoRedirectURI: os.Getenv("KAKAO_REDIRECT_URI"),
		KakaoAPIURI:      os.Getenv("KAKAO_API_URI"),

		AllowedOrigins: httpx.SplitOrigins(getEnvOrDefault("CORS_ALLOWED_ORIGINS", "*")),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

// Validate rejects configurations the process cannot start with.
func (c Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	secret, err := jwtx.DecodeSecret(c.JWTSecret)
	if err != nil {
		return fmt.Errorf("JWT_SECRET: %w", err)
	}
	if len(secret) < jwtx.MinSecretSize {
		return fmt.Errorf("JWT_SECRET must decode to at least %d bytes, got %d", jwtx.MinSecretSize, len(secret))
	}
	if c.JWTAccessTTL >= c.JWTRefreshTTL {
		return errors.New("JWT_ACCESS_TTL must be shorter than JWT_REFRESH_TTL")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT out of range: %d", c.Port)
	}
	return nil
}

// GoogleEnabled reports whether Google sign-in is configured.
func (c Config) GoogleEnabled() bool {
	return c.GoogleClientID != ""
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Plain integers are minutes.
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
