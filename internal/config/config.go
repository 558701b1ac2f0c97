package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/orchid-haven/orchid-backend/internal/utils"
)

const minProductionSecretLen = 32

type RateLimit struct {
	Max    int
	Window time.Duration
}

type Config struct {
	Environment string
	ServerPort  string

	// JWTSecret signs admin tokens. Generated is true when it was made up
	// at start-up because none was configured (development only).
	JWTSecret          string
	JWTSecretGenerated bool

	FrontendURL    string
	AllowedOrigins []string
	// PublicBaseURL prefixes upload URLs; empty means derive from the request.
	PublicBaseURL string
	UploadDir     string

	AuditLogPath       string
	AuditLogMaxEntries int

	RedisURL string

	AdminUsername     string
	AdminPasswordHash string
	SeedData          bool

	// Rate limiting
	RateLimitEnabled bool
	AuthRateLimit    RateLimit
	APIRateLimit     RateLimit
	UploadRateLimit  RateLimit
}

// Load reads .env (if present) and then the environment.
func Load() (*Config, error) {
	// Try to load .env file, but don't fail if it doesn't exist
	// (Docker containers use environment variables directly)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file loaded, using environment only")
	}
	return FromEnv()
}

// FromEnv builds the configuration from environment variables alone.
func FromEnv() (*Config, error) {
	environment := getEnv("ENVIRONMENT", "development")
	production := environment == "production"
	frontendURL := getEnv("FRONTEND_URL", "http://localhost:3000")

	cfg := &Config{
		Environment:    environment,
		ServerPort:     getEnv("PORT", "5000"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		FrontendURL:    frontendURL,
		AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{frontendURL}),
		PublicBaseURL:  strings.TrimRight(os.Getenv("PUBLIC_BASE_URL"), "/"),
		UploadDir:      getEnv("UPLOAD_DIR", "uploads"),

		AuditLogPath:       getEnv("AUDIT_LOG_PATH", "data/activity.log"),
		AuditLogMaxEntries: getEnvAsInt("AUDIT_LOG_MAX_ENTRIES", 1000),

		RedisURL: os.Getenv("REDIS_URL"),

		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		SeedData:      getEnvAsBool("SEED_DATA", true),

		RateLimitEnabled: getEnvAsBool("RATE_LIMIT_ENABLED", production),
		AuthRateLimit: RateLimit{
			Max:    getEnvAsInt("RATE_LIMIT_AUTH_MAX", 5),
			Window: getEnvAsDuration("RATE_LIMIT_AUTH_WINDOW", "15m"),
		},
		APIRateLimit: RateLimit{
			Max:    getEnvAsInt("RATE_LIMIT_API_MAX", 100),
			Window: getEnvAsDuration("RATE_LIMIT_API_WINDOW", "15m"),
		},
		UploadRateLimit: RateLimit{
			Max:    getEnvAsInt("RATE_LIMIT_UPLOAD_MAX", 10),
			Window: getEnvAsDuration("RATE_LIMIT_UPLOAD_WINDOW", "1h"),
		},
	}

	if err := cfg.resolveSecret(); err != nil {
		return nil, err
	}
	if err := cfg.resolveAdminPassword(); err != nil {
		return nil, err
	}
	if cfg.RateLimitEnabled && cfg.RedisURL == "" {
		return nil, errors.New("RATE_LIMIT_ENABLED requires REDIS_URL")
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) resolveSecret() error {
	if c.JWTSecret != "" {
		if c.IsProduction() && len(c.JWTSecret) < minProductionSecretLen {
			return fmt.Errorf("JWT_SECRET must be at least %d characters in production", minProductionSecretLen)
		}
		return nil
	}
	if c.IsProduction() {
		return errors.New("JWT_SECRET is required in production")
	}

	secret, err := randomSecret()
	if err != nil {
		return fmt.Errorf("generate JWT secret: %w", err)
	}
	c.JWTSecret = secret
	c.JWTSecretGenerated = true
	return nil
}

// resolveAdminPassword prefers a pre-computed hash; a plain ADMIN_PASSWORD
// is hashed once here and never kept.
func (c *Config) resolveAdminPassword() error {
	if hash := os.Getenv("ADMIN_PASSWORD_HASH"); hash != "" {
		if err := utils.CheckHashStrength(hash); err != nil {
			return fmt.Errorf("ADMIN_PASSWORD_HASH: %w", err)
		}
		c.AdminPasswordHash = hash
		return nil
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		return errors.New("ADMIN_PASSWORD_HASH or ADMIN_PASSWORD must be set")
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash ADMIN_PASSWORD: %w", err)
	}
	c.AdminPasswordHash = hash
	return nil
}

func randomSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// getEnvAsInt retrieves environment variable as int with default value
func getEnvAsInt(key string, defaultVal int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		log.Printf("Invalid %s value, using default: %d", key, defaultVal)
		return defaultVal
	}
	return val
}

// getEnvAsDuration retrieves environment variable as duration with default value
func getEnvAsDuration(key string, defaultVal string) time.Duration {
	valStr := os.Getenv(key)
	if valStr == "" {
		valStr = defaultVal
	}
	duration, err := time.ParseDuration(valStr)
	if err != nil {
		log.Printf("Invalid %s value, using default: %s", key, defaultVal)
		duration, _ = time.ParseDuration(defaultVal)
	}
	return duration
}

func getEnvAsBool(key string, defaultVal bool) bool {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.ParseBool(valStr)
	if err != nil {
		log.Printf("Invalid %s value, using default: %t", key, defaultVal)
		return defaultVal
	}
	return val
}

// getEnvAsList splits a comma separated variable, dropping empty items.
func getEnvAsList(key string, defaultVal []string) []string {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	var items []string
	for _, item := range strings.Split(valStr, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return defaultVal
	}
	return items
}
