package config

import (
	"testing"
	"time"

	"github.com/orchid-haven/orchid-backend/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// clearEnv blanks every variable FromEnv reads so the host environment
// cannot leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ENVIRONMENT", "PORT", "JWT_SECRET", "FRONTEND_URL", "CORS_ALLOWED_ORIGINS",
		"PUBLIC_BASE_URL", "UPLOAD_DIR", "AUDIT_LOG_PATH", "AUDIT_LOG_MAX_ENTRIES",
		"REDIS_URL", "ADMIN_USERNAME", "ADMIN_PASSWORD_HASH", "ADMIN_PASSWORD", "SEED_DATA",
		"RATE_LIMIT_ENABLED", "RATE_LIMIT_AUTH_MAX", "RATE_LIMIT_AUTH_WINDOW",
		"RATE_LIMIT_API_MAX", "RATE_LIMIT_API_WINDOW", "RATE_LIMIT_UPLOAD_MAX", "RATE_LIMIT_UPLOAD_WINDOW",
	} {
		t.Setenv(key, "")
	}
}

func cheapHash(t *testing.T, cost int) string {
	t.Helper()
	hash, err := utils.HashPasswordWithCost("admin123", cost)
	require.NoError(t, err)
	return hash
}

func TestFromEnv_DevelopmentDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("ADMIN_PASSWORD_HASH", cheapHash(t, utils.MinAcceptedCost))

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "5000", cfg.ServerPort)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.Equal(t, "admin", cfg.AdminUsername)
	assert.True(t, cfg.SeedData)
	assert.False(t, cfg.RateLimitEnabled)
	assert.Equal(t, RateLimit{Max: 5, Window: 15 * time.Minute}, cfg.AuthRateLimit)
	assert.Equal(t, RateLimit{Max: 100, Window: 15 * time.Minute}, cfg.APIRateLimit)
	assert.Equal(t, RateLimit{Max: 10, Window: time.Hour}, cfg.UploadRateLimit)

	assert.True(t, cfg.JWTSecretGenerated)
	assert.Len(t, cfg.JWTSecret, 64)
}

func TestFromEnv_GeneratedSecretsDiffer(t *testing.T) {
	clearEnv(t)
	t.Setenv("ADMIN_PASSWORD_HASH", cheapHash(t, utils.MinAcceptedCost))

	a, err := FromEnv()
	require.NoError(t, err)
	b, err := FromEnv()
	require.NoError(t, err)
	assert.NotEqual(t, a.JWTSecret, b.JWTSecret)
}

func TestFromEnv_ProductionRequiresSecret(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("ADMIN_PASSWORD_HASH", cheapHash(t, utils.MinAcceptedCost))
	t.Setenv("REDIS_URL", "redis://localhost:6379")

	_, err := FromEnv()
	assert.ErrorContains(t, err, "JWT_SECRET")

	t.Setenv("JWT_SECRET", "short")
	_, err = FromEnv()
	assert.ErrorContains(t, err, "at least")

	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")
	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.True(t, cfg.RateLimitEnabled, "rate limiting defaults on in production")
	assert.False(t, cfg.JWTSecretGenerated)
}

func TestFromEnv_RateLimitNeedsRedis(t *testing.T) {
	clearEnv(t)
	t.Setenv("ADMIN_PASSWORD_HASH", cheapHash(t, utils.MinAcceptedCost))
	t.Setenv("RATE_LIMIT_ENABLED", "true")

	_, err := FromEnv()
	assert.ErrorContains(t, err, "REDIS_URL")
}

func TestFromEnv_AdminCredentials(t *testing.T) {
	clearEnv(t)

	_, err := FromEnv()
	assert.ErrorContains(t, err, "ADMIN_PASSWORD")

	t.Setenv("ADMIN_PASSWORD_HASH", cheapHash(t, bcrypt.MinCost))
	_, err = FromEnv()
	assert.ErrorIs(t, err, utils.ErrWeakHash)

	t.Setenv("ADMIN_PASSWORD_HASH", "")
	t.Setenv("ADMIN_PASSWORD", "admin123")
	cfg, err := FromEnv()
	require.NoError(t, err)
	ok, err := utils.VerifyPassword("admin123", cfg.AdminPasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("ADMIN_PASSWORD_HASH", cheapHash(t, utils.MinAcceptedCost))
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://orchid.example , ,https://admin.orchid.example")
	t.Setenv("PUBLIC_BASE_URL", "https://api.orchid.example/")
	t.Setenv("RATE_LIMIT_AUTH_MAX", "not-a-number")
	t.Setenv("RATE_LIMIT_API_WINDOW", "1m")
	t.Setenv("SEED_DATA", "false")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, []string{"https://orchid.example", "https://admin.orchid.example"}, cfg.AllowedOrigins)
	assert.Equal(t, "https://api.orchid.example", cfg.PublicBaseURL)
	assert.Equal(t, 5, cfg.AuthRateLimit.Max, "invalid values fall back to the default")
	assert.Equal(t, time.Minute, cfg.APIRateLimit.Window)
	assert.False(t, cfg.SeedData)
}
