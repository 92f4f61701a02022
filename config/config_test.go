package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	// Load caches on first call, so overrides are fixed for the whole run.
	os.Setenv("SECRET_KEY", "test-secret-key")
	os.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "45")
	os.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")
	os.Exit(m.Run())
}

func TestLoadDefaultsAndOverrides(t *testing.T) {
	c := Load()

	// Defaults
	assert.Equal(t, "8080", c.AppPort)
	assert.Equal(t, "http://localhost:8080", c.BaseURL)
	assert.Equal(t, "HS256", c.Algorithm)
	assert.Equal(t, "mongodb://localhost:27017", c.MongoDBURL)
	assert.Equal(t, "secure_file_share", c.DatabaseName)
	assert.Equal(t, "uploads", c.UploadDir)
	assert.Equal(t, 587, c.SMTPPort)
	assert.Equal(t, 30, c.RateLimitPerMinute)
	assert.Equal(t, "info", c.LogLevel)

	// Environment overrides
	assert.Equal(t, "test-secret-key", c.SecretKey)
	assert.Equal(t, 45, c.AccessTokenExpireMinutes)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, c.AllowedOrigins)
}

func TestGetReturnsCachedConfig(t *testing.T) {
	c1 := Load()
	c2 := Get()
	require.Equal(t, c1, c2)
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("SOME_INT", "17")
	assert.Equal(t, 17, getEnvInt("SOME_INT", 5))

	t.Setenv("SOME_INT", "not-a-number")
	assert.Equal(t, 5, getEnvInt("SOME_INT", 5))

	assert.Equal(t, 9, getEnvInt("UNSET_INT_KEY", 9))
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("SOME_BOOL", "true")
	assert.True(t, getEnvBool("SOME_BOOL", false))

	t.Setenv("SOME_BOOL", "nope")
	assert.False(t, getEnvBool("SOME_BOOL", false))
}

func TestSplitCSV(t *testing.T) {
	assert.Equal(t, []string{"*"}, splitCSV("*"))
	assert.Equal(t, []string{"a", "b"}, splitCSV(" a , b ,"))
	assert.Empty(t, splitCSV(""))
}
