package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", c.Addr())
	assert.Equal(t, time.Hour, c.JWTExpiresIn)
	assert.Equal(t, 10, c.BcryptCost)
	assert.False(t, c.AuthRequired)
	assert.Empty(t, c.DBDSN)
}

func TestLoad_FromEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "PORT=9090\nJWT_EXPIRES_IN=15m\nAUTH_REQUIRED=true\nREDIS_ADDR=localhost:6379\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	// godotenv no pisa variables existentes; limpiamos al terminar.
	t.Cleanup(func() {
		for _, k := range []string{"PORT", "JWT_EXPIRES_IN", "AUTH_REQUIRED", "REDIS_ADDR"} {
			_ = os.Unsetenv(k)
		}
	})

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", c.Addr())
	assert.Equal(t, 15*time.Minute, c.JWTExpiresIn)
	assert.True(t, c.AuthRequired)
	assert.Equal(t, "localhost:6379", c.RedisAddr)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.env"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load configuration file")
}

func TestLoad_ProductionNeedsSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "short")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}
