package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_File(t *testing.T) {
	require.NoError(t, Load("config.yaml"))

	assert.Equal(t, ":8080", C.Server.Port)
	assert.Equal(t, "change-me", C.JWT.Secret)
	assert.Equal(t, 720*time.Hour, C.JWT.TTL)
	assert.Equal(t, 50, C.Draw.MaxRetry)
	assert.Equal(t, 1440*time.Hour, C.Group.TTL)
	assert.False(t, C.Redis.Enabled)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SECRETSANTA_JWT_SECRET", "from-env")
	t.Setenv("SECRETSANTA_DRAW_SEED", "42")

	require.NoError(t, Load(""))
	assert.Equal(t, "from-env", C.JWT.Secret)
	assert.Equal(t, int64(42), C.Draw.Seed)
	assert.Equal(t, 50, C.Draw.MaxRetry)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		errorMsg string
	}{
		{
			name:     "missing secret",
			body:     "server:\n  port: \":9000\"\n",
			errorMsg: "jwt.secret is required",
		},
		{
			name:     "bad max retry",
			body:     "jwt:\n  secret: s\ndraw:\n  maxRetry: 0\n",
			errorMsg: "draw.maxRetry must be at least 1",
		},
		{
			name:     "redis without addr",
			body:     "jwt:\n  secret: s\nredis:\n  enabled: true\n  addr: \"\"\n",
			errorMsg: "redis.addr is required",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorMsg)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "read config")
}
