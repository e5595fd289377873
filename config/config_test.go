package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnv(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "app.env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadEnvFile(t *testing.T) {
	path := writeEnv(t, "JWT_SECRET=leafy\nBASE_PATH=api/\nOTP_TTL=5m\nDB_NAME=plants\n")

	cf, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "leafy", cf.JWTSecret)
	assert.Equal(t, "/api", cf.BasePath)
	assert.Equal(t, 5*time.Minute, cf.OTPTTL)
	assert.Equal(t, "8000", cf.ServerPort)
	assert.Contains(t, cf.PostgresDSN(), "dbname=plants")
	assert.Same(t, cf, Get())
}

func TestLoadRequiresSecret(t *testing.T) {
	path := writeEnv(t, "DB_NAME=plants\n")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

func TestReloadRunsHooks(t *testing.T) {
	path := writeEnv(t, "JWT_SECRET=leafy\nLOG_LEVEL=info\nCHECKOUT_WEBHOOK_SECRET=whsec_old\n")

	reloaded := make(chan *Config, 16)
	cf, err := Load(path, func(c *Config) {
		select {
		case reloaded <- c:
		default:
		}
	})
	require.NoError(t, err)
	assert.Equal(t, "whsec_old", cf.WebhookSecret)

	require.NoError(t, os.WriteFile(path, []byte("JWT_SECRET=leafy\nLOG_LEVEL=debug\nCHECKOUT_WEBHOOK_SECRET=whsec_new\n"), 0o600))

	// one write can surface as several events; wait for the one carrying the new file
	timeout := time.After(5 * time.Second)
	for {
		select {
		case c := <-reloaded:
			if c.WebhookSecret != "whsec_new" {
				continue
			}
			assert.Equal(t, "debug", c.LogLevel)
			assert.Equal(t, "whsec_new", Get().WebhookSecret)
			return
		case <-timeout:
			t.Fatal("config change was not picked up")
		}
	}
}
