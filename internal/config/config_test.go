package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// .env dosyası olmadan, yalnızca ortam değişkenleriyle yükleme.
func TestLoadWithoutEnvFile(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("DB_HOST", "localhost")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "test", cfg.AppEnv)
	require.Equal(t, "8080", cfg.Server.Port)
	require.Equal(t, "localhost", cfg.Database.Host)
}

func TestLoadDefaultsSessionTTL(t *testing.T) {
	t.Setenv("SESSION_TTL", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 24*time.Hour, cfg.Session.TTL)
}
