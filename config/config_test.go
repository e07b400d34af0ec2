package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load([]string{"--config", t.TempDir()})
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORSOrigins)
	assert.Equal(t, 24*time.Hour, cfg.JWT.AccessTTL)
	assert.Equal(t, 30*24*time.Hour, cfg.JWT.RefreshTTL)
	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, "console", cfg.Mail.Provider)
	assert.Equal(t, 3*time.Second, cfg.Events.BroadcastInterval)
	assert.Equal(t, int64(10<<20), cfg.BodyLimit)
}

func TestLoadLegacySecretVariable(t *testing.T) {
	t.Setenv("JWT_ACCESS_SECRET_KEY", "legacy")

	cfg, err := Load([]string{"--config", t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, "legacy", cfg.JWT.Secret)
}

func TestLoadMissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("JWT_ACCESS_SECRET_KEY", "")

	_, err := Load([]string{"--config", t.TempDir()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no JWT secret set")
}

func TestLoadPortFlag(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load([]string{"--config", t.TempDir(), "--port", "8081"})
	require.NoError(t, err)
	assert.Equal(t, 8081, cfg.Port)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]map[string]string{
		"storage driver": {"STORAGE_DRIVER": "cassandra"},
		"mail provider":  {"MAIL_PROVIDER": "carrier-pigeon"},
		"smtp host":      {"MAIL_PROVIDER": "smtp", "MAIL_SENDER_ADDRESS": "noreply@example.com"},
		"mongo uri":      {"STORAGE_DRIVER": "mongo"},
		"s3 bucket":      {"S3_ENABLED": "true"},
		"log level":      {"APP_LOG_LEVEL": "loud"},
	}

	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", "test-secret")
			for k, v := range env {
				t.Setenv(k, v)
			}

			_, err := Load([]string{"--config", t.TempDir()})
			assert.Error(t, err)
		})
	}
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitList(" a, ,b "))
	assert.Nil(t, splitList(""))
}
