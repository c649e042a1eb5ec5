package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets every variable Load reads so defaults apply, restoring
// them when the test ends.
func clearEnv(t *testing.T) {
	t.Helper()
	keys := []string{
		"CONFIG_PATH", "PORT", "SERVER_SHUTDOWN_TIMEOUT", "LOG_LEVEL", "LOG_FORMAT",
		"QUESTME_DEFAULT_LOCALE", "QUESTME_SPEECH_CODE", "QUESTME_SPEECH_PACE",
		"CORS_ALLOWED_ORIGINS", "CORS_ALLOWED_METHODS", "CORS_ALLOWED_HEADERS", "CORS_MAX_AGE",
	}
	for _, key := range keys {
		key := key
		if prev, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { os.Setenv(key, prev) })
		}
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr())
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "ja", cfg.Companion.DefaultLocale)
	assert.Equal(t, "ja-JP", cfg.Speech.SpeechCode)
	assert.Equal(t, 60*time.Millisecond, cfg.Speech.PerRune)
	assert.Equal(t, "*", cfg.CORS.AllowedOrigins)
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "127.0.0.1:9090")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("QUESTME_DEFAULT_LOCALE", "en")
	t.Setenv("QUESTME_SPEECH_CODE", "en-US")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", cfg.Server.Addr())
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "en", cfg.Companion.DefaultLocale)
	assert.Equal(t, "en-US", cfg.Speech.SpeechCode)
}

func TestServerAddr(t *testing.T) {
	tests := map[string]string{
		"8080":         ":8080",
		":8080":        ":8080",
		"0.0.0.0:3000": "0.0.0.0:3000",
		" 9000 ":       ":9000",
	}
	for port, want := range tests {
		assert.Equal(t, want, ServerConfig{Port: port}.Addr(), port)
	}
}

func TestLoadInvalidPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "80 80")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: validate")
	assert.Contains(t, err.Error(), "invalid PORT value")
}

func TestLoadInvalidLogFormat(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOG_FORMAT", "xml")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LOG_FORMAT")
}

func TestLoadFromYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: "7070"
log:
  level: debug
speech:
  speech_code: fr-FR
  per_rune: 10ms
`), 0o644))
	clearEnv(t)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Server.Addr())
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "fr-FR", cfg.Speech.SpeechCode)
	assert.Equal(t, 10*time.Millisecond, cfg.Speech.PerRune)
	assert.Equal(t, "ja", cfg.Companion.DefaultLocale)
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: read")
}
