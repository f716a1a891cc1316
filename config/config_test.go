package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_ENV", "NODE_ENV", "DOC_ROOT", "HTTP_PORT", "HTTPS_PORT", "TLS_KEY_FILE", "TLS_CERT_FILE",
		"DESTINATION_EMAIL", "SMTP_SERVICE", "SMTP_HOST", "SMTP_PORT", "SMTP_SECURITY", "SMTP_USER",
		"SMTP_PASSWORD", "SMTP_FROM", "MAX_BODY_BYTES", "TIMEZONE", "GEOIP_CITY_DB",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()

	assert.Equal(t, "development", cfg.Environment)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, ".", cfg.DocRoot)
	assert.Equal(t, "80", cfg.HTTPPort)
	assert.Equal(t, "443", cfg.HTTPSPort)
	assert.Contains(t, cfg.TLSKeyFile, "privkey.pem")
	assert.Contains(t, cfg.TLSCertFile, "fullchain.pem")
	assert.Equal(t, "gmail", cfg.SMTP.Service)
	assert.Empty(t, cfg.SMTP.User)
	assert.Empty(t, cfg.SMTP.Password)
	assert.Equal(t, int64(10<<20), cfg.MaxBodyBytes)
	assert.Equal(t, "Europe/Rome", cfg.Timezone)
	assert.Empty(t, cfg.GeoIPCityDB)
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("NODE_ENV", "production")
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("SMTP_SERVICE", "Outlook")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("SMTP_SECURITY", "NONE")
	t.Setenv("SMTP_USER", "me@example.com")
	t.Setenv("SMTP_PASSWORD", "app-password")
	t.Setenv("MAX_BODY_BYTES", "1024")

	cfg := Load()

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "outlook", cfg.SMTP.Service)
	assert.Equal(t, 2525, cfg.SMTP.Port)
	assert.Equal(t, "none", cfg.SMTP.Security)
	assert.Equal(t, "app-password", cfg.SMTP.Password)
	assert.Equal(t, "me@example.com", cfg.SMTP.From)
	assert.Equal(t, "me@example.com", cfg.DestinationEmail)
	assert.Equal(t, int64(1024), cfg.MaxBodyBytes)
}

func TestLoadAppEnvWins(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "staging")
	t.Setenv("NODE_ENV", "production")

	assert.Equal(t, "staging", Load().Environment)
}

func TestGetIntInvalid(t *testing.T) {
	clearEnv(t)
	t.Setenv("SMTP_PORT", "abc")

	assert.Equal(t, 0, Load().SMTP.Port)
}
