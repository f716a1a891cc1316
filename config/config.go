package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds everything the server reads at startup
type Config struct {
	Environment string
	DocRoot     string
	HTTPPort    string
	HTTPSPort   string

	TLSKeyFile  string
	TLSCertFile string

	DestinationEmail string
	SMTP             SMTPConfig

	MaxBodyBytes int64
	Timezone     string
	GeoIPCityDB  string
}

// SMTPConfig holds the submission credentials and the optional overrides of the
// selected service profile
type SMTPConfig struct {
	Service  string
	Host     string
	Port     int
	Security string
	User     string
	Password string
	From     string
}

// IsProduction reports whether the deployment marker is "production"
func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

// Load reads an optional .env file and then the process environment
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("⚠️  Failed to load .env file: %v", err)
	}

	env := getString("APP_ENV", getString("NODE_ENV", "development"))

	smtpUser := getString("SMTP_USER", "")
	return Config{
		Environment: env,
		DocRoot:     getString("DOC_ROOT", "."),
		HTTPPort:    getString("HTTP_PORT", "80"),
		HTTPSPort:   getString("HTTPS_PORT", "443"),

		TLSKeyFile:  getString("TLS_KEY_FILE", "/etc/letsencrypt/live/smart450cagliari.ichnusalab.it/privkey.pem"),
		TLSCertFile: getString("TLS_CERT_FILE", "/etc/letsencrypt/live/smart450cagliari.ichnusalab.it/fullchain.pem"),

		DestinationEmail: getString("DESTINATION_EMAIL", smtpUser),
		SMTP: SMTPConfig{
			Service:  strings.ToLower(getString("SMTP_SERVICE", "gmail")),
			Host:     getString("SMTP_HOST", ""),
			Port:     getInt("SMTP_PORT", 0),
			Security: strings.ToLower(getString("SMTP_SECURITY", "")),
			User:     smtpUser,
			Password: getString("SMTP_PASSWORD", ""),
			From:     getString("SMTP_FROM", smtpUser),
		},

		MaxBodyBytes: int64(getInt("MAX_BODY_BYTES", 10<<20)),
		Timezone:     getString("TIMEZONE", "Europe/Rome"),
		GeoIPCityDB:  getString("GEOIP_CITY_DB", ""),
	}
}

func getString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
		log.Printf("⚠️  Ignoring invalid %s=%q, using %d", key, v, def)
	}
	return def
}
