package mailer

import (
	"context"
	"crypto/tls"
	"errors"
	"net"
	"strconv"
	"time"
)

// ErrNotConfigured is returned by Send when no SMTP credentials were provided
var ErrNotConfigured = errors.New("smtp transport is not configured")

// Sender submits composed messages to an SMTP provider
type Sender interface {
	Send(ctx context.Context, msg *Message) error
}

// Connection security modes
const (
	SecurityTLS      = "tls"
	SecurityStartTLS = "starttls"
	SecurityNone     = "none"
)

// Config holds the SMTP submission settings
type Config struct {
	Host      string
	Port      int
	Security  string
	Username  string
	Password  string
	LocalName string
	Timeout   time.Duration
	// TLS overrides the client TLS settings; ServerName defaults to Host
	TLS *tls.Config
}

// Profile describes a well-known provider's submission endpoint
type Profile struct {
	Host     string
	Port     int
	Security string
}

// Profiles maps service names to their submission endpoints
var Profiles = map[string]Profile{
	"gmail":   {Host: "smtp.gmail.com", Port: 465, Security: SecurityTLS},
	"outlook": {Host: "smtp.office365.com", Port: 587, Security: SecurityStartTLS},
	"yahoo":   {Host: "smtp.mail.yahoo.com", Port: 465, Security: SecurityTLS},
}

// NewConfig builds a config from a service profile; explicit host, port and
// security values take precedence over the profile
func NewConfig(service, host string, port int, security, username, password string) Config {
	cfg := Config{
		Username:  username,
		Password:  password,
		LocalName: "localhost",
		Timeout:   30 * time.Second,
	}

	if p, ok := Profiles[service]; ok {
		cfg.Host, cfg.Port, cfg.Security = p.Host, p.Port, p.Security
	}
	if host != "" {
		cfg.Host = host
	}
	if port != 0 {
		cfg.Port = port
	}
	if security != "" {
		cfg.Security = security
	}

	if cfg.Security == "" {
		cfg.Security = SecurityStartTLS
	}
	if cfg.Port == 0 {
		switch cfg.Security {
		case SecurityTLS:
			cfg.Port = 465
		case SecurityStartTLS:
			cfg.Port = 587
		default:
			cfg.Port = 25
		}
	}

	return cfg
}

// Configured reports whether there is enough to open an authenticated session
func (c Config) Configured() bool {
	return c.Host != "" && c.Username != "" && c.Password != ""
}

func (c Config) tlsConfig() *tls.Config {
	if c.TLS == nil {
		return &tls.Config{ServerName: c.Host}
	}
	cfg := c.TLS.Clone()
	if cfg.ServerName == "" {
		cfg.ServerName = c.Host
	}
	return cfg
}

// Addr returns host:port
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
