package mailer

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
)

// SMTPMailer keeps one authenticated submission session open and reuses it for
// every message. Sends are serialized on that session.
type SMTPMailer struct {
	cfg Config

	mu     sync.Mutex
	client *smtp.Client
}

// NewSMTPMailer creates a mailer; no connection is opened until Verify or Send
func NewSMTPMailer(cfg Config) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

// Verify opens (or reopens) the session and authenticates
func (m *SMTPMailer) Verify(ctx context.Context) error {
	if !m.cfg.Configured() {
		return ErrNotConfigured
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.drop()
	client, err := m.dial(ctx)
	if err != nil {
		return err
	}
	m.client = client
	return nil
}

// Send submits msg to every recipient in msg.To
func (m *SMTPMailer) Send(ctx context.Context, msg *Message) error {
	if !m.cfg.Configured() {
		return ErrNotConfigured
	}

	data, err := msg.Bytes()
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	client, err := m.session(ctx)
	if err != nil {
		return err
	}

	if err := client.SendMail(msg.From, msg.To, bytes.NewReader(data)); err != nil {
		// The session state is unknown after a failed transaction
		m.drop()
		return fmt.Errorf("failed to send message to %v: %w", msg.To, err)
	}
	return nil
}

// Close ends the session if one is open
func (m *SMTPMailer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.client == nil {
		return nil
	}
	err := m.client.Quit()
	m.client.Close()
	m.client = nil
	return err
}

// session returns the open client, redialing when the server no longer
// answers RSET
func (m *SMTPMailer) session(ctx context.Context) (*smtp.Client, error) {
	if m.client != nil {
		if err := m.client.Reset(); err == nil {
			return m.client, nil
		}
		m.drop()
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	client, err := m.dial(ctx)
	if err != nil {
		return nil, err
	}
	m.client = client
	return client, nil
}

func (m *SMTPMailer) drop() {
	if m.client != nil {
		m.client.Close()
		m.client = nil
	}
}

func (m *SMTPMailer) dial(ctx context.Context) (*smtp.Client, error) {
	dialer := &net.Dialer{Timeout: m.cfg.Timeout}
	tlsConfig := m.cfg.tlsConfig()

	var conn net.Conn
	var err error
	if m.cfg.Security == SecurityTLS {
		conn, err = (&tls.Dialer{NetDialer: dialer, Config: tlsConfig}).DialContext(ctx, "tcp", m.cfg.Addr())
	} else {
		conn, err = dialer.DialContext(ctx, "tcp", m.cfg.Addr())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", m.cfg.Addr(), err)
	}

	var client *smtp.Client
	if m.cfg.Security == SecurityStartTLS {
		// The greeting and upgrade run before the client timeouts apply
		if m.cfg.Timeout > 0 {
			conn.SetDeadline(time.Now().Add(m.cfg.Timeout))
		}
		client, err = smtp.NewClientStartTLS(conn, tlsConfig)
		if err != nil {
			conn.Close()
			return nil, fmt.Errorf("smtp starttls failed: %w", err)
		}
		conn.SetDeadline(time.Time{})
	} else {
		client = smtp.NewClient(conn)
		if err := client.Hello(m.cfg.LocalName); err != nil {
			client.Close()
			return nil, fmt.Errorf("smtp greeting failed: %w", err)
		}
	}

	if m.cfg.Timeout > 0 {
		client.CommandTimeout = m.cfg.Timeout
		client.SubmissionTimeout = m.cfg.Timeout
	}

	if err := client.Auth(sasl.NewPlainClient("", m.cfg.Username, m.cfg.Password)); err != nil {
		client.Close()
		return nil, fmt.Errorf("smtp authentication failed: %w", err)
	}

	return client, nil
}
