package server

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/smart450/site/middleware"
)

// Mode is the startup mode chosen from the certificate probe
type Mode struct {
	Secure bool
	Cert   tls.Certificate
	// Reason explains why the server fell back to plain HTTP
	Reason error
}

// String implements fmt.Stringer
func (m Mode) String() string {
	if m.Secure {
		return "secure"
	}
	return "plain"
}

// Probe loads the key and full-chain certificate as a pair. Any failure yields
// the plain mode.
func Probe(keyFile, certFile string) Mode {
	cert, err := tls.LoadX509KeyPair(certFile, keyFile)
	if err != nil {
		return Mode{Reason: fmt.Errorf("failed to load TLS certificate: %w", err)}
	}
	return Mode{Secure: true, Cert: cert}
}

// Options configures the listeners
type Options struct {
	HTTPPort          string
	HTTPSPort         string
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
}

// Server runs the site on one or two listeners depending on the mode
type Server struct {
	mode    Mode
	opts    Options
	servers []*http.Server
}

// New builds the listeners for mode. In secure mode the app is served over
// HTTPS and the plain port only redirects; otherwise the app is served over HTTP.
func New(mode Mode, app http.Handler, opts Options) *Server {
	if opts.ReadHeaderTimeout <= 0 {
		opts.ReadHeaderTimeout = 10 * time.Second
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 10 * time.Second
	}

	s := &Server{mode: mode, opts: opts}
	if !mode.Secure {
		s.servers = []*http.Server{s.newHTTPServer(opts.HTTPPort, app)}
		return s
	}

	https := s.newHTTPServer(opts.HTTPSPort, app)
	https.TLSConfig = &tls.Config{
		Certificates: []tls.Certificate{mode.Cert},
		MinVersion:   tls.VersionTLS12,
	}
	s.servers = []*http.Server{https, s.newHTTPServer(opts.HTTPPort, RedirectHandler())}
	return s
}

func (s *Server) newHTTPServer(port string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: s.opts.ReadHeaderTimeout,
	}
}

// RedirectHandler answers every request with a 301 to its https:// equivalent
func RedirectHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		middleware.SetSecurityHeaders(w.Header())
		http.Redirect(w, r, "https://"+r.Host+r.URL.RequestURI(), http.StatusMovedPermanently)
	})
}

// Run serves until ctx is done or a listener fails, then shuts every listener
// down gracefully
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, len(s.servers))
	for _, srv := range s.servers {
		go func(srv *http.Server) {
			var err error
			if srv.TLSConfig != nil {
				log.Printf("🔒 HTTPS listening on %s", srv.Addr)
				err = srv.ListenAndServeTLS("", "")
			} else {
				log.Printf("🌐 HTTP listening on %s", srv.Addr)
				err = srv.ListenAndServe()
			}
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("listener %s: %w", srv.Addr, err)
				return
			}
			errCh <- nil
		}(srv)
	}

	var runErr error
	select {
	case <-ctx.Done():
		log.Printf("🛑 Shutting down...")
	case runErr = <-errCh:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
	defer cancel()
	for _, srv := range s.servers {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("⚠️  Shutdown of %s: %v", srv.Addr, err)
		}
	}
	return runErr
}
