package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/smart450/site/models"
	"github.com/smart450/site/reqctx"
	"github.com/smart450/site/services"
)

// AccessRecorder middleware records every request to the access log and the
// per-IP stats before any other handler runs
func AccessRecorder(access services.AccessService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := getIPAddress(r)
			protocol := getProtocol(r)

			access.Record(r.Context(), services.Visit{
				IP:       ip,
				Protocol: protocol,
				Method:   r.Method,
				URL:      r.URL.RequestURI(),
			})

			ctx := reqctx.SetClientIP(r.Context(), ip)
			ctx = reqctx.SetProtocol(ctx, protocol)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// getIPAddress extracts IP address from request, checking X-Forwarded-For first
func getIPAddress(r *http.Request) string {
	// Take first IP if multiple
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		if ip := strings.TrimSpace(strings.Split(forwarded, ",")[0]); ip != "" {
			return ip
		}
	}

	// Fall back to RemoteAddr without the port
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// getProtocol reports HTTPS only when TLS was terminated by this process
func getProtocol(r *http.Request) string {
	if r.TLS != nil {
		return models.ProtocolHTTPS
	}
	return models.ProtocolHTTP
}
