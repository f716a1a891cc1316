package reqctx

import (
	"context"

	"github.com/smart450/site/models"
)

// Context key type
type contextKey string

const clientIPKey contextKey = "client_ip"
const protocolKey contextKey = "protocol"

// SetClientIP adds the resolved client IP to request context
func SetClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPKey, ip)
}

// GetClientIP retrieves the resolved client IP from request context
func GetClientIP(ctx context.Context) string {
	ip, ok := ctx.Value(clientIPKey).(string)
	if !ok {
		return "unknown"
	}
	return ip
}

// SetProtocol adds the transport the request arrived on to request context
func SetProtocol(ctx context.Context, protocol string) context.Context {
	return context.WithValue(ctx, protocolKey, protocol)
}

// GetProtocol retrieves the transport from request context, HTTP when unset
func GetProtocol(ctx context.Context) string {
	if p, ok := ctx.Value(protocolKey).(string); ok && p != "" {
		return p
	}
	return models.ProtocolHTTP
}
