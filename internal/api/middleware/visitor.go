package middleware

import (
	"context"
	"net"
	"net/http"
	"regexp"
	"strings"
)

const userAgentIDLength = 20

var visitorIDSanitizer = regexp.MustCompile(`[^a-zA-Z0-9-]`)

// Visitor derives a stable pseudonymous visitor ID from the client address
// and user agent. It identifies a browser well enough for likes without any
// account system or stored identifier.
func Visitor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), visitorIDKey, deriveVisitorID(r))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetVisitorID retrieves the visitor ID from context.
func GetVisitorID(ctx context.Context) string {
	if id, ok := ctx.Value(visitorIDKey).(string); ok {
		return id
	}
	return ""
}

func deriveVisitorID(r *http.Request) string {
	ua := r.UserAgent()
	if len(ua) > userAgentIDLength {
		ua = ua[:userAgentIDLength]
	}
	raw := clientIP(r) + "-" + ua
	return visitorIDSanitizer.ReplaceAllString(raw, "-")
}

// clientIP prefers proxy headers so every visitor behind the reverse proxy
// does not collapse into one ID.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if ip := r.Header.Get("X-Real-Ip"); ip != "" {
		return ip
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return "unknown"
}
