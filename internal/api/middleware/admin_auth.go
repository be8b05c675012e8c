package middleware

import (
	"net/http"

	"github.com/hszk-dev/vidcatalog/internal/admin"
)

// SessionCookieName is the cookie carrying the admin session token.
const SessionCookieName = "admin_session"

// AdminAuth rejects requests without a live admin session.
func AdminAuth(sessions *admin.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || !sessions.Validate(cookie.Value) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"authentication required"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
