package utils

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/nexgen/taskbuddy/internal/infrastructure/security"
)

const SessionCookieName = "token"

type sessionContextKey struct{}

func SetSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Expires:  time.Now().Add(security.SessionTTL()),
		SameSite: http.SameSiteLaxMode,
		Secure:   true,
	})
}

func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Expires:  time.Now().Add(-24 * time.Hour),
		SameSite: http.SameSiteLaxMode,
		Secure:   true,
	})
}

// GetSessionToken reads the raw session token from the cookie, falling back
// to an Authorization bearer header for API clients.
func GetSessionToken(r *http.Request) string {
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}

	return ""
}

func WithSession(ctx context.Context, claims *security.SessionClaims) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, claims)
}

// SessionFromContext returns the claims the auth middleware stored, or nil
// for unauthenticated requests.
func SessionFromContext(ctx context.Context) *security.SessionClaims {
	claims, _ := ctx.Value(sessionContextKey{}).(*security.SessionClaims)
	return claims
}
