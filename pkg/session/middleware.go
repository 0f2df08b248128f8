package session

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/freshcart/storefront/pkg/logger"
)

type contextKey string

// SessionIDKey is the request context key holding the session id.
const SessionIDKey contextKey = "session_id"

// CookieName is the cookie carrying the session token.
const CookieName = "sf_session"

// TokenHeader exposes the minted token to clients that prefer headers over cookies.
const TokenHeader = "X-Session-Token"

// FromContext extracts the session id installed by Middleware.
func FromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(SessionIDKey).(string)
	return id, ok && id != ""
}

// Middleware resolves the visitor's session. A valid token (Authorization
// bearer or cookie) is honored; anything else gets a fresh session minted
// and set as a cookie. The session id keys carts and wishlists.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id, ok := tokenSessionID(r); ok {
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), SessionIDKey, id)))
			return
		}

		id := NewSessionID()
		token, err := GenerateToken(id)
		if err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to mint session token")
			http.Error(w, "session initialization failed", http.StatusInternalServerError)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     CookieName,
			Value:    token,
			Path:     "/",
			Expires:  time.Now().Add(TokenTTL),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		w.Header().Set(TokenHeader, token)

		logger.Logger.Debug().Str("session_id", id).Msg("New session minted")

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), SessionIDKey, id)))
	})
}

func tokenSessionID(r *http.Request) (string, bool) {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			if claims, err := ValidateToken(parts[1]); err == nil {
				return claims.SessionID, true
			}
		}
	}

	if cookie, err := r.Cookie(CookieName); err == nil {
		if claims, err := ValidateToken(cookie.Value); err == nil {
			return claims.SessionID, true
		}
	}

	return "", false
}
