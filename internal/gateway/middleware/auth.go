package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/mwesigwa/tunestream-backend/internal/modules/auth/infrastructure/jwt"
)

type contextKey string

const (
	ContextKeyUserId contextKey = "user_id"
	ContextKeyRole   contextKey = "role"
)

type AuthMiddleWare struct {
	jwtSecret string
}

// NewAuthMiddleware creates and returns a new instance of AuthMiddleWare.
// The jwtSecret parameter should contain the secret key used to verify
// token signatures.
func NewAuthMiddleware(jwtSecret string) *AuthMiddleWare {
	return &AuthMiddleWare{jwtSecret: jwtSecret}
}

// RequireAuth enforces authentication on HTTP requests. It validates the
// Bearer token in the Authorization header (or a token query parameter
// for websocket upgrades), and injects the authenticated user's ID and
// role into the request context for downstream handlers. Failures get a
// 401 response.
func (m *AuthMiddleWare) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := bearerToken(r)
		if tokenStr == "" {
			tokenStr = r.URL.Query().Get("token")
		}

		if tokenStr == "" {
			http.Error(w, `{"error": "missing or invalid authorization"}`, http.StatusUnauthorized)
			return
		}

		claims, err := jwt.ValidateToken(tokenStr, m.jwtSecret)
		if err != nil {
			http.Error(w, `{"error": "invalid or expired token"}`, http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), ContextKeyUserId, claims.UserID)
		ctx = context.WithValue(ctx, ContextKeyRole, claims.Role)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// FlexibleAuth attempts to authenticate the user but proceeds even if no
// token is present. A valid token injects the UserID and Role into the
// context; anything else passes the request through as a guest.
func (m *AuthMiddleWare) FlexibleAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := bearerToken(r)
		if tokenStr == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := jwt.ValidateToken(tokenStr, m.jwtSecret)
		if err != nil {
			// Token invalid/expired, proceed as guest
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), ContextKeyUserId, claims.UserID)
		ctx = context.WithValue(ctx, ContextKeyRole, claims.Role)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole layers a role check on top of RequireAuth.
func (m *AuthMiddleWare) RequireRole(role string, next http.Handler) http.Handler {
	return m.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got, ok := r.Context().Value(ContextKeyRole).(string); !ok || got != role {
			http.Error(w, `{"error": "insufficient permissions"}`, http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	}))
}

func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
