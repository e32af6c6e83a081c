package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/hugh/cardlink/internal/auth"
)

type contextKey string

const (
	RoleKey   contextKey = "role"
	CardIDKey contextKey = "card_id"
)

func Auth(tokens auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var token string

			// 1. Check Authorization header
			authHeader := r.Header.Get("Authorization")
			if strings.HasPrefix(authHeader, "Bearer ") {
				token = strings.TrimPrefix(authHeader, "Bearer ")
			}

			// 2. Check X-Auth-Token header (clients that cannot set Authorization)
			if token == "" {
				token = r.Header.Get("X-Auth-Token")
			}

			if token == "" {
				writeError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			claims, err := tokens.ValidateToken(token)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			ctx := r.Context()
			ctx = context.WithValue(ctx, RoleKey, claims.Role)
			ctx = context.WithValue(ctx, CardIDKey, claims.CardID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Helper functions to extract values from context
func GetRole(ctx context.Context) auth.Role {
	if role, ok := ctx.Value(RoleKey).(auth.Role); ok {
		return role
	}
	return ""
}

// GetCardID returns the viewer's card, or 0 outside employee sessions.
func GetCardID(ctx context.Context) int64 {
	if id, ok := ctx.Value(CardIDKey).(int64); ok {
		return id
	}
	return 0
}

// RequireRole middleware ensures the session has one of roles
func RequireRole(roles ...auth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := GetRole(r.Context())

			for _, allowed := range roles {
				if role == allowed {
					next.ServeHTTP(w, r)
					return
				}
			}

			writeError(w, http.StatusForbidden, "Forbidden")
		})
	}
}

// RequireCard rejects sessions that do not act as a card.
func RequireCard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetCardID(r.Context()) == 0 {
			writeError(w, http.StatusForbidden, "Session is not bound to a card")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
