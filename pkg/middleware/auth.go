package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/NelloGamerz/Meme-Vault/internal/core/contracts"
)

type contextKey string

const PrincipalKey contextKey = "principal"

func AuthMiddleware(identity contracts.IdentityProvider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Extract Bearer token, falling back to the session cookie
			token := ""
			authHeader := r.Header.Get("Authorization")
			if authHeader != "" {
				parts := strings.Split(authHeader, " ")
				if len(parts) != 2 || parts[0] != "Bearer" {
					http.Error(w, "Invalid authorization format", http.StatusUnauthorized)
					return
				}
				token = parts[1]
			} else if cookie, err := r.Cookie("token"); err == nil {
				token = cookie.Value
			}
			if token == "" {
				http.Error(w, "Authorization required", http.StatusUnauthorized)
				return
			}
			// Validate Token
			principal, err := identity.Verify(r.Context(), token)
			if err != nil {
				http.Error(w, "Unauthorized: "+err.Error(), http.StatusUnauthorized)
				return
			}
			// Inject Principal into Context
			ctx := context.WithValue(r.Context(), PrincipalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
